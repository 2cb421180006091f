package handlers

import (
	"bytes"
	"net/http"

	"github.com/epeers/scenarios/internal/models"
	"github.com/epeers/scenarios/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ForecastHandler handles forecast, preset, and assumption-editing endpoints
type ForecastHandler struct {
	forecastSvc *services.ForecastService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastSvc *services.ForecastService) *ForecastHandler {
	return &ForecastHandler{
		forecastSvc: forecastSvc,
	}
}

// bindForecastRequest accepts an empty body as a base-case request
func bindForecastRequest(c *gin.Context) (*models.ForecastRequest, bool) {
	var req models.ForecastRequest
	if c.Request.ContentLength == 0 {
		return &req, true
	}
	if !bindJSON(c, &req) {
		return nil, false
	}
	return &req, true
}

// Forecast handles POST /forecast
// @Summary Project NAV, cash flows, and allocation drift
// @Description Validates the assumption set and returns all three projected series. An empty body forecasts the base case.
// @Tags forecast
// @Accept json
// @Produce json
// @Param request body models.ForecastRequest false "Assumptions to forecast"
// @Success 200 {object} models.ForecastResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forecast [post]
func (h *ForecastHandler) Forecast(c *gin.Context) {
	req, ok := bindForecastRequest(c)
	if !ok {
		return
	}

	result, err := h.forecastSvc.Forecast(c.Request.Context(), req.Assumptions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CashFlowsCSV handles POST /forecast/cashflows.csv
// @Summary Export projected cash flows as CSV
// @Description Returns the quarterly capital calls, distributions, and net cash flow as a CSV download
// @Tags forecast
// @Accept json
// @Produce text/csv
// @Param request body models.ForecastRequest false "Assumptions to forecast"
// @Success 200 {string} string "CSV file"
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /forecast/cashflows.csv [post]
func (h *ForecastHandler) CashFlowsCSV(c *gin.Context) {
	req, ok := bindForecastRequest(c)
	if !ok {
		return
	}

	result, err := h.forecastSvc.Forecast(c.Request.Context(), req.Assumptions)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := WriteCashFlowsCSV(&buf, result.CashFlows); err != nil {
		log.Errorf("Failed to write cash-flow CSV: %v", err)
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cashflows.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Apply handles POST /assumptions/apply
// @Summary Apply field updates to an assumption set
// @Description Applies each update in order to the given assumptions (or the base case) and validates the result
// @Tags forecast
// @Accept json
// @Produce json
// @Param request body models.ApplyRequest true "Assumptions and updates"
// @Success 200 {object} models.ApplyResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /assumptions/apply [post]
func (h *ForecastHandler) Apply(c *gin.Context) {
	var req models.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.forecastSvc.Apply(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPresets handles GET /presets
// @Summary List preset scenarios
// @Tags presets
// @Produce json
// @Success 200 {object} models.PresetListResponse
// @Router /presets [get]
func (h *ForecastHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, h.forecastSvc.ListPresets())
}

// GetPreset handles GET /presets/:id
// @Summary Get a preset scenario
// @Tags presets
// @Produce json
// @Param id path string true "Preset ID"
// @Success 200 {object} presets.Preset
// @Failure 404 {object} models.ErrorResponse
// @Router /presets/{id} [get]
func (h *ForecastHandler) GetPreset(c *gin.Context) {
	p, err := h.forecastSvc.GetPreset(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// ForecastPreset handles GET /presets/:id/forecast
// @Summary Forecast a preset scenario
// @Description Presets are used as given; fields outside the interactive ranges are reported as warnings
// @Tags presets
// @Produce json
// @Param id path string true "Preset ID"
// @Success 200 {object} models.ForecastResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /presets/{id}/forecast [get]
func (h *ForecastHandler) ForecastPreset(c *gin.Context) {
	warnCtx, wc := services.NewWarningContext(c.Request.Context())

	result, err := h.forecastSvc.ForecastPreset(warnCtx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	result.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, result)
}
