package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/epeers/scenarios/internal/middleware"
	"github.com/epeers/scenarios/internal/models"
	"github.com/epeers/scenarios/internal/services"
	"github.com/gin-gonic/gin"
)

// maxImportBytes caps the size of an uploaded scenario CSV
const maxImportBytes = 1 << 20

// ScenarioHandler handles session and saved-scenario endpoints
type ScenarioHandler struct {
	scenarioSvc *services.ScenarioService
}

// NewScenarioHandler creates a new ScenarioHandler
func NewScenarioHandler(scenarioSvc *services.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{
		scenarioSvc: scenarioSvc,
	}
}

// sessionID returns the caller's session after refreshing its idle timer.
// Writes the error response and returns false when the session is missing or expired.
func (h *ScenarioHandler) sessionID(c *gin.Context) (string, bool) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "session_required",
			Message: middleware.SessionHeader + " header is required",
		})
		return "", false
	}
	if _, err := h.scenarioSvc.TouchSession(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return "", false
	}
	return sessionID, true
}

// StartSession handles POST /sessions
// @Summary Start a scenario session
// @Description Saved scenarios live only as long as the session. Send the returned id as X-Session-ID.
// @Tags sessions
// @Produce json
// @Success 201 {object} scenario.Session
// @Failure 500 {object} models.ErrorResponse
// @Router /sessions [post]
func (h *ScenarioHandler) StartSession(c *gin.Context) {
	session, err := h.scenarioSvc.StartSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// EndSession handles DELETE /sessions
// @Summary End a scenario session
// @Description Discards the session and every scenario saved in it
// @Tags sessions
// @Param X-Session-ID header string true "Session ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions [delete]
func (h *ScenarioHandler) EndSession(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)
	if err := h.scenarioSvc.EndSession(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List handles GET /scenarios
// @Summary List saved scenarios
// @Tags scenarios
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Success 200 {object} models.ScenarioListResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios [get]
func (h *ScenarioHandler) List(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	records, err := h.scenarioSvc.List(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ScenarioListResponse{
		SessionID: sessionID,
		Scenarios: records,
	})
}

// Save handles POST /scenarios
// @Summary Save a named scenario
// @Description Saves either explicit assumptions (validated) or a copy of a preset
// @Tags scenarios
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param request body models.SaveScenarioRequest true "Scenario to save"
// @Success 201 {object} models.SaveScenarioResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios [post]
func (h *ScenarioHandler) Save(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req models.SaveScenarioRequest
	if !bindJSON(c, &req) {
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	rec, err := h.scenarioSvc.Save(warnCtx, sessionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SaveScenarioResponse{
		Scenario: *rec,
		Warnings: wc.GetWarnings(),
	})
}

// Get handles GET /scenarios/:id
// @Summary Get a saved scenario
// @Tags scenarios
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param id path string true "Scenario ID"
// @Success 200 {object} scenario.Record
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/{id} [get]
func (h *ScenarioHandler) Get(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	rec, err := h.scenarioSvc.Get(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Delete handles DELETE /scenarios/:id
// @Summary Delete a saved scenario
// @Tags scenarios
// @Param X-Session-ID header string true "Session ID"
// @Param id path string true "Scenario ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/{id} [delete]
func (h *ScenarioHandler) Delete(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.scenarioSvc.Delete(c.Request.Context(), sessionID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// importReader returns the uploaded CSV: a multipart "file" field or the raw request body
func importReader(c *gin.Context) (io.ReadCloser, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, err
		}
		return fh.Open()
	}
	return c.Request.Body, nil
}

// Import handles POST /scenarios/import
// @Summary Import scenarios from CSV
// @Description Requires a name column; any assumption field may be a column and blank cells keep the base-case value. Rows are validated together and nothing is saved if any row is invalid.
// @Tags scenarios
// @Accept text/csv
// @Accept multipart/form-data
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param file formData file false "Scenario CSV"
// @Success 201 {object} models.ImportScenariosResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/import [post]
func (h *ScenarioHandler) Import(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	body, err := importReader(c)
	if err != nil {
		badRequest(c, "a CSV file is required: "+err.Error())
		return
	}
	defer body.Close()

	rows, skipped, err := ParseScenariosCSV(body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(rows) == 0 {
		badRequest(c, "CSV contains no named scenarios")
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	imported, err := h.scenarioSvc.Import(warnCtx, sessionID, rows, skipped)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ImportScenariosResponse{
		Imported: imported,
		Warnings: wc.GetWarnings(),
	})
}

// Compare handles POST /scenarios/compare
// @Summary Compare the current assumptions with saved scenarios
// @Description Returns one row per scenario with IRR, 5-year NAV, and volatility, plus best-performance, highest-NAV, and most-conservative highlights
// @Tags scenarios
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Session ID"
// @Param request body models.CompareRequest false "Current assumptions and optional scenario ids"
// @Success 200 {object} models.CompareResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /scenarios/compare [post]
func (h *ScenarioHandler) Compare(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req models.CompareRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	result, err := h.scenarioSvc.Compare(warnCtx, sessionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Comparison: *result,
		Warnings:   wc.GetWarnings(),
	})
}
