package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/scenarios/internal/assistant"
	"github.com/epeers/scenarios/internal/forecast"
	"github.com/epeers/scenarios/internal/models"
	"github.com/epeers/scenarios/internal/scenario"
	"github.com/epeers/scenarios/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps service errors onto the API error envelope
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, forecast.ErrInvalidAssumption):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_assumption",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrInvalidScenario),
		errors.Is(err, services.ErrInvalidMessage),
		errors.Is(err, assistant.ErrInvalidMode),
		errors.Is(err, assistant.ErrEmptyConversation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
	case errors.Is(err, scenario.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "session_not_found",
			Message: "session not found or expired",
		})
	case errors.Is(err, services.ErrPresetNotFound), errors.Is(err, scenario.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, assistant.ErrAssistantUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "assistant_unavailable",
			Message: "Failed to get AI response. Please check your API key and try again.",
		})
	default:
		log.Errorf("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// bindJSON binds the request body into obj, writing the 400 response on failure.
// Assumption sets with missing fields are reported like any other invalid assumption.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, forecast.ErrInvalidAssumption) {
			respondError(c, err)
		} else {
			badRequest(c, err.Error())
		}
		return false
	}
	return true
}
