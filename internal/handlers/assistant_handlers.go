package handlers

import (
	"net/http"

	"github.com/epeers/scenarios/internal/models"
	"github.com/epeers/scenarios/internal/services"
	"github.com/gin-gonic/gin"
)

// AssistantHandler handles the portfolio assistant endpoints
type AssistantHandler struct {
	assistantSvc *services.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantSvc *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantSvc: assistantSvc,
	}
}

// Context handles GET /assistant/context
// @Summary Get the portfolio context given to the assistant
// @Tags assistant
// @Produce json
// @Success 200 {object} models.AssistantContextResponse
// @Router /assistant/context [get]
func (h *AssistantHandler) Context(c *gin.Context) {
	c.JSON(http.StatusOK, h.assistantSvc.Context())
}

// Suggestions handles GET /assistant/suggestions
// @Summary List suggested questions
// @Tags assistant
// @Produce json
// @Success 200 {object} models.SuggestionsResponse
// @Router /assistant/suggestions [get]
func (h *AssistantHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, h.assistantSvc.Suggestions())
}

// Send handles POST /assistant/messages
// @Summary Ask the portfolio assistant a question
// @Description Demo mode answers from built-in rules. Live mode forwards the conversation to the selected provider with the caller's API key, which is never stored or echoed.
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body models.SendMessageRequest true "Question, prior turns, and mode"
// @Success 200 {object} models.SendMessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /assistant/messages [post]
func (h *AssistantHandler) Send(c *gin.Context) {
	var req models.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.assistantSvc.Send(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
