package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/scenarios/internal/assistant"
	"github.com/epeers/scenarios/internal/models"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidMessage = errors.New("invalid message")

// AssistantService wraps the portfolio assistant with a per-call timeout and logging
type AssistantService struct {
	assistant *assistant.Assistant
	timeout   time.Duration
	now       func() time.Time
}

// NewAssistantService creates a new AssistantService
func NewAssistantService(a *assistant.Assistant, timeout time.Duration) *AssistantService {
	return &AssistantService{
		assistant: a,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Context returns the prompt prefix and the metrics behind it
func (s *AssistantService) Context() models.AssistantContextResponse {
	return models.AssistantContextResponse{
		Context:  s.assistant.Context(),
		Snapshot: s.assistant.Snapshot(),
	}
}

// Suggestions returns the quick-question catalogue
func (s *AssistantService) Suggestions() models.SuggestionsResponse {
	return models.SuggestionsResponse{Groups: assistant.QuerySuggestions()}
}

func (s *AssistantService) history(req *models.SendMessageRequest) ([]assistant.Message, assistant.Message, error) {
	history := make([]assistant.Message, 0, len(req.History)+1)
	for i, m := range req.History {
		if m.Role != assistant.RoleUser && m.Role != assistant.RoleAssistant {
			return nil, assistant.Message{}, fmt.Errorf("%w: history[%d] has unknown role %q", ErrInvalidMessage, i, m.Role)
		}
		msg := assistant.Message{ID: m.ID, Role: m.Role, Content: m.Content}
		if m.Timestamp != nil {
			msg.Timestamp = m.Timestamp.Time
		}
		history = append(history, msg)
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, assistant.Message{}, fmt.Errorf("%w: question is empty", ErrInvalidMessage)
	}
	userMsg := assistant.NewMessage(assistant.RoleUser, question, s.now())
	return append(history, userMsg), userMsg, nil
}

// Send answers req.Question given the prior conversation. Live failures surface as
// assistant.ErrAssistantUnavailable and are logged; they never panic the handler.
func (s *AssistantService) Send(ctx context.Context, req *models.SendMessageRequest) (*models.SendMessageResponse, error) {
	defer TrackTime("AssistantSend", time.Now())

	mode := req.Mode.ToMode()
	history, question, err := s.history(req)
	if err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	answer, err := s.assistant.Reply(ctx, mode, history)
	if err != nil {
		if errors.Is(err, assistant.ErrAssistantUnavailable) {
			log.WithFields(log.Fields{
				"provider": mode.Provider,
				"turns":    len(history),
			}).Errorf("Assistant request failed: %v", err)
		}
		return nil, err
	}

	html, err := assistant.RenderMarkdown(answer.Content)
	if err != nil {
		log.Warnf("Failed to render assistant reply: %v", err)
		html = ""
	}

	kind := mode.Kind
	if kind == "" {
		kind = assistant.KindDemo
	}
	return &models.SendMessageResponse{
		Question: question,
		Answer:   answer,
		HTML:     html,
		Mode:     kind,
	}, nil
}
