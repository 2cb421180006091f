package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAssistantUnavailable is the single condition callers see when a live completion fails
	ErrAssistantUnavailable = errors.New("assistant unavailable")
	ErrInvalidMode          = errors.New("invalid assistant mode")
	ErrEmptyConversation    = errors.New("conversation has no user message")
)

// Kind selects between a live provider and the canned demo responder
type Kind string

const (
	KindDemo Kind = "demo"
	KindLive Kind = "live"
)

// Provider names a live text-completion backend
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Mode is passed with every message; the assistant holds no ambient client state.
type Mode struct {
	Kind     Kind     `json:"kind"`
	Provider Provider `json:"provider,omitempty"`
	APIKey   string   `json:"-"`
}

// Demo returns the offline mode
func Demo() Mode {
	return Mode{Kind: KindDemo}
}

// Live returns a mode that calls provider with apiKey
func Live(provider Provider, apiKey string) Mode {
	return Mode{Kind: KindLive, Provider: provider, APIKey: apiKey}
}

// Validate checks that a live mode names a known provider and carries a key.
// An empty Kind is treated as demo.
func (m Mode) Validate() error {
	switch m.Kind {
	case KindDemo, "":
		return nil
	case KindLive:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidMode, m.Kind)
	}
	if m.Provider != ProviderOpenAI && m.Provider != ProviderGemini {
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidMode, m.Provider)
	}
	if strings.TrimSpace(m.APIKey) == "" {
		return fmt.Errorf("%w: live mode requires an API key", ErrInvalidMode)
	}
	return nil
}

// Role is the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps content with a fresh id of the form "<role>-<uuid>"
func NewMessage(role Role, content string, at time.Time) Message {
	return Message{
		ID:        string(role) + "-" + uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: at,
	}
}

// Completer is a live text-completion backend. The key travels with each call.
type Completer interface {
	Complete(ctx context.Context, apiKey, systemPrompt string, history []Message) (string, error)
}

// Assistant answers portfolio questions either from a live Completer or the demo rule table
type Assistant struct {
	snapshot   Snapshot
	demo       *DemoResponder
	completers map[Provider]Completer
	now        func() time.Time
}

// New creates an Assistant over snapshot. completers may omit providers that are not configured.
func New(snapshot Snapshot, completers map[Provider]Completer) *Assistant {
	if completers == nil {
		completers = map[Provider]Completer{}
	}
	return &Assistant{
		snapshot:   snapshot,
		demo:       NewDemoResponder(snapshot),
		completers: completers,
		now:        time.Now,
	}
}

// Snapshot returns the metrics the assistant answers from
func (a *Assistant) Snapshot() Snapshot {
	return a.snapshot
}

// Context renders the prompt prefix for the current time
func (a *Assistant) Context() string {
	return BuildPortfolioContext(a.snapshot, a.now())
}

// Reply answers the last user message in history. Live failures of any kind are
// reported as ErrAssistantUnavailable.
func (a *Assistant) Reply(ctx context.Context, mode Mode, history []Message) (Message, error) {
	if err := mode.Validate(); err != nil {
		return Message{}, err
	}
	question, ok := lastUserMessage(history)
	if !ok {
		return Message{}, ErrEmptyConversation
	}

	if mode.Kind != KindLive {
		return NewMessage(RoleAssistant, a.demo.Respond(question), a.now()), nil
	}

	completer, ok := a.completers[mode.Provider]
	if !ok {
		return Message{}, fmt.Errorf("%w: provider %s is not configured", ErrAssistantUnavailable, mode.Provider)
	}
	text, err := completer.Complete(ctx, mode.APIKey, SystemPrompt(a.Context()), history)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		text = NoResponse
	}
	return NewMessage(RoleAssistant, text, a.now()), nil
}

// NoResponse stands in for an empty completion
const NoResponse = "No response generated"

func lastUserMessage(history []Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser && strings.TrimSpace(history[i].Content) != "" {
			return history[i].Content, true
		}
	}
	return "", false
}
