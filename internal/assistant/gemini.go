package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient completes conversations with Google's Gemini models via the GenAI SDK
type GeminiClient struct {
	model   string
	baseURL string
}

// NewGeminiClient creates a Gemini completer for model
func NewGeminiClient(model string) *GeminiClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{model: model}
}

// NewGeminiClientWithBaseURL points the SDK at a custom endpoint (for testing)
func NewGeminiClientWithBaseURL(model, baseURL string) *GeminiClient {
	c := NewGeminiClient(model)
	c.baseURL = baseURL
	return c
}

// Complete sends history with the system prompt as the system instruction.
// The SDK client is built per call because the key is supplied by the caller.
func (c *GeminiClient) Complete(ctx context.Context, apiKey, systemPrompt string, history []Message) (string, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(openAITemperature)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}

	result, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return NoResponse, nil
	}
	return text, nil
}
