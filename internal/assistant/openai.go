package assistant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// OpenAI chat completions endpoint
// https://platform.openai.com/docs/api-reference/chat
const defaultOpenAIBaseURL = "https://api.openai.com/v1"

const (
	DefaultOpenAIModel = "gpt-4o-mini"
	openAITemperature  = 0.2
	openAIMaxTokens    = 1000
)

// OpenAIClient is an HTTP client for the OpenAI chat completions API
type OpenAIClient struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(model string) *OpenAIClient {
	return NewOpenAIClientWithBaseURL(model, defaultOpenAIBaseURL)
}

// NewOpenAIClientWithBaseURL creates a new OpenAI client with a custom base URL (for testing)
func NewOpenAIClientWithBaseURL(model, baseURL string) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends the system prompt followed by history and returns the first choice.
// An empty choice list yields NoResponse.
func (c *OpenAIClient) Complete(ctx context.Context, apiKey, systemPrompt string, history []Message) (string, error) {
	req := chatRequest{
		Model:       c.model,
		Messages:    make([]chatMessage, 0, len(history)+1),
		Temperature: openAITemperature,
		MaxTokens:   openAIMaxTokens,
	}
	req.Messages = append(req.Messages, chatMessage{Role: "system", Content: systemPrompt})
	for _, m := range history {
		req.Messages = append(req.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, apiKey, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(data, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error (%s): %s", chatResp.Error.Type, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return NoResponse, nil
	}
	return chatResp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) doRequest(ctx context.Context, apiKey string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return resp, nil
}
