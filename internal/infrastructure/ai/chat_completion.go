package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

// chatCompletionProvider speaks the OpenAI chat-completions wire shape, which
// both ChatGPT and DeepSeek expose.
type chatCompletionProvider struct {
	name       string
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewChatGPT builds the OpenAI adapter.
func NewChatGPT(apiKey string, client *http.Client) ports.AIProvider {
	return &chatCompletionProvider{
		name:       "chatgpt",
		apiKey:     apiKey,
		model:      "gpt-4o-mini",
		endpoint:   "https://api.openai.com/v1/chat/completions",
		httpClient: client,
	}
}

// NewDeepSeek builds the DeepSeek adapter.
func NewDeepSeek(apiKey string, client *http.Client) ports.AIProvider {
	return &chatCompletionProvider{
		name:       "deepseek",
		apiKey:     apiKey,
		model:      "deepseek-chat",
		endpoint:   "https://api.deepseek.com/v1/chat/completions",
		httpClient: client,
	}
}

func (p *chatCompletionProvider) Name() string { return p.name }

func (p *chatCompletionProvider) IsConfigured() bool { return p.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (p *chatCompletionProvider) Query(ctx context.Context, prompt string, qctx ports.QueryContext) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("%w: %s API key not configured", domain.ErrProviderUnavailable, p.name)
	}

	var messages []chatMessage
	if qctx.ResponseStyle != "" {
		messages = append(messages, chatMessage{Role: "system", Content: qctx.ResponseStyle})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   2048,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrBackendError, p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: %s: %s", domain.ErrBackendError, p.name, resp.Status)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrBackendError, p.name, err)
	}

	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: %s: empty response", domain.ErrBackendError, p.name)
	}
	return decoded.Choices[0].Message.Content, nil
}

// applyStyle prefixes a response-style instruction for backends without a
// dedicated system-message slot.
func applyStyle(prompt string, qctx ports.QueryContext) string {
	if qctx.ResponseStyle == "" {
		return prompt
	}
	return qctx.ResponseStyle + "\n\nUser query: " + prompt
}

var _ ports.AIProvider = (*chatCompletionProvider)(nil)
