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

type geminiProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewGemini builds the Google Gemini adapter. An empty apiKey yields an
// unconfigured provider; selection skips it and invocation reports the
// missing configuration.
func NewGemini(apiKey string, client *http.Client) ports.AIProvider {
	return &geminiProvider{
		apiKey:     apiKey,
		model:      "gemini-pro",
		endpoint:   "https://generativelanguage.googleapis.com/v1beta",
		httpClient: client,
	}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) IsConfigured() bool { return p.apiKey != "" }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Config   geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *geminiProvider) Query(ctx context.Context, prompt string, qctx ports.QueryContext) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("%w: gemini API key not configured", domain.ErrProviderUnavailable)
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: applyStyle(prompt, qctx)}}},
		},
		Config: geminiGenConfig{Temperature: 0.7, MaxOutputTokens: 2048},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.endpoint, p.model, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", domain.ErrBackendError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: gemini: %s", domain.ErrBackendError, resp.Status)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: gemini: %v", domain.ErrBackendError, err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini: empty response", domain.ErrBackendError)
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

var _ ports.AIProvider = (*geminiProvider)(nil)
