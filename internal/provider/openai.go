package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// openaiProvider speaks the OpenAI-style chat completions wire format: a
// messages array with a system role, choices[0].message.content and a usage
// object. Both the OpenAI and Groq backends use this shape.
type openaiProvider struct {
	name       string
	baseURL    string
	apiKey     string
	quickModel string
	deepModel  string
	client     *http.Client
}

// NewOpenAIStyle creates a provider for an OpenAI-compatible endpoint.
func NewOpenAIStyle(name, baseURL, apiKey, quickModel, deepModel string) Provider {
	return &openaiProvider{
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		quickModel: quickModel,
		deepModel:  deepModel,
		client:     http.DefaultClient,
	}
}

func (p *openaiProvider) Name() string { return p.name }

func (p *openaiProvider) ModelFor(mode string) string {
	if mode == "deep" {
		return p.deepModel
	}
	return p.quickModel
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiRequest struct {
	Model     string          `json:"model"`
	Messages  []openaiMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (p *openaiProvider) Generate(ctx context.Context, req Request) (string, Usage, error) {
	if p.apiKey == "" {
		return "", Usage{}, fmt.Errorf("%s: missing API key", p.name)
	}

	payload := openaiRequest{
		Model: req.Model,
		Messages: []openaiMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens: req.MaxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", Usage{}, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var decoded openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", Usage{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(decoded.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("no choices returned")
	}
	text := decoded.Choices[0].Message.Content
	if text == "" {
		return "", Usage{}, fmt.Errorf("empty completion returned")
	}

	usage := Usage{
		PromptTokens:     decoded.Usage.PromptTokens,
		CompletionTokens: decoded.Usage.CompletionTokens,
		TotalTokens:      decoded.Usage.TotalTokens,
		Reported:         decoded.Usage.TotalTokens > 0,
	}
	return text, usage, nil
}
