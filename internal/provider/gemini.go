package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// geminiProvider speaks the Google generateContent wire format: a combined
// contents array, a separate systemInstruction field and a nested
// candidates/content/parts response with usageMetadata token counts.
type geminiProvider struct {
	baseURL    string
	apiKey     string
	quickModel string
	deepModel  string
	client     *http.Client
}

// NewGemini creates a provider for a Google-style generateContent endpoint.
func NewGemini(baseURL, apiKey, quickModel, deepModel string) Provider {
	return &geminiProvider{
		baseURL:    baseURL,
		apiKey:     apiKey,
		quickModel: quickModel,
		deepModel:  deepModel,
		client:     http.DefaultClient,
	}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) ModelFor(mode string) string {
	if mode == "deep" {
		return p.deepModel
	}
	return p.quickModel
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  struct {
		MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

func (p *geminiProvider) Generate(ctx context.Context, req Request) (string, Usage, error) {
	if p.apiKey == "" {
		return "", Usage{}, fmt.Errorf("gemini: missing API key")
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: req.UserPrompt}}},
		},
	}
	if req.SystemPrompt != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemPrompt}}}
	}
	payload.GenerationConfig.MaxOutputTokens = req.MaxTokens

	body, err := json.Marshal(payload)
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", p.apiKey)

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

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", Usage{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 {
		return "", Usage{}, fmt.Errorf("no candidates returned")
	}
	parts := decoded.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", Usage{}, fmt.Errorf("candidate has no parts")
	}

	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(part.Text)
	}
	text := sb.String()
	if text == "" {
		return "", Usage{}, fmt.Errorf("empty completion returned")
	}

	total := decoded.UsageMetadata.TotalTokenCount
	if total == 0 {
		total = decoded.UsageMetadata.PromptTokenCount + decoded.UsageMetadata.CandidatesTokenCount
	}
	usage := Usage{
		PromptTokens:     decoded.UsageMetadata.PromptTokenCount,
		CompletionTokens: decoded.UsageMetadata.CandidatesTokenCount,
		TotalTokens:      total,
		Reported:         total > 0,
	}
	return text, usage, nil
}
