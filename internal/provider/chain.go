package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"research-ai/internal/textutil"
)

// Attempt records one failed provider call inside a ChainError.
type Attempt struct {
	Provider string
	Model    string
	Err      error
}

// ChainError aggregates every per-provider failure when the whole chain is
// exhausted.
type ChainError struct {
	Attempts []Attempt
}

func (e *ChainError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s/%s: %v", a.Provider, a.Model, a.Err)
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}

// Chain tries an ordered list of providers sequentially. Position 0 is the
// primary; any later success is tagged RouteFallback. Providers are never
// called concurrently for the same request, which avoids double-billing and
// duplicate answers.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain creates a Chain over the given providers, in fallback order.
func NewChain(providers []Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    slog.Default(),
	}
}

// Providers returns the configured providers in chain order.
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Generate attempts each provider in order and returns the first success,
// normalized into a Response. Token counts fall back to a chars/4 estimate
// when the provider did not report usage. If every provider fails the
// returned error is a *ChainError naming each attempt.
func (c *Chain) Generate(ctx context.Context, systemPrompt, userPrompt, mode string, maxTokens int) (*Response, error) {
	if len(c.providers) == 0 {
		return nil, &ChainError{}
	}

	var attempts []Attempt
	for i, p := range c.providers {
		model := p.ModelFor(mode)
		req := Request{
			SystemPrompt: systemPrompt,
			UserPrompt:   userPrompt,
			Model:        model,
			MaxTokens:    maxTokens,
		}

		start := time.Now()
		text, usage, err := p.Generate(ctx, req)
		elapsed := time.Since(start)

		if err != nil {
			c.logger.WarnContext(ctx, "provider attempt failed",
				"provider", p.Name(), "model", model, "error", err)
			attempts = append(attempts, Attempt{Provider: p.Name(), Model: model, Err: err})
			continue
		}

		route := RoutePrimary
		if i > 0 {
			route = RouteFallback
		}

		if !usage.Reported {
			usage.PromptTokens = textutil.EstimateTokens(systemPrompt + userPrompt)
			usage.CompletionTokens = textutil.EstimateTokens(text)
			usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
		}

		c.logger.InfoContext(ctx, "generation succeeded",
			"provider", p.Name(), "model", model, "route", route,
			"total_tokens", usage.TotalTokens, "latency_ms", elapsed.Milliseconds())

		return &Response{
			Text:             text,
			Provider:         p.Name(),
			Model:            model,
			Route:            route,
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
			LatencyMs:        elapsed.Milliseconds(),
		}, nil
	}

	return nil, &ChainError{Attempts: attempts}
}
