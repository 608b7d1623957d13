// Package provider implements the multi-backend generation layer: one HTTP
// JSON client per LLM provider, each normalizing its own wire format into a
// shared Response shape, and a sequential fallback Chain over an ordered
// provider list.
package provider

import "context"

// Route records whether the first-configured provider answered.
const (
	RoutePrimary  = "primary"
	RouteFallback = "fallback"
)

// Request is a single generation attempt against one provider.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Model        string
	MaxTokens    int
}

// Usage is the token accounting a provider reports. Reported is false when
// the provider omitted usage and the chain should estimate instead.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Reported         bool
}

// Response is the normalized result of a successful chain call.
type Response struct {
	Text             string
	Provider         string
	Model            string
	Route            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	LatencyMs        int64
}

// Provider is one LLM backend. Implementations validate their own wire
// format and never let unchecked JSON fields escape.
type Provider interface {
	// Name identifies the provider in telemetry and errors.
	Name() string
	// ModelFor returns the provider's model identifier for a query mode
	// ("quick" or "deep").
	ModelFor(mode string) string
	// Generate performs one completion call. A missing credential is an
	// immediate error, not a panic or a silent retry.
	Generate(ctx context.Context, req Request) (string, Usage, error)
}
