package outbound

import (
	"context"

	"github.com/chefwise/chefwise/internal/domain/ai"
)

// ModelClient sends one system/user prompt pair to a hosted chat model and
// returns the parsed reply. Implementations issue exactly one request per
// call and do not retry.
type ModelClient interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string, opts ...CallOption) (ai.Reply, error)
}

// CallOptions tune a single ChatCompletion call
type CallOptions struct {
	// Model overrides tier selection when non-empty
	Model       string
	Tier        ai.ModelTier
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// CallOption mutates CallOptions
type CallOption func(*CallOptions)

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4000
)

// DefaultCallOptions returns the options used when a caller passes none
func DefaultCallOptions() CallOptions {
	return CallOptions{
		Tier:        ai.TierDefault,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		JSONMode:    true,
	}
}

// Apply returns a copy of o with opts applied in order
func (o CallOptions) Apply(opts ...CallOption) CallOptions {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithModel pins the call to a specific model identifier
func WithModel(model string) CallOption {
	return func(o *CallOptions) { o.Model = model }
}

// WithComplexModel selects the more capable configured model
func WithComplexModel() CallOption {
	return func(o *CallOptions) { o.Tier = ai.TierComplex }
}

// WithTier selects a model tier
func WithTier(tier ai.ModelTier) CallOption {
	return func(o *CallOptions) { o.Tier = tier }
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) CallOption {
	return func(o *CallOptions) { o.Temperature = t }
}

// WithMaxTokens caps the completion length
func WithMaxTokens(n int) CallOption {
	return func(o *CallOptions) { o.MaxTokens = n }
}

// WithJSONMode toggles strict JSON output
func WithJSONMode(enabled bool) CallOption {
	return func(o *CallOptions) { o.JSONMode = enabled }
}
