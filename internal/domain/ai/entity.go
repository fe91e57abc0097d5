// Package ai defines the domain vocabulary shared by the model client and
// the assistant use cases.
package ai

import "time"

// ModelTier selects which configured model serves a call
type ModelTier string

const (
	// TierDefault is the everyday model, used unless a caller asks otherwise
	TierDefault ModelTier = "default"
	// TierComplex is the more capable model for harder tasks
	TierComplex ModelTier = "complex"
)

// TokenUsage tracks token consumption for one invocation
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Invocation summarizes a model call for logs. ID correlates the log lines
// of one call.
type Invocation struct {
	ID       string
	Model    string
	JSONMode bool
	Usage    TokenUsage
	Duration time.Duration
}
