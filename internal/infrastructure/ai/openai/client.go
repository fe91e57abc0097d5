// Package openai provides the hosted chat model client built on the
// OpenAI chat completions API
package openai

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/chefwise/chefwise/internal/domain/ai"
	"github.com/chefwise/chefwise/internal/infrastructure/config"
	"github.com/chefwise/chefwise/internal/infrastructure/monitoring"
	"github.com/chefwise/chefwise/internal/ports/outbound"
	"github.com/chefwise/chefwise/pkg/errors"
)

// chatAPI is the part of *openai.Client the client uses
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client implements outbound.ModelClient using the OpenAI API
type Client struct {
	api          chatAPI
	model        string
	complexModel string
	defaults     outbound.CallOptions
	httpClient   *http.Client
	metrics      *monitoring.Metrics
	tracer       *monitoring.Tracer
	logger       *zap.Logger
}

var _ outbound.ModelClient = (*Client)(nil)

// Option is a functional option for Client
type Option func(*Client)

// WithMetrics records every call on m
func WithMetrics(m *monitoring.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracer wraps every call in a span
func WithTracer(t *monitoring.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// WithHTTPClient replaces the HTTP client built from the configured timeout
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a new OpenAI client. It fails with a configuration error
// when no API key is configured, before any request can be made.
func NewClient(cfg config.AIConfig, logger *zap.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.NewConfigurationError(
			"OpenAI API key is required",
			"Set OPENAI_API_KEY in your environment or .env file.",
		)
	}

	// cfg is validated, so a zero temperature is a deliberate choice
	defaults := outbound.DefaultCallOptions()
	defaults.Temperature = cfg.Temperature
	if cfg.MaxTokens > 0 {
		defaults.MaxTokens = cfg.MaxTokens
	}

	c := &Client{
		model:        cfg.Model,
		complexModel: cfg.ComplexModel,
		defaults:     defaults,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		logger:       logger.Named("ai-client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = c.httpClient
	c.api = openai.NewClientWithConfig(clientConfig)

	c.logger.Info("OpenAI client initialized",
		zap.String("model", c.model),
		zap.String("complex_model", c.complexModel),
	)
	return c, nil
}

// Model resolves which model a call with opts would use
func (c *Client) Model(opts outbound.CallOptions) string {
	switch {
	case opts.Model != "":
		return opts.Model
	case opts.Tier == ai.TierComplex:
		return c.complexModel
	default:
		return c.model
	}
}

// ChatCompletion sends one request and parses the reply. In JSON mode the
// reply must be a JSON object; otherwise the text is returned under
// ai.ContentKey. Errors from the API are returned unchanged.
func (c *Client) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string, opts ...outbound.CallOption) (ai.Reply, error) {
	o := c.defaults.Apply(opts...)
	model := c.Model(o)

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: float32(o.Temperature),
		MaxTokens:   o.MaxTokens,
	}
	// A zero temperature would be omitted from the request body
	if o.Temperature == 0 {
		req.Temperature = math.SmallestNonzeroFloat32
	}
	if o.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	inv := ai.Invocation{ID: uuid.NewString(), Model: model, JSONMode: o.JSONMode}
	ctx, span := c.tracer.StartModelSpan(ctx, model, o.JSONMode)
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, req)
	inv.Duration = time.Since(start)
	if err != nil {
		c.logger.Error("OpenAI API call failed", append(invocationFields(inv), zap.Error(err))...)
		c.metrics.RecordModelCall(model, monitoring.OutcomeTransportError, inv.Duration, ai.TokenUsage{})
		monitoring.EndSpan(span, err)
		return nil, err
	}

	inv.Usage = ai.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	monitoring.RecordUsage(span, inv.Usage)

	reply, err := c.parse(resp, o.JSONMode)
	if err != nil {
		c.logger.Warn("OpenAI reply could not be parsed", append(invocationFields(inv), zap.Error(err))...)
		c.metrics.RecordModelCall(model, monitoring.OutcomeFormatError, inv.Duration, inv.Usage)
		monitoring.EndSpan(span, err)
		return nil, err
	}

	c.logger.Info("OpenAI API call successful", invocationFields(inv)...)
	c.metrics.RecordModelCall(model, monitoring.OutcomeSuccess, inv.Duration, inv.Usage)
	monitoring.EndSpan(span, nil)
	return reply, nil
}

func invocationFields(inv ai.Invocation) []zap.Field {
	return []zap.Field{
		zap.String("invocation_id", inv.ID),
		zap.String("model", inv.Model),
		zap.Bool("json_mode", inv.JSONMode),
		zap.Int("prompt_tokens", inv.Usage.PromptTokens),
		zap.Int("completion_tokens", inv.Usage.CompletionTokens),
		zap.Int("total_tokens", inv.Usage.TotalTokens),
		zap.Duration("duration", inv.Duration),
	}
}

func (c *Client) parse(resp openai.ChatCompletionResponse, jsonMode bool) (ai.Reply, error) {
	if len(resp.Choices) == 0 {
		return nil, errors.NewResponseFormatError("reply contained no choices", nil)
	}
	content := resp.Choices[0].Message.Content

	if !jsonMode {
		return ai.Reply{ai.ContentKey: content}, nil
	}

	var reply ai.Reply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, errors.NewResponseFormatError("reply is not valid JSON", err)
	}
	if reply == nil {
		return nil, errors.NewResponseFormatError("reply is not a JSON object", nil)
	}
	return reply, nil
}
