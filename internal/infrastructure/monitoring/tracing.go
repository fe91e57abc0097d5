package monitoring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/chefwise/chefwise/internal/domain/ai"
)

const instrumentationName = "github.com/chefwise/chefwise"

// Tracer starts spans around model calls and units of work. Spans go to
// whatever provider is installed; with none installed they are dropped.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer from provider, or from the global provider
// when provider is nil
func NewTracer(provider trace.TracerProvider) *Tracer {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracer{tracer: provider.Tracer(instrumentationName)}
}

// StartModelSpan starts a span for one chat completion
func (t *Tracer) StartModelSpan(ctx context.Context, model string, jsonMode bool) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return t.tracer.Start(ctx, "chat.completion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("ai.model", model),
			attribute.Bool("ai.json_mode", jsonMode),
		),
	)
}

// StartUnitOfWorkSpan starts a span covering one database transaction
func (t *Tracer) StartUnitOfWorkSpan(ctx context.Context) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return t.tracer.Start(ctx, "db.unit_of_work", trace.WithSpanKind(trace.SpanKindInternal))
}

// RecordUsage adds token counts to span
func RecordUsage(span trace.Span, usage ai.TokenUsage) {
	span.SetAttributes(
		attribute.Int("ai.usage.prompt_tokens", usage.PromptTokens),
		attribute.Int("ai.usage.completion_tokens", usage.CompletionTokens),
		attribute.Int("ai.usage.total_tokens", usage.TotalTokens),
	)
}

// EndSpan marks span failed when err is non-nil and ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
