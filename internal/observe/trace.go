package observe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for voxify spans.
const tracerName = "github.com/voxify/voxify"

// StartUtterance opens a root span covering one push-to-talk utterance, from
// key release through dispatch. Callers must End the returned span.
func StartUtterance(ctx context.Context) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "utterance")
}

// StartStage opens a child span for one pipeline stage ("stt", "classify",
// "dispatch") within an utterance.
func StartStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, stage)
}

// SetIntent annotates the current span with the classified intent kind.
func SetIntent(span trace.Span, kind string) {
	span.SetAttributes(attribute.String("intent.kind", kind))
}
