// Package observe provides observability primitives for voxify: OpenTelemetry
// metrics with a Prometheus exporter bridge, and a tracer for per-utterance
// spans.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A package-level
// default [Metrics] instance ([Default]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all voxify metrics.
const meterName = "github.com/voxify/voxify"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// Utterances counts completed push-to-talk utterances. Use with
	// attribute.String("outcome", ...): "dispatched", "empty", "stt_failed".
	Utterances metric.Int64Counter

	// STTDuration tracks speech-to-text transcription latency in seconds.
	STTDuration metric.Float64Histogram

	// Intents counts classified intents. Use with
	// attribute.String("kind", ...).
	Intents metric.Int64Counter

	// DispatchDuration tracks end-to-end dispatch latency in seconds. Use
	// with attribute.String("kind", ...).
	DispatchDuration metric.Float64Histogram

	// DispatchErrors counts backend failures during dispatch. Use with
	// attribute.String("op", ...).
	DispatchErrors metric.Int64Counter

	// DroppedChunks counts audio chunks dropped because the capture queue
	// was full. A nonzero rate means the consumer is stalling.
	DroppedChunks metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// local inference and single API round-trips.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Utterances, err = m.Int64Counter("voxify.utterances",
		metric.WithDescription("Completed push-to-talk utterances."),
	); err != nil {
		return nil, err
	}

	if met.STTDuration, err = m.Float64Histogram("voxify.stt.duration",
		metric.WithDescription("Latency of speech-to-text transcription."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Intents, err = m.Int64Counter("voxify.intents",
		metric.WithDescription("Classified intents by kind."),
	); err != nil {
		return nil, err
	}

	if met.DispatchDuration, err = m.Float64Histogram("voxify.dispatch.duration",
		metric.WithDescription("Latency of intent dispatch."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.DispatchErrors, err = m.Int64Counter("voxify.dispatch.errors",
		metric.WithDescription("Backend failures during dispatch."),
	); err != nil {
		return nil, err
	}

	if met.DroppedChunks, err = m.Int64Counter("voxify.audio.dropped_chunks",
		metric.WithDescription("Audio chunks dropped due to a full capture queue."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide [Metrics] built from the global OTel meter
// provider. The first call creates the instruments; construction errors are
// ignored because the no-op provider never fails.
func Default() *Metrics {
	defaultOnce.Do(func() {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			m = &Metrics{}
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// RecordIntent increments the intent counter for kind. Nil-safe so tests can
// run dispatch code without constructing instruments.
func (m *Metrics) RecordIntent(ctx context.Context, kind string) {
	if m == nil || m.Intents == nil {
		return
	}
	m.Intents.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordDispatchError increments the dispatch error counter for op.
func (m *Metrics) RecordDispatchError(ctx context.Context, op string) {
	if m == nil || m.DispatchErrors == nil {
		return
	}
	m.DispatchErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// RecordDroppedChunk counts one audio chunk dropped by the capture queue.
func (m *Metrics) RecordDroppedChunk() {
	if m == nil || m.DroppedChunks == nil {
		return
	}
	m.DroppedChunks.Add(context.Background(), 1)
}
