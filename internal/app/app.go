// Package app wires the voxify subsystems into the push-to-talk event loop.
//
// The loop is strictly sequential: keydown starts a capture, keyup stops it
// and runs the utterance through transcription, classification and dispatch.
// Hotkey events that arrive while an utterance is still being processed are
// dropped, never queued — a stale "play" firing seconds later would be worse
// than ignoring the press.
//
// For testing, inject doubles via functional options (WithRecorder,
// WithTranscriber, etc.).
package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/voxify/voxify/internal/dispatch"
	"github.com/voxify/voxify/internal/intent"
	"github.com/voxify/voxify/internal/observe"
)

// Recorder captures one push-to-talk utterance at a time.
// *audio.Recorder is the production implementation.
type Recorder interface {
	Begin() error
	End() ([]float32, error)
	SampleRate() int
}

// Transcriber converts a recorded utterance to text. Implemented by
// stt.Transcriber; restated here so tests need no provider import.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error)
}

// Dispatcher executes a classified intent. *dispatch.Dispatcher is the
// production implementation.
type Dispatcher interface {
	Dispatch(ctx context.Context, it intent.Intent)
}

// App owns the event loop connecting hotkey, recorder, transcriber and
// dispatcher.
type App struct {
	log       *slog.Logger
	metrics   *observe.Metrics
	playlists []intent.Playlist

	keydown <-chan struct{}
	keyup   <-chan struct{}

	rec        Recorder
	transcribe Transcriber
	dispatcher Dispatcher
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithMetrics sets the metrics sink. Defaults to observe.Default().
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithRecorder injects the capture implementation.
func WithRecorder(r Recorder) Option {
	return func(a *App) { a.rec = r }
}

// WithTranscriber injects the speech-to-text implementation.
func WithTranscriber(t Transcriber) Option {
	return func(a *App) { a.transcribe = t }
}

// WithDispatcher injects the intent dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(a *App) { a.dispatcher = d }
}

// New assembles the event loop. keydown and keyup deliver push-to-talk
// events (see hotkey.Listener.Events); playlists is the ordered library used
// for classification.
func New(keydown, keyup <-chan struct{}, playlists []intent.Playlist, opts ...Option) *App {
	a := &App{
		log:       slog.Default(),
		metrics:   observe.Default(),
		playlists: playlists,
		keydown:   keydown,
		keyup:     keyup,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run executes the event loop until ctx is cancelled. It returns ctx.Err().
func (a *App) Run(ctx context.Context) error {
	a.log.Info("listening for push-to-talk events")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.keydown:
			if err := a.rec.Begin(); err != nil {
				a.log.Error("starting capture", "error", err)
			}
		case <-a.keyup:
			a.handleUtterance(ctx)
			a.drainStale()
		}
	}
}

// handleUtterance runs one utterance through the pipeline: stop the capture,
// transcribe, classify, dispatch. Failures end the utterance with a log line;
// the loop itself never stops.
func (a *App) handleUtterance(ctx context.Context) {
	samples, err := a.rec.End()
	if err != nil {
		a.log.Warn("stopping capture", "error", err)
		return
	}
	if len(samples) == 0 {
		a.log.Debug("empty capture, skipping")
		a.countUtterance(ctx, "empty")
		return
	}

	ctx, span := observe.StartUtterance(ctx)
	defer span.End()
	span.SetAttributes(attribute.Int("audio.samples", len(samples)))

	text, ok := a.transcribeStage(ctx, samples)
	if !ok {
		return
	}
	if text == "" {
		a.log.Info("heard nothing")
		a.countUtterance(ctx, "empty")
		return
	}
	a.log.Info("transcribed", "text", text)

	it := intent.Classify(text, a.playlists)
	a.metrics.RecordIntent(ctx, string(it.Kind))
	observe.SetIntent(span, string(it.Kind))

	dispatchCtx, dispatchSpan := observe.StartStage(ctx, "dispatch")
	start := time.Now()
	a.dispatcher.Dispatch(dispatchCtx, it)
	dispatchSpan.End()
	if a.metrics != nil && a.metrics.DispatchDuration != nil {
		a.metrics.DispatchDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(attribute.String("kind", string(it.Kind))))
	}
	a.countUtterance(ctx, "dispatched")
}

func (a *App) transcribeStage(ctx context.Context, samples []float32) (string, bool) {
	ctx, span := observe.StartStage(ctx, "stt")
	defer span.End()

	start := time.Now()
	text, err := a.transcribe.Transcribe(ctx, samples, a.rec.SampleRate())
	if a.metrics != nil && a.metrics.STTDuration != nil {
		a.metrics.STTDuration.Record(ctx, time.Since(start).Seconds())
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		a.log.Error("transcription failed", "error", err)
		a.countUtterance(ctx, "stt_failed")
		return "", false
	}
	return text, true
}

// drainStale discards hotkey events that piled up while the pipeline was
// busy, so a key pressed during dispatch does not trigger a ghost capture.
func (a *App) drainStale() {
	for {
		select {
		case <-a.keydown:
		case <-a.keyup:
		default:
			return
		}
	}
}

func (a *App) countUtterance(ctx context.Context, outcome string) {
	if a.metrics == nil || a.metrics.Utterances == nil {
		return
	}
	a.metrics.Utterances.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// interface checks against the production implementations live in main, where
// the concrete types are constructed.
var _ Dispatcher = (*dispatch.Dispatcher)(nil)
