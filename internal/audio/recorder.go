// Package audio captures microphone input for push-to-talk utterances.
//
// A capture runs between Begin and End. The portaudio stream is read by a
// producer goroutine into a bounded chunk queue; End stops the stream, drains
// the queue and returns the utterance as one contiguous sample buffer. When
// the queue fills up (the speaker held the key longer than the queue covers)
// the oldest audio is kept and new chunks are dropped and counted, so an
// utterance is truncated rather than growing without bound.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/voxify/voxify/internal/observe"
)

const (
	framesPerBuffer = 1024

	// defaultQueueSize bounds a single capture. 512 chunks of 1024 frames
	// is roughly 11 s at 48 kHz, far beyond any spoken command.
	defaultQueueSize = 512

	// minDuration pads very short captures with trailing silence so the
	// transcriber always gets a workable buffer.
	minDuration = 200 * time.Millisecond
)

// ErrNotRecording is returned by End when no capture is in progress.
var ErrNotRecording = errors.New("audio: not recording")

// Option configures a [Recorder].
type Option func(*Recorder)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(r *Recorder) { r.log = log }
}

// WithMetrics sets the metrics sink used to count dropped chunks.
func WithMetrics(m *observe.Metrics) Option {
	return func(r *Recorder) { r.metrics = m }
}

// WithQueueSize overrides the capture queue length, in chunks.
func WithQueueSize(n int) Option {
	return func(r *Recorder) { r.queueSize = n }
}

// Recorder records one push-to-talk utterance at a time from the default
// input device. It is not safe for concurrent Begin/End calls from multiple
// goroutines; the single event loop in internal/app is the only caller.
type Recorder struct {
	log        *slog.Logger
	metrics    *observe.Metrics
	sampleRate int
	queueSize  int

	mu        sync.Mutex
	stream    *portaudio.Stream
	buffer    []float32
	chunks    chan []float32
	done      chan struct{}
	recording bool
	dropped   int
}

// NewRecorder initializes portaudio and returns a recorder capturing mono
// audio at sampleRate. Close must be called to release the audio host.
func NewRecorder(sampleRate int, opts ...Option) (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: initialize portaudio: %w", err)
	}
	r := &Recorder{
		log:        slog.Default(),
		sampleRate: sampleRate,
		queueSize:  defaultQueueSize,
		buffer:     make([]float32, framesPerBuffer),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// SampleRate returns the capture sample rate in Hz.
func (r *Recorder) SampleRate() int { return r.sampleRate }

// Begin opens the input stream and starts capturing. A second Begin while a
// capture is already running is a no-op.
func (r *Recorder) Begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(r.sampleRate), framesPerBuffer, r.buffer)
	if err != nil {
		return fmt.Errorf("audio: open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("audio: start input stream: %w", err)
	}

	r.stream = stream
	r.chunks = make(chan []float32, r.queueSize)
	r.done = make(chan struct{})
	r.recording = true
	r.dropped = 0

	go r.captureLoop(stream, r.chunks, r.done)
	return nil
}

// captureLoop reads the stream chunk by chunk until End flips recording off.
// It owns the chunk channel and closes it on exit.
func (r *Recorder) captureLoop(stream *portaudio.Stream, chunks chan<- []float32, done chan struct{}) {
	defer close(done)
	defer close(chunks)

	for {
		r.mu.Lock()
		running := r.recording
		r.mu.Unlock()
		if !running {
			return
		}

		if err := stream.Read(); err != nil {
			r.mu.Lock()
			running = r.recording
			r.mu.Unlock()
			if !running {
				return
			}
			r.log.Warn("audio read failed, retrying", "error", err)
			time.Sleep(10 * time.Millisecond)
			continue
		}

		chunk := make([]float32, len(r.buffer))
		copy(chunk, r.buffer)

		select {
		case chunks <- chunk:
		default:
			r.mu.Lock()
			r.dropped++
			r.mu.Unlock()
			r.metrics.RecordDroppedChunk()
		}
	}
}

// End stops the capture and returns the recorded samples. Captures shorter
// than minDuration are padded with trailing silence. The returned error is
// [ErrNotRecording] when Begin was never called.
func (r *Recorder) End() ([]float32, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	r.recording = false
	stream := r.stream
	r.stream = nil
	chunks := r.chunks
	done := r.done
	r.mu.Unlock()

	// The loop notices recording=false within one buffer read.
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		r.log.Warn("capture loop did not stop in time")
	}

	if stream != nil {
		stream.Stop()
		stream.Close()
	}

	samples := make([]float32, 0, r.queueSize*framesPerBuffer)
	for chunk := range chunks {
		samples = append(samples, chunk...)
	}

	// Read the drop counter only after the loop has exited; drops between
	// the recording flag flipping and the final stream read would otherwise
	// be counted in metrics but missing from the warning.
	r.mu.Lock()
	dropped := r.dropped
	r.mu.Unlock()

	if dropped > 0 {
		r.log.Warn("capture queue overflowed, utterance truncated",
			"dropped_chunks", dropped,
			"kept_samples", len(samples))
	}

	if want := r.sampleRate * int(minDuration.Milliseconds()) / 1000; len(samples) > 0 && len(samples) < want {
		samples = append(samples, make([]float32, want-len(samples))...)
	}
	return samples, nil
}

// Close stops any in-flight capture and releases the audio host.
func (r *Recorder) Close() error {
	if _, err := r.End(); err != nil && !errors.Is(err, ErrNotRecording) {
		r.log.Warn("stopping capture on close", "error", err)
	}
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("audio: terminate portaudio: %w", err)
	}
	return nil
}
