// Package whisper implements stt.Transcriber with the whisper.cpp CGO
// bindings. The whisper.cpp static library (libwhisper.a) and headers
// (whisper.h) must be available at link time via LIBRARY_PATH and
// C_INCLUDE_PATH environment variables.
//
// The model is loaded once at startup and shared across calls; each
// Transcribe creates its own whisper context (contexts are not thread-safe,
// the model is). Input at 48 kHz is decimated to the 16 kHz the model
// expects. An energy-based silence pre-trim acts as the VAD stage; the
// Relaxed variant skips it, which is the degraded configuration the retry
// wrapper falls back to.
package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/voxify/voxify/pkg/provider/stt"
)

// Compile-time interface assertion.
var _ stt.Transcriber = (*Provider)(nil)

const (
	defaultLanguage = "en"

	// modelSampleRate is the only sample rate whisper.cpp accepts.
	modelSampleRate = 16000
)

// Option is a functional option for configuring a [Provider].
type Option func(*Provider)

// WithLanguage sets the language code for transcription (e.g., "en", "de").
// Defaults to "en".
func WithLanguage(lang string) Option {
	return func(p *Provider) { p.language = lang }
}

// WithoutVAD disables the energy-based silence pre-trim, feeding the raw
// utterance to the model. Used for the relaxed retry pass.
func WithoutVAD() Option {
	return func(p *Provider) { p.vad = false }
}

// Provider is a local whisper.cpp transcriber. Safe for concurrent use.
type Provider struct {
	model    whisperlib.Model
	owned    bool
	language string
	vad      bool
}

// New loads the whisper.cpp model from modelPath and returns a ready
// [Provider]. The caller must call Close when the provider is no longer
// needed.
func New(modelPath string, opts ...Option) (*Provider, error) {
	if modelPath == "" {
		return nil, errors.New("whisper: modelPath must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: load model %q: %w", modelPath, err)
	}

	p := &Provider{
		model:    model,
		owned:    true,
		language: defaultLanguage,
		vad:      true,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Relaxed returns a provider sharing the same loaded model but with the
// silence pre-trim disabled. Closing the relaxed copy does not release the
// model; Close the original.
func (p *Provider) Relaxed() *Provider {
	return &Provider{
		model:    p.model,
		language: p.language,
		vad:      false,
	}
}

// Close releases the whisper model if this provider owns it.
func (p *Provider) Close() error {
	if p.owned && p.model != nil {
		return p.model.Close()
	}
	return nil
}

// Transcribe implements [stt.Transcriber].
func (p *Provider) Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("whisper: context already cancelled: %w", err)
	}
	if len(samples) == 0 {
		return "", nil
	}

	pcm := Resample16k(samples, sampleRate)
	if p.vad {
		pcm = TrimSilence(pcm, modelSampleRate)
		if len(pcm) == 0 {
			return "", nil
		}
	}

	wctx, err := p.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("whisper: create context: %w", err)
	}
	if err := wctx.SetLanguage(p.language); err != nil {
		return "", fmt.Errorf("whisper: set language %q: %w", p.language, err)
	}

	if err := wctx.Process(pcm, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("whisper: read segment: %w", err)
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}
