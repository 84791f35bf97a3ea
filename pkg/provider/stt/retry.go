package stt

import (
	"context"
	"log/slog"
)

// Compile-time interface assertion.
var _ Transcriber = (*Retry)(nil)

// Retry is a [Transcriber] that tries a primary transcriber and, when it
// fails or produces an empty result, retries once against a relaxed
// configuration (typically the same model with voice-activity pre-trimming
// disabled). If both passes come up empty the utterance is reported as
// "heard nothing" — an empty string with a nil error.
type Retry struct {
	primary Transcriber
	relaxed Transcriber
}

// NewRetry creates a [Retry] around primary and relaxed. Both must be
// non-nil; pass the same value twice to retry with identical settings.
func NewRetry(primary, relaxed Transcriber) *Retry {
	return &Retry{primary: primary, relaxed: relaxed}
}

// Transcribe implements [Transcriber]. An error is returned only when both
// passes fail; a failure followed by a successful relaxed pass is logged and
// absorbed.
func (r *Retry) Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error) {
	text, err := r.primary.Transcribe(ctx, samples, sampleRate)
	if err == nil && text != "" {
		return text, nil
	}
	if err != nil {
		slog.Warn("stt: primary pass failed, retrying with relaxed configuration", "err", err)
	} else {
		slog.Debug("stt: primary pass produced no text, retrying with relaxed configuration")
	}

	text, retryErr := r.relaxed.Transcribe(ctx, samples, sampleRate)
	if retryErr != nil {
		if err != nil {
			// Both passes failed; the first cause is the interesting one.
			return "", err
		}
		return "", retryErr
	}
	return text, nil
}
