// Package stt defines the Transcriber interface for speech-to-text backends.
//
// Voxify transcribes one complete push-to-talk utterance at a time, so the
// interface is one-shot rather than streaming: the caller hands over the full
// sample buffer and receives the final text. The whisper subpackage provides
// the local whisper.cpp implementation; the mock subpackage provides a
// scriptable test double.
package stt

import "context"

// Transcriber converts one utterance of audio into text.
//
// Implementations must be safe for concurrent use, though the capture loop
// serializes calls in practice. An empty result with a nil error means the
// model heard nothing useful; that is an ordinary outcome, not a failure.
type Transcriber interface {
	// Transcribe runs speech recognition over samples, mono float32 PCM in
	// [-1, 1] at sampleRate Hz, and returns the recognised text with
	// surrounding whitespace trimmed.
	Transcribe(ctx context.Context, samples []float32, sampleRate int) (string, error)
}
