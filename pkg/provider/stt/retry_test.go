package stt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/voxify/voxify/pkg/provider/stt"
	"github.com/voxify/voxify/pkg/provider/stt/mock"
)

func TestRetry_PrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := &mock.Transcriber{Results: []mock.Result{{Text: "play"}}}
	relaxed := &mock.Transcriber{}
	r := stt.NewRetry(primary, relaxed)

	text, err := r.Transcribe(context.Background(), []float32{0}, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "play" {
		t.Errorf("text = %q, want %q", text, "play")
	}
	if relaxed.Calls() != 0 {
		t.Error("relaxed transcriber must not run when the primary succeeds")
	}
}

func TestRetry_PrimaryErrorFallsBack(t *testing.T) {
	t.Parallel()

	primary := &mock.Transcriber{Results: []mock.Result{{Err: errors.New("segfault-adjacent")}}}
	relaxed := &mock.Transcriber{Results: []mock.Result{{Text: "next"}}}
	r := stt.NewRetry(primary, relaxed)

	text, err := r.Transcribe(context.Background(), []float32{0}, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "next" {
		t.Errorf("text = %q, want %q", text, "next")
	}
}

func TestRetry_EmptyPrimaryRetriesOnce(t *testing.T) {
	t.Parallel()

	primary := &mock.Transcriber{Results: []mock.Result{{Text: ""}}}
	relaxed := &mock.Transcriber{Results: []mock.Result{{Text: ""}}}
	r := stt.NewRetry(primary, relaxed)

	text, err := r.Transcribe(context.Background(), []float32{0}, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty (heard nothing)", text)
	}
	if primary.Calls() != 1 || relaxed.Calls() != 1 {
		t.Errorf("calls = %d/%d, want exactly one pass each", primary.Calls(), relaxed.Calls())
	}
}

func TestRetry_BothFailReturnsFirstError(t *testing.T) {
	t.Parallel()

	first := errors.New("vad path failed")
	primary := &mock.Transcriber{Results: []mock.Result{{Err: first}}}
	relaxed := &mock.Transcriber{Results: []mock.Result{{Err: errors.New("still broken")}}}
	r := stt.NewRetry(primary, relaxed)

	_, err := r.Transcribe(context.Background(), []float32{0}, 16000)
	if !errors.Is(err, first) {
		t.Errorf("err = %v, want the primary failure", err)
	}
}
