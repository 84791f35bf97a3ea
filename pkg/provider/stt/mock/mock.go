// Package mock provides a scriptable stt.Transcriber for tests.
package mock

import (
	"context"
	"sync"

	"github.com/voxify/voxify/pkg/provider/stt"
)

// Compile-time interface assertion.
var _ stt.Transcriber = (*Transcriber)(nil)

// Result is one scripted transcription outcome.
type Result struct {
	Text string
	Err  error
}

// Transcriber returns scripted results in order, repeating the last one once
// the script is exhausted. The zero value always returns ("", nil).
type Transcriber struct {
	mu      sync.Mutex
	Results []Result
	calls   int
}

// Calls returns how many times Transcribe has been invoked.
func (t *Transcriber) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func (t *Transcriber) Transcribe(_ context.Context, _ []float32, _ int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.calls
	t.calls++
	if len(t.Results) == 0 {
		return "", nil
	}
	if idx >= len(t.Results) {
		idx = len(t.Results) - 1
	}
	r := t.Results[idx]
	return r.Text, r.Err
}
