// Package mock provides a scriptable in-memory player.Backend for tests.
package mock

import (
	"context"
	"sync"

	"github.com/voxify/voxify/pkg/player"
)

// Compile-time interface assertion.
var _ player.Backend = (*Backend)(nil)

// Call records one backend invocation.
type Call struct {
	// Op is the operation name: "transport", "openPlaylist", "searchAndPlay",
	// "bringToFront" or "ensureRunning".
	Op string

	// Arg is the operation argument, if any.
	Arg string
}

// Backend is a mock player.Backend that records calls and returns
// preconfigured errors. The zero value is ready to use and never fails.
type Backend struct {
	mu    sync.Mutex
	calls []Call

	// Err* fields, when non-nil, are returned by the corresponding method.
	ErrTransport     error
	ErrOpenPlaylist  error
	ErrSearchAndPlay error
	ErrBringToFront  error
	ErrEnsureRunning error
}

// Calls returns a copy of all recorded invocations in order.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// Ops returns just the operation names of all recorded invocations.
func (b *Backend) Ops() []string {
	calls := b.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}

func (b *Backend) record(op, arg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, Call{Op: op, Arg: arg})
}

func (b *Backend) Transport(_ context.Context, cmd player.TransportCommand) error {
	b.record("transport", string(cmd))
	return b.ErrTransport
}

func (b *Backend) OpenPlaylist(_ context.Context, target string) error {
	b.record("openPlaylist", target)
	return b.ErrOpenPlaylist
}

func (b *Backend) SearchAndPlay(_ context.Context, query string) error {
	b.record("searchAndPlay", query)
	return b.ErrSearchAndPlay
}

func (b *Backend) BringToFront(ctx context.Context) error {
	b.record("bringToFront", "")
	return b.ErrBringToFront
}

func (b *Backend) EnsureRunning(ctx context.Context) error {
	b.record("ensureRunning", "")
	return b.ErrEnsureRunning
}
