// Package dispatch executes classified intents against a player backend.
//
// Dispatch is the error boundary of the utterance pipeline: backend failures
// are logged, counted, and converted into user-visible notices — they never
// propagate to the capture loop. The intent kind set is closed and the
// dispatcher handles every kind explicitly; an unknown kind is a programming
// error and is reported loudly rather than silently dropped.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/voxify/voxify/internal/intent"
	"github.com/voxify/voxify/internal/observe"
	"github.com/voxify/voxify/pkg/player"
)

// Notifier surfaces messages to the user. The notify package provides the
// desktop implementation; tests use a recording stub.
type Notifier interface {
	// Say shows a user-visible message. Implementations must not fail loudly;
	// a notification that cannot be delivered is logged and forgotten.
	Say(message string)
}

// Dispatcher maps intents onto backend operations.
type Dispatcher struct {
	backend  player.Backend
	notifier Notifier
	metrics  *observe.Metrics
}

// New creates a Dispatcher. metrics may be nil, in which case nothing is
// recorded (useful in tests).
func New(backend player.Backend, notifier Notifier, metrics *observe.Metrics) *Dispatcher {
	return &Dispatcher{backend: backend, notifier: notifier, metrics: metrics}
}

// Dispatch executes it against the backend. It never returns an error: every
// failure path ends in a log line plus a user notice. A single failed player
// action must never take down the capture loop.
func (d *Dispatcher) Dispatch(ctx context.Context, it intent.Intent) {
	switch it.Kind {
	case intent.KindTransport:
		d.transport(ctx, it.Arg)
	case intent.KindPlaylist:
		d.playlist(ctx, it.Arg)
	case intent.KindSong:
		d.song(ctx, it.Arg)
	case intent.KindOpen:
		d.open(ctx)
	case intent.KindSay:
		// The notifier mirrors every notice to the log itself.
		d.notifier.Say(it.Arg)
	default:
		// The kind set is closed; reaching this means a classifier bug.
		slog.Error("dispatch: unhandled intent kind", "kind", it.Kind, "arg", it.Arg)
		d.notifier.Say("Internal error: unhandled command.")
	}
}

// transport fires the transport command without requiring the player to run:
// media keys work system-wide and the remote API call fails with a clear
// no-device notice on its own.
func (d *Dispatcher) transport(ctx context.Context, arg string) {
	cmd := player.TransportCommand(arg)
	if !cmd.IsValid() {
		slog.Error("dispatch: invalid transport command", "cmd", arg)
		d.notifier.Say("Internal error: unknown transport command.")
		return
	}
	if err := d.backend.Transport(ctx, cmd); err != nil {
		d.reportFailure(ctx, "transport", err)
	}
}

func (d *Dispatcher) playlist(ctx context.Context, target string) {
	if target == "" {
		slog.Warn("dispatch: playlist intent without a target")
		d.notifier.Say("Missing playlist target — check the playlist's URI in the configuration.")
		return
	}
	if err := d.backend.EnsureRunning(ctx); err != nil {
		d.reportFailure(ctx, "ensureRunning", err)
		return
	}
	if err := d.backend.BringToFront(ctx); err != nil {
		// Not fatal for playback; log and keep going.
		slog.Warn("dispatch: bring-to-front failed", "err", err)
	}
	if err := d.backend.OpenPlaylist(ctx, target); err != nil {
		d.reportFailure(ctx, "openPlaylist", err)
	}
}

func (d *Dispatcher) song(ctx context.Context, query string) {
	if err := d.backend.EnsureRunning(ctx); err != nil {
		d.reportFailure(ctx, "ensureRunning", err)
		return
	}
	if err := d.backend.SearchAndPlay(ctx, query); err != nil {
		d.reportFailure(ctx, "searchAndPlay", err)
	}
}

func (d *Dispatcher) open(ctx context.Context) {
	if err := d.backend.EnsureRunning(ctx); err != nil {
		d.reportFailure(ctx, "ensureRunning", err)
		return
	}
	if err := d.backend.BringToFront(ctx); err != nil {
		d.reportFailure(ctx, "bringToFront", err)
	}
}

// reportFailure logs a backend error, counts it, and turns it into a notice
// keyed on the failure kind.
func (d *Dispatcher) reportFailure(ctx context.Context, op string, err error) {
	slog.Error("dispatch: backend operation failed", "op", op, "err", err)
	d.metrics.RecordDispatchError(ctx, op)
	d.notifier.Say(noticeFor(op, err))
}

// noticeFor picks the user-visible message for a backend failure. Sentinel
// error kinds get tailored wording; anything else names the failed operation.
func noticeFor(op string, err error) string {
	switch {
	case errors.Is(err, player.ErrNoActiveDevice):
		return "No active playback device. Open Spotify on any device and try again."
	case errors.Is(err, player.ErrPlayerNotFound):
		return "Spotify doesn't appear to be installed or reachable."
	case errors.Is(err, player.ErrNoResults):
		return "No results for that search."
	case errors.Is(err, player.ErrUnsupported):
		return "That command isn't supported by the current backend."
	default:
		return fmt.Sprintf("Player action %q failed: %v", op, err)
	}
}
