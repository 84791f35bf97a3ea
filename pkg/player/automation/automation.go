// Package automation implements player.Backend by driving the desktop Spotify
// application with OS-level window and keystroke automation.
//
// All platform knowledge lives in per-OS files (automation_linux.go,
// automation_darwin.go, automation_windows.go) as command tables; this file
// holds the shared execution logic. External tools are invoked through a
// small runner seam so tests can observe the exact command lines without
// touching the desktop.
//
// Keystroke sequences have deliberate pauses built in: the player's UI needs
// time to open the search box and populate results before Enter lands.
package automation

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/voxify/voxify/pkg/player"
)

// Compile-time interface assertion.
var _ player.Backend = (*Backend)(nil)

// runner abstracts external process execution.
type runner interface {
	// run executes a command and waits for it to finish.
	run(ctx context.Context, name string, args ...string) error

	// start launches a command without waiting (player startup).
	start(name string, args ...string) error
}

// execRunner is the real runner backed by os/exec.
type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (execRunner) start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// step is one entry of a keystroke sequence: a command to run, then a pause
// for the UI to catch up.
type step struct {
	args  []string
	pause time.Duration
}

// Option is a functional option for configuring a [Backend].
type Option func(*Backend)

// startupWait is how long EnsureRunning waits after launching the player
// before automation continues.
const startupWait = 2 * time.Second

// Backend drives the desktop player via external automation tools.
type Backend struct {
	run runner

	// startupWait is overridable in tests to avoid real sleeps.
	startupWait time.Duration
}

// New returns an automation [Backend] for the current platform.
func New(opts ...Option) *Backend {
	b := &Backend{
		run:         execRunner{},
		startupWait: startupWait,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Transport executes a transport command. Media control goes straight to the
// player daemon/shortcut; the window does not need focus first on platforms
// whose table says so.
func (b *Backend) Transport(ctx context.Context, cmd player.TransportCommand) error {
	cmds, ok := transportCommands[cmd]
	if !ok {
		return &player.OpError{Op: "transport", Err: fmt.Errorf("%w: %q", player.ErrUnsupported, cmd)}
	}
	for _, args := range cmds {
		if err := b.run.run(ctx, args[0], args[1:]...); err != nil {
			return &player.OpError{Op: "transport", Err: err}
		}
	}
	return nil
}

// EnsureRunning probes for a running player and launches one when the probe
// fails. Launch candidates are tried in order; the last resort is asking the
// OS to open a spotify: URL, which works for store-installed builds.
func (b *Backend) EnsureRunning(ctx context.Context) error {
	probe := probeCommand()
	if err := b.run.run(ctx, probe[0], probe[1:]...); err == nil {
		return nil
	}

	for _, args := range startCommands() {
		if err := b.run.start(args[0], args[1:]...); err == nil {
			b.sleep(ctx, b.startupWait)
			return nil
		}
	}
	return &player.OpError{Op: "ensureRunning", Err: player.ErrPlayerNotFound}
}

// BringToFront raises the player window.
func (b *Backend) BringToFront(ctx context.Context) error {
	args := activateCommand()
	if err := b.run.run(ctx, args[0], args[1:]...); err != nil {
		return &player.OpError{Op: "bringToFront", Err: err}
	}
	return nil
}

// OpenPlaylist opens a spotify: URI, which the running player picks up and
// starts playing.
func (b *Backend) OpenPlaylist(ctx context.Context, target string) error {
	args := openURICommand(target)
	if err := b.run.run(ctx, args[0], args[1:]...); err != nil {
		return &player.OpError{Op: "openPlaylist", Err: err}
	}
	return nil
}

// SearchAndPlay raises the window, opens the global search box, types the
// query, and hits Enter twice — once for the results page, once for the top
// hit.
func (b *Backend) SearchAndPlay(ctx context.Context, query string) error {
	if err := b.BringToFront(ctx); err != nil {
		// The window may still be starting; try to recover once.
		if err := b.EnsureRunning(ctx); err != nil {
			return err
		}
		if err := b.BringToFront(ctx); err != nil {
			return err
		}
	}
	for _, s := range searchSequence(query) {
		if err := b.run.run(ctx, s.args[0], s.args[1:]...); err != nil {
			return &player.OpError{Op: "searchAndPlay", Err: err}
		}
		b.sleep(ctx, s.pause)
	}
	return nil
}

// sleep pauses without outliving ctx.
func (b *Backend) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
