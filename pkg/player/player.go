// Package player defines the Backend interface for media playback control.
//
// A Backend wraps whatever actually moves the player — OS-level window and
// keystroke automation, or the Spotify Web API — behind one capability
// interface so that intent classification and dispatch stay agnostic to the
// mechanism. Implementations live in the automation and webapi subpackages;
// test code uses the mock subpackage.
//
// All operations return explicit errors. Implementations must never panic on
// a failed player action: a rejected API call or an automation step that did
// not register is an ordinary, reportable outcome.
package player

import (
	"context"
	"errors"
	"fmt"
)

// TransportCommand is a canonical transport control keyword as produced by
// intent classification.
type TransportCommand string

const (
	CmdPlay       TransportCommand = "play"
	CmdPause      TransportCommand = "pause"
	CmdResume     TransportCommand = "resume"
	CmdNext       TransportCommand = "next"
	CmdPrevious   TransportCommand = "previous"
	CmdMute       TransportCommand = "mute"
	CmdVolumeUp   TransportCommand = "volup"
	CmdVolumeDown TransportCommand = "voldown"
)

// IsValid reports whether c is a recognised transport command.
func (c TransportCommand) IsValid() bool {
	switch c {
	case CmdPlay, CmdPause, CmdResume, CmdNext, CmdPrevious, CmdMute, CmdVolumeUp, CmdVolumeDown:
		return true
	}
	return false
}

// Failure kinds surfaced by backends. The dispatcher maps each kind to a
// distinct user-visible notice instead of swallowing everything uniformly.
var (
	// ErrNoActiveDevice means the remote API found no playback device to
	// target. The user must open the player somewhere first.
	ErrNoActiveDevice = errors.New("player: no active playback device")

	// ErrPlayerNotFound means the local player application could not be
	// located or started.
	ErrPlayerNotFound = errors.New("player: application not found")

	// ErrNoResults means a search query returned nothing playable.
	ErrNoResults = errors.New("player: no search results")

	// ErrUnsupported means the backend cannot perform the requested
	// operation (e.g. an unknown transport command).
	ErrUnsupported = errors.New("player: operation not supported")
)

// OpError wraps a failed backend operation with the operation name, so logs
// and notices can say which step of a multi-step dispatch went wrong.
type OpError struct {
	// Op is the backend operation that failed (e.g. "transport", "search").
	Op string

	// Err is the underlying cause. May wrap one of the sentinel errors above.
	Err error
}

func (e *OpError) Error() string { return fmt.Sprintf("player: %s: %v", e.Op, e.Err) }

func (e *OpError) Unwrap() error { return e.Err }

// Backend is the capability interface the dispatcher emits calls against.
//
// Implementations may block (keystroke sequences have built-in delays, API
// calls have network latency); callers serialize dispatches per utterance, so
// implementations do not need to support concurrent invocations.
type Backend interface {
	// Transport executes a transport control. It must not require the player
	// to be running first — media keys are fired regardless.
	Transport(ctx context.Context, cmd TransportCommand) error

	// OpenPlaylist starts playback of the given opaque target (a spotify:
	// URI for both built-in backends).
	OpenPlaylist(ctx context.Context, target string) error

	// SearchAndPlay searches for query and plays the top result.
	SearchAndPlay(ctx context.Context, query string) error

	// BringToFront raises the player window, or for remote backends makes a
	// playback device the active target.
	BringToFront(ctx context.Context) error

	// EnsureRunning starts the player if it is not running, or for remote
	// backends verifies a playback session exists.
	EnsureRunning(ctx context.Context) error
}
