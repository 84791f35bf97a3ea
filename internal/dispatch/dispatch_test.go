package dispatch

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/voxify/voxify/internal/intent"
	"github.com/voxify/voxify/pkg/player"
	"github.com/voxify/voxify/pkg/player/mock"
)

// stubNotifier records every user notice.
type stubNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *stubNotifier) Say(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *stubNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}

func equalOps(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestDispatch_Transport(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{}
	d := New(backend, &stubNotifier{}, nil)

	d.Dispatch(context.Background(), intent.Transport("next"))

	calls := backend.Calls()
	if len(calls) != 1 || calls[0].Op != "transport" || calls[0].Arg != "next" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestDispatch_TransportSkipsEnsureRunning(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{}
	d := New(backend, &stubNotifier{}, nil)

	d.Dispatch(context.Background(), intent.Transport("play"))

	for _, op := range backend.Ops() {
		if op == "ensureRunning" {
			t.Error("transport dispatch must not call ensureRunning")
		}
	}
}

func TestDispatch_PlaylistOrder(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{}
	d := New(backend, &stubNotifier{}, nil)

	d.Dispatch(context.Background(), intent.Intent{Kind: intent.KindPlaylist, Arg: "spotify:playlist:abc"})

	want := []string{"ensureRunning", "bringToFront", "openPlaylist"}
	if got := backend.Ops(); !equalOps(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

func TestDispatch_PlaylistMissingTarget(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{}
	notifier := &stubNotifier{}
	d := New(backend, notifier, nil)

	d.Dispatch(context.Background(), intent.Intent{Kind: intent.KindPlaylist})

	if len(backend.Calls()) != 0 {
		t.Errorf("expected no backend calls, got %v", backend.Ops())
	}
	msgs := notifier.all()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "Missing playlist target") {
		t.Errorf("expected missing-target notice, got %v", msgs)
	}
}

func TestDispatch_Song(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{}
	d := New(backend, &stubNotifier{}, nil)

	d.Dispatch(context.Background(), intent.Intent{Kind: intent.KindSong, Arg: "bohemian rhapsody"})

	want := []string{"ensureRunning", "searchAndPlay"}
	if got := backend.Ops(); !equalOps(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
	calls := backend.Calls()
	if calls[1].Arg != "bohemian rhapsody" {
		t.Errorf("search query = %q", calls[1].Arg)
	}
}

func TestDispatch_Open(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{}
	d := New(backend, &stubNotifier{}, nil)

	d.Dispatch(context.Background(), intent.Intent{Kind: intent.KindOpen})

	want := []string{"ensureRunning", "bringToFront"}
	if got := backend.Ops(); !equalOps(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

func TestDispatch_SayDoesNotTouchBackend(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{}
	notifier := &stubNotifier{}
	d := New(backend, notifier, nil)

	d.Dispatch(context.Background(), intent.Say("Unrecognized command."))

	if len(backend.Calls()) != 0 {
		t.Errorf("expected no backend calls, got %v", backend.Ops())
	}
	msgs := notifier.all()
	if len(msgs) != 1 || msgs[0] != "Unrecognized command." {
		t.Errorf("notices = %v", msgs)
	}
}

func TestDispatch_NoDeviceNotice(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{ErrEnsureRunning: player.ErrNoActiveDevice}
	notifier := &stubNotifier{}
	d := New(backend, notifier, nil)

	d.Dispatch(context.Background(), intent.Intent{Kind: intent.KindSong, Arg: "some song"})

	msgs := notifier.all()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "No active playback device") {
		t.Errorf("expected no-device notice, got %v", msgs)
	}
	// The search must not run after ensureRunning failed.
	want := []string{"ensureRunning"}
	if got := backend.Ops(); !equalOps(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

func TestDispatch_BringToFrontFailureIsNotFatalForPlaylist(t *testing.T) {
	t.Parallel()

	backend := &mock.Backend{ErrBringToFront: player.ErrPlayerNotFound}
	d := New(backend, &stubNotifier{}, nil)

	d.Dispatch(context.Background(), intent.Intent{Kind: intent.KindPlaylist, Arg: "spotify:playlist:abc"})

	want := []string{"ensureRunning", "bringToFront", "openPlaylist"}
	if got := backend.Ops(); !equalOps(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}
