package automation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/voxify/voxify/pkg/player"
)

// fakeRunner records command invocations and fails commands whose joined
// argv contains a configured marker.
type fakeRunner struct {
	mu      sync.Mutex
	ran     []string
	started []string

	failRunContaining string
	failStart         bool
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) error {
	line := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	f.ran = append(f.ran, line)
	f.mu.Unlock()
	if f.failRunContaining != "" && strings.Contains(line, f.failRunContaining) {
		return errors.New("exit status 1")
	}
	return nil
}

func (f *fakeRunner) start(name string, args ...string) error {
	if f.failStart {
		return errors.New("executable not found")
	}
	f.mu.Lock()
	f.started = append(f.started, strings.Join(append([]string{name}, args...), " "))
	f.mu.Unlock()
	return nil
}

func newTestBackend(r *fakeRunner) *Backend {
	b := New()
	b.run = r
	b.startupWait = 0
	return b
}

func TestTransport_UnknownCommand(t *testing.T) {
	t.Parallel()

	b := newTestBackend(&fakeRunner{})
	err := b.Transport(context.Background(), player.TransportCommand("warble"))
	if !errors.Is(err, player.ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestTransport_RunsPlatformCommand(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	b := newTestBackend(r)
	if err := b.Transport(context.Background(), player.CmdNext); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.ran) == 0 {
		t.Fatal("expected a command to run")
	}
}

func TestEnsureRunning_ProbeSuccessSkipsStart(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	b := newTestBackend(r)
	if err := b.EnsureRunning(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r.started) != 0 {
		t.Errorf("player already running; nothing should be started, got %v", r.started)
	}
}

func TestEnsureRunning_AllStartsFail(t *testing.T) {
	t.Parallel()

	probe := probeCommand()
	r := &fakeRunner{failRunContaining: probe[0], failStart: true}
	b := newTestBackend(r)
	err := b.EnsureRunning(context.Background())
	if !errors.Is(err, player.ErrPlayerNotFound) {
		t.Errorf("err = %v, want ErrPlayerNotFound", err)
	}
}

func TestOpenPlaylist_PassesTarget(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	b := newTestBackend(r)
	if err := b.OpenPlaylist(context.Background(), "spotify:playlist:abc123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, line := range r.ran {
		if strings.Contains(line, "spotify:playlist:abc123") {
			found = true
		}
	}
	if !found {
		t.Errorf("no command carried the playlist URI: %v", r.ran)
	}
}

func TestSearchAndPlay_TypesQuery(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{}
	b := newTestBackend(r)
	if err := b.SearchAndPlay(context.Background(), "bohemian rhapsody"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, line := range r.ran {
		if strings.Contains(line, "bohemian rhapsody") {
			found = true
		}
	}
	if !found {
		t.Errorf("no command carried the search query: %v", r.ran)
	}
}
