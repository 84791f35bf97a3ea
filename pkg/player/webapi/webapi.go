// Package webapi implements player.Backend against the Spotify Web API.
//
// The backend needs an OAuth2-authenticated *http.Client (see auth.go for the
// one-time authorization flow and token cache). "Running" translates to
// "there is a playback device to target": EnsureRunning picks a device
// (preferred name, else the active one, else the first listed) and
// BringToFront transfers playback to it without forcing play.
package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/voxify/voxify/pkg/player"
)

// Compile-time interface assertion.
var _ player.Backend = (*Backend)(nil)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	defaultTimeout = 10 * time.Second

	// volumeStep is the percentage change for one volume-up/down command.
	volumeStep = 10

	// defaultVolume is assumed when the playback state does not report one.
	defaultVolume = 50
)

// Option is a functional option for configuring a [Backend].
type Option func(*Backend)

// WithBaseURL overrides the API base URL. Used by tests against httptest
// servers.
func WithBaseURL(u string) Option {
	return func(b *Backend) { b.baseURL = strings.TrimRight(u, "/") }
}

// WithDeviceName sets the preferred playback device to target, matched
// case-insensitively against the device list.
func WithDeviceName(name string) Option {
	return func(b *Backend) { b.deviceName = name }
}

// Backend is a Spotify Web API playback controller.
type Backend struct {
	http       *http.Client
	baseURL    string
	deviceName string
}

// New creates a [Backend] using httpClient for all requests. The client must
// attach OAuth2 credentials itself (see [NewClient]).
func New(httpClient *http.Client, opts ...Option) *Backend {
	if httpClient.Timeout == 0 {
		httpClient.Timeout = defaultTimeout
	}
	b := &Backend{
		http:    httpClient,
		baseURL: defaultBaseURL,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// ---- API payloads ----

type device struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	IsActive      bool   `json:"is_active"`
	VolumePercent *int   `json:"volume_percent"`
}

type playbackState struct {
	IsPlaying bool    `json:"is_playing"`
	Device    *device `json:"device"`
}

type searchResponse struct {
	Tracks struct {
		Items []struct {
			URI string `json:"uri"`
		} `json:"items"`
	} `json:"tracks"`
}

// ---- player.Backend ----

// Transport implements transport controls. play/pause/resume all toggle based
// on the current playback state, matching how a single play/pause media key
// behaves.
func (b *Backend) Transport(ctx context.Context, cmd player.TransportCommand) error {
	var err error
	switch cmd {
	case player.CmdPlay, player.CmdPause, player.CmdResume:
		err = b.togglePlayback(ctx)
	case player.CmdNext:
		err = b.call(ctx, http.MethodPost, "/me/player/next", nil, nil, nil)
	case player.CmdPrevious:
		err = b.call(ctx, http.MethodPost, "/me/player/previous", nil, nil, nil)
	case player.CmdVolumeUp:
		err = b.stepVolume(ctx, +volumeStep)
	case player.CmdVolumeDown:
		err = b.stepVolume(ctx, -volumeStep)
	case player.CmdMute:
		err = b.setVolume(ctx, 0)
	default:
		err = fmt.Errorf("%w: %q", player.ErrUnsupported, cmd)
	}
	if err != nil {
		return &player.OpError{Op: "transport", Err: err}
	}
	return nil
}

// EnsureRunning verifies there is at least one playback device.
func (b *Backend) EnsureRunning(ctx context.Context) error {
	if _, err := b.pickDevice(ctx); err != nil {
		return &player.OpError{Op: "ensureRunning", Err: err}
	}
	return nil
}

// BringToFront transfers playback to the chosen device without starting
// playback — the Web API equivalent of raising the window.
func (b *Backend) BringToFront(ctx context.Context) error {
	id, err := b.pickDevice(ctx)
	if err != nil {
		return &player.OpError{Op: "bringToFront", Err: err}
	}
	body := map[string]any{"device_ids": []string{id}, "play": false}
	if err := b.call(ctx, http.MethodPut, "/me/player", nil, body, nil); err != nil {
		return &player.OpError{Op: "bringToFront", Err: err}
	}
	return nil
}

// OpenPlaylist starts the playlist context from the top on the chosen device.
func (b *Backend) OpenPlaylist(ctx context.Context, target string) error {
	id, err := b.pickDevice(ctx)
	if err != nil {
		return &player.OpError{Op: "openPlaylist", Err: err}
	}
	body := map[string]any{
		"context_uri": target,
		"offset":      map[string]any{"position": 0},
		"position_ms": 0,
	}
	q := url.Values{"device_id": {id}}
	if err := b.call(ctx, http.MethodPut, "/me/player/play", q, body, nil); err != nil {
		return &player.OpError{Op: "openPlaylist", Err: err}
	}
	return nil
}

// SearchAndPlay plays the top track result for query.
func (b *Backend) SearchAndPlay(ctx context.Context, query string) error {
	id, err := b.pickDevice(ctx)
	if err != nil {
		return &player.OpError{Op: "searchAndPlay", Err: err}
	}

	q := url.Values{"q": {query}, "type": {"track"}, "limit": {"1"}}
	var res searchResponse
	if err := b.call(ctx, http.MethodGet, "/search", q, nil, &res); err != nil {
		return &player.OpError{Op: "searchAndPlay", Err: err}
	}
	if len(res.Tracks.Items) == 0 {
		return &player.OpError{Op: "searchAndPlay", Err: fmt.Errorf("%w for %q", player.ErrNoResults, query)}
	}

	body := map[string]any{
		"uris":        []string{res.Tracks.Items[0].URI},
		"position_ms": 0,
	}
	qp := url.Values{"device_id": {id}}
	if err := b.call(ctx, http.MethodPut, "/me/player/play", qp, body, nil); err != nil {
		return &player.OpError{Op: "searchAndPlay", Err: err}
	}
	return nil
}

// ---- internals ----

// pickDevice chooses the playback target: the preferred name if configured,
// else the active device, else the first listed. No devices at all maps to
// [player.ErrNoActiveDevice].
func (b *Backend) pickDevice(ctx context.Context) (string, error) {
	var res struct {
		Devices []device `json:"devices"`
	}
	if err := b.call(ctx, http.MethodGet, "/me/player/devices", nil, nil, &res); err != nil {
		return "", err
	}
	if len(res.Devices) == 0 {
		return "", player.ErrNoActiveDevice
	}
	if b.deviceName != "" {
		for _, d := range res.Devices {
			if strings.EqualFold(d.Name, b.deviceName) {
				return d.ID, nil
			}
		}
	}
	for _, d := range res.Devices {
		if d.IsActive {
			return d.ID, nil
		}
	}
	return res.Devices[0].ID, nil
}

// state fetches the current playback state. A 204 response means nothing is
// playing anywhere; that is returned as a zero state, not an error.
func (b *Backend) state(ctx context.Context) (playbackState, error) {
	var st playbackState
	err := b.call(ctx, http.MethodGet, "/me/player", nil, nil, &st)
	return st, err
}

func (b *Backend) togglePlayback(ctx context.Context) error {
	st, err := b.state(ctx)
	if err != nil {
		return err
	}
	if st.IsPlaying {
		return b.call(ctx, http.MethodPut, "/me/player/pause", nil, nil, nil)
	}
	return b.call(ctx, http.MethodPut, "/me/player/play", nil, nil, nil)
}

func (b *Backend) stepVolume(ctx context.Context, delta int) error {
	st, err := b.state(ctx)
	if err != nil {
		return err
	}
	vol := defaultVolume
	if st.Device != nil && st.Device.VolumePercent != nil {
		vol = *st.Device.VolumePercent
	}
	return b.setVolume(ctx, clampVolume(vol+delta))
}

func (b *Backend) setVolume(ctx context.Context, percent int) error {
	id, err := b.pickDevice(ctx)
	if err != nil {
		return err
	}
	q := url.Values{
		"volume_percent": {strconv.Itoa(percent)},
		"device_id":      {id},
	}
	return b.call(ctx, http.MethodPut, "/me/player/volume", q, nil, nil)
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// call performs one API request. body (when non-nil) is JSON-encoded; out
// (when non-nil) receives the decoded JSON response. 204 responses are
// treated as empty success. A 404 from the player endpoints means there is no
// active device.
func (b *Backend) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("webapi: encode body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("webapi: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("webapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/me/player"):
		return player.ErrNoActiveDevice
	case resp.StatusCode >= 400:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webapi: %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("webapi: decode %s response: %w", path, err)
	}
	return nil
}
