// Package config provides the configuration schema, loader, and backend
// registry for voxify.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// BackendName selects which player backend implementation drives playback.
type BackendName string

const (
	// BackendAutomation controls the desktop player via OS window and
	// keystroke automation.
	BackendAutomation BackendName = "automation"

	// BackendWebAPI controls playback through the Spotify Web API.
	BackendWebAPI BackendName = "webapi"
)

// IsValid reports whether b is a recognised backend name.
func (b BackendName) IsValid() bool {
	return b == BackendAutomation || b == BackendWebAPI
}

// Config is the root configuration structure for voxify. It is typically
// loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Hotkey    HotkeyConfig    `yaml:"hotkey"`
	Audio     AudioConfig     `yaml:"audio"`
	STT       STTConfig       `yaml:"stt"`
	Backend   BackendConfig   `yaml:"backend"`
	Notify    NotifyConfig    `yaml:"notify"`
	Playlists []PlaylistEntry `yaml:"playlists"`
}

// ServerConfig holds logging and observability settings.
type ServerConfig struct {
	// LogLevel controls verbosity. Default: info.
	LogLevel LogLevel `yaml:"log_level"`

	// MetricsAddr is the optional TCP address for the /metrics, /healthz and
	// /readyz endpoints (e.g. "127.0.0.1:9091"). Empty disables the listener.
	MetricsAddr string `yaml:"metrics_addr"`
}

// HotkeyConfig names the push-to-talk key.
type HotkeyConfig struct {
	// Key is the base key name (e.g. "f9", "space", "v").
	Key string `yaml:"key"`

	// Modifiers lists modifier key names held together with Key
	// (e.g. "ctrl", "shift", "alt").
	Modifiers []string `yaml:"modifiers"`
}

// AudioConfig holds capture settings.
type AudioConfig struct {
	// SampleRate is the capture sample rate in Hz. Default: 48000; the STT
	// layer decimates to 16 kHz itself.
	SampleRate int `yaml:"sample_rate"`
}

// STTConfig configures the local whisper.cpp transcriber.
type STTConfig struct {
	// ModelPath is the path to the ggml model file. Required.
	ModelPath string `yaml:"model_path"`

	// Language is the language code passed to the model. Default: "en".
	Language string `yaml:"language"`
}

// BackendConfig selects and configures the player backend.
type BackendConfig struct {
	// Name selects the backend implementation registered in the [Registry].
	Name BackendName `yaml:"name"`

	// WebAPI holds Spotify Web API credentials; required when Name is
	// "webapi".
	WebAPI WebAPIConfig `yaml:"webapi"`
}

// WebAPIConfig holds Spotify Web API settings. ClientSecret may be left
// empty in the file and supplied via the SPOTIFY_CLIENT_SECRET environment
// variable instead; the same applies to ClientID and SPOTIFY_CLIENT_ID.
type WebAPIConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// RedirectURL is the OAuth2 callback; it must match the app settings in
	// the Spotify developer dashboard. Default: http://localhost:8080/callback.
	RedirectURL string `yaml:"redirect_url"`

	// DeviceName is the preferred playback device to target. Empty means
	// "the active device, else the first one listed".
	DeviceName string `yaml:"device_name"`

	// TokenCache is the path of the cached OAuth token file.
	// Default: ".voxify-token.json".
	TokenCache string `yaml:"token_cache"`
}

// NotifyConfig controls desktop notifications.
type NotifyConfig struct {
	// Enabled turns desktop notifications on. Notices are always mirrored to
	// the log regardless.
	Enabled bool `yaml:"enabled"`
}

// PlaylistEntry maps a spoken playlist label to its opaque playback target.
// File order is preserved and is the fuzzy-match tie-break order.
type PlaylistEntry struct {
	Name string `yaml:"name"`
	URI  string `yaml:"uri"`
}
