package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by [LoadFromReader] when the file leaves a field empty.
const (
	defaultSampleRate  = 48000
	defaultLanguage    = "en"
	defaultHotkey      = "f9"
	defaultRedirectURL = "http://localhost:8080/callback"
	defaultTokenCache  = ".voxify-token.json"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and
// environment overrides, and validates the result. Useful in tests where
// configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Hotkey.Key == "" {
		cfg.Hotkey.Key = defaultHotkey
	}
	if cfg.Audio.SampleRate == 0 {
		cfg.Audio.SampleRate = defaultSampleRate
	}
	if cfg.STT.Language == "" {
		cfg.STT.Language = defaultLanguage
	}
	if cfg.Backend.Name == "" {
		cfg.Backend.Name = BackendAutomation
	}
	if cfg.Backend.WebAPI.RedirectURL == "" {
		cfg.Backend.WebAPI.RedirectURL = defaultRedirectURL
	}
	if cfg.Backend.WebAPI.TokenCache == "" {
		cfg.Backend.WebAPI.TokenCache = defaultTokenCache
	}
}

// applyEnvOverrides fills credential fields the file leaves empty from the
// environment, so secrets can stay out of the config file.
func applyEnvOverrides(cfg *Config) {
	if cfg.Backend.WebAPI.ClientID == "" {
		cfg.Backend.WebAPI.ClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	}
	if cfg.Backend.WebAPI.ClientSecret == "" {
		cfg.Backend.WebAPI.ClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	}
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Audio.SampleRate != 16000 && cfg.Audio.SampleRate != 48000 {
		errs = append(errs, fmt.Errorf("audio.sample_rate %d is unsupported; valid values: 16000, 48000", cfg.Audio.SampleRate))
	}

	if cfg.STT.ModelPath == "" {
		errs = append(errs, errors.New("stt.model_path is required"))
	}

	if !cfg.Backend.Name.IsValid() {
		errs = append(errs, fmt.Errorf("backend.name %q is invalid; valid values: automation, webapi", cfg.Backend.Name))
	}
	if cfg.Backend.Name == BackendWebAPI {
		if cfg.Backend.WebAPI.ClientID == "" {
			errs = append(errs, errors.New("backend.webapi.client_id is required (or set SPOTIFY_CLIENT_ID)"))
		}
		if cfg.Backend.WebAPI.ClientSecret == "" {
			errs = append(errs, errors.New("backend.webapi.client_secret is required (or set SPOTIFY_CLIENT_SECRET)"))
		}
	}

	// Duplicate playlist label detection. Labels are the fuzzy-match
	// vocabulary; duplicates would make the tie-break meaningless.
	namesSeen := make(map[string]int, len(cfg.Playlists))
	for i, p := range cfg.Playlists {
		prefix := fmt.Sprintf("playlists[%d]", i)
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			continue
		}
		if prev, ok := namesSeen[p.Name]; ok {
			errs = append(errs, fmt.Errorf("%s.name %q is a duplicate of playlists[%d]", prefix, p.Name, prev))
		}
		namesSeen[p.Name] = i
		if p.URI == "" {
			errs = append(errs, fmt.Errorf("%s.uri is required", prefix))
		}
	}

	return errors.Join(errs...)
}
