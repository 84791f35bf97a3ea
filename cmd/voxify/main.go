// Command voxify is a push-to-talk voice remote for Spotify.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/voxify/voxify/internal/app"
	"github.com/voxify/voxify/internal/audio"
	"github.com/voxify/voxify/internal/config"
	"github.com/voxify/voxify/internal/dispatch"
	"github.com/voxify/voxify/internal/health"
	"github.com/voxify/voxify/internal/hotkey"
	"github.com/voxify/voxify/internal/intent"
	"github.com/voxify/voxify/internal/notify"
	"github.com/voxify/voxify/internal/observe"
	"github.com/voxify/voxify/pkg/player"
	"github.com/voxify/voxify/pkg/player/automation"
	"github.com/voxify/voxify/pkg/player/webapi"
	"github.com/voxify/voxify/pkg/provider/stt"
	"github.com/voxify/voxify/pkg/provider/stt/whisper"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// The hotkey event loop must own the process main thread on macOS.
	var code int
	hotkey.Run(func() { code = run() })
	os.Exit(code)
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	authorize := flag.Bool("auth", false, "run the one-time Spotify Web API authorization flow and exit")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "voxify: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "voxify: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── One-time OAuth authorization ──────────────────────────────────────────
	if *authorize {
		if err := webapi.Authorize(ctx, webAuthConfig(cfg)); err != nil {
			slog.Error("authorization failed", "err", err)
			return 1
		}
		return 0
	}

	slog.Info("voxify starting",
		"version", version,
		"config", *configPath,
		"backend", cfg.Backend.Name,
		"hotkey", cfg.Hotkey.Key,
	)

	// ── Observability ─────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "voxify",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(sctx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()
	metrics := observe.Default()

	// ── Backend registry ──────────────────────────────────────────────────────
	reg := config.NewRegistry()
	registerBuiltinBackends(ctx, reg)

	backend, err := reg.CreateBackend(cfg.Backend)
	if err != nil {
		slog.Error("failed to create player backend", "name", cfg.Backend.Name, "err", err)
		return 1
	}
	slog.Info("backend created", "name", cfg.Backend.Name)

	// ── Speech-to-text ────────────────────────────────────────────────────────
	primary, err := whisper.New(cfg.STT.ModelPath, whisper.WithLanguage(cfg.STT.Language))
	if err != nil {
		slog.Error("failed to load speech model", "path", cfg.STT.ModelPath, "err", err)
		return 1
	}
	defer primary.Close()
	transcriber := stt.NewRetry(primary, primary.Relaxed())

	// ── Capture ───────────────────────────────────────────────────────────────
	recorder, err := audio.NewRecorder(cfg.Audio.SampleRate,
		audio.WithLogger(logger),
		audio.WithMetrics(metrics),
	)
	if err != nil {
		slog.Error("failed to initialise audio capture", "err", err)
		return 1
	}
	defer recorder.Close()

	// ── Hotkey ────────────────────────────────────────────────────────────────
	listener, err := hotkey.Register(cfg.Hotkey.Key, cfg.Hotkey.Modifiers)
	if err != nil {
		slog.Error("failed to register hotkey", "key", cfg.Hotkey.Key, "err", err)
		return 1
	}
	defer listener.Unregister()
	keydown, keyup, stopEvents := listener.Events()
	defer stopEvents()

	// ── Dispatch ──────────────────────────────────────────────────────────────
	notifier := notify.New(logger, cfg.Notify.Enabled)
	dispatcher := dispatch.New(backend, notifier, metrics)

	playlists := make([]intent.Playlist, 0, len(cfg.Playlists))
	for _, p := range cfg.Playlists {
		playlists = append(playlists, intent.Playlist{Name: p.Name, URI: p.URI})
	}

	printStartupSummary(cfg)

	application := app.New(keydown, keyup, playlists,
		app.WithLogger(logger),
		app.WithMetrics(metrics),
		app.WithRecorder(recorder),
		app.WithTranscriber(transcriber),
		app.WithDispatcher(dispatcher),
	)

	// ── Run ───────────────────────────────────────────────────────────────────
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Server.MetricsAddr != "" {
		srv := metricsServer(cfg)
		g.Go(func() error {
			slog.Info("metrics listening", "addr", cfg.Server.MetricsAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(sctx)
		})
	}

	g.Go(func() error { return application.Run(gctx) })

	slog.Info("ready — hold the hotkey and speak, Ctrl+C to exit")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run error", "err", err)
		return 1
	}
	slog.Info("goodbye")
	return 0
}

// ── Backend wiring ────────────────────────────────────────────────────────────

// registerBuiltinBackends wires the backend factories that ship with voxify.
func registerBuiltinBackends(ctx context.Context, reg *config.Registry) {
	reg.RegisterBackend(config.BackendAutomation, func(_ config.BackendConfig) (player.Backend, error) {
		return automation.New(), nil
	})

	reg.RegisterBackend(config.BackendWebAPI, func(bc config.BackendConfig) (player.Backend, error) {
		client, err := webapi.NewClient(ctx, webapi.AuthConfig{
			ClientID:     bc.WebAPI.ClientID,
			ClientSecret: bc.WebAPI.ClientSecret,
			RedirectURL:  bc.WebAPI.RedirectURL,
			TokenCache:   bc.WebAPI.TokenCache,
		})
		if err != nil {
			return nil, err
		}
		return webapi.New(client, webapi.WithDeviceName(bc.WebAPI.DeviceName)), nil
	})
}

func webAuthConfig(cfg *config.Config) webapi.AuthConfig {
	return webapi.AuthConfig{
		ClientID:     cfg.Backend.WebAPI.ClientID,
		ClientSecret: cfg.Backend.WebAPI.ClientSecret,
		RedirectURL:  cfg.Backend.WebAPI.RedirectURL,
		TokenCache:   cfg.Backend.WebAPI.TokenCache,
	}
}

// ── Metrics server ────────────────────────────────────────────────────────────

func metricsServer(cfg *config.Config) *http.Server {
	checkers := []health.Checker{health.ModelFile(cfg.STT.ModelPath)}
	if cfg.Backend.Name == config.BackendWebAPI {
		checkers = append(checkers, health.TokenCache(cfg.Backend.WebAPI.TokenCache))
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	health.New(checkers...).Register(mux)

	return &http.Server{
		Addr:              cfg.Server.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║         voxify — startup summary      ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("Hotkey", hotkeyLabel(cfg.Hotkey))
	printRow("Backend", string(cfg.Backend.Name))
	printRow("Model", cfg.STT.ModelPath)
	printRow("Sample rate", fmt.Sprintf("%d Hz", cfg.Audio.SampleRate))
	printRow("Playlists", fmt.Sprintf("%d", len(cfg.Playlists)))
	if cfg.Server.MetricsAddr != "" {
		printRow("Metrics", cfg.Server.MetricsAddr)
	} else {
		printRow("Metrics", "(disabled)")
	}
	if cfg.Notify.Enabled {
		printRow("Notifications", "desktop + log")
	} else {
		printRow("Notifications", "log only")
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printRow(kind, value string) {
	if len(value) > 19 {
		value = value[:16] + "…"
	}
	fmt.Printf("║  %-13s   : %-19s ║\n", kind, value)
}

func hotkeyLabel(hc config.HotkeyConfig) string {
	label := ""
	for _, m := range hc.Modifiers {
		label += m + "+"
	}
	return label + hc.Key
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
