package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hoi-launcher/shell/internal/config"
	"github.com/hoi-launcher/shell/pkg/bridge"
	"github.com/hoi-launcher/shell/pkg/fragment"
	"github.com/hoi-launcher/shell/pkg/host"
	"github.com/hoi-launcher/shell/pkg/mods"
	"github.com/hoi-launcher/shell/pkg/pref"
	"github.com/hoi-launcher/shell/pkg/server"
	"github.com/hoi-launcher/shell/pkg/shell"
	"github.com/hoi-launcher/shell/pkg/telemetry"
	"github.com/hoi-launcher/shell/pkg/theme"
	"github.com/hoi-launcher/shell/web"
)

// loadConfig reads the config in dir, falling back to defaults when no
// file exists, and applies the environment.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.New()
	} else if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func openStore(ctx context.Context, cfg *config.Config) (pref.Store, io.Closer, error) {
	if cfg.Store.Driver == config.DriverMemory {
		return pref.NewMemoryStore(), nil, nil
	}
	s, err := pref.OpenSQLite(ctx, cfg.StorePath())
	if err != nil {
		return nil, nil, err
	}
	return s, s, nil
}

// newSource returns the fragment source and the file system holding
// index.html for the configured page origin. Remote origins keep the
// bundled index.
func newSource(cfg *config.Config) (fragment.Source, fs.FS, error) {
	switch cfg.Pages.Source {
	case config.SourceDir:
		root := os.DirFS(cfg.PagesDir())
		return fragment.NewFSSource(root), root, nil
	case config.SourceHTTP:
		src, err := fragment.NewHTTPSource(cfg.Pages.BaseURL, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			return nil, nil, err
		}
		return src, web.Static(), nil
	case config.SourceS3:
		s3cfg := cfg.Pages.S3
		return fragment.NewS3Source(fragment.NewS3Client(s3cfg), s3cfg.Bucket, s3cfg.Prefix), web.Static(), nil
	default:
		return fragment.NewFSSource(web.Static()), web.Static(), nil
	}
}

// app is the assembled launcher.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *telemetry.Metrics
	store    pref.Store
	source   fragment.Source
	index    fs.FS
	lazy     *host.Lazy
	bridge   *bridge.Bridge
	theme    *theme.Manager
	shell    *shell.Shell

	closers []io.Closer
}

// appOption adjusts assembly, mostly for tests.
type appOption func(*appDeps)

type appDeps struct {
	system theme.System
}

func withSystem(s theme.System) appOption {
	return func(d *appDeps) {
		d.system = s
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...appOption) (*app, error) {
	deps := appDeps{system: theme.DetectSystem(cfg.PollInterval())}
	for _, opt := range opts {
		opt(&deps)
	}

	a := &app{cfg: cfg, logger: logger}

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.metrics = telemetry.NewMetrics(
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithRegistry(a.registry),
		)
	}

	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.store = store
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	if a.source, a.index, err = newSource(cfg); err != nil {
		_ = a.Close()
		return nil, err
	}
	layout, err := web.LoadLayout(a.index)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.lazy = host.NewLazy(cfg.HostURL(), host.WithClientLogger(logger))
	a.closers = append(a.closers, a.lazy)
	env := bridge.Env{Import: a.lazy.Load}
	if cfg.Host.GlobalURL != "" {
		global := host.NewLazy(cfg.Host.GlobalURL, host.WithClientLogger(logger))
		a.closers = append(a.closers, global)
		env.Global = global
	}
	if dir := cfg.ModsDir(); dir != "" {
		env.Fallback = mods.DirFallback(os.DirFS(dir))
	}
	a.bridge = bridge.New(env,
		bridge.WithLogger(logger),
		bridge.WithMetrics(a.metrics),
	)

	doc := layout.NewDocument()
	a.theme = theme.NewManager(nil, doc,
		theme.WithStore(store),
		theme.WithHost(a.bridge),
		theme.WithSystem(deps.system),
		theme.WithLogger(logger),
		theme.WithMetrics(a.metrics),
	)

	title := layout.Title
	if cfg.Name != "" {
		title = cfg.Name
	}
	a.shell = shell.New(shell.Config{
		Doc:         doc,
		Source:      a.source,
		Theme:       a.theme,
		Mods:        mods.NewRenderer(a.bridge, mods.WithLogger(logger)),
		Title:       title,
		StyleSheets: layout.StyleSheets,
		Logger:      logger,
		Metrics:     a.metrics,
	})
	return a, nil
}

// devHost returns the development host when no external host is
// configured.
func (a *app) devHost() *host.Server {
	if a.cfg.Host.URL != "" {
		return nil
	}
	return newDevHost(a.cfg, a.logger)
}

func newDevHost(cfg *config.Config, logger *slog.Logger) *host.Server {
	shape, _ := host.ParseShape(cfg.Host.Shape)
	return host.NewServer(cfg.Host.Catalog,
		host.WithShape(shape),
		host.WithServerLogger(logger),
		host.WithThemeHandler(func(dark bool) {
			logger.Info("host theme changed", "dark", dark)
		}),
	)
}

// server builds the HTTP front end.
func (a *app) server() *server.Server {
	var assets http.Handler
	if _, ok := a.source.(*fragment.FSSource); ok {
		assets = server.FileAssets(a.index)
	} else {
		assets = server.SourceAssets(a.source)
	}

	cfg := server.Config{
		Shell:   a.shell,
		Assets:  assets,
		Metrics: a.metrics,
		Logger:  a.logger,
	}
	if h := a.devHost(); h != nil {
		cfg.Host = h
	}
	if a.registry != nil {
		cfg.Gatherer = a.registry
	}
	return server.New(cfg)
}

// Close releases the store and the host connection.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
