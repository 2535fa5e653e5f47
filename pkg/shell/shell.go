package shell

import (
	"context"
	"io"
	"log/slog"

	"github.com/hoi-launcher/shell/pkg/dom"
	"github.com/hoi-launcher/shell/pkg/fragment"
	"github.com/hoi-launcher/shell/pkg/mods"
	"github.com/hoi-launcher/shell/pkg/render"
	"github.com/hoi-launcher/shell/pkg/telemetry"
	"github.com/hoi-launcher/shell/pkg/theme"
)

// Navigation targets bound on the shell. They stay bound across page swaps.
const (
	NavSettings = "open-settings"
	NavMods     = "open-mods"
	NavHome     = "open-home"
)

// Config assembles a Shell.
type Config struct {
	Doc    *dom.Document
	Source fragment.Source
	Theme  *theme.Manager
	Mods   *mods.Renderer

	// Title and StyleSheets describe the page head when rendered.
	Title       string
	StyleSheets []string

	Logger  *slog.Logger
	Metrics *telemetry.Metrics
}

// Shell is the launcher front end: one document, its composer and the page
// binders.
type Shell struct {
	doc      *dom.Document
	composer *Composer
	theme    *theme.Manager
	html     *render.Renderer
	logger   *slog.Logger

	title       string
	styleSheets []string
}

// New wires a Shell. The settings page binds the theme controls and the
// mods page renders the mod list.
func New(cfg Config) *Shell {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := []ComposerOption{
		WithComposerLogger(logger),
		WithComposerMetrics(cfg.Metrics),
	}
	if cfg.Theme != nil {
		opts = append(opts, WithBinder(Settings, cfg.Theme.Bind))
	}
	if cfg.Mods != nil {
		opts = append(opts, WithBinder(Mods, cfg.Mods.Bind))
	}

	return &Shell{
		doc:         cfg.Doc,
		composer:    NewComposer(cfg.Doc, cfg.Source, opts...),
		theme:       cfg.Theme,
		html:        render.NewRenderer(render.RendererConfig{Pretty: true}),
		logger:      logger,
		title:       cfg.Title,
		styleSheets: cfg.StyleSheets,
	}
}

// Document returns the shell's document.
func (s *Shell) Document() *dom.Document { return s.doc }

// Composer returns the shell's composer.
func (s *Shell) Composer() *Composer { return s.composer }

// Start initializes the theme, binds navigation and follows a deep link in
// hash, if any. Only a deep-link load can fail.
func (s *Shell) Start(ctx context.Context, hash string) error {
	if s.theme != nil {
		s.theme.Init(ctx)
	}

	s.doc.BindShell(NavSettings, func(ctx context.Context, _ string) error {
		return s.composer.LoadPage(ctx, Settings)
	})
	s.doc.BindShell(NavMods, func(ctx context.Context, _ string) error {
		return s.composer.LoadPage(ctx, Mods)
	})
	s.doc.BindShell(NavHome, func(ctx context.Context, _ string) error {
		s.composer.RestoreHome()
		return nil
	})

	if id, ok := DeepLink(hash); ok {
		return s.composer.LoadPage(ctx, id)
	}
	return nil
}

// Navigate loads id, or restores home for Home.
func (s *Shell) Navigate(ctx context.Context, id PageID) error {
	if id == Home {
		s.composer.RestoreHome()
		return nil
	}
	return s.composer.LoadPage(ctx, id)
}

// WriteHTML renders the whole document.
func (s *Shell) WriteHTML(w io.Writer) error {
	return s.html.RenderPage(w, s.doc.PageData(s.title, s.styleSheets))
}
