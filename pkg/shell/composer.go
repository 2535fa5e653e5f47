package shell

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	lerrors "github.com/hoi-launcher/shell/internal/errors"
	"github.com/hoi-launcher/shell/pkg/dom"
	"github.com/hoi-launcher/shell/pkg/fragment"
	"github.com/hoi-launcher/shell/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Resource ids used for injected page assets.
const (
	StylesheetID = "page-css"
	ScriptID     = "page-js"
)

// ErrSuperseded is returned by LoadPage when a newer navigation started
// while the page was being fetched.
var ErrSuperseded = errors.New("shell: navigation superseded")

// Binder wires page controls after the page's content is in place. It
// works through page so that nothing it does lands once a newer navigation
// has replaced the content; such operations fail with dom.ErrStalePage.
type Binder func(ctx context.Context, page dom.Page) error

// Navigation statuses, used as metric labels.
const (
	statusOK               = "ok"
	statusFetchError       = "fetch_error"
	statusParseError       = "parse_error"
	statusMissingContainer = "missing_container"
	statusSuperseded       = "superseded"
)

// Composer swaps page fragments in and out of a document.
type Composer struct {
	doc     *dom.Document
	source  fragment.Source
	initial string
	binders map[PageID]Binder
	logger  *slog.Logger
	metrics *telemetry.Metrics

	mu  sync.Mutex
	gen uint64
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithBinder sets the binder run after page id is loaded.
func WithBinder(id PageID, b Binder) ComposerOption {
	return func(c *Composer) {
		c.binders[id] = b
	}
}

// WithComposerLogger sets the logger.
func WithComposerLogger(l *slog.Logger) ComposerOption {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithComposerMetrics records navigations.
func WithComposerMetrics(m *telemetry.Metrics) ComposerOption {
	return func(c *Composer) {
		c.metrics = m
	}
}

// NewComposer creates a Composer over doc, capturing its current main
// markup as the home view.
func NewComposer(doc *dom.Document, source fragment.Source, opts ...ComposerOption) *Composer {
	c := &Composer{
		doc:     doc,
		source:  source,
		initial: doc.MainHTML(),
		binders: make(map[PageID]Binder),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initial returns the captured home markup.
func (c *Composer) Initial() string {
	return c.initial
}

func (c *Composer) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

// LoadPage fetches and shows page id. On any fault the document is left
// untouched and the error is returned after being logged.
func (c *Composer) LoadPage(ctx context.Context, id PageID) (err error) {
	if !id.Loadable() {
		return lerrors.New(lerrors.CodeUnknownPage).WithDetailf("page %q", id)
	}

	token := c.begin()
	start := time.Now()
	status := statusOK
	path := fragment.PagePath(string(id))

	ctx, span := telemetry.StartSpan(ctx, "shell.LoadPage",
		attribute.String("launcher.page", string(id)),
		attribute.String("launcher.path", path),
	)
	defer func() {
		c.metrics.RecordNavigation(string(id), status, time.Since(start))
		telemetry.EndSpan(span, err)
	}()

	raw, err := c.source.Fetch(ctx, path)
	if err != nil {
		status = statusFetchError
		c.logger.Error("page load failed", "page", id, "path", path, "error", err)
		return err
	}

	f, err := fragment.Parse(raw)
	if err != nil {
		if errors.Is(err, fragment.ErrMissingContainer) {
			status = statusMissingContainer
			c.logger.Warn("page has no content container", "page", id, "path", path)
		} else {
			status = statusParseError
			c.logger.Error("page load failed", "page", id, "path", path, "error", err)
		}
		return err
	}

	page, ok := c.swap(token, id, f)
	if !ok {
		status = statusSuperseded
		c.logger.Debug("discarding superseded page load", "page", id)
		return superseded(id)
	}

	if b := c.binders[id]; b != nil {
		if err := b(ctx, page); err != nil {
			if errors.Is(err, dom.ErrStalePage) {
				status = statusSuperseded
				c.logger.Debug("discarding superseded page binding", "page", id)
				return superseded(id)
			}
			c.logger.Warn("page binder failed", "page", id, "error", err)
		}
	}
	return nil
}

func superseded(id PageID) error {
	return lerrors.New(lerrors.CodeSuperseded).WithDetailf("page %q", id).Wrap(ErrSuperseded)
}

// swap applies a parsed fragment if token is still the newest navigation
// and returns a handle on the new content.
func (c *Composer) swap(token uint64, id PageID, f *fragment.Fragment) (dom.Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		return dom.Page{}, false
	}

	if f.Stylesheet != "" {
		c.doc.Remove(StylesheetID)
		c.doc.Inject(dom.Resource{
			ID:   StylesheetID,
			Kind: dom.Stylesheet,
			URL:  fragment.NormalizeStylesheet(f.Stylesheet),
		})
	}
	if f.Script != "" {
		c.doc.Remove(ScriptID)
		c.doc.Inject(dom.Resource{
			ID:   ScriptID,
			Kind: dom.Script,
			URL:  fragment.NormalizeScript(f.Script),
		})
	}

	c.doc.SetHash(string(id))
	c.doc.DismissOverlay()
	c.doc.SetMainHTML(f.Container + "\n<!-- SPA: injected " + string(id) + " -->")
	return c.doc.Page(), true
}

// RestoreHome removes injected page assets, restores the home markup and
// clears the location fragment. Loads still in flight become stale.
func (c *Composer) RestoreHome() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++

	c.doc.Remove(StylesheetID)
	c.doc.Remove(ScriptID)
	c.doc.DismissOverlay()
	c.doc.SetMainHTML(c.initial)
	c.doc.SetHash("")
}
