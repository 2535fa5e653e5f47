package mods

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hoi-launcher/shell/pkg/bridge"
	"github.com/hoi-launcher/shell/pkg/dom"
	"github.com/hoi-launcher/shell/pkg/render"
	"github.com/hoi-launcher/shell/pkg/toast"
	"github.com/hoi-launcher/shell/pkg/vdom"
)

const (
	// ListClass marks the element whose children are the cards.
	ListClass = "mods-list"

	// ListCommand is the host command returning installed mods.
	ListCommand = "list_mods"

	// DetailID is the id of the detail overlay.
	DetailID = "mod-detail"

	// ModsDirHint is where the game keeps mod descriptors.
	ModsDirHint = `%USERPROFILE%\Documents\Paradox Interactive\Hearts of Iron IV\mod`
)

// Click targets bound by the renderer.
const (
	ActionCard        = "mod:card"
	ActionOpen        = "mod:open"
	ActionDetails     = "mod:details"
	ActionDetailOpen  = "mod-detail:open"
	ActionDetailClose = "mod-detail:close"
)

// Placeholders are shown when the host cannot list mods.
var Placeholders = []bridge.ModEntry{
	{Name: "Example mod A", Path: "", File: "example_a.mod"},
	{Name: "Example mod B", Path: "", File: "example_b.mod"},
}

// Lister returns the installed mods.
type Lister interface {
	Invoke(ctx context.Context, cmd string) ([]bridge.ModEntry, error)
}

// Renderer fills the mod list.
type Renderer struct {
	lister Lister
	html   *render.Renderer
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRenderer creates a Renderer reading from lister. A nil lister always
// yields the placeholders.
func NewRenderer(lister Lister, opts ...Option) *Renderer {
	r := &Renderer{
		lister: lister,
		html:   render.NewRenderer(render.RendererConfig{}),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch lists mods through the host, substituting the placeholders on any
// failure. placeholder reports whether the substitution happened.
func (r *Renderer) Fetch(ctx context.Context) (entries []bridge.ModEntry, placeholder bool) {
	if r.lister == nil {
		r.logger.Warn("no host bridge configured, showing placeholder mods")
		return Placeholders, true
	}
	entries, err := r.lister.Invoke(ctx, ListCommand)
	if err != nil {
		r.logger.Warn("could not list mods, showing placeholder mods", "error", err)
		return Placeholders, true
	}
	return entries, false
}

// FetchAndRender lists mods and renders them into doc.
func (r *Renderer) FetchAndRender(ctx context.Context, doc *dom.Document) error {
	entries, placeholder := r.Fetch(ctx)
	return r.render(doc, entries, placeholder)
}

// Render replaces the contents of the mod list with one card per entry, or
// with the empty-state card when entries is empty. It does nothing when the
// document has no mod list.
func (r *Renderer) Render(doc *dom.Document, entries []bridge.ModEntry) error {
	return r.render(doc, entries, false)
}

// replacer is satisfied by *dom.Document and dom.Page.
type replacer interface {
	ReplaceChildren(class, markup string) (bool, error)
}

func (r *Renderer) render(doc replacer, entries []bridge.ModEntry, placeholder bool) error {
	markup, err := r.Markup(entries, placeholder)
	if err != nil {
		return err
	}
	found, err := doc.ReplaceChildren(ListClass, markup)
	if err != nil {
		return err
	}
	if !found {
		r.logger.Debug("no mod list in document")
	}
	return nil
}

// Markup renders the cards for entries.
func (r *Renderer) Markup(entries []bridge.ModEntry, placeholder bool) (string, error) {
	if len(entries) == 0 {
		return r.html.RenderToString(emptyCard())
	}
	cards := make([]*vdom.VNode, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, card(e, placeholder))
	}
	return r.html.RenderToString(vdom.Fragment(cards))
}

func emptyCard() *vdom.VNode {
	return vdom.Div(
		vdom.Class("surface", "mods-empty"),
		vdom.Textf("No mods were found in your documents folder. Make sure .mod files exist under %s.", ModsDirHint),
	)
}

func card(e bridge.ModEntry, placeholder bool) *vdom.VNode {
	name := e.DisplayName()
	var flag vdom.Attr
	if placeholder {
		flag = vdom.Data("placeholder", "true")
	}
	return vdom.Div(
		vdom.Class("mod-item", "surface"),
		vdom.Data("name", name),
		vdom.Data("action", ActionCard),
		flag,
		vdom.Div(
			vdom.Class("mod-row"),
			vdom.Div(
				vdom.Div(vdom.Class("mod-title"), vdom.Text(name)),
				vdom.Div(vdom.Class("mod-desc"), vdom.Text("Path: "+e.DisplayPath())),
			),
			vdom.Div(
				vdom.Class("mod-actions"),
				vdom.Button(vdom.Class("btn", "btn-ghost", "open-btn"),
					vdom.Data("action", ActionOpen), vdom.Data("name", name), vdom.Text("Open")),
				vdom.Button(vdom.Class("btn"),
					vdom.Data("action", ActionDetails), vdom.Data("name", name), vdom.Text("Details")),
			),
		),
	)
}

// ShowDetail opens the detail overlay for name, replacing any overlay that
// is already open.
func (r *Renderer) ShowDetail(doc *dom.Document, name string) error {
	markup, err := r.html.RenderToString(detailOverlay(name))
	if err != nil {
		return err
	}
	doc.ShowOverlay(dom.Overlay{ID: DetailID, Markup: markup})

	doc.Bind(ActionDetailClose, func(ctx context.Context, _ string) error {
		r.closeDetail(doc)
		return nil
	})
	doc.Bind(ActionDetailOpen, func(ctx context.Context, _ string) error {
		toast.Info(doc, "Opening mod: "+name)
		r.closeDetail(doc)
		return nil
	})
	return nil
}

func (r *Renderer) closeDetail(doc *dom.Document) {
	doc.CloseOverlay(DetailID)
	doc.Unbind(ActionDetailOpen, ActionDetailClose)
}

func detailOverlay(name string) *vdom.VNode {
	return vdom.Div(
		vdom.ID(DetailID),
		vdom.Class("mod-detail-overlay"),
		vdom.Div(
			vdom.Class("mod-detail", "surface"),
			vdom.Role("dialog"),
			vdom.AriaLabel("Mod details"),
			vdom.H2(vdom.Class("page-title"), vdom.Text(name)),
			vdom.P(vdom.Class("mod-desc"), vdom.Textf("Details for %s are not available yet.", name)),
			vdom.Div(
				vdom.Class("mod-detail-actions"),
				vdom.Button(vdom.Class("btn"), vdom.ID("open-mod-btn"), vdom.Data("action", ActionDetailOpen), vdom.Text("Open mod")),
				vdom.Button(vdom.Class("btn", "btn-ghost"), vdom.ID("close-mod-btn"), vdom.Data("action", ActionDetailClose), vdom.Text("Close")),
			),
		),
	)
}

// Bind is the mods page binder: it renders the list and wires the card
// actions. If page is replaced while the host is listing mods, nothing is
// rendered or bound and dom.ErrStalePage is returned.
func (r *Renderer) Bind(ctx context.Context, page dom.Page) error {
	entries, placeholder := r.Fetch(ctx)
	if err := r.render(page, entries, placeholder); err != nil {
		return err
	}

	doc := page.Doc()
	showDetail := func(ctx context.Context, name string) error {
		return r.ShowDetail(doc, name)
	}
	return errors.Join(
		page.Bind(ActionCard, showDetail),
		page.Bind(ActionDetails, showDetail),
		page.Bind(ActionOpen, func(ctx context.Context, name string) error {
			toast.Info(doc, "Opening mod: "+name)
			return nil
		}),
	)
}
