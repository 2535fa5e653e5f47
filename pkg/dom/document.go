package dom

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/hoi-launcher/shell/pkg/render"
	"github.com/hoi-launcher/shell/pkg/vdom"
	"golang.org/x/net/html"
)

// MainContentID is the id of the main content region.
const MainContentID = "main-content"

// ErrNoHandler is returned by Click when nothing is bound to the target.
var ErrNoHandler = errors.New("dom: no handler bound")

// ErrStalePage is returned by Page operations once the main region the
// page was taken from has been replaced.
var ErrStalePage = errors.New("dom: page replaced")

// Handler reacts to a click. arg carries the data-name of the clicked
// element, or "" when the target has none.
type Handler func(ctx context.Context, arg string) error

// ResourceKind distinguishes injected stylesheets from scripts.
type ResourceKind int

const (
	Stylesheet ResourceKind = iota
	Script
)

// Resource is an element injected into the head (stylesheet) or the end of
// the body (script).
type Resource struct {
	ID   string
	Kind ResourceKind
	URL  string
}

// Event is a custom event emitted to the user, e.g. a toast.
type Event struct {
	Name   string
	Detail map[string]any
}

// Overlay is a modal layer appended to the body.
type Overlay struct {
	ID     string
	Markup string
}

// Document is the launcher's rendered document.
type Document struct {
	mu sync.Mutex

	attrs     map[string]string
	chrome    [2]string
	resources []Resource
	main      string
	epoch     uint64
	hash      string
	overlay   *Overlay
	events    []Event

	// handlers are cleared whenever the main region is swapped; shell
	// handlers (navigation links) survive.
	handlers      map[string]Handler
	shellHandlers map[string]Handler
}

// New creates a document whose main region holds mainHTML.
func New(mainHTML string) *Document {
	return &Document{
		attrs:         make(map[string]string),
		main:          mainHTML,
		handlers:      make(map[string]Handler),
		shellHandlers: make(map[string]Handler),
	}
}

// SetChrome sets the static markup rendered before and after the main
// region, such as the navigation sidebar.
func (d *Document) SetChrome(before, after string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.chrome = [2]string{before, after}
}

// SetRootAttr sets an attribute on the document root.
func (d *Document) SetRootAttr(key, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attrs[key] = value
}

// RootAttr returns an attribute of the document root.
func (d *Document) RootAttr(key string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.attrs[key]
}

// Inject appends a resource. Callers are expected to Remove any previous
// resource with the same id first.
func (d *Document) Inject(r Resource) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resources = append(d.resources, r)
}

// Remove deletes every resource with the given id and reports whether any
// existed.
func (d *Document) Remove(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.resources[:0]
	removed := false
	for _, r := range d.resources {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	d.resources = kept
	return removed
}

// Resource returns the injected resource with the given id.
func (d *Document) Resource(id string) (Resource, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

// Resources returns a copy of all injected resources in insertion order.
func (d *Document) Resources() []Resource {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Resource(nil), d.resources...)
}

// MainHTML returns the markup of the main content region.
func (d *Document) MainHTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.main
}

// SetMainHTML replaces the main content region. Page bindings are dropped
// along with the content they were bound to.
func (d *Document) SetMainHTML(markup string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.main = markup
	d.epoch++
	d.handlers = make(map[string]Handler)
}

// HasElement reports whether an element with the given id exists in the
// main region, the overlay, or among injected resources.
func (d *Document) HasElement(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, r := range d.resources {
		if r.ID == id {
			return true
		}
	}
	if d.overlay != nil && d.overlay.ID == id {
		return true
	}
	nodes, err := ParseFragment(d.main)
	if err != nil {
		return false
	}
	return findIn(nodes, func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	}) != nil
}

// HasClass reports whether an element with the given class exists in the
// main region.
func (d *Document) HasClass(class string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	nodes, err := ParseFragment(d.main)
	if err != nil {
		return false
	}
	return findIn(nodes, func(n *html.Node) bool { return HasClass(n, class) }) != nil
}

// ReplaceChildren replaces the children of the first main-region element
// carrying class with markup. It reports false, without error, when no such
// element exists.
func (d *Document) ReplaceChildren(class, markup string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.replaceChildren(class, markup)
}

func (d *Document) replaceChildren(class, markup string) (bool, error) {
	nodes, err := ParseFragment(d.main)
	if err != nil {
		return false, fmt.Errorf("parse main content: %w", err)
	}
	target := findIn(nodes, func(n *html.Node) bool { return HasClass(n, class) })
	if target == nil {
		return false, nil
	}

	children, err := html.ParseFragment(strings.NewReader(markup), target)
	if err != nil {
		return false, fmt.Errorf("parse replacement markup: %w", err)
	}
	for c := target.FirstChild; c != nil; {
		next := c.NextSibling
		target.RemoveChild(c)
		c = next
	}
	for _, c := range children {
		target.AppendChild(c)
	}

	out, err := Render(nodes)
	if err != nil {
		return false, fmt.Errorf("render main content: %w", err)
	}
	d.main = out
	return true, nil
}

// Hash returns the location fragment identifier, without '#'.
func (d *Document) Hash() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hash
}

// SetHash sets the location fragment identifier. An empty value clears it.
func (d *Document) SetHash(hash string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hash = hash
}

// ShowOverlay places an overlay on top of the document, replacing any
// existing one.
func (d *Document) ShowOverlay(o Overlay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay = &o
}

// CurrentOverlay returns the visible overlay, if any.
func (d *Document) CurrentOverlay() (Overlay, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.overlay == nil {
		return Overlay{}, false
	}
	return *d.overlay, true
}

// CloseOverlay removes the overlay with the given id.
func (d *Document) CloseOverlay(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.overlay == nil || d.overlay.ID != id {
		return false
	}
	d.overlay = nil
	return true
}

// DismissOverlay removes whatever overlay is visible.
func (d *Document) DismissOverlay() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	had := d.overlay != nil
	d.overlay = nil
	return had
}

// Emit records a custom event.
func (d *Document) Emit(name string, detail map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, Event{Name: name, Detail: maps.Clone(detail)})
}

// Events returns the events emitted so far.
func (d *Document) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Event(nil), d.events...)
}

// Bind registers a page handler for target. Page handlers are dropped when
// the main region is replaced.
func (d *Document) Bind(target string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[target] = h
}

// Unbind removes page handlers.
func (d *Document) Unbind(targets ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range targets {
		delete(d.handlers, t)
	}
}

// BindShell registers a handler that survives page swaps.
func (d *Document) BindShell(target string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shellHandlers[target] = h
}

// Bound reports whether a handler exists for target.
func (d *Document) Bound(target string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, page := d.handlers[target]
	_, shell := d.shellHandlers[target]
	return page || shell
}

// Click dispatches a click on target. Page handlers take precedence over
// shell handlers. The document lock is not held while the handler runs.
func (d *Document) Click(ctx context.Context, target, arg string) error {
	d.mu.Lock()
	h, ok := d.handlers[target]
	if !ok {
		h, ok = d.shellHandlers[target]
	}
	d.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, target)
	}
	return h(ctx, arg)
}

// PageData describes the document for render.RenderPage.
func (d *Document) PageData(title string, stylesheets []string) render.PageData {
	d.mu.Lock()
	defer d.mu.Unlock()

	page := render.PageData{
		Title:       title,
		RootAttrs:   maps.Clone(d.attrs),
		StyleSheets: stylesheets,
	}
	for _, r := range d.resources {
		switch r.Kind {
		case Stylesheet:
			page.Links = append(page.Links, render.LinkTag{ID: r.ID, Rel: "stylesheet", Href: r.URL})
		case Script:
			page.Scripts = append(page.Scripts, render.ScriptTag{ID: r.ID, Src: r.URL})
		}
	}

	body := vdom.Fragment(
		rawOrNil(d.chrome[0]),
		vdom.Main(vdom.ID(MainContentID), vdom.Raw(d.main)),
		rawOrNil(d.chrome[1]),
	)
	if d.overlay != nil {
		body.Children = append(body.Children, vdom.Raw(d.overlay.Markup))
	}
	page.Body = body
	return page
}

func rawOrNil(markup string) *vdom.VNode {
	if markup == "" {
		return nil
	}
	return vdom.Raw(markup)
}
