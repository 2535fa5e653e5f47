package dom

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hoi-launcher/shell/pkg/render"
)

const homeHTML = `<section class="home"><h1>Launcher</h1><a id="open-mods" href="#mods">Mods</a></section>`

func TestRootAttr(t *testing.T) {
	doc := New(homeHTML)
	if got := doc.RootAttr("data-theme"); got != "" {
		t.Errorf("fresh document has data-theme %q", got)
	}
	doc.SetRootAttr("data-theme", "dark")
	if got := doc.RootAttr("data-theme"); got != "dark" {
		t.Errorf("data-theme = %q, want dark", got)
	}
}

func TestInjectAndRemove(t *testing.T) {
	doc := New(homeHTML)
	doc.Inject(Resource{ID: "page-css", Kind: Stylesheet, URL: "pages/mods.css"})
	doc.Inject(Resource{ID: "page-js", Kind: Script, URL: "pages/mods.js"})

	if r, ok := doc.Resource("page-css"); !ok || r.URL != "pages/mods.css" {
		t.Errorf("Resource(page-css) = %+v, %v", r, ok)
	}
	if !doc.HasElement("page-js") {
		t.Error("HasElement should see injected resources")
	}

	if !doc.Remove("page-css") {
		t.Error("Remove(page-css) = false, want true")
	}
	if doc.Remove("page-css") {
		t.Error("second Remove(page-css) = true, want false")
	}
	if got := doc.Resources(); len(got) != 1 || got[0].ID != "page-js" {
		t.Errorf("Resources() = %+v", got)
	}
}

func TestHasElementAndClassInMain(t *testing.T) {
	doc := New(homeHTML)
	if !doc.HasElement("open-mods") {
		t.Error("HasElement(open-mods) = false")
	}
	if doc.HasElement("theme-toggle") {
		t.Error("HasElement(theme-toggle) = true")
	}
	if !doc.HasClass("home") {
		t.Error("HasClass(home) = false")
	}
}

func TestReplaceChildren(t *testing.T) {
	doc := New(`<div class="mods-container"><div class="mods-list"><p>old</p></div></div>`)

	ok, err := doc.ReplaceChildren("mods-list", `<div class="mod-item">A</div><div class="mod-item">B</div>`)
	if err != nil || !ok {
		t.Fatalf("ReplaceChildren = %v, %v", ok, err)
	}
	want := `<div class="mods-container"><div class="mods-list"><div class="mod-item">A</div><div class="mod-item">B</div></div></div>`
	if got := doc.MainHTML(); got != want {
		t.Errorf("MainHTML() = %q, want %q", got, want)
	}

	ok, err = doc.ReplaceChildren("missing", "<p>x</p>")
	if err != nil || ok {
		t.Errorf("ReplaceChildren(missing) = %v, %v; want false, nil", ok, err)
	}
}

func TestSetMainHTMLDropsPageHandlers(t *testing.T) {
	doc := New(homeHTML)
	doc.Bind("theme-toggle", func(context.Context, string) error { return nil })
	doc.BindShell("open-home", func(context.Context, string) error { return nil })

	doc.SetMainHTML("<p>other</p>")

	if doc.Bound("theme-toggle") {
		t.Error("page handler survived a main swap")
	}
	if !doc.Bound("open-home") {
		t.Error("shell handler lost on main swap")
	}
}

func TestClick(t *testing.T) {
	doc := New(homeHTML)
	var got string
	doc.Bind("mod:details", func(_ context.Context, arg string) error {
		got = arg
		return nil
	})

	if err := doc.Click(context.Background(), "mod:details", "Example"); err != nil {
		t.Fatal(err)
	}
	if got != "Example" {
		t.Errorf("handler received %q", got)
	}

	err := doc.Click(context.Background(), "nothing", "")
	if !errors.Is(err, ErrNoHandler) {
		t.Errorf("Click(nothing) = %v, want ErrNoHandler", err)
	}

	doc.Unbind("mod:details")
	if doc.Bound("mod:details") {
		t.Error("Unbind left handler in place")
	}
}

func TestPageHandlerShadowsShellHandler(t *testing.T) {
	doc := New(homeHTML)
	var calls []string
	doc.BindShell("x", func(context.Context, string) error { calls = append(calls, "shell"); return nil })
	doc.Bind("x", func(context.Context, string) error { calls = append(calls, "page"); return nil })

	_ = doc.Click(context.Background(), "x", "")
	if len(calls) != 1 || calls[0] != "page" {
		t.Errorf("calls = %v, want [page]", calls)
	}
}

func TestOverlay(t *testing.T) {
	doc := New(homeHTML)
	if _, ok := doc.CurrentOverlay(); ok {
		t.Fatal("fresh document has overlay")
	}

	doc.ShowOverlay(Overlay{ID: "mod-detail", Markup: "<div>A</div>"})
	doc.ShowOverlay(Overlay{ID: "mod-detail", Markup: "<div>B</div>"})
	o, ok := doc.CurrentOverlay()
	if !ok || o.Markup != "<div>B</div>" {
		t.Errorf("CurrentOverlay() = %+v, %v", o, ok)
	}
	if !doc.HasElement("mod-detail") {
		t.Error("HasElement should see the overlay")
	}

	if doc.CloseOverlay("other") {
		t.Error("CloseOverlay(other) = true")
	}
	if !doc.CloseOverlay("mod-detail") {
		t.Error("CloseOverlay(mod-detail) = false")
	}
}

func TestEmit(t *testing.T) {
	doc := New(homeHTML)
	detail := map[string]any{"message": "hi"}
	doc.Emit("launcher:toast", detail)
	detail["message"] = "mutated"

	events := doc.Events()
	if len(events) != 1 || events[0].Detail["message"] != "hi" {
		t.Errorf("Events() = %+v", events)
	}
}

func TestPageData(t *testing.T) {
	doc := New(homeHTML)
	doc.SetRootAttr("data-theme", "light")
	doc.Inject(Resource{ID: "page-css", Kind: Stylesheet, URL: "pages/settings.css"})
	doc.Inject(Resource{ID: "page-js", Kind: Script, URL: "pages/settings.js"})
	doc.ShowOverlay(Overlay{ID: "mod-detail", Markup: `<div id="mod-detail"></div>`})

	var buf bytes.Buffer
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(&buf, doc.PageData("Launcher", []string{"css/main.css"})); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		`data-theme="light"`,
		`<link href="pages/settings.css" id="page-css" rel="stylesheet">`,
		`<main id="main-content">` + homeHTML + `</main><div id="mod-detail"></div>`,
		`<script id="page-js" src="pages/settings.js"></script>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}
}

func TestChromeAndDismiss(t *testing.T) {
	doc := New(homeHTML)
	doc.SetChrome(`<nav class="sidebar"></nav>`, `<footer></footer>`)
	doc.ShowOverlay(Overlay{ID: "mod-detail", Markup: `<div id="mod-detail"></div>`})

	if !doc.DismissOverlay() {
		t.Error("DismissOverlay() = false with an overlay open")
	}
	if doc.DismissOverlay() {
		t.Error("DismissOverlay() = true with nothing open")
	}

	var buf bytes.Buffer
	if err := render.NewRenderer(render.RendererConfig{}).RenderPage(&buf, doc.PageData("", nil)); err != nil {
		t.Fatal(err)
	}
	want := `<nav class="sidebar"></nav><main id="main-content">` + homeHTML + `</main><footer></footer>`
	if !strings.Contains(buf.String(), want) {
		t.Errorf("page missing %q:\n%s", want, buf.String())
	}
}
