package dom

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPageGoesStaleOnSwap(t *testing.T) {
	doc := New(`<div class="mods-list"></div>`)
	page := doc.Page()
	if !page.Current() {
		t.Fatal("fresh page is not current")
	}

	doc.SetMainHTML(homeHTML)
	if page.Current() {
		t.Error("page still current after SetMainHTML")
	}

	noop := func(context.Context, string) error { return nil }
	if err := page.Bind("mod:card", noop); !errors.Is(err, ErrStalePage) {
		t.Errorf("Bind() error = %v, want ErrStalePage", err)
	}
	if doc.Bound("mod:card") {
		t.Error("stale page bound a handler")
	}
	if _, err := page.ReplaceChildren("home", "<p>late</p>"); !errors.Is(err, ErrStalePage) {
		t.Errorf("ReplaceChildren() error = %v, want ErrStalePage", err)
	}
	if strings.Contains(doc.MainHTML(), "late") {
		t.Error("stale page changed the main region")
	}
	if page.HasElement("open-mods") {
		t.Error("stale page reports elements of the new region")
	}
}

func TestPageCurrent(t *testing.T) {
	doc := New(`<ul class="mods-list"><li>old</li></ul>`)
	page := doc.Page()

	found, err := page.ReplaceChildren("mods-list", "<li>new</li>")
	if err != nil || !found {
		t.Fatalf("ReplaceChildren() = %v, %v", found, err)
	}
	if !strings.Contains(doc.MainHTML(), "<li>new</li>") {
		t.Errorf("main = %q", doc.MainHTML())
	}
	if !page.Current() {
		t.Error("ReplaceChildren should not retire the page")
	}
	if err := page.Bind("mod:open", func(context.Context, string) error { return nil }); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if !doc.Bound("mod:open") {
		t.Error("mod:open not bound")
	}
}
