package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hoi-launcher/shell/pkg/vdom"
)

func TestRenderPage(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	page := PageData{
		Title:       "Launcher",
		RootAttrs:   map[string]string{"data-theme": "dark"},
		StyleSheets: []string{"css/main.css"},
		Links:       []LinkTag{{ID: "page-css", Rel: "stylesheet", Href: "pages/mods.css"}},
		Body:        vdom.Main(vdom.ID("main-content"), vdom.Raw("<p>home</p>")),
		Scripts:     []ScriptTag{{ID: "page-js", Src: "pages/mods.js"}},
	}

	var buf bytes.Buffer
	if err := renderer.RenderPage(&buf, page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()

	checks := []string{
		"<!DOCTYPE html>\n",
		`<html lang="en" data-theme="dark">`,
		`<meta charset="utf-8">`,
		"<title>Launcher</title>",
		`<link href="css/main.css" rel="stylesheet">`,
		`<link href="pages/mods.css" id="page-css" rel="stylesheet">`,
		`<main id="main-content"><p>home</p></main>`,
		`<script id="page-js" src="pages/mods.js"></script>`,
		"</body>\n</html>\n",
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
}

func TestRenderPageEscapesTitleAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	err := NewRenderer(RendererConfig{}).RenderPage(&buf, PageData{
		Title:     "<b>x</b>",
		Lang:      `en"x`,
		RootAttrs: map[string]string{"data-theme": `"dark"`},
	})
	if err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	if strings.Contains(html, "<b>") {
		t.Errorf("title not escaped: %s", html)
	}
	if !strings.Contains(html, `lang="en&quot;x" data-theme="&quot;dark&quot;"`) {
		t.Errorf("root attributes not escaped: %s", html)
	}
}
