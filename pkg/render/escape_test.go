package render

import (
	"strings"
	"testing"

	"github.com/hoi-launcher/shell/pkg/vdom"
)

// modCard mirrors the shape of a mod list card.
func modCard(name, path string) *vdom.VNode {
	return vdom.Div(
		vdom.Class("mod-item", "surface"),
		vdom.Data("name", name),
		vdom.Div(vdom.Class("mod-title"), vdom.Text(name)),
		vdom.Div(vdom.Class("mod-desc"), vdom.Text("Path: "+path)),
	)
}

func TestCardEscaping(t *testing.T) {
	tests := []struct {
		name      string
		modName   string
		path      string
		wantAttr  string
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "plain",
			modName:   "Kaiserreich",
			path:      "mod/kr",
			wantAttr:  `data-name="Kaiserreich"`,
			wantTitle: `<div class="mod-title">Kaiserreich</div>`,
			wantDesc:  `<div class="mod-desc">Path: mod/kr</div>`,
		},
		{
			name:      "apostrophe and ampersand",
			modName:   "Hearts & Minds: Rise of the 'Kaiser'",
			path:      `C:\Users\O'Brien\Documents\mod`,
			wantAttr:  `data-name="Hearts &amp; Minds: Rise of the &#39;Kaiser&#39;"`,
			wantTitle: `>Hearts &amp; Minds: Rise of the &#39;Kaiser&#39;</div>`,
			wantDesc:  `>Path: C:\Users\O&#39;Brien\Documents\mod</div>`,
		},
		{
			name:      "markup in name",
			modName:   `<img src=x onerror="alert(1)">`,
			path:      "a<b>c",
			wantAttr:  `data-name="&lt;img src=x onerror=&quot;alert(1)&quot;&gt;"`,
			wantTitle: `>&lt;img src=x onerror=&quot;alert(1)&quot;&gt;</div>`,
			wantDesc:  `>Path: a&lt;b&gt;c</div>`,
		},
		{
			name:      "non-latin names pass through",
			modName:   "Восход Красной Звезды",
			path:      "mod/восход",
			wantAttr:  `data-name="Восход Красной Звезды"`,
			wantTitle: `>Восход Красной Звезды</div>`,
			wantDesc:  `>Path: mod/восход</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderString(t, modCard(tt.modName, tt.path))
			for _, want := range []string{tt.wantAttr, tt.wantTitle, tt.wantDesc} {
				if !strings.Contains(got, want) {
					t.Errorf("card missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestAttrEscapingKeepsValueOnOneLine(t *testing.T) {
	got := renderString(t, vdom.Button(
		vdom.Data("action", "mod:open"),
		vdom.Data("name", "line one\r\nline\ttwo"),
	))
	want := `<button data-action="mod:open" data-name="line one&#13;&#10;line&#9;two"></button>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextKeepsWhitespace(t *testing.T) {
	got := renderString(t, vdom.P(vdom.Class("mod-desc"), vdom.Text("Details for\tKR\nare not available yet.")))
	want := "<p class=\"mod-desc\">Details for\tKR\nare not available yet.</p>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDetailOverlayEscaping(t *testing.T) {
	name := `"><script>alert('x')</script>`
	overlay := vdom.Div(
		vdom.ID("mod-detail"),
		vdom.Class("mod-detail-overlay"),
		vdom.Div(
			vdom.Role("dialog"),
			vdom.AriaLabel("Mod details"),
			vdom.H2(vdom.Class("page-title"), vdom.Text(name)),
			vdom.Button(vdom.Data("action", "mod-detail:open"), vdom.Data("name", name), vdom.Text("Open mod")),
		),
	)

	got := renderString(t, overlay)
	if strings.Contains(got, "<script>") {
		t.Fatalf("overlay leaked markup: %s", got)
	}
	for _, want := range []string{
		`<h2 class="page-title">&quot;&gt;&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;</h2>`,
		`data-name="&quot;&gt;&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"`,
		`aria-label="Mod details" role="dialog"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("overlay missing %q:\n%s", want, got)
		}
	}
}
