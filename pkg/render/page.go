package render

import (
	"io"
	"maps"
	"slices"

	"github.com/hoi-launcher/shell/pkg/vdom"
)

// PageData contains all data needed to render the shell as a complete HTML page.
type PageData struct {
	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// RootAttrs are extra attributes on the html element, such as data-theme.
	RootAttrs map[string]string

	// StyleSheets are the static stylesheets of the shell itself.
	StyleSheets []string

	// Links are additional link tags, rendered after StyleSheets.
	Links []LinkTag

	// Body is the content of the body element.
	Body *vdom.VNode

	// Scripts are rendered at the end of the body.
	Scripts []ScriptTag
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	ID   string
	Rel  string
	Href string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	ID    string
	Src   string
	Defer bool
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	out := &markupWriter{w: w}
	out.str("<!DOCTYPE html>\n")
	out.str(`<html lang="` + escapeAttr(lang) + `"`)
	for _, k := range slices.Sorted(maps.Keys(page.RootAttrs)) {
		out.str(" " + k + `="` + escapeAttr(page.RootAttrs[k]) + `"`)
	}
	out.str(">\n")

	if err := r.node(out, r.head(page), 0); err != nil {
		return err
	}
	out.str("\n<body>\n")
	if err := r.node(out, page.Body, 0); err != nil {
		return err
	}
	for _, script := range page.Scripts {
		if err := r.node(out, scriptNode(script), 0); err != nil {
			return err
		}
		out.str("\n")
	}
	out.str("</body>\n</html>\n")
	return out.err
}

func (r *Renderer) head(page PageData) *vdom.VNode {
	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.AttrOf("name", "viewport"), vdom.AttrOf("content", "width=device-width, initial-scale=1")),
	)
	if page.Title != "" {
		head.Children = append(head.Children, vdom.Title(vdom.Text(page.Title)))
	}
	for _, href := range page.StyleSheets {
		head.Children = append(head.Children, vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href)))
	}
	for _, link := range page.Links {
		head.Children = append(head.Children, linkNode(link))
	}
	return head
}

func scriptNode(script ScriptTag) *vdom.VNode {
	node := vdom.Script(vdom.Src(script.Src))
	if script.ID != "" {
		node.Props["id"] = script.ID
	}
	if script.Defer {
		node.Props["defer"] = true
	}
	return node
}

func linkNode(link LinkTag) *vdom.VNode {
	node := vdom.Link(vdom.Rel(link.Rel), vdom.Href(link.Href))
	if link.ID != "" {
		node.Props["id"] = link.ID
	}
	return node
}
