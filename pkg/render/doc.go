// Package render serializes vdom trees into HTML.
//
// It is used for every piece of markup the launcher produces itself: mod
// cards, the empty-state card, the detail overlay, and the full shell page
// served over HTTP or printed by the CLI.
//
//   - Text and attribute values are escaped, so entry-supplied names and
//     paths can never be interpreted as markup.
//   - Void elements (link, meta, br) are written without a closing tag.
//   - Attributes are emitted in sorted order, so output is deterministic.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title:     "Launcher",
//	    RootAttrs: map[string]string{"data-theme": "dark"},
//	    Links:     []render.LinkTag{{ID: "page-css", Rel: "stylesheet", Href: "pages/mods.css"}},
//	    Body:      body,
//	})
package render
