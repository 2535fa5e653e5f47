package render

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/hoi-launcher/shell/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty puts block elements on their own indented lines.
	Pretty bool

	// Indent is one level of indentation in pretty mode. Defaults to two
	// spaces.
	Indent string
}

// Renderer serializes VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders node to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter writes node to w. A nil node writes nothing.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	out := &markupWriter{w: w}
	if err := r.node(out, node, 0); err != nil {
		return err
	}
	return out.err
}

// markupWriter writes markup and keeps the first write error; later writes
// are no-ops.
type markupWriter struct {
	w   io.Writer
	err error
}

func (m *markupWriter) str(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

func (r *Renderer) node(out *markupWriter, n *vdom.VNode, depth int) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case vdom.KindElement:
		return r.element(out, n, depth)
	case vdom.KindFragment:
		return r.children(out, n.Children, depth)
	case vdom.KindText:
		out.str(escapeText(n.Text))
	case vdom.KindRaw:
		out.str(n.Text)
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind)
	}
	return out.err
}

func (r *Renderer) children(out *markupWriter, nodes []*vdom.VNode, depth int) error {
	for _, n := range nodes {
		if err := r.node(out, n, depth); err != nil {
			return err
		}
	}
	return out.err
}

func (r *Renderer) element(out *markupWriter, n *vdom.VNode, depth int) error {
	if depth > 0 {
		r.indent(out, depth)
	}
	out.str("<" + n.Tag)
	writeAttrs(out, n.Props)
	out.str(">")

	if vdom.IsVoidElement(n.Tag) {
		r.newline(out)
		return out.err
	}

	block := len(n.Children) > 0 && !inlineTags[n.Tag]
	if block {
		r.newline(out)
	}
	if err := r.children(out, n.Children, depth+1); err != nil {
		return err
	}
	if block {
		r.indent(out, depth)
	}
	out.str("</" + n.Tag + ">")
	r.newline(out)
	return out.err
}

func (r *Renderer) indent(out *markupWriter, depth int) {
	if r.config.Pretty {
		out.str(strings.Repeat(r.config.Indent, depth))
	}
}

func (r *Renderer) newline(out *markupWriter) {
	if r.config.Pretty {
		out.str("\n")
	}
}

// writeAttrs writes props in key order. Keys starting with "_" are
// internal. Empty values are dropped except on data-* attributes, where an
// empty path or name is still meaningful.
func writeAttrs(out *markupWriter, props vdom.Props) {
	for _, key := range slices.Sorted(maps.Keys(props)) {
		if strings.HasPrefix(key, "_") {
			continue
		}
		v := props[key]
		if on, ok := v.(bool); ok && flagAttrs[key] {
			if on {
				out.str(" " + key)
			}
			continue
		}
		s := attrString(v)
		if s == "" && !strings.HasPrefix(key, "data-") {
			continue
		}
		out.str(" " + key + `="` + escapeAttr(s) + `"`)
	}
}

func attrString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}
