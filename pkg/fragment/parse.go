package fragment

import (
	"bytes"
	"errors"
	"strings"

	lerrors "github.com/hoi-launcher/shell/internal/errors"
	"github.com/hoi-launcher/shell/pkg/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ContainerClasses are the content container classes, in lookup order.
var ContainerClasses = []string{"settings-container", "mods-container"}

// ErrMissingContainer is returned by Parse when the fragment has no
// content container.
var ErrMissingContainer = errors.New("fragment: no content container")

// Fragment is the extracted content of a page fragment.
type Fragment struct {
	// Stylesheet is the raw href of the first stylesheet link, if any.
	Stylesheet string

	// Script is the raw src of the first external script, if any.
	Script string

	// ContainerClass names the container that was found.
	ContainerClass string

	// Container is the container's outer HTML.
	Container string
}

// Parse extracts the stylesheet, script and content container from markup.
// A fragment without a container is rejected before anything else is
// used, so callers can abort without side effects.
func Parse(markup []byte) (*Fragment, error) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, lerrors.New(lerrors.CodeFragmentParse).Wrap(err)
	}

	f := &Fragment{}
	for _, class := range ContainerClasses {
		if n := dom.FindByClass(doc, class); n != nil {
			outer, err := dom.OuterHTML(n)
			if err != nil {
				return nil, lerrors.New(lerrors.CodeFragmentParse).Wrap(err)
			}
			f.ContainerClass = class
			f.Container = outer
			break
		}
	}
	if f.Container == "" {
		return nil, lerrors.New(lerrors.CodeMissingContainer).
			WithDetailf("expected one of %s", strings.Join(ContainerClasses, ", ")).
			Wrap(ErrMissingContainer)
	}

	if link := dom.Find(doc, isStylesheetLink); link != nil {
		f.Stylesheet, _ = dom.Attr(link, "href")
	}
	if script := dom.Find(doc, isExternalScript); script != nil {
		f.Script, _ = dom.Attr(script, "src")
	}
	return f, nil
}

func isStylesheetLink(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Link {
		return false
	}
	rel, _ := dom.Attr(n, "rel")
	for _, tok := range strings.Fields(strings.ToLower(rel)) {
		if tok == "stylesheet" {
			_, ok := dom.Attr(n, "href")
			return ok
		}
	}
	return false
}

func isExternalScript(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Script {
		return false
	}
	_, ok := dom.Attr(n, "src")
	return ok
}

// NormalizeStylesheet rewrites a fragment stylesheet href relative to the
// document: one leading "./" or "../" is dropped, and the result is placed
// under pages/ unless it already starts with css/ or pages/.
func NormalizeStylesheet(href string) string {
	return normalize(href, "css/", "pages/")
}

// NormalizeScript is NormalizeStylesheet for scripts, whose roots are
// javascript/ and pages/.
func NormalizeScript(src string) string {
	return normalize(src, "javascript/", "pages/")
}

func normalize(p string, roots ...string) string {
	switch {
	case strings.HasPrefix(p, "../"):
		p = p[len("../"):]
	case strings.HasPrefix(p, "./"):
		p = p[len("./"):]
	}
	for _, root := range roots {
		if strings.HasPrefix(p, root) {
			return p
		}
	}
	return "pages/" + p
}
