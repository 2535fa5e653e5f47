package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// bodyContext is the context node used when parsing main-region markup.
func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// ParseFragment parses markup as body content.
func ParseFragment(markup string) ([]*html.Node, error) {
	return html.ParseFragment(strings.NewReader(markup), bodyContext())
}

// Render serializes nodes back to markup.
func Render(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// OuterHTML serializes a single node including its own tag.
func OuterHTML(n *html.Node) (string, error) {
	return Render([]*html.Node{n})
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	return Render(nodes)
}

// Attr returns the value of an attribute on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether n carries class in its class list.
func HasClass(n *html.Node, class string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Find returns the first element in document order, starting at n, for
// which match returns true.
func Find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// FindByClass returns the first element with the given class.
func FindByClass(n *html.Node, class string) *html.Node {
	return Find(n, func(el *html.Node) bool { return HasClass(el, class) })
}

// FindByID returns the first element with the given id.
func FindByID(n *html.Node, id string) *html.Node {
	return Find(n, func(el *html.Node) bool {
		v, ok := Attr(el, "id")
		return ok && v == id
	})
}

func findIn(nodes []*html.Node, match func(*html.Node) bool) *html.Node {
	for _, n := range nodes {
		if found := Find(n, match); found != nil {
			return found
		}
	}
	return nil
}
