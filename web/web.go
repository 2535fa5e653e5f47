// Package web embeds the launcher's static front end: the index document,
// the page fragments and their assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hoi-launcher/shell/pkg/dom"
	"golang.org/x/net/html"
)

//go:embed static
var files embed.FS

// IndexFile is the document the shell is built from.
const IndexFile = "index.html"

// Static returns the embedded web root.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Layout is the index document split around its main region.
type Layout struct {
	Title string

	// StyleSheets are the stylesheet links in the head.
	StyleSheets []string

	// Before and After are the body markup surrounding the main region.
	Before string
	After  string

	// Main is the inner markup of the main region, the home view.
	Main string
}

// LoadLayout parses the index document in fsys.
func LoadLayout(fsys fs.FS) (*Layout, error) {
	b, err := fs.ReadFile(fsys, IndexFile)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", IndexFile, err)
	}

	main := dom.FindByID(doc, dom.MainContentID)
	if main == nil {
		return nil, fmt.Errorf("%s has no #%s element", IndexFile, dom.MainContentID)
	}

	l := &Layout{}
	if l.Main, err = dom.InnerHTML(main); err != nil {
		return nil, err
	}

	if t := dom.Find(doc, func(n *html.Node) bool { return n.Data == "title" }); t != nil && t.FirstChild != nil {
		l.Title = strings.TrimSpace(t.FirstChild.Data)
	}
	collectStyleSheets(doc, &l.StyleSheets)

	var before, after []*html.Node
	seen := false
	for c := main.Parent.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c == main:
			seen = true
		case seen:
			after = append(after, c)
		default:
			before = append(before, c)
		}
	}
	if l.Before, err = dom.Render(before); err != nil {
		return nil, err
	}
	if l.After, err = dom.Render(after); err != nil {
		return nil, err
	}
	l.Before = strings.TrimSpace(l.Before)
	l.After = strings.TrimSpace(l.After)
	return l, nil
}

func collectStyleSheets(n *html.Node, out *[]string) {
	if n.Type == html.ElementNode && n.Data == "link" {
		rel, _ := dom.Attr(n, "rel")
		href, ok := dom.Attr(n, "href")
		if ok && strings.EqualFold(rel, "stylesheet") {
			*out = append(*out, href)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStyleSheets(c, out)
	}
}

// NewDocument creates a document from the layout.
func (l *Layout) NewDocument() *dom.Document {
	doc := dom.New(l.Main)
	doc.SetChrome(l.Before, l.After)
	return doc
}
