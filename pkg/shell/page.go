package shell

import "strings"

// PageID names a view.
type PageID string

const (
	Home     PageID = "home"
	Settings PageID = "settings"
	Mods     PageID = "mods"
)

// Loadable reports whether id names a sub-page that can be loaded.
func (id PageID) Loadable() bool {
	return id == Settings || id == Mods
}

// ParsePage accepts the loadable page ids.
func ParsePage(s string) (PageID, bool) {
	id := PageID(strings.ToLower(strings.TrimSpace(s)))
	return id, id.Loadable()
}

// DeepLink maps a location fragment, with or without '#', to a page.
func DeepLink(hash string) (PageID, bool) {
	id := PageID(strings.TrimPrefix(hash, "#"))
	return id, id.Loadable()
}
