// Package mods renders the installed mod list on the mods page.
//
// Entries come from the host's list_mods command through the bridge. When
// the host cannot be reached the page still shows two placeholder cards,
// flagged with data-placeholder="true", so the layout can be checked
// without a host. An empty list renders a single card explaining where mod
// descriptors are expected.
//
// Card buttons carry data-action and data-name attributes; the renderer
// binds a handler per action on the document:
//
//	mod:card, mod:details   show the detail overlay for data-name
//	mod:open                report the open intent
//	mod-detail:open         report the open intent and close the overlay
//	mod-detail:close        close the overlay
package mods
