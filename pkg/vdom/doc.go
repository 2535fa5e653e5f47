// Package vdom provides the in-memory node tree the launcher builds markup
// from.
//
// Nodes are created with variadic factory functions and serialized by
// package render:
//
//	Div(Class("mod-item", "surface"), Data("name", entry.Name),
//	    Div(Class("mod-title"), Text(entry.Name)),
//	    Button(Class("btn"), Data("action", "mod:details"), Text("Details")),
//	)
//
// Text nodes are always escaped on output. Raw carries pre-serialized markup,
// such as the captured main content of the shell, and is written verbatim.
package vdom
