// Package dom models the launcher's single rendered document.
//
// A Document is the only mutable shared state of the shell: the root
// attributes (data-theme), the resources injected for the current sub-page,
// the main content region held as a markup blob, the location fragment,
// an overlay slot, emitted events, and the registry of click handlers.
//
// Callers never hold references into the tree. The main region is exchanged
// as serialized markup; targeted edits (replacing the children of the
// element with a given class, checking that an id exists) parse the blob
// with golang.org/x/net/html, edit, and serialize it back.
//
// All methods are safe for concurrent use.
package dom
