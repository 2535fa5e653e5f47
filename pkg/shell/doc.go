// Package shell composes launcher pages into a single document.
//
// The home view is whatever the document's main region held when the
// Composer was created. Loading a sub-page fetches pages/<id>.html, moves
// its stylesheet and script into the document under the fixed ids page-css
// and page-js, and swaps its content container into the main region.
// Returning home removes both resources and restores the captured markup
// byte for byte.
//
// Loads are not cancelled when a newer navigation starts. Instead each
// navigation takes a generation number, and a load that finishes after a
// newer navigation began is discarded with ErrSuperseded.
package shell
