// Package errors provides structured errors for the launcher shell.
//
// Every error carries a registered code (e.g. "L001"), a category and a
// short message, and may wrap an underlying cause:
//
//	err := errors.New("L001").
//	    WithDetail("GET pages/mods.html returned 404").
//	    Wrap(cause)
//
//	fmt.Println(err.FormatCompact())
//	// L001: Fragment fetch failed
//
// # Categories
//
//   - navigation: fragment fetch, parse and composition failures
//   - bridge: native host invocation failures
//   - storage: preference store failures
//   - config: launcher configuration problems
//   - cli: command-line usage problems
//
// Errors support errors.Is and errors.As through Unwrap. HasCode reports
// whether any error in a chain carries a given code.
package errors
