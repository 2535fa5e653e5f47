// Package toast posts transient notices to the user.
//
// The launcher has no error dialogs. Notices are only used by the stub
// actions ("open mod", "check update") to report what they would do.
// A toast is a custom event on the document:
//
//	toast.Info(doc, "Opening mod: Example mod A")
//
// Any type with an Emit method works as the target, so the same helpers
// serve the in-process document and test doubles.
package toast
