// Package theme keeps the light/dark theme in sync between the document
// root, the persisted preference, the OS preference and the native host.
//
// Precedence at startup:
//
//  1. a persisted "dark" or "light" value is applied as-is
//  2. otherwise the OS preference is applied, and OS changes keep being
//     followed until the user makes an explicit choice
//
// Every application sets data-theme on the document root first, then
// optionally persists, then tells the host. Persistence and host failures
// never prevent the attribute from being set.
package theme
