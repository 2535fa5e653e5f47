// Package bridge calls commands on the native host process.
//
// The host may expose several calling conventions, and which ones are
// present differs between builds and platforms. Env describes what is
// available; Bridge tries each convention in a fixed order and accepts the
// first result that normalizes to a list of mods:
//
//  1. module: Env.Import loads an Invoker lazily; a load failure skips it
//  2. global: Env.Global called positionally, Invoke(cmd, nil)
//  3. global-object: Env.Global called with a wrapped {cmd} request, when
//     it also implements ObjectInvoker
//  4. fallback: Env.Fallback
//
// Results arrive in one of several shapes (a bare list, a list under
// "payload" or "data", or JSON text). Normalize folds them into []ModEntry.
//
// Single-shot commands that return nothing useful, such as set_theme, go
// through Notify, which tries only the module and global forms.
package bridge
