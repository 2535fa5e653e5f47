// Package host connects the launcher to its native host process over a
// JSON WebSocket protocol, and provides a development host that speaks it.
//
// Requests carry either a positional command or an object-wrapped one:
//
//	{"id":1,"cmd":"set_theme","args":{"dark":true}}
//	{"id":2,"request":{"cmd":"list_mods"}}
//
// Responses echo the id with a result or an error:
//
//	{"id":2,"result":[{"name":"…","path":"…","file":"…"}]}
//	{"id":3,"error":"unknown command \"x\""}
//
// Client implements both bridge.Invoker and bridge.ObjectInvoker. Server is
// an http.Handler serving set_theme and list_mods from a fixed catalog; it
// can wrap the list in any of the shapes real hosts have been seen to use,
// which makes it useful for exercising the bridge's normalization.
package host
