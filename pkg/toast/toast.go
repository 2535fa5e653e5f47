package toast

// EventName is the event name dispatched for toasts.
const EventName = "launcher:toast"

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Emitter receives custom events.
type Emitter interface {
	Emit(name string, detail map[string]any)
}

// Show posts a toast with the given level.
//
// The event detail is { level: "success|error|warning|info", message: "..." }.
func Show(e Emitter, level Type, message string) {
	e.Emit(EventName, map[string]any{
		"level":   string(level),
		"message": message,
	})
}

// Success shows a success toast.
func Success(e Emitter, message string) {
	Show(e, TypeSuccess, message)
}

// Warning shows a warning toast.
func Warning(e Emitter, message string) {
	Show(e, TypeWarning, message)
}

// Info shows an info toast.
//
//	toast.Info(doc, "Checking for updates is handled by the native host")
func Info(e Emitter, message string) {
	Show(e, TypeInfo, message)
}

// WithTitle shows a toast with a title and message.
func WithTitle(e Emitter, level Type, title, message string) {
	e.Emit(EventName, map[string]any{
		"level":   string(level),
		"title":   title,
		"message": message,
	})
}
