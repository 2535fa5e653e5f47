package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

// Format returns a multi-line error message for terminal display.
func (e *LauncherError) Format() string {
	var b strings.Builder

	b.WriteString(color(colorRed+colorBold, "ERROR "))
	if e.Code != "" {
		b.WriteString(e.Code + ": ")
	}
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Detail != "" {
		b.WriteString("  " + e.Detail + "\n")
	}
	if e.Wrapped != nil {
		b.WriteString(color(colorGray, "  cause: "+e.Wrapped.Error()) + "\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  Hint: " + e.Suggestion + "\n")
	}
	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *LauncherError) FormatCompact() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

// PrintError writes a formatted error to w.
func PrintError(w io.Writer, err error) {
	var le *LauncherError
	if stderrors.As(err, &le) {
		fmt.Fprint(w, le.Format())
		return
	}
	fmt.Fprintf(w, "%s %s\n", color(colorRed+colorBold, "ERROR:"), err.Error())
}
