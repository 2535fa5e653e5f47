package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryNavigation Category = "navigation"
	CategoryBridge     Category = "bridge"
	CategoryStorage    Category = "storage"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// LauncherError is a structured error with a code, category and optional cause.
type LauncherError struct {
	// Code is a unique error identifier (e.g., "L001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation, usually naming the page, command or path involved.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *LauncherError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *LauncherError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *LauncherError) WithDetail(d string) *LauncherError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *LauncherError) WithDetailf(format string, args ...any) *LauncherError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *LauncherError) WithSuggestion(s string) *LauncherError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *LauncherError) Wrap(err error) *LauncherError {
	e.Wrapped = err
	return e
}

// New creates a LauncherError from a registered error code.
func New(code string) *LauncherError {
	template, ok := registry[code]
	if !ok {
		return &LauncherError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &LauncherError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates a new LauncherError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *LauncherError {
	return &LauncherError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a LauncherError.
func FromError(err error, code string) *LauncherError {
	if err == nil {
		return nil
	}
	var le *LauncherError
	if stderrors.As(err, &le) {
		return le
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err or any error it wraps is a LauncherError with code.
func HasCode(err error, code string) bool {
	for err != nil {
		if le, ok := err.(*LauncherError); ok && le.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
