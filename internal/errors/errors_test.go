package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeFragmentFetch)
	if err.Code != "L001" {
		t.Errorf("Code = %q, want L001", err.Code)
	}
	if err.Category != CategoryNavigation {
		t.Errorf("Category = %q, want navigation", err.Category)
	}
	if err.Message != "Fragment fetch failed" {
		t.Errorf("Message = %q", err.Message)
	}

	unknown := New("L999")
	if unknown.Message != "Unknown error" {
		t.Errorf("unknown code message = %q", unknown.Message)
	}
}

func TestLauncherError_Error(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := New(CodeFragmentFetch).WithDetail("pages/mods.html").Wrap(cause)

	want := "L001: Fragment fetch failed (pages/mods.html): connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown page %q", "about")
	if err.Error() != `unknown page "about"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeUsage) != nil {
		t.Error("FromError(nil) should be nil")
	}

	base := New(CodeConfigParse)
	wrapped := fmt.Errorf("loading: %w", base)
	if got := FromError(wrapped, CodeUsage); got != base {
		t.Error("FromError should return the LauncherError already in the chain")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, CodeStorageQuery)
	if got.Code != CodeStorageQuery || !stderrors.Is(got, plain) {
		t.Errorf("FromError(plain) = %+v", got)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("navigate: %w", New(CodeMissingContainer))
	if !HasCode(err, CodeMissingContainer) {
		t.Error("HasCode should see through fmt wrapping")
	}
	if HasCode(err, CodeFragmentFetch) {
		t.Error("HasCode matched the wrong code")
	}
	if HasCode(nil, CodeFragmentFetch) {
		t.Error("HasCode(nil) should be false")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeConfigInvalid).
		WithDetailf("server.port %d out of range", 70000).
		WithSuggestion("Use a port between 1 and 65535").
		Wrap(stderrors.New("validation"))

	out := err.Format()
	for _, want := range []string{
		"ERROR L303: Invalid configuration",
		"server.port 70000 out of range",
		"cause: validation",
		"Hint: Use a port between 1 and 65535",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "L303: Invalid configuration" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, stderrors.New("plain"))
	if buf.String() != "ERROR: plain\n" {
		t.Errorf("plain error printed %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, fmt.Errorf("wrapped: %w", New(CodeUsage)))
	if !strings.Contains(buf.String(), "L401") {
		t.Errorf("launcher error printed %q", buf.String())
	}
}

func TestRegistryCodesAreUnique(t *testing.T) {
	codes := GetAllCodes()
	seen := make(map[string]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("duplicate code %s", code)
		}
		seen[code] = true
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("code %s has incomplete template %+v", code, tmpl)
		}
	}
}
