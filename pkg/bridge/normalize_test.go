package bridge

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	want := []ModEntry{
		{Name: "Kaiserreich", Path: "C:/mods/kr", File: "kr.mod"},
		{Name: "", Path: "", File: "ui.mod"},
	}
	seq := []any{
		map[string]any{"name": "Kaiserreich", "path": "C:/mods/kr", "file": "kr.mod"},
		map[string]any{"file": "ui.mod"},
	}
	text := `[{"name":"Kaiserreich","path":"C:/mods/kr","file":"kr.mod"},{"file":"ui.mod"}]`

	tests := []struct {
		name string
		raw  any
	}{
		{"typed slice", want},
		{"sequence", seq},
		{"payload", map[string]any{"payload": seq}},
		{"data", map[string]any{"data": seq}},
		{"string", text},
		{"raw message", json.RawMessage(text)},
		{"bytes", []byte(text)},
		{"struct", struct {
			Payload []ModEntry `json:"payload"`
		}{Payload: want}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			if !ok {
				t.Fatal("Normalize() reported unusable")
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Normalize() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestNormalizeUnusable(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"number", 42},
		{"object without list", map[string]any{"mods": []any{}}},
		{"payload not a list", map[string]any{"payload": "x"}},
		{"invalid json", "not json"},
		{"json object text", `{"payload":[]}`},
		{"json number text", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Normalize(tt.raw); ok {
				t.Errorf("Normalize() = %+v, true; want unusable", got)
			}
		})
	}
}

func TestNormalizePayloadBeforeData(t *testing.T) {
	got, ok := Normalize(map[string]any{
		"data":    []any{map[string]any{"name": "data"}},
		"payload": []any{map[string]any{"name": "payload"}},
	})
	if !ok || len(got) != 1 || got[0].Name != "payload" {
		t.Errorf("Normalize() = %+v, %v; want payload entry", got, ok)
	}
}

func TestNormalizeEmptyList(t *testing.T) {
	got, ok := Normalize("[]")
	if !ok {
		t.Fatal("empty JSON list should be usable")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestModEntryDisplay(t *testing.T) {
	tests := []struct {
		entry    ModEntry
		wantName string
		wantPath string
	}{
		{ModEntry{Name: "A", Path: "/p", File: "a.mod"}, "A", "/p"},
		{ModEntry{File: "a.mod"}, "a.mod", "a.mod"},
		{ModEntry{}, "Unknown mod", ""},
	}
	for _, tt := range tests {
		if got := tt.entry.DisplayName(); got != tt.wantName {
			t.Errorf("DisplayName(%+v) = %q, want %q", tt.entry, got, tt.wantName)
		}
		if got := tt.entry.DisplayPath(); got != tt.wantPath {
			t.Errorf("DisplayPath(%+v) = %q, want %q", tt.entry, got, tt.wantPath)
		}
	}
}
