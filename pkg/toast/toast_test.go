package toast_test

import (
	"testing"

	"github.com/hoi-launcher/shell/pkg/dom"
	"github.com/hoi-launcher/shell/pkg/toast"
)

// recorder captures emitted events for verification.
type recorder struct {
	names   []string
	details []map[string]any
}

func (r *recorder) Emit(name string, detail map[string]any) {
	r.names = append(r.names, name)
	r.details = append(r.details, detail)
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name  string
		show  func(toast.Emitter, string)
		level toast.Type
	}{
		{"success", toast.Success, toast.TypeSuccess},
		{"warning", toast.Warning, toast.TypeWarning},
		{"info", toast.Info, toast.TypeInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tt.show(rec, "hello")

			if len(rec.names) != 1 || rec.names[0] != toast.EventName {
				t.Fatalf("emitted %v, want one %q", rec.names, toast.EventName)
			}
			if rec.details[0]["level"] != string(tt.level) {
				t.Errorf("level = %v, want %v", rec.details[0]["level"], tt.level)
			}
			if rec.details[0]["message"] != "hello" {
				t.Errorf("message = %v", rec.details[0]["message"])
			}
		})
	}
}

func TestWithTitle(t *testing.T) {
	rec := &recorder{}
	toast.WithTitle(rec, toast.TypeInfo, "Update", "Up to date")
	if rec.details[0]["title"] != "Update" || rec.details[0]["message"] != "Up to date" {
		t.Errorf("detail = %v", rec.details[0])
	}
}

func TestDocumentIsAnEmitter(t *testing.T) {
	doc := dom.New("")
	toast.Info(doc, "Opening mod: A")

	events := doc.Events()
	if len(events) != 1 || events[0].Detail["message"] != "Opening mod: A" {
		t.Errorf("Events() = %+v", events)
	}
}
