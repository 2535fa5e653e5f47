package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hoi-launcher/shell/pkg/fragment"
)

func TestSourceAssets(t *testing.T) {
	src := fragment.NewFSSource(fstest.MapFS{
		"css/mods.css":    {Data: []byte(".mods-list{}")},
		"pages/mods.html": {Data: []byte(`<div class="mods-container"></div>`)},
		"javascript/a.js": {Data: []byte("void 0")},
	})
	h := SourceAssets(src)

	tests := []struct {
		path   string
		status int
		ctype  string
	}{
		{"/css/mods.css", http.StatusOK, "text/css"},
		{"/pages/mods.html", http.StatusOK, "text/html"},
		{"/javascript/a.js", http.StatusOK, "javascript"},
		{"/css/missing.css", http.StatusNotFound, ""},
		{"/", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.ctype != "" && !strings.Contains(rec.Header().Get("Content-Type"), tt.ctype) {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.ctype)
			}
		})
	}
}

func TestSourceAssetsUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	src, err := fragment.NewHTTPSource(upstream.URL, upstream.Client())
	if err != nil {
		t.Fatalf("NewHTTPSource() error = %v", err)
	}
	rec := httptest.NewRecorder()
	SourceAssets(src).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/main.css", nil))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
