package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	lerrors "github.com/hoi-launcher/shell/internal/errors"
	"github.com/hoi-launcher/shell/pkg/bridge"
	"github.com/hoi-launcher/shell/pkg/dom"
	"github.com/hoi-launcher/shell/pkg/fragment"
	"github.com/hoi-launcher/shell/pkg/host"
	"github.com/hoi-launcher/shell/pkg/mods"
	"github.com/hoi-launcher/shell/pkg/pref"
	"github.com/hoi-launcher/shell/pkg/shell"
	"github.com/hoi-launcher/shell/pkg/telemetry"
	"github.com/hoi-launcher/shell/pkg/theme"
	"github.com/hoi-launcher/shell/web"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	ts  *httptest.Server
	reg *prometheus.Registry

	mu     sync.Mutex
	themes []bool
}

func (f *fixture) hostThemes() []bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bool(nil), f.themes...)
}

// newFixture serves the embedded web root with the mods page backed by a
// development host mounted on the same router.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	layout, err := web.LoadLayout(web.Static())
	if err != nil {
		t.Fatalf("LoadLayout() error = %v", err)
	}
	doc := layout.NewDocument()

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(telemetry.WithRegistry(reg))

	f := &fixture{reg: reg}
	hostSrv := host.NewServer([]bridge.ModEntry{{Name: "Kaiserreich", Path: "C:/mods/kr", File: "kr.mod"}},
		host.WithShape(host.ShapePayload),
		host.WithServerLogger(quietLogger()),
		host.WithThemeHandler(func(dark bool) {
			f.mu.Lock()
			f.themes = append(f.themes, dark)
			f.mu.Unlock()
		}),
	)

	// The host lives on the server under test, so its URL is only known
	// once the server is listening. Until then the module form is absent.
	var (
		mu   sync.Mutex
		lazy *host.Lazy
	)
	load := func(ctx context.Context) (bridge.Invoker, error) {
		mu.Lock()
		l := lazy
		mu.Unlock()
		if l == nil {
			return nil, errors.New("host not listening yet")
		}
		return l.Load(ctx)
	}
	br := bridge.New(bridge.Env{Import: load}, bridge.WithLogger(quietLogger()), bridge.WithMetrics(metrics))

	tm := theme.NewManager(nil, doc,
		theme.WithStore(pref.NewMemoryStore()),
		theme.WithSystem(theme.NewStatic(true)),
		theme.WithHost(br),
		theme.WithLogger(quietLogger()),
	)
	sh := shell.New(shell.Config{
		Doc:         doc,
		Source:      fragment.NewFSSource(web.Static()),
		Theme:       tm,
		Mods:        mods.NewRenderer(br, mods.WithLogger(quietLogger())),
		Title:       layout.Title,
		StyleSheets: layout.StyleSheets,
		Logger:      quietLogger(),
		Metrics:     metrics,
	})
	if err := sh.Start(ctx, ""); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	srv := New(Config{
		Shell:    sh,
		Assets:   FileAssets(web.Static()),
		Host:     hostSrv,
		Gatherer: reg,
		Metrics:  metrics,
		Logger:   quietLogger(),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	f.ts = ts

	mu.Lock()
	lazy = host.NewLazy("ws"+strings.TrimPrefix(ts.URL, "http")+"/host", host.WithClientLogger(quietLogger()))
	mu.Unlock()
	t.Cleanup(func() { lazy.Close() })

	return f
}

func (f *fixture) do(t *testing.T, method, path string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, f.ts.URL+path, nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := f.ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body error = %v", err)
	}
	return resp, body
}

func (f *fixture) state(t *testing.T, method, path string) State {
	t.Helper()
	resp, body := f.do(t, method, path)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("%s %s status = %d, body = %s", method, path, resp.StatusCode, body)
	}
	var st State
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("decode state error = %v, body = %s", err, body)
	}
	return st
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	resp, body := f.do(t, http.MethodGet, "/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestDocument(t *testing.T) {
	f := newFixture(t)
	resp, body := f.do(t, http.MethodGet, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	html := string(body)
	for _, want := range []string{`data-theme="dark"`, `id="main-content"`, "open-settings"} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestNavigateMods(t *testing.T) {
	f := newFixture(t)
	st := f.state(t, http.MethodPost, "/navigate/mods")

	if st.Hash != "mods" {
		t.Errorf("hash = %q, want mods", st.Hash)
	}
	var css bool
	for _, r := range st.Resources {
		if r.ID == shell.StylesheetID && r.Kind == "stylesheet" {
			css = true
		}
	}
	if !css {
		t.Errorf("no page stylesheet in %+v", st.Resources)
	}

	_, body := f.do(t, http.MethodGet, "/")
	if !strings.Contains(string(body), "Kaiserreich") {
		t.Error("mod list was not rendered from the host catalog")
	}
}

func TestNavigateHomeRestores(t *testing.T) {
	f := newFixture(t)
	f.state(t, http.MethodPost, "/navigate/settings")
	st := f.state(t, http.MethodPost, "/navigate/home")
	if st.Hash != "" {
		t.Errorf("hash = %q after home", st.Hash)
	}
	if len(st.Resources) != 0 {
		t.Errorf("resources = %+v after home", st.Resources)
	}
}

func TestNavigateUnknownPage(t *testing.T) {
	f := newFixture(t)
	resp, body := f.do(t, http.MethodPost, "/navigate/credits")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var e errorBody
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e.Code != "L004" {
		t.Errorf("code = %q, want L004", e.Code)
	}
}

func TestClickThemeToggle(t *testing.T) {
	f := newFixture(t)
	f.state(t, http.MethodPost, "/navigate/settings")

	st := f.state(t, http.MethodPost, "/click/theme-toggle")
	if st.Theme != "light" {
		t.Errorf("theme = %q after toggle, want light", st.Theme)
	}

	themes := f.hostThemes()
	if len(themes) != 1 || themes[0] {
		t.Errorf("host set_theme calls = %v, want [false]", themes)
	}
}

func TestClickUnbound(t *testing.T) {
	f := newFixture(t)
	resp, _ := f.do(t, http.MethodPost, "/click/nothing-here")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestAssets(t *testing.T) {
	f := newFixture(t)
	resp, body := f.do(t, http.MethodGet, "/pages/settings.html")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte("settings-container")) {
		t.Error("settings page body not served")
	}
	if resp, _ := f.do(t, http.MethodGet, "/css/main.css"); resp.StatusCode != http.StatusOK {
		t.Errorf("css status = %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/healthz")

	resp, body := f.do(t, http.MethodGet, "/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `route="/healthz"`) {
		t.Errorf("metrics missing /healthz request:\n%s", body)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{lerrors.New(lerrors.CodeUnknownPage), http.StatusNotFound},
		{fmt.Errorf("click: %w", dom.ErrNoHandler), http.StatusNotFound},
		{lerrors.New(lerrors.CodeSuperseded).Wrap(shell.ErrSuperseded), http.StatusConflict},
		{lerrors.New(lerrors.CodeFragmentFetch).Wrap(io.EOF), http.StatusBadGateway},
		{lerrors.New(lerrors.CodeMissingContainer), http.StatusUnprocessableEntity},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	sh := shell.New(shell.Config{Doc: dom.New(""), Logger: quietLogger()})
	srv := New(Config{Shell: sh, Logger: quietLogger()})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
