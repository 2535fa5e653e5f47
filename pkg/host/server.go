package host

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/hoi-launcher/shell/pkg/bridge"
)

// Server is a development host. It answers set_theme by recording the
// requested theme and list_mods from a fixed catalog.
type Server struct {
	catalog []bridge.ModEntry
	shape   Shape
	logger  *slog.Logger

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	dark    bool
	onTheme func(dark bool)
	clients int
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithShape sets how list_mods results are wrapped.
func WithShape(shape Shape) ServerOption {
	return func(s *Server) {
		s.shape = shape
	}
}

// WithServerLogger sets the server logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithThemeHandler registers a callback run for every set_theme.
func WithThemeHandler(fn func(dark bool)) ServerOption {
	return func(s *Server) {
		s.onTheme = fn
	}
}

// NewServer creates a development host serving catalog.
func NewServer(catalog []bridge.ModEntry, opts ...ServerOption) *Server {
	s := &Server{
		catalog: append([]bridge.ModEntry(nil), catalog...),
		shape:   ShapeDirect,
		logger:  slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local development host
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServeHTTP upgrades the request and serves frames until the peer leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("host upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.clients--
		s.mu.Unlock()
	}()

	for {
		var req Frame
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if err := conn.WriteJSON(s.handle(req)); err != nil {
			return
		}
	}
}

func (s *Server) handle(req Frame) Frame {
	cmd, args := req.command()
	resp := Frame{ID: req.ID}

	switch cmd {
	case CmdSetTheme:
		dark, _ := args["dark"].(bool)
		s.mu.Lock()
		s.dark = dark
		fn := s.onTheme
		s.mu.Unlock()
		if fn != nil {
			fn(dark)
		}
		s.logger.Info("host theme set", "dark", dark)
		resp.Result = json.RawMessage("null")

	case CmdListMods:
		result, err := wrap(s.shape, s.catalog)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Result = result

	default:
		resp.Error = fmt.Sprintf("unknown command %q", cmd)
	}
	return resp
}

// Dark reports the last theme requested through set_theme.
func (s *Server) Dark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients
}
