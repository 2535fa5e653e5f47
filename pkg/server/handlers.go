package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	lerrors "github.com/hoi-launcher/shell/internal/errors"
	"github.com/hoi-launcher/shell/pkg/dom"
	"github.com/hoi-launcher/shell/pkg/shell"
	"github.com/hoi-launcher/shell/pkg/theme"
)

// State is the JSON view of the document.
type State struct {
	Theme     string     `json:"theme"`
	Hash      string     `json:"hash"`
	Overlay   string     `json:"overlay,omitempty"`
	Resources []Resource `json:"resources"`
	Events    []Event    `json:"events"`
}

// Resource is an injected page resource.
type Resource struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// Event is a user-facing event such as a toast.
type Event struct {
	Name   string         `json:"name"`
	Detail map[string]any `json:"detail,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Snapshot captures the current document state.
func Snapshot(doc *dom.Document) State {
	st := State{
		Theme:     doc.RootAttr(theme.AttrName),
		Hash:      doc.Hash(),
		Resources: []Resource{},
		Events:    []Event{},
	}
	if o, ok := doc.CurrentOverlay(); ok {
		st.Overlay = o.ID
	}
	for _, r := range doc.Resources() {
		kind := "script"
		if r.Kind == dom.Stylesheet {
			kind = "stylesheet"
		}
		st.Resources = append(st.Resources, Resource{ID: r.ID, Kind: kind, URL: r.URL})
	}
	for _, e := range doc.Events() {
		st.Events = append(st.Events, Event{Name: e.Name, Detail: e.Detail})
	}
	return st
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.shell.WriteHTML(&buf); err != nil {
		s.logger.Error("render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Snapshot(s.shell.Document()))
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "page")
	id := shell.Home
	if name != string(shell.Home) {
		var ok bool
		if id, ok = shell.ParsePage(name); !ok {
			s.writeError(w, lerrors.New(lerrors.CodeUnknownPage).WithDetailf("page %q", name))
			return
		}
	}

	if err := s.shell.Navigate(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Snapshot(s.shell.Document()))
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	arg := r.URL.Query().Get("arg")

	if err := s.shell.Document().Click(r.Context(), target, arg); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Snapshot(s.shell.Document()))
}

// statusFor maps launcher errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dom.ErrNoHandler), lerrors.HasCode(err, lerrors.CodeUnknownPage):
		return http.StatusNotFound
	case lerrors.HasCode(err, lerrors.CodeSuperseded):
		return http.StatusConflict
	case lerrors.HasCode(err, lerrors.CodeFragmentFetch):
		return http.StatusBadGateway
	case lerrors.HasCode(err, lerrors.CodeFragmentParse), lerrors.HasCode(err, lerrors.CodeMissingContainer):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	var le *lerrors.LauncherError
	if errors.As(err, &le) {
		body.Code = le.Code
	}
	s.writeJSON(w, statusFor(err), body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("encode response failed", "error", err)
	}
}
