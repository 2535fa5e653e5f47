package theme

import "sync"

// Theme is a color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// FromDark returns Dark for true and Light for false.
func FromDark(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// Parse accepts exactly "dark" or "light".
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// IsDark reports whether t is Dark.
func (t Theme) IsDark() bool { return t == Dark }

// Source records where the current theme came from.
type Source string

const (
	SourcePersisted Source = "persisted"
	SourceSystem    Source = "system"
	SourceExplicit  Source = "explicit"
)

// State is the process-wide theme state. The zero value is ready to use.
type State struct {
	mu     sync.Mutex
	value  Theme
	source Source
}

// Value returns the current theme.
func (s *State) Value() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Source returns where the current theme came from.
func (s *State) Source() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

func (s *State) set(value Theme, source Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.source = source
}
