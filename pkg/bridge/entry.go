package bridge

// ModEntry is one installed mod as reported by the host.
type ModEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	File string `json:"file"`
}

// DisplayName is the name shown on cards: Name, else File, else
// "Unknown mod".
func (m ModEntry) DisplayName() string {
	switch {
	case m.Name != "":
		return m.Name
	case m.File != "":
		return m.File
	default:
		return "Unknown mod"
	}
}

// DisplayPath is Path, else File.
func (m ModEntry) DisplayPath() string {
	if m.Path != "" {
		return m.Path
	}
	return m.File
}
