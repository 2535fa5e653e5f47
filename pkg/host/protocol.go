package host

import (
	"encoding/json"

	"github.com/hoi-launcher/shell/pkg/bridge"
)

// Commands understood by the host.
const (
	CmdSetTheme = "set_theme"
	CmdListMods = "list_mods"
)

// Frame is one protocol message in either direction.
type Frame struct {
	ID      uint64          `json:"id"`
	Cmd     string          `json:"cmd,omitempty"`
	Args    map[string]any  `json:"args,omitempty"`
	Request *bridge.Request `json:"request,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// command returns the command and arguments of a request frame, whichever
// form it uses.
func (f Frame) command() (string, map[string]any) {
	if f.Request != nil {
		return f.Request.Cmd, f.Request.Args
	}
	return f.Cmd, f.Args
}

// Shape selects how the server wraps the list_mods result.
type Shape string

const (
	ShapeDirect  Shape = "direct"
	ShapePayload Shape = "payload"
	ShapeData    Shape = "data"
	ShapeText    Shape = "text"
)

// ParseShape validates a shape name. The empty string means ShapeDirect.
func ParseShape(s string) (Shape, bool) {
	switch Shape(s) {
	case "", ShapeDirect:
		return ShapeDirect, true
	case ShapePayload, ShapeData, ShapeText:
		return Shape(s), true
	}
	return "", false
}

// wrap encodes entries in the given shape.
func wrap(shape Shape, entries []bridge.ModEntry) (json.RawMessage, error) {
	if entries == nil {
		entries = []bridge.ModEntry{}
	}
	var v any = entries
	switch shape {
	case ShapePayload:
		v = map[string]any{"payload": entries}
	case ShapeData:
		v = map[string]any{"data": entries}
	case ShapeText:
		b, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		v = string(b)
	}
	return json.Marshal(v)
}
