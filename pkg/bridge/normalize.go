package bridge

import (
	"encoding/json"
	"fmt"
)

// Normalize folds a raw host result into a list of mods. It reports false
// when raw has none of the accepted shapes:
//
//   - a sequence, used as-is
//   - an object whose "payload" is a sequence
//   - an object whose "data" is a sequence
//   - text that parses as a JSON sequence
//
// Values of other Go types are passed through a JSON round trip and then
// matched against the sequence and object shapes.
func Normalize(raw any) ([]ModEntry, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case string:
		return fromText([]byte(v))
	case json.RawMessage:
		return fromText(v)
	case []byte:
		return fromText(v)
	case map[string]any:
		return fromObject(v)
	}
	if entries, ok := fromSequence(raw); ok {
		return entries, true
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, false
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil, false
	}
	if obj, ok := decoded.(map[string]any); ok {
		return fromObject(obj)
	}
	return fromSequence(decoded)
}

func fromText(b []byte) ([]ModEntry, bool) {
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil, false
	}
	return fromSequence(decoded)
}

func fromObject(obj map[string]any) ([]ModEntry, bool) {
	if entries, ok := fromSequence(obj["payload"]); ok {
		return entries, true
	}
	return fromSequence(obj["data"])
}

func fromSequence(v any) ([]ModEntry, bool) {
	switch s := v.(type) {
	case []ModEntry:
		return s, true
	case []*ModEntry:
		out := make([]ModEntry, 0, len(s))
		for _, e := range s {
			if e != nil {
				out = append(out, *e)
			}
		}
		return out, true
	case []map[string]any:
		out := make([]ModEntry, 0, len(s))
		for _, m := range s {
			out = append(out, entryFromMap(m))
		}
		return out, true
	case []any:
		out := make([]ModEntry, 0, len(s))
		for _, item := range s {
			out = append(out, entryFrom(item))
		}
		return out, true
	}
	return nil, false
}

func entryFrom(item any) ModEntry {
	switch e := item.(type) {
	case ModEntry:
		return e
	case *ModEntry:
		if e != nil {
			return *e
		}
	case map[string]any:
		return entryFromMap(e)
	}
	return ModEntry{}
}

func entryFromMap(m map[string]any) ModEntry {
	return ModEntry{
		Name: stringField(m["name"]),
		Path: stringField(m["path"]),
		File: stringField(m["file"]),
	}
}

func stringField(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
