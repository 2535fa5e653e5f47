package mods

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hoi-launcher/shell/pkg/bridge"
)

// DescriptorExt is the extension of the game's mod descriptor files.
const DescriptorExt = ".mod"

// ParseDescriptor reads the top-level name and path of a mod descriptor.
// Blocks such as tags={...} are skipped; archive stands in for a missing
// path.
func ParseDescriptor(r io.Reader) (bridge.ModEntry, error) {
	var (
		e       bridge.ModEntry
		archive string
		depth   int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if depth > 0 || strings.HasSuffix(line, "{") {
			depth += strings.Count(line, "{") - strings.Count(line, "}")
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch strings.TrimSpace(key) {
		case "name":
			e.Name = value
		case "path":
			e.Path = value
		case "archive":
			archive = value
		}
	}
	if err := sc.Err(); err != nil {
		return bridge.ModEntry{}, err
	}
	if e.Path == "" {
		e.Path = archive
	}
	return e, nil
}

// ScanDir lists the descriptors at the root of fsys, sorted by file name.
// Descriptors that cannot be read are skipped.
func ScanDir(fsys fs.FS) ([]bridge.ModEntry, error) {
	files, err := fs.Glob(fsys, "*"+DescriptorExt)
	if err != nil {
		return nil, err
	}
	if files == nil {
		// Glob does not report a missing root.
		if _, err := fs.Stat(fsys, "."); err != nil {
			return nil, err
		}
	}
	sort.Strings(files)

	entries := make([]bridge.ModEntry, 0, len(files))
	for _, name := range files {
		f, err := fsys.Open(name)
		if err != nil {
			continue
		}
		e, err := ParseDescriptor(f)
		f.Close()
		if err != nil {
			continue
		}
		e.File = path.Base(name)
		entries = append(entries, e)
	}
	return entries, nil
}

// DirFallback answers ListCommand from the descriptors in fsys. It fits
// bridge.Env.Fallback and rejects every other command.
func DirFallback(fsys fs.FS) bridge.InvokeFunc {
	return func(ctx context.Context, cmd string, _ map[string]any) (any, error) {
		if cmd != ListCommand {
			return nil, fmt.Errorf("mods: %q is not answered from the mods directory", cmd)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ScanDir(fsys)
	}
}
