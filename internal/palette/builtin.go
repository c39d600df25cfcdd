package palette

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// DefaultName is the built-in palette used when none is configured.
const DefaultName = "oklab"

var (
	builtinOnce sync.Once
	builtins    map[string]*Palette
	builtinErr  error
)

func loadBuiltins() {
	builtins = make(map[string]*Palette)
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		builtinErr = fmt.Errorf("failed to read built-in palettes: %w", err)
		return
	}
	for _, e := range entries {
		f, err := builtinFS.Open(path.Join("builtin", e.Name()))
		if err != nil {
			builtinErr = fmt.Errorf("failed to open built-in palette %s: %w", e.Name(), err)
			return
		}
		p, err := LoadTOML(f, strings.TrimSuffix(e.Name(), ".toml"))
		f.Close()
		if err != nil {
			builtinErr = fmt.Errorf("built-in palette %s: %w", e.Name(), err)
			return
		}
		builtins[p.Name] = p
	}
}

// Names returns the names of the built-in palettes, sorted.
func Names() []string {
	builtinOnce.Do(loadBuiltins)
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Builtin returns a copy of the named built-in palette.
func Builtin(name string) (*Palette, error) {
	builtinOnce.Do(loadBuiltins)
	if builtinErr != nil {
		return nil, builtinErr
	}
	p, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownPalette, name, strings.Join(Names(), ", "))
	}
	return p.Clone(), nil
}

// Resolve loads a palette from a file when path is set, otherwise the named
// built-in.
func Resolve(name, file string) (*Palette, error) {
	if file != "" {
		return LoadFile(file)
	}
	if name == "" {
		name = DefaultName
	}
	return Builtin(name)
}
