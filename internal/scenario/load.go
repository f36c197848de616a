package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadFile reads a single scenario file, dispatching on extension.
// The scenario name is the file's base name without the extension.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".scn":
		return ParseSCN(f, name)
	case ".yaml", ".yml":
		return ParseYAML(f, name)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported scenario format", ErrMalformed, path)
	}
}

// LoadDir loads every scenario file directly under dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario dir: %w", err)
	}

	var paths []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".scn", ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))

	for _, p := range paths {
		sc, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}

	return scenarios, nil
}
