// Package discovery locates benchmark data on disk: circuit models and
// the scenario files that belong to them.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Target pairs one circuit model file with its scenario files.
type Target struct {
	// ModelName is the model file's base name without the extension.
	ModelName string

	// ModelPath is the absolute path to the .xml or .bench file.
	ModelPath string

	// ScenarioPaths are the absolute paths to the model's scenario files,
	// sorted by name. May be empty.
	ScenarioPaths []string
}

// HasScenarios returns true if any scenario files were found for the model.
func (t Target) HasScenarios() bool {
	return len(t.ScenarioPaths) > 0
}

// Discover scans a benchmark data root laid out as
//
//	<root>/models/<name>.xml|.bench
//	<root>/scenarios/<name>/*.scn|*.yaml|*.yml
//
// and returns one Target per model, sorted by model name.
func Discover(root string) ([]Target, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	modelsDir := filepath.Join(absRoot, "models")
	entries, err := os.ReadDir(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("reading models dir: %w", err)
	}

	var targets []Target

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".xml" && ext != ".bench" {
			continue
		}

		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))

		scenarios, err := scenarioFiles(filepath.Join(absRoot, "scenarios", name))
		if err != nil {
			return nil, err
		}

		targets = append(targets, Target{
			ModelName:     name,
			ModelPath:     filepath.Join(modelsDir, e.Name()),
			ScenarioPaths: scenarios,
		})
	}

	sort.Slice(targets, func(i, j int) bool {
		return targets[i].ModelName < targets[j].ModelName
	})

	return targets, nil
}

// scenarioFiles lists a model's scenario files. A missing directory just
// means the model has no scenarios yet.
func scenarioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scenarios dir: %w", err)
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
	return paths, nil
}
