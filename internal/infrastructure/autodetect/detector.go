// Package autodetect guesses project layout when no config file is present.
package autodetect

import (
	"os"
	"path/filepath"
	"sort"

	"testctl/internal/application"
)

type Detector struct {
	// Root overrides the project root (for testing). Defaults to the
	// working directory.
	Root string
}

func (d Detector) Detect() (application.Config, error) {
	root := d.Root
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return application.Config{}, err
		}
	}

	cfg := application.Config{
		Version:    1,
		TestsDir:   firstDir(root, "tests", "test"),
		SourcesDir: detectSources(root),
		ReportsDir: "reports",
	}
	cfg.TestTypes = detectTypes(filepath.Join(root, cfg.TestsDir))
	return cfg, nil
}

func firstDir(root string, candidates ...string) string {
	for _, name := range candidates {
		info, err := os.Stat(filepath.Join(root, name))
		if err == nil && info.IsDir() {
			return name
		}
	}
	return candidates[0]
}

// detectSources prefers a src/ layout, then falls back to the first top-level
// package directory.
func detectSources(root string) string {
	if info, err := os.Stat(filepath.Join(root, "src")); err == nil && info.IsDir() {
		return "src"
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return "src"
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, entry.Name(), "__init__.py")); err == nil {
			return entry.Name()
		}
	}
	return "src"
}

// detectTypes treats each subdirectory of the tests dir as a test type.
func detectTypes(testsPath string) []string {
	entries, err := os.ReadDir(testsPath)
	if err != nil {
		return []string{"unit", "integration"}
	}
	ignore := map[string]struct{}{"__pycache__": {}, "fixtures": {}, "testdata": {}}
	var types []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := ignore[name]; ok {
			continue
		}
		if name[0] == '.' || name[0] == '_' {
			continue
		}
		types = append(types, name)
	}
	if len(types) == 0 {
		return []string{"unit", "integration"}
	}
	sort.Strings(types)
	return types
}
