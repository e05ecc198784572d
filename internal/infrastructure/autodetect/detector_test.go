package autodetect

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
}

func TestDetectSrcLayout(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "src", "tests/unit", "tests/integration")

	cfg, err := Detector{Root: root}.Detect()
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if cfg.TestsDir != "tests" || cfg.SourcesDir != "src" || cfg.ReportsDir != "reports" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.TestTypes) != 2 || cfg.TestTypes[0] != "integration" || cfg.TestTypes[1] != "unit" {
		t.Fatalf("expected sorted test types, got %v", cfg.TestTypes)
	}
}

func TestDetectPackageLayout(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "mypkg", "test/unit")
	if err := os.WriteFile(filepath.Join(root, "mypkg", "__init__.py"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Detector{Root: root}.Detect()
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if cfg.SourcesDir != "mypkg" {
		t.Fatalf("expected package dir, got %s", cfg.SourcesDir)
	}
	if cfg.TestsDir != "test" {
		t.Fatalf("expected test dir fallback, got %s", cfg.TestsDir)
	}
}

func TestDetectIgnoresNonTypeDirs(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "tests/unit", "tests/__pycache__", "tests/fixtures", "tests/.cache", "tests/_helpers")

	cfg, err := Detector{Root: root}.Detect()
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(cfg.TestTypes) != 1 || cfg.TestTypes[0] != "unit" {
		t.Fatalf("expected only unit, got %v", cfg.TestTypes)
	}
}

func TestDetectEmptyProject(t *testing.T) {
	cfg, err := Detector{Root: t.TempDir()}.Detect()
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if cfg.TestsDir != "tests" || cfg.SourcesDir != "src" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if len(cfg.TestTypes) != 2 {
		t.Fatalf("expected default types, got %v", cfg.TestTypes)
	}
}
