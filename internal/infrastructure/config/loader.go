package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"testctl/internal/application"
)

type Loader struct{}

type fileConfig struct {
	Version    int      `yaml:"version"`
	TestTypes  []string `yaml:"test_types"`
	TestsDir   string   `yaml:"tests_dir"`
	SourcesDir string   `yaml:"sources_dir"`
	ReportsDir string   `yaml:"reports_dir"`
}

func (l Loader) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (l Loader) Load(path string) (application.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return application.Config{}, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return application.Config{}, err
	}

	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if cfg.Version != 1 {
		return application.Config{}, fmt.Errorf("unsupported config version %d", cfg.Version)
	}

	out := application.Config{
		Version:    cfg.Version,
		TestTypes:  cfg.TestTypes,
		TestsDir:   cfg.TestsDir,
		SourcesDir: cfg.SourcesDir,
		ReportsDir: cfg.ReportsDir,
	}
	applyDefaults(&out)
	return out, nil
}

func applyDefaults(cfg *application.Config) {
	if len(cfg.TestTypes) == 0 {
		cfg.TestTypes = []string{"unit", "integration"}
	}
	if cfg.TestsDir == "" {
		cfg.TestsDir = "tests"
	}
	if cfg.SourcesDir == "" {
		cfg.SourcesDir = "src"
	}
	if cfg.ReportsDir == "" {
		cfg.ReportsDir = "reports"
	}
}

func Write(w io.Writer, cfg application.Config) error {
	version := cfg.Version
	if version == 0 {
		version = 1
	}
	out := fileConfig{
		Version:    version,
		TestTypes:  cfg.TestTypes,
		TestsDir:   cfg.TestsDir,
		SourcesDir: cfg.SourcesDir,
		ReportsDir: cfg.ReportsDir,
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return enc.Encode(out)
}
