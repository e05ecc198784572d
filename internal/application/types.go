package application

import (
	"context"
	"slices"

	"testctl/internal/domain"
)

// Config is the immutable project configuration, loaded once at startup.
type Config struct {
	Version    int
	TestTypes  []string // named test categories, e.g. "unit", "integration"
	TestsDir   string   // root directory holding one subdirectory per test type
	SourcesDir string   // directory measured by coverage instrumentation
	ReportsDir string   // destination for coverage artifacts and the HTML report
}

// HasType reports whether a test type is configured.
func (c Config) HasType(name string) bool {
	return slices.Contains(c.TestTypes, name)
}

type ConfigLoader interface {
	Load(path string) (Config, error)
	Exists(path string) (bool, error)
}

type Autodetector interface {
	Detect() (Config, error)
}

// Invocation describes one pytest run for a single test type.
type Invocation struct {
	TestsPath   string   // directory holding the suite, e.g. tests/unit
	SourcesDir  string   // --cov target
	XMLReport   string   // --cov-report xml: destination
	DataFile    string   // COVERAGE_FILE the run writes to
	MaxFail     int      // stop after N failures, 0 means no limit
	Debug       bool     // disable output capture so debuggers can attach
	PassThrough []string // arguments forwarded verbatim to pytest
}

// TestRunner executes a test suite with coverage instrumentation enabled.
type TestRunner interface {
	// Installed verifies the external test toolchain is available.
	Installed() error
	Run(ctx context.Context, inv Invocation) error
}

// CoverageTool wraps the coverage.py command line.
type CoverageTool interface {
	Installed() error
	// Report returns the textual summary for a coverage data file.
	Report(ctx context.Context, dataFile string) (string, error)
	// Combine merges data files into combined. The tool erases its inputs.
	Combine(ctx context.Context, combined string, dataFiles []string) error
	// HTML renders an HTML report directory from combined.
	HTML(ctx context.Context, combined, outDir string) error
}

// Browser opens a URL in the default system browser.
type Browser interface {
	Open(url string) error
}

// HistoryStore persists coverage run history.
type HistoryStore interface {
	Load() (domain.History, error)
	Save(h domain.History) error
	Append(entry domain.HistoryEntry) error
}

// ConsoleReporter prints human-readable progress and results.
type ConsoleReporter interface {
	Header(text string)
	Coverage(testType, percent string)
	Total(percent string)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Hintf(format string, args ...any)
}

// FileWatcher provides file change notifications.
type FileWatcher interface {
	WatchDir(root string) error
	Events(ctx context.Context) <-chan struct{}
	Close() error
}

// WatchCallback is invoked after each watch-triggered run.
type WatchCallback func(runNumber int, err error)

type TestOptions struct {
	ConfigPath  string
	Type        string
	MaxFail     int
	Debug       bool
	PassThrough []string
}

type ReportOptions struct {
	ConfigPath string
}

type AllOptions struct {
	ConfigPath  string
	MaxFail     int
	Debug       bool
	PassThrough []string
}

type OpenOptions struct {
	ConfigPath string
}

type WatchOptions struct {
	ConfigPath string
	Type       string
	MaxFail    int
	Debug      bool
}

type DetectOptions struct {
}
