package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"testctl/internal/domain"
)

// ErrReportMissing is returned by OpenReport when no HTML report has been
// rendered yet.
var ErrReportMissing = errors.New("coverage report not found")

type Service struct {
	ConfigLoader ConfigLoader
	Autodetector Autodetector
	TestRunner   TestRunner
	CoverageTool CoverageTool
	Browser      Browser
	Reporter     ConsoleReporter
	// HistoryFor builds a history store rooted at the given path. Nil
	// disables history recording.
	HistoryFor func(path string) HistoryStore
}

// RunTests executes one test type's suite with coverage instrumentation.
// It is a no-op when the type is not configured or the tests directory does
// not exist.
func (s *Service) RunTests(ctx context.Context, opts TestOptions) error {
	cfg, err := s.loadOrDetect(opts.ConfigPath)
	if err != nil {
		return err
	}
	return s.runTests(ctx, cfg, opts)
}

func (s *Service) runTests(ctx context.Context, cfg Config, opts TestOptions) error {
	if !cfg.HasType(opts.Type) {
		return nil
	}
	if _, err := os.Stat(cfg.TestsDir); err != nil {
		return nil
	}

	if err := s.TestRunner.Installed(); err != nil {
		return err
	}
	if err := s.CoverageTool.Installed(); err != nil {
		return err
	}

	s.Reporter.Header(fmt.Sprintf("Running %s tests", opts.Type))
	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		return err
	}

	inv := Invocation{
		TestsPath:   filepath.Join(cfg.TestsDir, opts.Type),
		SourcesDir:  cfg.SourcesDir,
		XMLReport:   CoverageXML(cfg, opts.Type),
		DataFile:    CoverageData(cfg, opts.Type),
		MaxFail:     opts.MaxFail,
		Debug:       opts.Debug,
		PassThrough: opts.PassThrough,
	}
	if err := s.TestRunner.Run(ctx, inv); err != nil {
		return fmt.Errorf("%s tests failed: %w", opts.Type, err)
	}
	return nil
}

// CoverageReport merges per-type coverage databases and renders the combined
// HTML report.
func (s *Service) CoverageReport(ctx context.Context, opts ReportOptions) error {
	_, err := s.CoverageSummary(ctx, opts)
	return err
}

// CoverageSummary is CoverageReport returning the measured percentages, for
// callers that consume results programmatically.
func (s *Service) CoverageSummary(ctx context.Context, opts ReportOptions) (domain.Summary, error) {
	cfg, err := s.loadOrDetect(opts.ConfigPath)
	if err != nil {
		return domain.Summary{}, err
	}
	return s.coverageReport(ctx, cfg)
}

func (s *Service) coverageReport(ctx context.Context, cfg Config) (domain.Summary, error) {
	if err := s.CoverageTool.Installed(); err != nil {
		return domain.Summary{}, err
	}

	s.Reporter.Header("Generating coverage report")
	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		return domain.Summary{}, err
	}

	// `coverage combine` erases its inputs, so each data file is copied
	// first and the combine runs on the copies.
	var copies []string
	var perType []domain.TypeCoverage
	for _, testType := range cfg.TestTypes {
		dataFile := CoverageData(cfg, testType)
		if _, err := os.Stat(dataFile); err != nil {
			s.Reporter.Warningf("Could not find coverage dat file for %s tests: %s", testType, dataFile)
			continue
		}

		output, err := s.CoverageTool.Report(ctx, dataFile)
		if err != nil {
			return domain.Summary{}, err
		}
		percent, err := domain.TotalPercent(output)
		if err != nil {
			return domain.Summary{}, err
		}
		s.Reporter.Coverage(testType, percent)
		perType = append(perType, domain.TypeCoverage{Type: testType, Percent: percent})

		copyPath := CoverageDataCopy(cfg, testType)
		if err := copyFile(dataFile, copyPath); err != nil {
			return domain.Summary{}, err
		}
		copies = append(copies, copyPath)
	}

	combined := CombinedData(cfg)
	if err := s.CoverageTool.Combine(ctx, combined, copies); err != nil {
		return domain.Summary{}, err
	}
	if err := s.CoverageTool.HTML(ctx, combined, HTMLDir(cfg)); err != nil {
		return domain.Summary{}, err
	}

	output, err := s.CoverageTool.Report(ctx, combined)
	if err != nil {
		return domain.Summary{}, err
	}
	total, err := domain.TotalPercent(output)
	if err != nil {
		return domain.Summary{}, err
	}
	s.Reporter.Total(total)
	s.Reporter.Hintf("Refer to coverage report for full analysis in '%s'\nOr open the report in your default browser with:\n  testctl coverage-open", ReportIndex(cfg))

	summary := domain.Summary{Types: perType, Total: total}
	s.recordHistory(cfg, summary)
	return summary, nil
}

// RunAll runs the unit suite, the integration suite, and the coverage report,
// short-circuiting on the first failure.
func (s *Service) RunAll(ctx context.Context, opts AllOptions) error {
	cfg, err := s.loadOrDetect(opts.ConfigPath)
	if err != nil {
		return err
	}
	s.Reporter.Header("Run all tests, and generate coverage report")
	for _, testType := range []string{"unit", "integration"} {
		runOpts := TestOptions{
			Type:        testType,
			MaxFail:     opts.MaxFail,
			Debug:       opts.Debug,
			PassThrough: opts.PassThrough,
		}
		if err := s.runTests(ctx, cfg, runOpts); err != nil {
			return err
		}
	}
	_, err = s.coverageReport(ctx, cfg)
	return err
}

// OpenReport opens the rendered HTML report in the default browser.
func (s *Service) OpenReport(ctx context.Context, opts OpenOptions) error {
	cfg, err := s.loadOrDetect(opts.ConfigPath)
	if err != nil {
		return err
	}
	index := ReportIndex(cfg)
	if _, err := os.Stat(index); err != nil {
		s.Reporter.Errorf("Could not find coverage report '%s'. Ensure that the report has been built.\nTry one of the following:\n  testctl coverage-report\nor\n  testctl test-all", index)
		return ErrReportMissing
	}
	abs, err := filepath.Abs(index)
	if err != nil {
		return err
	}
	return s.Browser.Open("file://" + abs)
}

// Detect returns the autodetected project configuration.
func (s *Service) Detect(ctx context.Context, opts DetectOptions) (Config, error) {
	return s.Autodetector.Detect()
}

// Watch re-runs one test type whenever source or test files change.
func (s *Service) Watch(ctx context.Context, opts WatchOptions, watcher FileWatcher, callback WatchCallback) error {
	cfg, err := s.loadOrDetect(opts.ConfigPath)
	if err != nil {
		return err
	}

	for _, dir := range []string{cfg.SourcesDir, cfg.TestsDir} {
		if _, statErr := os.Stat(dir); statErr != nil {
			continue
		}
		if err := watcher.WatchDir(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	runOpts := TestOptions{Type: opts.Type, MaxFail: opts.MaxFail, Debug: opts.Debug}

	runNumber := 1
	runErr := s.runTests(ctx, cfg, runOpts)
	if callback != nil {
		callback(runNumber, runErr)
	}

	events := watcher.Events(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-events:
			if !ok {
				return nil
			}
			runNumber++
			runErr := s.runTests(ctx, cfg, runOpts)
			if callback != nil {
				callback(runNumber, runErr)
			}
		}
	}
}

func (s *Service) loadOrDetect(configPath string) (Config, error) {
	exists, err := s.ConfigLoader.Exists(configPath)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if !exists {
		cfg, err = s.Autodetector.Detect()
	} else {
		cfg, err = s.ConfigLoader.Load(configPath)
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (s *Service) recordHistory(cfg Config, summary domain.Summary) {
	if s.HistoryFor == nil {
		return
	}
	store := s.HistoryFor(HistoryPath(cfg))
	entry := domain.HistoryEntry{
		Timestamp: time.Now().UTC(),
		Types:     summary.Types,
		Total:     summary.Total,
	}
	if err := store.Append(entry); err != nil {
		s.Reporter.Warningf("Could not record coverage history: %v", err)
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
