package application

import "path/filepath"

// Artifact locations inside the reports directory. The names are shared with
// the coverage.py toolchain across runs, so they are fixed rather than
// configurable.

// CoverageData is the per-type coverage database written by the test run.
func CoverageData(cfg Config, testType string) string {
	return filepath.Join(cfg.ReportsDir, "coverage-"+testType+".dat")
}

// CoverageXML is the per-type XML coverage artifact.
func CoverageXML(cfg Config, testType string) string {
	return filepath.Join(cfg.ReportsDir, "coverage-"+testType+".xml")
}

// CoverageDataCopy is the scratch copy consumed by `coverage combine`,
// which erases its inputs.
func CoverageDataCopy(cfg Config, testType string) string {
	return filepath.Join(cfg.ReportsDir, "coverage-"+testType+"-copy.dat")
}

// CombinedData is the merged coverage database for all test types.
func CombinedData(cfg Config) string {
	return filepath.Join(cfg.ReportsDir, "coverage.dat")
}

// HTMLDir is the rendered HTML report directory.
func HTMLDir(cfg Config) string {
	return filepath.Join(cfg.ReportsDir, "coverage-report")
}

// ReportIndex is the entry point of the rendered HTML report.
func ReportIndex(cfg Config) string {
	return filepath.Join(HTMLDir(cfg), "index.html")
}

// HistoryPath is the coverage run history log.
func HistoryPath(cfg Config) string {
	return filepath.Join(cfg.ReportsDir, "history.json")
}
