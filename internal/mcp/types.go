// Package mcp provides a Model Context Protocol server for testctl.
package mcp

import (
	"context"

	"testctl/internal/application"
	"testctl/internal/domain"
)

// Service defines the application operations needed by MCP.
// This interface allows for easy mocking in tests.
type Service interface {
	// Tools (actions that may have side effects)
	RunTests(ctx context.Context, opts application.TestOptions) error
	CoverageSummary(ctx context.Context, opts application.ReportOptions) (domain.Summary, error)

	// Resources (read-only queries)
	Detect(ctx context.Context, opts application.DetectOptions) (application.Config, error)
}

// Config holds MCP server configuration.
type Config struct {
	ConfigPath string // Path to .testctl.yaml (default: ".testctl.yaml")
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() Config {
	return Config{
		ConfigPath: ".testctl.yaml",
	}
}

// RunTestsInput defines the input parameters for the run-tests tool.
type RunTestsInput struct {
	ConfigPath string `json:"configPath,omitempty" jsonschema:"description=Path to .testctl.yaml config file"`
	Type       string `json:"type,omitempty" jsonschema:"description=Test type to run (unit or integration)"`
	MaxFail    int    `json:"maxfail,omitempty" jsonschema:"description=Stop after N test failures (0 = no limit)"`
}

// CoverageReportInput defines the input parameters for the coverage-report tool.
type CoverageReportInput struct {
	ConfigPath string `json:"configPath,omitempty" jsonschema:"description=Path to .testctl.yaml config file"`
}

// ToolOutput represents the common output structure for tools.
type ToolOutput struct {
	Passed  bool                  `json:"passed"`
	Summary string                `json:"summary,omitempty"`
	Types   []domain.TypeCoverage `json:"types,omitempty"`
	Total   string                `json:"total,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// coalesce returns value if non-empty, otherwise fallback.
func coalesce(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
