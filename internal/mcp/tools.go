package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"testctl/internal/application"
)

// handleRunTests implements the run-tests tool.
func (s *Server) handleRunTests(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input RunTestsInput,
) (*mcp.CallToolResult, ToolOutput, error) {
	testType := input.Type
	if testType == "" {
		testType = "unit"
	}

	err := s.svc.RunTests(ctx, application.TestOptions{
		ConfigPath: coalesce(input.ConfigPath, s.config.ConfigPath),
		Type:       testType,
		MaxFail:    input.MaxFail,
	})

	output := ToolOutput{Passed: err == nil}
	if err != nil {
		output.Error = err.Error()
		output.Summary = fmt.Sprintf("%s tests failed", testType)
	} else {
		output.Summary = fmt.Sprintf("%s tests passed", testType)
	}

	return nil, output, nil
}

// handleCoverageReport implements the coverage-report tool.
func (s *Server) handleCoverageReport(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CoverageReportInput,
) (*mcp.CallToolResult, ToolOutput, error) {
	summary, err := s.svc.CoverageSummary(ctx, application.ReportOptions{
		ConfigPath: coalesce(input.ConfigPath, s.config.ConfigPath),
	})

	output := ToolOutput{
		Passed: err == nil,
		Types:  summary.Types,
		Total:  summary.Total,
	}
	if err != nil {
		output.Error = err.Error()
		output.Summary = "Coverage report failed"
	} else {
		output.Summary = fmt.Sprintf("Total coverage: %s", summary.Total)
	}

	return nil, output, nil
}
