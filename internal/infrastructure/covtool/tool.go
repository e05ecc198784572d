// Package covtool wraps the coverage.py command line: report, combine, html.
package covtool

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Tool invokes the coverage CLI. The data file each subcommand operates on is
// selected through the COVERAGE_FILE environment variable.
type Tool struct {
	// Exec overrides command execution (for testing).
	Exec func(ctx context.Context, env []string, args []string) error
	// ExecOutput overrides command execution with captured stdout (for testing).
	ExecOutput func(ctx context.Context, env []string, args []string) ([]byte, error)
	// LookPath overrides binary lookup (for testing).
	LookPath func(name string) (string, error)
}

// Installed verifies that the coverage tool is on PATH.
func (t Tool) Installed() error {
	lookPath := t.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath("coverage"); err != nil {
		return fmt.Errorf("required tool %q is not installed: %w", "coverage", err)
	}
	return nil
}

// Report returns the textual coverage summary for a data file.
func (t Tool) Report(ctx context.Context, dataFile string) (string, error) {
	execFn := t.ExecOutput
	if execFn == nil {
		execFn = runCommandOutput
	}
	out, err := execFn(ctx, coverageEnv(dataFile), []string{"report"})
	if err != nil {
		return "", fmt.Errorf("coverage report failed: %w", err)
	}
	return string(out), nil
}

// Combine merges data files into the combined database.
func (t Tool) Combine(ctx context.Context, combined string, dataFiles []string) error {
	args := append([]string{"combine"}, dataFiles...)
	execFn := t.Exec
	if execFn == nil {
		execFn = runCommand
	}
	if err := execFn(ctx, coverageEnv(combined), args); err != nil {
		return fmt.Errorf("coverage combine failed: %w", err)
	}
	return nil
}

// HTML renders an HTML report directory from the combined database.
func (t Tool) HTML(ctx context.Context, combined, outDir string) error {
	execFn := t.Exec
	if execFn == nil {
		execFn = runCommand
	}
	if err := execFn(ctx, coverageEnv(combined), []string{"html", "-d", outDir}); err != nil {
		return fmt.Errorf("coverage html failed: %w", err)
	}
	return nil
}

func coverageEnv(dataFile string) []string {
	return append(os.Environ(), "COVERAGE_FILE="+dataFile)
}

func runCommand(ctx context.Context, env []string, args []string) error {
	cmd := exec.CommandContext(ctx, "coverage", args...)
	cmd.Env = env
	cmd.Stdout = io.Discard
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func runCommandOutput(ctx context.Context, env []string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "coverage", args...)
	cmd.Env = env
	cmd.Stderr = os.Stderr
	return cmd.Output()
}
