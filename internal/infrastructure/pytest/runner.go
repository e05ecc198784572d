// Package pytest builds and executes pytest invocations with pytest-cov
// coverage instrumentation enabled.
package pytest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"testctl/internal/application"
)

// Runner executes one test suite via the pytest CLI.
type Runner struct {
	// Exec overrides command execution (for testing).
	Exec func(ctx context.Context, env []string, args []string) error
	// LookPath overrides binary lookup (for testing).
	LookPath func(name string) (string, error)
}

// Installed verifies that pytest and coverage are on PATH.
func (r Runner) Installed() error {
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, tool := range []string{"pytest", "coverage"} {
		if _, err := lookPath(tool); err != nil {
			return fmt.Errorf("required tool %q is not installed: %w", tool, err)
		}
	}
	return nil
}

// Run executes pytest for the given invocation, pointing COVERAGE_FILE at the
// per-type data file.
func (r Runner) Run(ctx context.Context, inv application.Invocation) error {
	args := buildArgs(inv)
	env := append(os.Environ(), "COVERAGE_FILE="+inv.DataFile)

	execFn := r.Exec
	if execFn == nil {
		execFn = runCommand
	}
	if err := execFn(ctx, env, args); err != nil {
		return fmt.Errorf("pytest failed: %w", err)
	}
	return nil
}

func buildArgs(inv application.Invocation) []string {
	args := []string{
		"--cov", inv.SourcesDir,
		"--cov-report", "xml:" + inv.XMLReport,
		"--cov-branch",
		"-vv",
	}
	if inv.Debug {
		args = append(args, "--capture=no")
	}
	args = append(args, "--maxfail", strconv.Itoa(inv.MaxFail))
	args = append(args, inv.PassThrough...)
	args = append(args, inv.TestsPath)
	return args
}

func runCommand(ctx context.Context, env []string, args []string) error {
	cmd := exec.CommandContext(ctx, "pytest", args...)
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
