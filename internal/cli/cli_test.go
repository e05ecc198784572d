package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"testctl/internal/application"
	"testctl/internal/domain"
)

type fakeService struct {
	testOpts   *application.TestOptions
	testErr    error
	reportErr  error
	summary    domain.Summary
	summaryErr error
	allOpts    *application.AllOptions
	allErr     error
	openErr    error
	detectCfg  application.Config
	detectErr  error
}

func (f *fakeService) RunTests(_ context.Context, opts application.TestOptions) error {
	f.testOpts = &opts
	return f.testErr
}
func (f *fakeService) CoverageReport(_ context.Context, _ application.ReportOptions) error {
	return f.reportErr
}
func (f *fakeService) CoverageSummary(_ context.Context, _ application.ReportOptions) (domain.Summary, error) {
	return f.summary, f.summaryErr
}
func (f *fakeService) RunAll(_ context.Context, opts application.AllOptions) error {
	f.allOpts = &opts
	return f.allErr
}
func (f *fakeService) OpenReport(_ context.Context, _ application.OpenOptions) error {
	return f.openErr
}
func (f *fakeService) Detect(_ context.Context, _ application.DetectOptions) (application.Config, error) {
	if f.detectErr != nil {
		return application.Config{}, f.detectErr
	}
	return f.detectCfg, nil
}
func (f *fakeService) Watch(_ context.Context, _ application.WatchOptions, _ application.FileWatcher, _ application.WatchCallback) error {
	return nil
}

func TestRunUsage(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"testctl"}, &out, &out, &fakeService{})
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(out.String(), "test-unit") {
		t.Fatalf("expected usage text, got: %s", out.String())
	}
}

func TestRunUnknown(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"testctl", "nope"}, &out, &out, &fakeService{})
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRunTestUnit(t *testing.T) {
	var out bytes.Buffer
	svc := &fakeService{}
	code := Run([]string{"testctl", "test-unit", "-maxfail", "2", "-debug", "--", "-k", "smoke"}, &out, &out, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if svc.testOpts == nil {
		t.Fatal("expected RunTests to be called")
	}
	if svc.testOpts.Type != "unit" {
		t.Fatalf("expected unit, got %s", svc.testOpts.Type)
	}
	if svc.testOpts.MaxFail != 2 || !svc.testOpts.Debug {
		t.Fatalf("flags not forwarded: %+v", svc.testOpts)
	}
	if len(svc.testOpts.PassThrough) != 2 || svc.testOpts.PassThrough[0] != "-k" {
		t.Fatalf("unexpected passthrough: %v", svc.testOpts.PassThrough)
	}
	if svc.testOpts.ConfigPath != defaultConfigPath {
		t.Fatalf("unexpected config path: %s", svc.testOpts.ConfigPath)
	}
}

func TestRunTestIntegrationFailure(t *testing.T) {
	var out bytes.Buffer
	svc := &fakeService{testErr: errors.New("integration tests failed")}
	code := Run([]string{"testctl", "test-integration"}, &out, &out, svc)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if svc.testOpts.Type != "integration" {
		t.Fatalf("expected integration, got %s", svc.testOpts.Type)
	}
}

func TestRunCoverageReportError(t *testing.T) {
	var out bytes.Buffer
	svc := &fakeService{reportErr: errors.New("coverage report failed")}
	code := Run([]string{"testctl", "coverage-report"}, &out, &out, svc)
	if code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
}

func TestRunTestAll(t *testing.T) {
	var out bytes.Buffer
	svc := &fakeService{}
	code := Run([]string{"testctl", "test-all", "-maxfail", "1"}, &out, &out, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if svc.allOpts == nil || svc.allOpts.MaxFail != 1 {
		t.Fatalf("expected RunAll options, got %+v", svc.allOpts)
	}
}

func TestRunCoverageOpenError(t *testing.T) {
	var out bytes.Buffer
	svc := &fakeService{openErr: application.ErrReportMissing}
	code := Run([]string{"testctl", "coverage-open"}, &out, &out, svc)
	if code != 4 {
		t.Fatalf("expected exit 4, got %d", code)
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"testctl", "version"}, &out, &out, &fakeService{})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "testctl") {
		t.Fatalf("expected version output, got: %s", out.String())
	}
}

func TestRunInitNoInteractive(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), ".testctl.yaml")
	svc := &fakeService{detectCfg: application.Config{
		Version:   1,
		TestTypes: []string{"unit"},
		TestsDir:  "tests",
	}}
	code := Run([]string{"testctl", "init", "-no-interactive", "-config", path}, &out, &out, svc)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if !strings.Contains(string(data), "- unit") {
		t.Fatalf("unexpected config contents: %s", data)
	}
}

func TestRunInitExistingConfig(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), ".testctl.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	svc := &fakeService{}
	code := Run([]string{"testctl", "init", "-no-interactive", "-config", path}, &out, &out, svc)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Fatalf("expected already exists error, got: %s", out.String())
	}
}

func TestRunInitWizardCancelled(t *testing.T) {
	orig := initWizard
	initWizard = func(cfg application.Config, _ io.Writer, _ io.Reader) (application.Config, bool, error) {
		return cfg, false, nil
	}
	defer func() { initWizard = orig }()

	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), ".testctl.yaml")
	code := Run([]string{"testctl", "init", "-config", path}, &out, &out, &fakeService{})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "Init cancelled") {
		t.Fatalf("expected cancel message, got: %s", out.String())
	}
	if _, err := os.Stat(path); err == nil {
		t.Fatal("expected no config written")
	}
}

func TestWriteConfigFileStdout(t *testing.T) {
	var out bytes.Buffer
	cfg := application.Config{Version: 1, TestTypes: []string{"unit"}}
	if err := writeConfigFile("-", cfg, &out, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(out.String(), "version: 1") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestPassThrough(t *testing.T) {
	if got := passThrough([]string{"--", "-k", "smoke"}); len(got) != 2 || got[0] != "-k" {
		t.Fatalf("expected separator stripped, got %v", got)
	}
	if got := passThrough([]string{"-k", "smoke"}); len(got) != 2 {
		t.Fatalf("expected args preserved, got %v", got)
	}
	if got := passThrough(nil); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}
