package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"testctl/internal/application"
	"testctl/internal/domain"
	"testctl/internal/infrastructure/autodetect"
	"testctl/internal/infrastructure/browser"
	"testctl/internal/infrastructure/config"
	"testctl/internal/infrastructure/covtool"
	"testctl/internal/infrastructure/history"
	"testctl/internal/infrastructure/pytest"
	"testctl/internal/infrastructure/report"
	"testctl/internal/infrastructure/watcher"
	"testctl/internal/infrastructure/wizard"
	"testctl/internal/mcp"
)

const defaultConfigPath = ".testctl.yaml"

type Service interface {
	RunTests(ctx context.Context, opts application.TestOptions) error
	CoverageReport(ctx context.Context, opts application.ReportOptions) error
	CoverageSummary(ctx context.Context, opts application.ReportOptions) (domain.Summary, error)
	RunAll(ctx context.Context, opts application.AllOptions) error
	OpenReport(ctx context.Context, opts application.OpenOptions) error
	Detect(ctx context.Context, opts application.DetectOptions) (application.Config, error)
	Watch(ctx context.Context, opts application.WatchOptions, watcher application.FileWatcher, callback application.WatchCallback) error
}

var initWizard = wizard.Run

func Run(args []string, stdout, stderr io.Writer, svc Service) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	ctx := context.Background()

	switch args[1] {
	case "test-unit":
		return runTestCommand(ctx, "unit", args[2:], stderr, svc)
	case "test-integration":
		return runTestCommand(ctx, "integration", args[2:], stderr, svc)
	case "coverage-report":
		fs := flag.NewFlagSet("coverage-report", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		_ = fs.Parse(args[2:])
		err := svc.CoverageReport(ctx, application.ReportOptions{ConfigPath: *configPath})
		return exitCode(err, 3, stderr)
	case "test-all":
		fs := flag.NewFlagSet("test-all", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		maxFail := fs.Int("maxfail", 0, "Stop after N test failures (0 = no limit)")
		debug := fs.Bool("debug", false, "Disable output capture, allowing debuggers like pdb to be used")
		_ = fs.Parse(args[2:])
		err := svc.RunAll(ctx, application.AllOptions{
			ConfigPath:  *configPath,
			MaxFail:     *maxFail,
			Debug:       *debug,
			PassThrough: passThrough(fs.Args()),
		})
		return exitCode(err, 1, stderr)
	case "coverage-open":
		fs := flag.NewFlagSet("coverage-open", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		_ = fs.Parse(args[2:])
		err := svc.OpenReport(ctx, application.OpenOptions{ConfigPath: *configPath})
		return exitCode(err, 4, stderr)
	case "init":
		fs := flag.NewFlagSet("init", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		force := fs.Bool("force", false, "Overwrite existing config file")
		noInteractive := fs.Bool("no-interactive", false, "Skip the interactive init wizard")
		_ = fs.Parse(args[2:])
		cfg, err := svc.Detect(ctx, application.DetectOptions{})
		if err != nil {
			return exitCode(err, 3, stderr)
		}
		if !*noInteractive {
			var confirmed bool
			cfg, confirmed, err = initWizard(cfg, stdout, os.Stdin)
			if err != nil {
				return exitCode(err, 5, stderr)
			}
			if !confirmed {
				fmt.Fprintln(stdout, "Init cancelled; no configuration written.")
				return 0
			}
		}
		if err := writeConfigFile(*configPath, cfg, stdout, *force); err != nil {
			return exitCode(err, 2, stderr)
		}
		return 0
	case "watch":
		fs := flag.NewFlagSet("watch", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		testType := fs.String("type", "unit", "Test type to re-run on changes")
		maxFail := fs.Int("maxfail", 0, "Stop after N test failures (0 = no limit)")
		_ = fs.Parse(args[2:])
		return runWatch(ctx, stdout, stderr, svc, *configPath, *testType, *maxFail)
	case "mcp":
		fs := flag.NewFlagSet("mcp", flag.ExitOnError)
		configPath := fs.String("config", defaultConfigPath, "Config file path")
		_ = fs.Parse(args[2:])
		server := mcp.New(svc, mcp.Config{ConfigPath: *configPath})
		return exitCode(server.Run(ctx), 3, stderr)
	case "version":
		fmt.Fprintf(stdout, "testctl %s (%s, %s)\n", Version, Commit, Date)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func runTestCommand(ctx context.Context, testType string, argv []string, stderr io.Writer, svc Service) int {
	fs := flag.NewFlagSet("test-"+testType, flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file path")
	maxFail := fs.Int("maxfail", 0, "Stop after N test failures (0 = no limit)")
	debug := fs.Bool("debug", false, "Disable output capture, allowing debuggers like pdb to be used")
	_ = fs.Parse(argv)
	err := svc.RunTests(ctx, application.TestOptions{
		ConfigPath:  *configPath,
		Type:        testType,
		MaxFail:     *maxFail,
		Debug:       *debug,
		PassThrough: passThrough(fs.Args()),
	})
	return exitCode(err, 1, stderr)
}

// passThrough strips a leading "--" separator before forwarding residual
// arguments verbatim to pytest.
func passThrough(rest []string) []string {
	if len(rest) > 0 && rest[0] == "--" {
		return rest[1:]
	}
	return rest
}

func BuildService(out *os.File) *application.Service {
	return &application.Service{
		ConfigLoader: config.Loader{},
		Autodetector: autodetect.Detector{},
		TestRunner:   pytest.Runner{},
		CoverageTool: covtool.Tool{},
		Browser:      browser.Opener{},
		Reporter:     report.Writer{Out: out},
		HistoryFor: func(path string) application.HistoryStore {
			return &history.FileStore{Path: path}
		},
	}
}

func writeConfigFile(path string, cfg application.Config, stdout io.Writer, force bool) error {
	if path == "-" {
		return config.Write(stdout, cfg)
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return config.Write(file, cfg)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `testctl <command>

Commands:
  test-unit         Run unit tests with coverage
  test-integration  Run integration tests with coverage
  coverage-report   Combine per-type coverage and render the HTML report
  test-all          Run all tests, then generate the coverage report
  coverage-open     Open the coverage report in the default browser
  init              Detect project layout and write .testctl.yaml
  watch             Re-run a test suite when source files change
  mcp               Serve test and coverage tools over MCP stdio
  version           Print version information

Test commands accept --maxfail N and --debug; arguments after -- are
forwarded to pytest unchanged.`)
}

func exitCode(err error, code int, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, err)
	return code
}

func runWatch(ctx context.Context, stdout, stderr io.Writer, svc Service, configPath, testType string, maxFail int) int {
	w, err := watcher.New(watcher.WithDebounce(500 * time.Millisecond))
	if err != nil {
		fmt.Fprintf(stderr, "failed to create watcher: %v\n", err)
		return 3
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(stdout, "\nStopping watch mode...")
		cancel()
	}()

	fmt.Fprintln(stdout, "Watching for file changes... (Ctrl+C to stop)")
	fmt.Fprintln(stdout, "")

	callback := func(runNumber int, runErr error) {
		fmt.Fprintf(stdout, "\n--- Run #%d at %s ---\n", runNumber, time.Now().Format("15:04:05"))
		if runErr != nil {
			fmt.Fprintf(stderr, "Test run failed: %v\n", runErr)
		} else {
			fmt.Fprintln(stdout, "Test run completed successfully")
		}
	}

	opts := application.WatchOptions{
		ConfigPath: configPath,
		Type:       testType,
		MaxFail:    maxFail,
	}

	if err := svc.Watch(ctx, opts, w, callback); err != nil {
		if ctx.Err() == context.Canceled {
			return 0
		}
		fmt.Fprintf(stderr, "watch error: %v\n", err)
		return 3
	}
	return 0
}
