package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mvp-joe/fndecl/internal/baseline"
	"github.com/mvp-joe/fndecl/internal/config"
	"github.com/mvp-joe/fndecl/internal/report"
	"github.com/mvp-joe/fndecl/internal/runner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// ErrViolationsFound is returned when a check reports violations. It
	// only sets the exit status; the report has already been printed.
	ErrViolationsFound = errors.New("violations found")

	// ErrFilesFailed is returned when some files could not be read or
	// tokenized. Their errors are part of the printed report.
	ErrFilesFailed = errors.New("files could not be checked")

	// ErrNoBaseline indicates --baseline was requested before one was recorded.
	ErrNoBaseline = errors.New("no baseline recorded; run 'fndecl baseline' first")
)

var (
	checkQuietFlag    bool
	checkWatchFlag    bool
	checkBaselineFlag bool
	checkFormatFlag   string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check PHP function declarations",
	Long: `Check scans PHP files for function and closure declarations and reports
formatting violations: spacing after the function keyword and around use,
multi-line parameter indentation, closing parenthesis placement, and
opening brace placement.

Without arguments the whole project is checked using the configured include
and ignore patterns. Files named explicitly are always checked.

The exit status is 1 when violations remain or a file could not be checked.

Examples:
  # Check the current project
  fndecl check

  # Check specific files and directories
  fndecl check src/Controller.php lib/

  # Only report violations not recorded in the baseline
  fndecl check --baseline

  # Emit JSON
  fndecl check --format json

  # Re-check files as they change
  fndecl check --watch
`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkQuietFlag, "quiet", "q", false, "Disable progress bars")
	checkCmd.Flags().BoolVarP(&checkWatchFlag, "watch", "w", false, "Watch for file changes and re-check incrementally")
	checkCmd.Flags().BoolVarP(&checkBaselineFlag, "baseline", "b", false, "Suppress violations recorded in the baseline")
	checkCmd.Flags().StringVarP(&checkFormatFlag, "format", "f", "", "Output format: text or json (default from config)")
}

// checkOptions captures one invocation of the check command.
type checkOptions struct {
	rootDir     string
	targets     []string
	format      string
	quiet       bool
	useBaseline bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	opts := checkOptions{
		rootDir:     rootDir,
		targets:     args,
		format:      checkFormatFlag,
		quiet:       checkQuietFlag,
		useBaseline: checkBaselineFlag,
	}

	if checkWatchFlag {
		return watchCheck(ctx, cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	rep, err := executeCheck(ctx, cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return exitStatus(rep)
}

// exitStatus maps a printed report to the command's error.
func exitStatus(rep *report.Report) error {
	if rep.Errors > 0 {
		return fmt.Errorf("%w: %d", ErrFilesFailed, rep.Errors)
	}
	if rep.Total > 0 {
		return fmt.Errorf("%w: %d", ErrViolationsFound, rep.Total)
	}
	return nil
}

// checkSession holds what one check command needs across runs: the resolved
// output format, the optional baseline and a runner whose result cache
// survives between watch rechecks.
type checkSession struct {
	cfg    *config.Config
	opts   checkOptions
	format string
	store  *baseline.Store
	runner *runner.Runner
}

func newCheckSession(cfg *config.Config, opts checkOptions, errOut io.Writer) (*checkSession, error) {
	format, err := resolveFormat(cfg, opts.format)
	if err != nil {
		return nil, err
	}

	s := &checkSession{cfg: cfg, opts: opts, format: format}
	if opts.useBaseline {
		if s.store, err = openBaseline(cfg, opts.rootDir); err != nil {
			return nil, err
		}
	}

	// JSON output is usually piped; keep stderr clean too
	progress := NewCLIProgressReporter(errOut, opts.quiet || format == "json")
	if s.runner, err = runner.New(cfg, runner.WithProgress(progress)); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *checkSession) Close() {
	if s.runner != nil {
		s.runner.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// run checks the session's targets once and prints the report to out.
func (s *checkSession) run(ctx context.Context, out io.Writer) (*report.Report, error) {
	paths, err := collectTargets(s.cfg, s.opts)
	if err != nil {
		return nil, err
	}

	result, err := s.runner.CheckFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	return writeResult(out, s.format, result, s.store, s.opts.rootDir)
}

// executeCheck runs one check and prints the report to out. Progress goes
// to errOut.
func executeCheck(ctx context.Context, cfg *config.Config, opts checkOptions, out, errOut io.Writer) (*report.Report, error) {
	session, err := newCheckSession(cfg, opts, errOut)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	return session.run(ctx, out)
}

// watchCheck runs an initial check and then re-checks files as they change
// until ctx is cancelled. Both share one runner, so unchanged files are
// served from its result cache.
func watchCheck(ctx context.Context, cfg *config.Config, opts checkOptions, out, errOut io.Writer) error {
	session, err := newCheckSession(cfg, opts, errOut)
	if err != nil {
		return err
	}
	defer session.Close()

	if _, err := session.run(ctx, out); err != nil {
		return err
	}

	discovery, err := runner.NewFileDiscovery(opts.rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return err
	}

	watcher, err := runner.NewWatcher(session.runner, discovery, func(result *runner.Result) {
		if _, err := writeResult(out, session.format, result, session.store, opts.rootDir); err != nil {
			log.Printf("Failed to write report: %v", err)
		}
		logCacheHits(session.runner)
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	watcher.Start(ctx)
	defer watcher.Stop()

	if !opts.quiet {
		log.Println("Watching for changes (Ctrl+C to stop)...")
	}
	<-ctx.Done()
	return nil
}

// logCacheHits reports the runner's cache hits when verbose.
func logCacheHits(r *runner.Runner) {
	if !viper.GetBool("verbose") || r.Cache() == nil {
		return
	}
	log.Printf("Result cache hits: %d", r.Cache().Hits())
}

func writeResult(out io.Writer, format string, result *runner.Result, store *baseline.Store, rootDir string) (*report.Report, error) {
	suppressed := 0
	if store != nil {
		var err error
		if suppressed, err = store.Filter(result, rootDir); err != nil {
			return nil, fmt.Errorf("failed to apply baseline: %w", err)
		}
	}

	rep := report.New(result, rootDir, suppressed)
	if err := report.Write(out, format, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// collectTargets expands command arguments, or the whole project when none
// are given.
func collectTargets(cfg *config.Config, opts checkOptions) ([]string, error) {
	if len(opts.targets) == 0 {
		return runner.ResolveTargets(opts.rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	}

	var paths []string
	seen := make(map[string]bool)
	for _, target := range opts.targets {
		if !filepath.IsAbs(target) {
			target = filepath.Join(opts.rootDir, target)
		}
		resolved, err := runner.ResolveTargets(target, cfg.Paths.Include, cfg.Paths.Ignore)
		if err != nil {
			return nil, err
		}
		for _, p := range resolved {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths, nil
}

func resolveFormat(cfg *config.Config, flag string) (string, error) {
	format := strings.ToLower(flag)
	if format == "" {
		format = strings.ToLower(cfg.Report.Format)
	}
	if format != "text" && format != "json" {
		return "", fmt.Errorf("%w: %s", report.ErrUnknownFormat, format)
	}
	return format, nil
}

func openBaseline(cfg *config.Config, rootDir string) (*baseline.Store, error) {
	path := cfg.BaselinePath(rootDir)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrNoBaseline
	}
	return baseline.Open(path)
}
