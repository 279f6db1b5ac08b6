package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mvp-joe/fndecl/internal/baseline"
	"github.com/mvp-joe/fndecl/internal/config"
	"github.com/mvp-joe/fndecl/internal/runner"
	"github.com/spf13/cobra"
)

var baselineQuietFlag bool

// baselineCmd represents the baseline command
var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Record current violations as accepted",
	Long: `Baseline checks the whole project and records every violation found in
the baseline database (.fndecl/baseline.db by default). Subsequent runs of
'fndecl check --baseline' only report violations that are not recorded.

Running baseline again replaces the previous recording.

Examples:
  # Record the current state of the project
  fndecl baseline

  # Report only new violations
  fndecl check --baseline
`,
	RunE: runBaseline,
}

func init() {
	rootCmd.AddCommand(baselineCmd)
	baselineCmd.Flags().BoolVarP(&baselineQuietFlag, "quiet", "q", false, "Suppress output messages")
}

func runBaseline(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	_, err = executeBaseline(context.Background(), cfg, rootDir, baselineQuietFlag, cmd.OutOrStdout())
	return err
}

// executeBaseline checks the project and replaces the baseline with the
// violations found. It returns the number of entries recorded.
func executeBaseline(ctx context.Context, cfg *config.Config, rootDir string, quiet bool, out io.Writer) (int, error) {
	r, err := runner.New(cfg, runner.WithProgress(NewCLIProgressReporter(out, quiet)))
	if err != nil {
		return 0, err
	}
	defer r.Close()

	paths, err := runner.ResolveTargets(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return 0, err
	}

	result, err := r.CheckFiles(ctx, paths)
	if err != nil {
		return 0, err
	}

	path := cfg.BaselinePath(rootDir)
	store, err := baseline.Open(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	entries := baseline.Entries(result, rootDir)
	if err := store.Replace(entries); err != nil {
		return 0, fmt.Errorf("failed to record baseline: %w", err)
	}

	count, err := store.Count()
	if err != nil {
		return 0, err
	}

	if failed := result.Failed(); failed > 0 {
		log.Printf("Warning: %d file(s) could not be checked and are not in the baseline", failed)
	}
	if !quiet {
		fmt.Fprintf(out, "✓ Baseline recorded: %s violation(s) in %s\n", formatNumber(count), path)
	}
	return count, nil
}
