package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mvp-joe/fndecl/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fndecl",
	Short: "fndecl - PHP function declaration formatting checker",
	Long: `fndecl checks the layout of PHP function and closure declarations:
spacing around the function and use keywords, multi-line parameter lists,
and opening brace placement.

Configuration is read from .fndecl/config.yml in the project root and may be
overridden with FNDECL_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, ErrViolationsFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .fndecl/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initLogging routes log output to stderr, with file positions when verbose.
func initLogging() {
	log.SetOutput(os.Stderr)
	if viper.GetBool("verbose") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// loadConfig loads the project configuration, honoring --config.
func loadConfig(rootDir string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if file := viper.GetString("config"); file != "" {
		cfg, err = config.NewFileLoader(rootDir, file).Load()
	} else {
		cfg, err = config.LoadConfigFromDir(rootDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if viper.GetBool("verbose") {
		log.Printf("Rules: indent=%d function_brace=%s closure_brace=%s",
			cfg.Rules.Indent, cfg.Rules.FunctionBrace, cfg.Rules.ClosureBrace)
	}
	return cfg, nil
}
