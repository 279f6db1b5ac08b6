package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader loads an explicit config file instead of searching rootDir.
func NewFileLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (FNDECL_*)
// 2. Config file (.fndecl/config.yml or .fndecl/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".fndecl"))
	}

	// Replace . with _ in env var names (e.g., FNDECL_RULES_INDENT)
	v.SetEnvPrefix("FNDECL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("rules.indent")
	v.BindEnv("rules.function_brace")
	v.BindEnv("rules.closure_brace")
	v.BindEnv("report.format")
	v.BindEnv("runner.workers")
	v.BindEnv("runner.cache_size")
	v.BindEnv("baseline.path")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("rules.indent", defaults.Rules.Indent)
	v.SetDefault("rules.function_brace", defaults.Rules.FunctionBrace)
	v.SetDefault("rules.closure_brace", defaults.Rules.ClosureBrace)

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("report.format", defaults.Report.Format)

	v.SetDefault("runner.workers", defaults.Runner.Workers)
	v.SetDefault("runner.cache_size", defaults.Runner.CacheSize)

	v.SetDefault("baseline.path", defaults.Baseline.Path)
}

// LoadConfigFromDir loads .fndecl/config.yml under rootDir, falling back to
// defaults when it does not exist.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
