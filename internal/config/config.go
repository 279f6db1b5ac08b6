// Package config loads fndecl settings.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (FNDECL_*)
//  2. Project config (.fndecl/config.yml)
//  3. Built-in defaults
package config

import "path/filepath"

// Config represents the complete fndecl configuration.
// It can be loaded from .fndecl/config.yml with environment variable overrides.
type Config struct {
	Rules    RulesConfig    `yaml:"rules" mapstructure:"rules"`
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Runner   RunnerConfig   `yaml:"runner" mapstructure:"runner"`
	Baseline BaselineConfig `yaml:"baseline" mapstructure:"baseline"`
}

// RulesConfig configures the declaration checks.
type RulesConfig struct {
	Indent        int    `yaml:"indent" mapstructure:"indent"`                 // parameter indent step
	FunctionBrace string `yaml:"function_brace" mapstructure:"function_brace"` // brace style for named functions
	ClosureBrace  string `yaml:"closure_brace" mapstructure:"closure_brace"`   // brace style for closures
}

// PathsConfig defines which files to check and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for php files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// ReportConfig defines how results are printed.
type ReportConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

// RunnerConfig controls parallelism and caching.
type RunnerConfig struct {
	Workers   int `yaml:"workers" mapstructure:"workers"`       // files checked concurrently
	CacheSize int `yaml:"cache_size" mapstructure:"cache_size"` // cached file results, 0 disables
}

// BaselineConfig locates the baseline database.
type BaselineConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // relative to the project root
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Rules: RulesConfig{
			Indent:        4,
			FunctionBrace: "bsd-allman",
			ClosureBrace:  "kernighan-ritchie",
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.php",
				"**/*.inc",
			},
			Ignore: []string{
				"vendor/**",
				"node_modules/**",
				".git/**",
			},
		},
		Report: ReportConfig{
			Format: "text",
		},
		Runner: RunnerConfig{
			Workers:   4,
			CacheSize: 1024,
		},
		Baseline: BaselineConfig{
			Path: filepath.Join(".fndecl", "baseline.db"),
		},
	}
}

// BaselinePath resolves the baseline database path against rootDir.
func (c *Config) BaselinePath(rootDir string) string {
	if filepath.IsAbs(c.Baseline.Path) {
		return c.Baseline.Path
	}
	return filepath.Join(rootDir, c.Baseline.Path)
}
