package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidIndent indicates a non-positive indent step
	ErrInvalidIndent = errors.New("invalid indent")

	// ErrEmptyBraceStyle indicates a missing brace style name
	ErrEmptyBraceStyle = errors.New("empty brace style")

	// ErrEmptyInclude indicates no include patterns
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrInvalidFormat indicates an unsupported report format
	ErrInvalidFormat = errors.New("invalid report format")

	// ErrInvalidRunnerSettings indicates invalid worker or cache settings
	ErrInvalidRunnerSettings = errors.New("invalid runner settings")
)

// Validate checks that the configuration is valid and complete.
// Brace style names are resolved later by the checker, which reports
// unknown names as a fatal configuration error.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateRules(&cfg.Rules); err != nil {
		errs = append(errs, err)
	}

	if len(cfg.Paths.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude))
	}

	format := strings.ToLower(cfg.Report.Format)
	if format != "text" && format != "json" {
		errs = append(errs, fmt.Errorf("%w: must be 'text' or 'json', got '%s'", ErrInvalidFormat, cfg.Report.Format))
	}

	if err := validateRunner(&cfg.Runner); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateRules(cfg *RulesConfig) error {
	var errs []error

	if cfg.Indent <= 0 {
		errs = append(errs, fmt.Errorf("%w: indent must be positive, got %d", ErrInvalidIndent, cfg.Indent))
	}

	if strings.TrimSpace(cfg.FunctionBrace) == "" {
		errs = append(errs, fmt.Errorf("%w: function_brace is required", ErrEmptyBraceStyle))
	}

	if strings.TrimSpace(cfg.ClosureBrace) == "" {
		errs = append(errs, fmt.Errorf("%w: closure_brace is required", ErrEmptyBraceStyle))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateRunner(cfg *RunnerConfig) error {
	var errs []error

	if cfg.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidRunnerSettings, cfg.Workers))
	}

	// Zero disables the cache
	if cfg.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_size cannot be negative, got %d", ErrInvalidRunnerSettings, cfg.CacheSize))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
