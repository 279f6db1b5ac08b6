// Package runner checks sets of PHP files concurrently.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/mvp-joe/fndecl/internal/config"
	"github.com/mvp-joe/fndecl/internal/sniff"
	"github.com/mvp-joe/fndecl/internal/tokenizer"
	"golang.org/x/sync/errgroup"
)

// FileResult holds the violations found in one file. Err is set when the
// file could not be read or tokenized; such a file has no violations.
type FileResult struct {
	Path       string
	Violations []sniff.Violation
	Cached     bool
	Err        error
}

// Result is the outcome of checking a set of files.
type Result struct {
	Files    []FileResult
	Duration time.Duration
}

// Total returns the number of violations across all files.
func (r *Result) Total() int {
	total := 0
	for _, f := range r.Files {
		total += len(f.Violations)
	}
	return total
}

// Failed returns the number of files that could not be checked.
func (r *Result) Failed() int {
	failed := 0
	for _, f := range r.Files {
		if f.Err != nil {
			failed++
		}
	}
	return failed
}

// ProgressReporter receives progress events. The runner serializes calls.
type ProgressReporter interface {
	OnCheckStart(totalFiles int)
	OnFileChecked(path string, violations int)
	OnCheckComplete(result *Result)
}

type noOpProgress struct{}

func (noOpProgress) OnCheckStart(int)          {}
func (noOpProgress) OnFileChecked(string, int) {}
func (noOpProgress) OnCheckComplete(*Result)   {}

// Runner tokenizes and checks files, one sink per file.
type Runner struct {
	tokenizer *tokenizer.Tokenizer
	checker   *sniff.Checker
	cache     *ResultCache
	workers   int

	progressMu sync.Mutex
	progress   ProgressReporter
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgress sets the progress reporter.
func WithProgress(p ProgressReporter) Option {
	return func(r *Runner) {
		if p != nil {
			r.progress = p
		}
	}
}

// New creates a runner from configuration using the built-in brace styles.
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	return NewWithRegistry(cfg, sniff.DefaultBraceRegistry(), opts...)
}

// NewWithRegistry creates a runner resolving brace styles from registry.
// Unknown style names fail with a *sniff.ConfigError.
func NewWithRegistry(cfg *config.Config, registry sniff.BraceRegistry, opts ...Option) (*Runner, error) {
	checker, err := sniff.NewCheckerFromRegistry(registry, cfg.Rules.Indent, cfg.Rules.FunctionBrace, cfg.Rules.ClosureBrace)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		tokenizer: tokenizer.New(),
		checker:   checker,
		workers:   cfg.Runner.Workers,
		progress:  noOpProgress{},
	}
	if r.workers <= 0 {
		r.workers = 1
	}

	if cfg.Runner.CacheSize > 0 {
		cache, err := NewResultCache(cfg.Runner.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		r.cache = cache
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Close releases the result cache.
func (r *Runner) Close() {
	if r.cache != nil {
		r.cache.Close()
	}
}

// Cache returns the result cache, or nil when caching is disabled.
func (r *Runner) Cache() *ResultCache {
	return r.cache
}

// CheckSource checks in-memory PHP source.
func (r *Runner) CheckSource(ctx context.Context, path string, source []byte) (FileResult, error) {
	if r.cache != nil {
		if violations, ok := r.cache.Get(path, source); ok {
			return FileResult{Path: path, Violations: violations, Cached: true}, nil
		}
	}

	stream, err := r.tokenizer.Tokenize(ctx, path, source)
	if err != nil {
		return FileResult{}, err
	}

	// Each file owns its sink; results are merged by CheckFiles.
	var sink sniff.Collector
	if err := r.checker.Run(stream, &sink); err != nil {
		return FileResult{}, fmt.Errorf("%s: %w", path, err)
	}

	violations := sink.Violations()
	if r.cache != nil {
		r.cache.Set(path, source, violations)
	}

	return FileResult{Path: path, Violations: violations}, nil
}

// CheckFile reads and checks one file.
func (r *Runner) CheckFile(ctx context.Context, path string) (FileResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return r.CheckSource(ctx, path, source)
}

// CheckFiles checks files concurrently. Results are ordered by path. A file
// that cannot be read or tokenized is recorded with its error and the run
// continues; a *sniff.ConfigError or context cancellation aborts the run.
func (r *Runner) CheckFiles(ctx context.Context, paths []string) (*Result, error) {
	start := time.Now()
	r.report(func(p ProgressReporter) { p.OnCheckStart(len(paths)) })

	files := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.CheckFile(ctx, path)
			if err != nil {
				if fatal(ctx, err) {
					return err
				}
				log.Printf("Warning: failed to check %s: %v", path, err)
				res = FileResult{Path: path, Err: err}
			}
			files[i] = res
			r.report(func(p ProgressReporter) { p.OnFileChecked(path, len(res.Violations)) })
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	result := &Result{Files: files, Duration: time.Since(start)}
	r.report(func(p ProgressReporter) { p.OnCheckComplete(result) })
	return result, nil
}

// fatal reports whether a per-file error must stop the whole run.
func fatal(ctx context.Context, err error) bool {
	var cfgErr *sniff.ConfigError
	if errors.As(err, &cfgErr) {
		return true
	}
	return ctx.Err() != nil
}

func (r *Runner) report(fn func(ProgressReporter)) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	fn(r.progress)
}
