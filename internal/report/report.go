// Package report formats check results as text or JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mvp-joe/fndecl/internal/runner"
)

var (
	// ErrUnknownFormat indicates an unsupported output format.
	ErrUnknownFormat = errors.New("unknown report format")
)

// Report is the serializable form of a run.
type Report struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	DurationMS  int64        `json:"duration_ms"`
	Files       []FileReport `json:"files"`
	Total       int          `json:"total"`
	Suppressed  int          `json:"suppressed,omitempty"`
	Errors      int          `json:"errors,omitempty"`
}

// FileReport lists the violations of one file, or the error that kept it
// from being checked.
type FileReport struct {
	Path       string            `json:"path"`
	Violations []ViolationReport `json:"violations"`
	Error      string            `json:"error,omitempty"`
}

// ViolationReport is one rendered violation.
type ViolationReport struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// New builds a report from a result. Paths are made relative to rootDir when
// possible; clean files are omitted.
func New(result *runner.Result, rootDir string, suppressed int) *Report {
	r := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		DurationMS:  result.Duration.Milliseconds(),
		Files:       []FileReport{},
		Suppressed:  suppressed,
	}

	for _, f := range result.Files {
		if f.Err != nil {
			r.Files = append(r.Files, FileReport{Path: displayPath(rootDir, f.Path), Error: f.Err.Error()})
			r.Errors++
			continue
		}
		if len(f.Violations) == 0 {
			continue
		}
		fr := FileReport{Path: displayPath(rootDir, f.Path)}
		for _, v := range f.Violations {
			fr.Violations = append(fr.Violations, ViolationReport{
				Line:    v.Line,
				Column:  v.Column,
				Code:    v.Code,
				Message: v.Text(),
			})
		}
		r.Files = append(r.Files, fr)
		r.Total += len(fr.Violations)
	}

	return r
}

func displayPath(rootDir, path string) string {
	if rootDir == "" {
		return path
	}
	rel, err := filepath.Rel(rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// Write renders the report in the given format.
func Write(w io.Writer, format string, r *Report) error {
	switch strings.ToLower(format) {
	case "text":
		return WriteText(w, r)
	case "json":
		return WriteJSON(w, r)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// WriteText prints one line per violation or file error followed by a
// summary.
func WriteText(w io.Writer, r *Report) error {
	for _, f := range r.Files {
		if f.Error != "" {
			if _, err := fmt.Fprintf(w, "%s: error: %s\n", f.Path, f.Error); err != nil {
				return err
			}
			continue
		}
		for _, v := range f.Violations {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s (%s)\n", f.Path, v.Line, v.Column, v.Message, v.Code); err != nil {
				return err
			}
		}
	}

	summary := fmt.Sprintf("%d violation(s) in %d file(s)", r.Total, len(r.Files)-r.Errors)
	if r.Suppressed > 0 {
		summary += fmt.Sprintf(", %d suppressed by baseline", r.Suppressed)
	}
	if r.Errors > 0 {
		summary += fmt.Sprintf(", %d file(s) could not be checked", r.Errors)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// WriteJSON prints the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
