package cli

// Test Plan for Check Command:
// - executeCheck reports violations in text and counts them
// - Clean projects report zero violations
// - JSON output decodes into a report
// - Explicit targets restrict the check and are de-duplicated
// - --baseline suppresses recorded violations and reports only new ones
// - --baseline without a recorded baseline fails with ErrNoBaseline
// - Unknown output formats are rejected before checking
// - Unknown brace styles surface as a fatal ConfigError
// - A file that cannot be read is reported and the rest are still checked
// - The exit status distinguishes violations from unchecked files
// - Repeated runs of one session are served from the shared result cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/fndecl/internal/config"
	"github.com/mvp-joe/fndecl/internal/report"
	"github.com/mvp-joe/fndecl/internal/sniff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cleanPHP = "<?php\nfunction ok()\n{\n}\n"
	dirtyPHP = "<?php\nfunction bad ($a) {\n}\n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "src/bad.php", dirtyPHP)
	writeFile(t, root, "src/ok.php", cleanPHP)
	writeFile(t, root, "vendor/pkg/bad.php", dirtyPHP)
	return root
}

func check(t *testing.T, cfg *config.Config, opts checkOptions) (int, string, error) {
	t.Helper()
	opts.quiet = true
	var out bytes.Buffer
	rep, err := executeCheck(context.Background(), cfg, opts, &out, io.Discard)
	if err != nil {
		return 0, out.String(), err
	}
	return rep.Total, out.String(), nil
}

func TestExecuteCheck_Text(t *testing.T) {
	t.Parallel()

	root := setupProject(t)
	total, out, err := check(t, config.Default(), checkOptions{rootDir: root})
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	assert.Equal(t,
		"src/bad.php:2:14: Expected 0 spaces before opening parenthesis; 1 found (SpaceBeforeOpenParen)\n"+
			"src/bad.php:2:19: Opening brace should be on a new line (BraceOnSameLine)\n"+
			"2 violation(s) in 1 file(s)\n",
		out)
}

func TestExecuteCheck_Clean(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "ok.php", cleanPHP)

	total, out, err := check(t, config.Default(), checkOptions{rootDir: root})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Equal(t, "0 violation(s) in 0 file(s)\n", out)
}

func TestExecuteCheck_JSON(t *testing.T) {
	t.Parallel()

	root := setupProject(t)
	total, out, err := check(t, config.Default(), checkOptions{rootDir: root, format: "json"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Files, 1)
	assert.Equal(t, "src/bad.php", rep.Files[0].Path)
	assert.Equal(t, sniff.CodeBraceOnSameLine, rep.Files[0].Violations[1].Code)
}

func TestExecuteCheck_Targets(t *testing.T) {
	t.Parallel()

	root := setupProject(t)
	total, _, err := check(t, config.Default(), checkOptions{
		rootDir: root,
		targets: []string{"src/ok.php", "src/ok.php"},
	})
	require.NoError(t, err)
	assert.Zero(t, total)

	// Explicit files are checked even when they match an ignore pattern
	total, _, err = check(t, config.Default(), checkOptions{
		rootDir: root,
		targets: []string{filepath.Join(root, "vendor", "pkg", "bad.php")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, _, err = check(t, config.Default(), checkOptions{rootDir: root, targets: []string{"missing"}})
	assert.Error(t, err)
}

func TestExecuteCheck_Baseline(t *testing.T) {
	t.Parallel()

	root := setupProject(t)
	cfg := config.Default()

	_, _, err := check(t, cfg, checkOptions{rootDir: root, useBaseline: true})
	assert.ErrorIs(t, err, ErrNoBaseline)

	recorded, err := executeBaseline(context.Background(), cfg, root, true, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, recorded)
	assert.FileExists(t, filepath.Join(root, ".fndecl", "baseline.db"))

	total, out, err := check(t, cfg, checkOptions{rootDir: root, useBaseline: true})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Contains(t, out, "2 suppressed by baseline")

	writeFile(t, root, "src/new.php", "<?php\n$f = function () {\n};\n")
	total, out, err = check(t, cfg, checkOptions{rootDir: root, useBaseline: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Contains(t, out, "src/new.php:2:6:")
	assert.Contains(t, out, "(SpaceAfterFunction)")
}

func TestExecuteCheck_UnknownFormat(t *testing.T) {
	t.Parallel()

	root := setupProject(t)
	_, out, err := check(t, config.Default(), checkOptions{rootDir: root, format: "xml"})
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
	assert.Empty(t, out)
}

func TestExecuteCheck_UnknownBraceStyle(t *testing.T) {
	t.Parallel()

	root := setupProject(t)
	cfg := config.Default()
	cfg.Rules.ClosureBrace = "whitesmiths"

	_, _, err := check(t, cfg, checkOptions{rootDir: root})
	require.Error(t, err)

	var cfgErr *sniff.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, sniff.Closure, cfgErr.Kind)
	assert.ErrorIs(t, err, sniff.ErrPolicyUnavailable)
}

func TestExecuteCheck_FileErrorIsReported(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.php", dirtyPHP)
	writeFile(t, root, "b.php", "<?php\nclass B\n{\n    #[Pure]\n    public function ok()\n    {\n    }\n}\n")
	// Discovered by name, unreadable by content.
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.php"), filepath.Join(root, "c.php")))

	var out bytes.Buffer
	rep, err := executeCheck(context.Background(), config.Default(),
		checkOptions{rootDir: root, quiet: true}, &out, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Total)
	assert.Equal(t, 1, rep.Errors)
	require.Len(t, rep.Files, 2)
	assert.Equal(t, "a.php", rep.Files[0].Path)
	assert.Equal(t, "c.php", rep.Files[1].Path)
	assert.NotEmpty(t, rep.Files[1].Error)

	assert.Contains(t, out.String(), "a.php:2:14: Expected 0 spaces before opening parenthesis; 1 found (SpaceBeforeOpenParen)\n")
	assert.Contains(t, out.String(), "c.php: error: ")
	assert.Contains(t, out.String(), "2 violation(s) in 1 file(s), 1 file(s) could not be checked\n")

	assert.ErrorIs(t, exitStatus(rep), ErrFilesFailed)
}

func TestExitStatus(t *testing.T) {
	t.Parallel()

	assert.NoError(t, exitStatus(&report.Report{}))
	assert.ErrorIs(t, exitStatus(&report.Report{Total: 3}), ErrViolationsFound)
	assert.ErrorIs(t, exitStatus(&report.Report{Total: 3, Errors: 1}), ErrFilesFailed)
}

func TestCheckSession_ReusesRunnerCache(t *testing.T) {
	t.Parallel()

	root := setupProject(t)
	session, err := newCheckSession(config.Default(), checkOptions{rootDir: root, quiet: true}, io.Discard)
	require.NoError(t, err)
	defer session.Close()

	first, err := session.run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Zero(t, session.runner.Cache().Hits())

	second, err := session.run(context.Background(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, int64(2), session.runner.Cache().Hits())
	assert.Equal(t, first.Files, second.Files)
}
