package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvp-joe/fndecl/internal/runner"
	"github.com/mvp-joe/fndecl/internal/sniff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for report:
// - New omits clean files, renders messages and counts the total
// - Paths are relative to the root
// - Every report gets a fresh run id
// - Text output has one line per violation and a summary
// - JSON output round-trips the report fields
// - Files that could not be checked are listed with their error and counted
// - Unknown formats are rejected

func sampleResult(root string) *runner.Result {
	return &runner.Result{
		Duration: 1500 * time.Millisecond,
		Files: []runner.FileResult{
			{Path: filepath.Join(root, "a.php")},
			{
				Path: filepath.Join(root, "lib", "b.php"),
				Violations: []sniff.Violation{
					{Code: sniff.CodeIndent, Message: "expected %v spaces but found %v", Line: 4, Column: 1, Data: []any{4, 2}},
				},
			},
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	r := New(sampleResult("/proj"), "/proj", 3)

	require.Len(t, r.Files, 1)
	assert.Equal(t, "lib/b.php", r.Files[0].Path)
	assert.Equal(t, "expected 4 spaces but found 2", r.Files[0].Violations[0].Message)
	assert.Equal(t, 1, r.Total)
	assert.Equal(t, 3, r.Suppressed)
	assert.Equal(t, int64(1500), r.DurationMS)

	_, err := uuid.Parse(r.RunID)
	assert.NoError(t, err)
	assert.NotEqual(t, r.RunID, New(sampleResult("/proj"), "/proj", 0).RunID)
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "text", New(sampleResult("/proj"), "/proj", 2)))

	assert.Equal(t,
		"lib/b.php:4:1: expected 4 spaces but found 2 (Indent)\n"+
			"1 violation(s) in 1 file(s), 2 suppressed by baseline\n",
		buf.String())
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	want := New(sampleResult("/proj"), "/proj", 0)
	require.NoError(t, Write(&buf, "JSON", want))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, want.RunID, decoded.RunID)
	assert.Equal(t, want.Files, decoded.Files)
	assert.Equal(t, 1, decoded.Total)
}

func TestNew_FileErrors(t *testing.T) {
	t.Parallel()

	result := sampleResult("/proj")
	result.Files = append(result.Files, runner.FileResult{
		Path: filepath.Join("/proj", "c.php"),
		Err:  errors.New("c.php: unbalanced brackets"),
	})

	r := New(result, "/proj", 0)
	require.Len(t, r.Files, 2)
	assert.Equal(t, "c.php", r.Files[1].Path)
	assert.Equal(t, "c.php: unbalanced brackets", r.Files[1].Error)
	assert.Empty(t, r.Files[1].Violations)
	assert.Equal(t, 1, r.Errors)
	assert.Equal(t, 1, r.Total)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))
	assert.Equal(t,
		"lib/b.php:4:1: expected 4 spaces but found 2 (Indent)\n"+
			"c.php: error: c.php: unbalanced brackets\n"+
			"1 violation(s) in 1 file(s), 1 file(s) could not be checked\n",
		buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, "xml", New(&runner.Result{}, "", 0))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
