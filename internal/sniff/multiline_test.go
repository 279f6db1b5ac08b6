package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for multi-line declarations:
// - Correctly indented parameters and a closer on its own line pass
// - Parameters indented by the wrong amount report Indent with expected/found
// - Indentation is relative to the declaration's own indent
// - A closer sharing a line with the last parameter reports CloseBracketLine
// - Lines inside array literals ([] and array()) are exempt
// - A multi-line use clause is checked like the parameter list
// - The brace gap after the closer must be exactly one space
// - Content other than whitespace before the brace reports NoSpaceBeforeOpenBrace
// - Abstract declarations still check the closer placement

func TestMultiLine_Valid(t *testing.T) {
	t.Parallel()

	assert.Empty(t, run(t, "function foo(\n    $a,\n    $b\n) {\n}\n"))
}

func TestMultiLine_WrongIndent(t *testing.T) {
	t.Parallel()

	vs := run(t, "function foo(\n  $a\n) {\n}\n")
	require.Equal(t, []string{CodeIndent}, codes(vs))
	assert.Equal(t, []any{4, 2}, vs[0].Data)
	assert.Equal(t, 3, vs[0].Line)
	assert.Equal(t, "Multi-line function declaration not indented correctly; expected 4 spaces but found 2", vs[0].Text())
}

func TestMultiLine_MissingIndent(t *testing.T) {
	t.Parallel()

	vs := run(t, "function foo(\n$a\n) {\n}\n")
	require.Equal(t, []string{CodeIndent}, codes(vs))
	assert.Equal(t, []any{4, 0}, vs[0].Data)
}

func TestMultiLine_RelativeToDeclarationIndent(t *testing.T) {
	t.Parallel()

	src := "class A\n{\n    public function foo(\n        $a,\n        $b\n    ) {\n    }\n}\n"
	assert.Empty(t, run(t, src))

	src = "class A\n{\n    public function foo(\n        $a,\n      $b\n  ) {\n    }\n}\n"
	vs := run(t, src)
	require.Equal(t, []string{CodeIndent, CodeIndent}, codes(vs))
	assert.Equal(t, []any{8, 6}, vs[0].Data)
	assert.Equal(t, []any{4, 2}, vs[1].Data)
}

func TestMultiLine_CloseBracketLine(t *testing.T) {
	t.Parallel()

	vs := run(t, "function foo(\n    $a,\n    $b) {\n}\n")
	require.Equal(t, []string{CodeCloseBracketLine}, codes(vs))
	assert.Equal(t, 4, vs[0].Line)
}

func TestMultiLine_ArrayLiteralsAreExempt(t *testing.T) {
	t.Parallel()

	src := "function foo(\n    $a = [\n  1,\n            2,\n    ],\n  $b\n) {\n}\n"
	vs := run(t, src)
	require.Equal(t, []string{CodeIndent}, codes(vs))
	assert.Equal(t, 7, vs[0].Line)
	assert.Equal(t, []any{4, 2}, vs[0].Data)

	src = "function foo(\n    $a = array(\n 1\n    )\n) {\n}\n"
	assert.Empty(t, run(t, src))
}

func TestMultiLine_UseClause(t *testing.T) {
	t.Parallel()

	assert.Empty(t, run(t, "$f = function($a) use (\n    $b,\n    $c\n) {\n};\n"))

	vs := run(t, "$f = function($a) use (\n    $b,\n    $c) {\n};\n")
	require.Equal(t, []string{CodeUseCloseBracketLine}, codes(vs))

	vs = run(t, "$f = function($a) use (\n      $b\n) {\n};\n")
	require.Equal(t, []string{CodeIndent}, codes(vs))
	assert.Equal(t, []any{4, 6}, vs[0].Data)
}

func TestMultiLine_ParamsSpanLinesWithSingleLineUse(t *testing.T) {
	t.Parallel()

	assert.Empty(t, run(t, "$f = function(\n    $a\n) use ($b) {\n};\n"))

	vs := run(t, "$f = function(\n    $a\n  ) use ($b) {\n};\n")
	require.Equal(t, []string{CodeIndent}, codes(vs))
	assert.Equal(t, []any{0, 2}, vs[0].Data)
}

func TestMultiLine_BraceGap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		codes []string
		data  []any
	}{
		{
			name:  "no space",
			src:   "function foo(\n    $a\n){\n}\n",
			codes: []string{CodeSpaceBeforeOpenBrace},
			data:  []any{0},
		},
		{
			name:  "two spaces",
			src:   "function foo(\n    $a\n)  {\n}\n",
			codes: []string{CodeSpaceBeforeOpenBrace},
			data:  []any{2},
		},
		{
			name:  "newline",
			src:   "function foo(\n    $a\n)\n{\n}\n",
			codes: []string{CodeNewlineBeforeOpenBrace},
		},
		{
			name:  "return type",
			src:   "function foo(\n    $a\n): int {\n    return 1;\n}\n",
			codes: []string{CodeSpaceBeforeOpenBrace, CodeNoSpaceBeforeOpenBrace},
			data:  []any{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := run(t, tt.src)
			require.Equal(t, tt.codes, codes(vs))
			if tt.data != nil {
				assert.Equal(t, tt.data, vs[0].Data)
			}
		})
	}
}

func TestMultiLine_Abstract(t *testing.T) {
	t.Parallel()

	src := "abstract class A\n{\n    abstract public function foo(\n        $a\n    );\n}\n"
	assert.Empty(t, run(t, src))

	src = "abstract class A\n{\n    abstract public function foo(\n        $a);\n}\n"
	vs := run(t, src)
	require.Equal(t, []string{CodeCloseBracketLine}, codes(vs))
}
