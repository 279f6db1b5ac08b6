package sniff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for brace styles:
// - BsdAllman accepts the brace on the next line
// - BsdAllman reports a brace on the declaration line and blank lines before it
// - KernighanRitchie accepts " {" on the declaration line
// - KernighanRitchie reports a brace on a new line and wrong spacing before it
// - Declarations without a body are skipped
// - The registry resolves both styles and rejects unknown names with a ConfigError

func TestBsdAllman(t *testing.T) {
	t.Parallel()

	assert.Empty(t, run(t, "function foo($a)\n{\n}\n"))

	vs := run(t, "function foo($a) {\n}\n")
	require.Equal(t, []string{CodeBraceOnSameLine}, codes(vs))
	assert.Equal(t, "{", stream(t, "function foo($a) {\n}\n").At(vs[0].Location).Text)

	vs = run(t, "function foo($a)\n\n\n{\n}\n")
	require.Equal(t, []string{CodeBraceSpacing}, codes(vs))
	assert.Equal(t, []any{2}, vs[0].Data)

	vs = run(t, "function foo($a): int\n{\n    return 1;\n}\n")
	assert.Empty(t, vs)
}

func TestBsdAllman_NoBody(t *testing.T) {
	t.Parallel()

	s := stream(t, "interface A\n{\n    public function foo($a);\n}\n")
	d, err := Classify(s, keyword(t, s))
	require.NoError(t, err)

	assert.Nil(t, BsdAllman{}.Check(s, d))
	assert.Nil(t, KernighanRitchie{}.Check(s, d))
}

func TestKernighanRitchie(t *testing.T) {
	t.Parallel()

	assert.Empty(t, run(t, "$f = function($a) {\n};\n"))

	vs := run(t, "$f = function($a)\n{\n};\n")
	require.Equal(t, []string{CodeBraceOnNewLine}, codes(vs))
	assert.Equal(t, 3, vs[0].Line)

	vs = run(t, "$f = function($a){\n};\n")
	require.Equal(t, []string{CodeSpaceBeforeBrace}, codes(vs))
	assert.Equal(t, []any{0}, vs[0].Data)

	vs = run(t, "$f = function($a) use ($b)\t{\n};\n")
	require.Equal(t, []string{CodeSpaceBeforeBrace}, codes(vs))
	assert.Equal(t, []any{`\t`}, vs[0].Data)
}

func TestBraceRegistry(t *testing.T) {
	t.Parallel()

	r := DefaultBraceRegistry()
	assert.Equal(t, []string{StyleBsdAllman, StyleKernighanRitchie}, r.Names())

	style, err := r.Lookup(Closure, StyleKernighanRitchie)
	require.NoError(t, err)
	assert.Equal(t, StyleKernighanRitchie, style.Name())

	style, err = r.Lookup(Function, StyleBsdAllman)
	require.NoError(t, err)
	assert.Equal(t, StyleBsdAllman, style.Name())

	_, err = r.Lookup(Function, "whitesmiths")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPolicyUnavailable)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "whitesmiths", cfgErr.Policy)
	assert.Equal(t, Function, cfgErr.Kind)
}
