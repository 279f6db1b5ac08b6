package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockArgumentGetter struct {
	args map[string]any
}

func (m *mockArgumentGetter) GetArguments() map[string]any {
	return m.args
}

func TestCoerceBindArguments(t *testing.T) {
	t.Run("JSON string arrays", func(t *testing.T) {
		var req CheckRequest
		err := coerceBindArguments(&mockArgumentGetter{args: map[string]any{
			"path":    "src",
			"include": `["src/**/*.php", "lib/*.inc"]`,
		}}, &req)
		require.NoError(t, err)

		assert.Equal(t, "src", req.Path)
		assert.Equal(t, []string{"src/**/*.php", "lib/*.inc"}, req.Include)
	})

	t.Run("Already proper types", func(t *testing.T) {
		var req CheckRequest
		err := coerceBindArguments(&mockArgumentGetter{args: map[string]any{
			"path":    "a.php",
			"format":  "text",
			"include": []any{"*.php"},
		}}, &req)
		require.NoError(t, err)

		assert.Equal(t, "text", req.Format)
		assert.Equal(t, []string{"*.php"}, req.Include)
	})

	t.Run("Comma separated string", func(t *testing.T) {
		var req CheckRequest
		err := coerceBindArguments(&mockArgumentGetter{args: map[string]any{
			"path":    "a.php",
			"include": "*.php,*.inc",
		}}, &req)
		require.NoError(t, err)

		assert.Equal(t, []string{"*.php", "*.inc"}, req.Include)
	})

	t.Run("Missing optional fields", func(t *testing.T) {
		var req CheckRequest
		err := coerceBindArguments(&mockArgumentGetter{args: map[string]any{"path": "x"}}, &req)
		require.NoError(t, err)

		assert.Empty(t, req.Format)
		assert.Nil(t, req.Include)
	})
}
