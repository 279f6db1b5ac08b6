package sniff

import (
	"context"
	"testing"

	"github.com/mvp-joe/fndecl/internal/token"
	"github.com/mvp-joe/fndecl/internal/tokenizer"
	"github.com/stretchr/testify/require"
)

// stream tokenizes a PHP snippet; the open tag is added on line 1.
func stream(t *testing.T, src string) *token.Stream {
	t.Helper()
	s, err := tokenizer.New().Tokenize(context.Background(), "test.php", []byte("<?php\n"+src))
	require.NoError(t, err)
	return s
}

// run checks every declaration in src with the default checker.
func run(t *testing.T, src string) []Violation {
	t.Helper()
	var sink Collector
	require.NoError(t, NewChecker(DefaultIndentStep).Run(stream(t, src), &sink))
	return sink.Violations()
}

func codes(vs []Violation) []string {
	out := []string{}
	for _, v := range vs {
		out = append(out, v.Code)
	}
	return out
}

// keyword returns the index of the first function keyword.
func keyword(t *testing.T, s *token.Stream) int {
	t.Helper()
	i := s.FindNext(token.Is(token.KindFunction, token.KindClosure), 0, -1)
	require.GreaterOrEqual(t, i, 0, "no function keyword")
	return i
}
