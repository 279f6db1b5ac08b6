// Package tokenizer turns PHP source into a token.Stream using tree-sitter.
package tokenizer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mvp-joe/fndecl/internal/token"
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

var (
	// ErrParseFailed indicates tree-sitter produced no tree for the source.
	ErrParseFailed = errors.New("failed to parse php source")
)

// Tokenizer converts PHP files to token streams.
type Tokenizer struct {
	language *sitter.Language
}

// New creates a new PHP tokenizer.
func New() *Tokenizer {
	return &Tokenizer{
		language: sitter.NewLanguage(php.LanguagePHP()),
	}
}

// TokenizeFile reads and tokenizes a PHP file.
func (t *Tokenizer) TokenizeFile(ctx context.Context, filePath string) (*token.Stream, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return t.Tokenize(ctx, filePath, source)
}

// Tokenize parses source and flattens the syntax tree into tokens. Gaps
// between leaves become whitespace tokens, split after every line break.
func (t *Tokenizer) Tokenize(ctx context.Context, filePath string, source []byte) (*token.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("failed to set php language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrParseFailed, filePath)
	}
	defer tree.Close()

	b := &builder{source: source, line: 1, lineStart: 0}
	walkLeaves(tree.RootNode(), func(n *sitter.Node) {
		b.leaf(n)
	})
	b.gap(len(source))

	stream, err := token.NewStream(b.tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return stream, nil
}

// builder accumulates tokens while tracking the current line and column.
type builder struct {
	source    []byte
	tokens    []token.Token
	pos       int
	line      int
	lineStart int
}

func (b *builder) emit(kind token.Kind, start, end int) {
	b.tokens = append(b.tokens, token.Token{
		Kind:   kind,
		Text:   string(b.source[start:end]),
		Line:   b.line,
		Column: start - b.lineStart + 1,
	})
	b.advance(start, end)
}

// advance moves the cursor to end, counting line breaks in [start, end).
func (b *builder) advance(start, end int) {
	for i := start; i < end; i++ {
		if b.source[i] == '\n' {
			b.line++
			b.lineStart = i + 1
		}
	}
	b.pos = end
}

// gap emits the text between the cursor and end as whitespace tokens.
func (b *builder) gap(end int) {
	start := b.pos
	for i := start; i < end; i++ {
		if b.source[i] == '\n' {
			b.emit(gapKind(b.source[start:i+1]), start, i+1)
			start = i + 1
		}
	}
	if start < end {
		b.emit(gapKind(b.source[start:end]), start, end)
	}
}

func (b *builder) leaf(n *sitter.Node) {
	start, end := int(n.StartByte()), int(n.EndByte())
	if end <= start || start < b.pos {
		return
	}
	b.gap(start)
	b.emit(classify(n), start, end)
}

// gapKind reports whitespace for blank runs; anything else tree-sitter
// skipped is kept as an opaque token.
func gapKind(text []byte) token.Kind {
	for _, c := range text {
		switch c {
		case ' ', '\t', '\n', '\r', '\f', '\v':
		default:
			return token.KindOther
		}
	}
	return token.KindWhitespace
}
