// Package token holds the pre-tokenized view of a source file that the
// declaration checks run over.
package token

// Kind classifies a token.
type Kind int

const (
	KindOther Kind = iota
	KindWhitespace
	KindComment
	KindFunction
	KindClosure
	KindUse
	KindArray
	KindOpenParen
	KindCloseParen
	KindOpenCurly
	KindCloseCurly
	KindOpenSquare
	KindOpenShortArray
	KindCloseSquare
	KindSemicolon
)

var kindNames = map[Kind]string{
	KindOther:          "other",
	KindWhitespace:     "whitespace",
	KindComment:        "comment",
	KindFunction:       "function",
	KindClosure:        "closure",
	KindUse:            "use",
	KindArray:          "array",
	KindOpenParen:      "open_paren",
	KindCloseParen:     "close_paren",
	KindOpenCurly:      "open_curly",
	KindCloseCurly:     "close_curly",
	KindOpenSquare:     "open_square",
	KindOpenShortArray: "open_short_array",
	KindCloseSquare:    "close_square",
	KindSemicolon:      "semicolon",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsOpener reports whether the kind opens a bracket pair.
func (k Kind) IsOpener() bool {
	switch k {
	case KindOpenParen, KindOpenCurly, KindOpenSquare, KindOpenShortArray:
		return true
	}
	return false
}

// IsCloser reports whether the kind closes a bracket pair.
func (k Kind) IsCloser() bool {
	switch k {
	case KindCloseParen, KindCloseCurly, KindCloseSquare:
		return true
	}
	return false
}

// closes reports whether a closer of kind k pairs with an opener of kind open.
func (k Kind) closes(open Kind) bool {
	switch k {
	case KindCloseParen:
		return open == KindOpenParen
	case KindCloseCurly:
		return open == KindOpenCurly
	case KindCloseSquare:
		return open == KindOpenSquare || open == KindOpenShortArray
	}
	return false
}

// Token is one lexical unit. Line and Column are 1-based.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
	Index  int
}

// IsWhitespace reports whether the token is a whitespace run.
func (t Token) IsWhitespace() bool {
	return t.Kind == KindWhitespace
}

// Width is the character count of the token text.
func (t Token) Width() int {
	return len(t.Text)
}

// Span is a resolved opener/closer pair.
type Span struct {
	Opener int
	Closer int
}
