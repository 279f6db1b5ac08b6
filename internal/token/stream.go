package token

import "strings"

// Predicate selects tokens during a scan.
type Predicate func(Token) bool

// Is matches tokens of any of the given kinds.
func Is(kinds ...Kind) Predicate {
	return func(t Token) bool {
		for _, k := range kinds {
			if t.Kind == k {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(t Token) bool {
		return !p(t)
	}
}

// Stream is a read-only, randomly addressable token sequence with
// pre-resolved bracket and scope links. It is safe for concurrent readers.
type Stream struct {
	tokens []Token
	eol    string

	// match links every opener to its closer and every closer to its opener.
	match map[int]int
	// parens links function, closure and array keywords to their parenthesis pair.
	parens map[int]Span
	// scopes links function and closure keywords to their body opener.
	scopes map[int]int
}

// NewStream indexes tokens and resolves their bracket and scope links.
func NewStream(tokens []Token) (*Stream, error) {
	s := &Stream{
		tokens: make([]Token, len(tokens)),
		eol:    "\n",
		match:  make(map[int]int),
		parens: make(map[int]Span),
		scopes: make(map[int]int),
	}

	for i, t := range tokens {
		t.Index = i
		s.tokens[i] = t
		if t.Kind == KindWhitespace && strings.Contains(t.Text, "\r\n") {
			s.eol = "\r\n"
		}
	}

	if err := s.link(); err != nil {
		return nil, err
	}

	return s, nil
}

// Len returns the number of tokens.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns the token at index i.
func (s *Stream) At(i int) Token {
	return s.tokens[i]
}

// Valid reports whether i addresses a token.
func (s *Stream) Valid(i int) bool {
	return i >= 0 && i < len(s.tokens)
}

// EOL is the line terminator used by the source.
func (s *Stream) EOL() string {
	return s.eol
}

// IsNewline reports whether the token is a bare line break.
func (s *Stream) IsNewline(i int) bool {
	return s.tokens[i].Kind == KindWhitespace && s.tokens[i].Text == s.eol
}

// Match returns the partner of a bracket token.
func (s *Stream) Match(i int) (int, bool) {
	j, ok := s.match[i]
	return j, ok
}

// Parens returns the parenthesis pair owned by a keyword token, or the pair
// an open parenthesis starts.
func (s *Stream) Parens(i int) (Span, bool) {
	if span, ok := s.parens[i]; ok {
		return span, true
	}
	if s.Valid(i) && s.tokens[i].Kind == KindOpenParen {
		if closer, ok := s.match[i]; ok {
			return Span{Opener: i, Closer: closer}, true
		}
	}
	return Span{}, false
}

// ScopeOpener returns the body opener of a function or closure keyword.
// Abstract and interface declarations have none.
func (s *Stream) ScopeOpener(keyword int) (int, bool) {
	opener, ok := s.scopes[keyword]
	return opener, ok
}

// FindNext returns the first index in [from, to) whose token satisfies p, or
// -1. A negative to scans to the end of the stream.
func (s *Stream) FindNext(p Predicate, from, to int) int {
	if to < 0 || to > len(s.tokens) {
		to = len(s.tokens)
	}
	if from < 0 {
		from = 0
	}
	for i := from; i < to; i++ {
		if p(s.tokens[i]) {
			return i
		}
	}
	return -1
}

// FindPrevious returns the last index in [to, from] whose token satisfies p,
// scanning backward, or -1. A negative to scans to the start of the stream.
func (s *Stream) FindPrevious(p Predicate, from, to int) int {
	if from >= len(s.tokens) {
		from = len(s.tokens) - 1
	}
	if to < 0 {
		to = 0
	}
	for i := from; i >= to; i-- {
		if p(s.tokens[i]) {
			return i
		}
	}
	return -1
}

// LineStart returns the index of the first token on the line of token i.
func (s *Stream) LineStart(i int) int {
	line := s.tokens[i].Line
	for i > 0 && s.tokens[i-1].Line == line {
		i--
	}
	return i
}
