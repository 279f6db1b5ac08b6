package sniff

import (
	"fmt"

	"github.com/mvp-joe/fndecl/internal/token"
)

// DeclKind distinguishes named functions from closures.
type DeclKind int

const (
	Function DeclKind = iota
	Closure
)

func (k DeclKind) String() string {
	if k == Closure {
		return "closure"
	}
	return "function"
}

// LineClass is the single-line or multi-line classification of a declaration.
type LineClass int

const (
	SingleLine LineClass = iota
	MultiLine
)

func (c LineClass) String() string {
	if c == MultiLine {
		return "multi-line"
	}
	return "single-line"
}

// Declaration is one function-like construct, resolved from its keyword.
type Declaration struct {
	Keyword int
	Kind    DeclKind
	Params  token.Span
	// Use is the index of the capture clause keyword, or -1.
	Use int
	// Capture is the parenthesis pair of the capture clause.
	Capture *token.Span
	// Body is the index of the body opener, or -1.
	Body int
}

// HasBody reports whether the declaration has a body.
func (d Declaration) HasBody() bool {
	return d.Body >= 0
}

// Class derives the line classification from the parameter and capture spans.
func (d Declaration) Class(s *token.Stream) LineClass {
	if !sameLine(s, d.Params) {
		return MultiLine
	}
	if d.Capture != nil && !sameLine(s, *d.Capture) {
		return MultiLine
	}
	return SingleLine
}

// EffectiveCloser is the last closer of the signature: the capture clause
// closer when there is one, otherwise the parameter closer.
func (d Declaration) EffectiveCloser() int {
	if d.Capture != nil {
		return d.Capture.Closer
	}
	return d.Params.Closer
}

func sameLine(s *token.Stream, span token.Span) bool {
	return s.At(span.Opener).Line == s.At(span.Closer).Line
}

// Classify resolves the declaration started by a function or closure keyword.
func Classify(s *token.Stream, keyword int) (Declaration, error) {
	if !s.Valid(keyword) {
		return Declaration{}, fmt.Errorf("%w: index %d out of range", ErrNotDeclaration, keyword)
	}

	d := Declaration{Keyword: keyword, Use: -1, Body: -1}

	switch s.At(keyword).Kind {
	case token.KindFunction:
		d.Kind = Function
	case token.KindClosure:
		d.Kind = Closure
	default:
		return Declaration{}, fmt.Errorf("%w: %q on line %d", ErrNotDeclaration, s.At(keyword).Text, s.At(keyword).Line)
	}

	params, ok := s.Parens(keyword)
	if !ok {
		return Declaration{}, fmt.Errorf("%w: line %d", ErrUnresolvedParams, s.At(keyword).Line)
	}
	d.Params = params

	if body, ok := s.ScopeOpener(keyword); ok {
		d.Body = body
	}

	if d.Kind == Closure {
		end := d.Body
		if end < 0 {
			end = s.Len()
		}
		use := s.FindNext(token.Is(token.KindUse), params.Closer+1, end)
		if use >= 0 {
			d.Use = use
			open := s.FindNext(token.Is(token.KindOpenParen), use+1, -1)
			if capture, ok := s.Parens(open); ok {
				d.Capture = &capture
			}
		}
	}

	return d, nil
}
