package token

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalanced indicates a closer without a matching opener, or an
	// opener left open at end of stream.
	ErrUnbalanced = errors.New("unbalanced brackets")
)

type openBracket struct {
	index int
	kind  Kind
}

// link pairs brackets and attaches parenthesis and scope links to the
// keywords that own them.
func (s *Stream) link() error {
	var stack []openBracket

	for i, t := range s.tokens {
		switch {
		case t.Kind.IsOpener():
			stack = append(stack, openBracket{index: i, kind: t.Kind})
		case t.Kind.IsCloser():
			if len(stack) == 0 {
				return fmt.Errorf("%w: unexpected %q on line %d", ErrUnbalanced, t.Text, t.Line)
			}
			top := stack[len(stack)-1]
			if !t.Kind.closes(top.kind) {
				return fmt.Errorf("%w: %q on line %d does not close %q on line %d",
					ErrUnbalanced, t.Text, t.Line, s.tokens[top.index].Text, s.tokens[top.index].Line)
			}
			stack = stack[:len(stack)-1]
			s.match[top.index] = i
			s.match[i] = top.index
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("%w: %q on line %d is never closed", ErrUnbalanced, s.tokens[top.index].Text, s.tokens[top.index].Line)
	}

	for i, t := range s.tokens {
		switch t.Kind {
		case KindFunction, KindClosure:
			s.linkDeclaration(i)
		case KindArray:
			next := s.FindNext(Not(Is(KindWhitespace, KindComment)), i+1, -1)
			if next >= 0 && s.tokens[next].Kind == KindOpenParen {
				s.parens[i] = Span{Opener: next, Closer: s.match[next]}
			}
		}
	}

	return nil
}

// linkDeclaration resolves the parameter list and the body opener of a
// function or closure keyword.
func (s *Stream) linkDeclaration(keyword int) {
	open := -1
	for i := keyword + 1; i < len(s.tokens); i++ {
		kind := s.tokens[i].Kind
		if kind == KindOpenParen {
			open = i
			break
		}
		if kind == KindOpenCurly || kind == KindSemicolon {
			return
		}
	}
	if open < 0 {
		return
	}

	closer := s.match[open]
	s.parens[keyword] = Span{Opener: open, Closer: closer}

	for i := closer + 1; i < len(s.tokens); i++ {
		switch s.tokens[i].Kind {
		case KindOpenCurly:
			s.scopes[keyword] = i
			return
		case KindSemicolon, KindCloseCurly, KindCloseParen, KindCloseSquare:
			return
		case KindOpenParen, KindOpenSquare, KindOpenShortArray:
			// use clauses and attribute arguments
			i = s.match[i]
		}
	}
}
