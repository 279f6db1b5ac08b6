package sniff

import "github.com/mvp-joe/fndecl/internal/token"

// newViolation builds a violation located at token i.
func newViolation(s *token.Stream, i int, code, message string, data ...any) Violation {
	t := s.At(i)
	return Violation{
		Code:     code,
		Message:  message,
		Location: i,
		Line:     t.Line,
		Column:   t.Column,
		Data:     data,
	}
}

// gapWidth measures the whitespace token at i: its width, "newline" for a
// bare line break, or 0 when i is not whitespace.
func gapWidth(s *token.Stream, i int) any {
	if !s.Valid(i) {
		return 0
	}
	if s.IsNewline(i) {
		return newline
	}
	if s.At(i).IsWhitespace() {
		return s.At(i).Width()
	}
	return 0
}

// singleSpaceWidth measures the whitespace token at i for rules requiring
// exactly one space. A lone tab is reported as `\t`.
func singleSpaceWidth(s *token.Stream, i int) any {
	if !s.Valid(i) || !s.At(i).IsWhitespace() {
		return 0
	}
	if s.At(i).Text == "\t" {
		return `\t`
	}
	return s.At(i).Width()
}

// checkSpacing runs the keyword adjacency rules that apply regardless of
// line classification.
func checkSpacing(s *token.Stream, d Declaration) []Violation {
	var found []Violation

	switch d.Kind {
	case Closure:
		if spaces := gapWidth(s, d.Keyword+1); spaces != 0 {
			found = append(found, newViolation(s, d.Keyword, CodeSpaceAfterFunction,
				"Must be 0 spaces after FUNCTION closure keyword; %v found", spaces))
		}
	case Function:
		if spaces := gapWidth(s, d.Params.Opener-1); spaces != 0 {
			found = append(found, newViolation(s, d.Params.Opener, CodeSpaceBeforeOpenParen,
				"Expected 0 spaces before opening parenthesis; %v found", spaces))
		}
	}

	if d.Capture != nil {
		if length := singleSpaceWidth(s, d.Use+1); length != 1 {
			found = append(found, newViolation(s, d.Use, CodeSpaceAfterUse,
				"Expected 1 space after USE keyword; found %v", length))
		}
		if length := singleSpaceWidth(s, d.Use-1); length != 1 {
			found = append(found, newViolation(s, d.Use, CodeSpaceBeforeUse,
				"Expected 1 space before USE keyword; found %v", length))
		}
	}

	return found
}
