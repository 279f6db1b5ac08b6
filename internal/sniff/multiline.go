package sniff

import "github.com/mvp-joe/fndecl/internal/token"

// DefaultIndentStep is the number of spaces parameters are indented past the
// declaration.
const DefaultIndentStep = 4

var nonWhitespace = token.Not(token.Is(token.KindWhitespace))

// functionIndent is the width of the whitespace that starts the keyword's line.
func functionIndent(s *token.Stream, keyword int) int {
	first := s.LineStart(keyword)
	if s.At(first).IsWhitespace() {
		return s.At(first).Width()
	}
	return 0
}

// closerAlone reports whether the closer of a multi-line span sits on a line
// of its own. Single-line spans always pass.
func closerAlone(s *token.Stream, span token.Span) bool {
	if sameLine(s, span) {
		return true
	}
	prev := s.FindPrevious(nonWhitespace, span.Closer-1, -1)
	return prev < 0 || s.At(prev).Line != s.At(span.Closer).Line
}

// checkMultiLine validates bracket placement and indentation of a
// declaration whose signature spans lines.
func (c *Checker) checkMultiLine(s *token.Stream, d Declaration) []Violation {
	var found []Violation

	indent := functionIndent(s, d.Keyword)

	// Applies with or without a body.
	if !closerAlone(s, d.Params) {
		found = append(found, newViolation(s, d.Params.Closer, CodeCloseBracketLine,
			"The closing parenthesis of a multi-line function declaration must be on a new line"))
	}

	if d.Capture != nil && !closerAlone(s, *d.Capture) {
		found = append(found, newViolation(s, d.Capture.Closer, CodeUseCloseBracketLine,
			"The closing parenthesis of a multi-line use declaration must be on a new line"))
	}

	closer := d.EffectiveCloser()
	found = append(found, c.checkIndent(s, d, indent, closer)...)

	if d.HasBody() {
		found = append(found, checkBraceGap(s, closer)...)
	}

	return found
}

// checkIndent scans every line between the parameter opener and the
// effective closer. Array literals are skipped to their closer.
func (c *Checker) checkIndent(s *token.Stream, d Declaration, indent, closer int) []Violation {
	var found []Violation

	step := c.IndentStep
	if step <= 0 {
		step = DefaultIndentStep
	}

	lastLine := s.At(d.Params.Opener).Line
	for i := d.Params.Opener + 1; i < closer; i++ {
		t := s.At(i)

		if t.Line != lastLine {
			expected := indent + step
			if i == d.Params.Closer ||
				(t.IsWhitespace() && (i+1 == closer || i+1 == d.Params.Closer)) {
				// Closing parentheses line up with the declaration.
				expected = indent
			}

			foundIndent := 0
			if t.IsWhitespace() {
				foundIndent = t.Width()
			}

			if expected != foundIndent {
				found = append(found, newViolation(s, i, CodeIndent,
					"Multi-line function declaration not indented correctly; expected %v spaces but found %v",
					expected, foundIndent))
			}

			lastLine = t.Line
		}

		if end, ok := arrayEnd(s, i); ok {
			i = end
			lastLine = s.At(i).Line
		}
	}

	return found
}

// arrayEnd returns the closer of the array literal opened at i.
func arrayEnd(s *token.Stream, i int) (int, bool) {
	switch s.At(i).Kind {
	case token.KindOpenShortArray:
		return s.Match(i)
	case token.KindArray:
		span, ok := s.Parens(i)
		return span.Closer, ok
	}
	return 0, false
}

// checkBraceGap requires exactly one space between the effective closer and
// the body opener.
func checkBraceGap(s *token.Stream, closer int) []Violation {
	var found []Violation

	const message = "There must be a single space between the closing parenthesis and the opening brace of a multi-line function declaration"

	next := closer + 1
	switch {
	case !s.Valid(next):
	case s.IsNewline(next):
		found = append(found, newViolation(s, closer, CodeNewlineBeforeOpenBrace, message+"; found newline"))
	case !s.At(next).IsWhitespace():
		found = append(found, newViolation(s, closer, CodeSpaceBeforeOpenBrace, message+"; found %v spaces", 0))
	case s.At(next).Width() != 1:
		found = append(found, newViolation(s, closer, CodeSpaceBeforeOpenBrace, message+"; found %v spaces", s.At(next).Width()))
	}

	// Only whitespace may separate the closer from the brace.
	if brace := s.FindNext(nonWhitespace, closer+1, -1); brace >= 0 && s.At(brace).Kind != token.KindOpenCurly {
		found = append(found, newViolation(s, brace, CodeNoSpaceBeforeOpenBrace, message))
	}

	return found
}
