package sniff

import (
	"fmt"
	"sort"

	"github.com/mvp-joe/fndecl/internal/token"
)

// Brace style names accepted by BraceRegistry.
const (
	StyleKernighanRitchie = "kernighan-ritchie"
	StyleBsdAllman        = "bsd-allman"
)

// BraceStyle checks where the body opener of a single-line declaration sits.
type BraceStyle interface {
	Name() string
	Check(s *token.Stream, d Declaration) *Violation
}

// signatureEnd returns the last non-whitespace token before the body opener.
// Return types and capture clauses end the signature when present.
func signatureEnd(s *token.Stream, d Declaration) int {
	prev := s.FindPrevious(token.Not(token.Is(token.KindWhitespace)), d.Body-1, d.Params.Closer)
	if prev < 0 {
		return d.Params.Closer
	}
	return prev
}

// KernighanRitchie requires the opening brace on the same line as the
// declaration, one space after it.
type KernighanRitchie struct{}

func (KernighanRitchie) Name() string { return StyleKernighanRitchie }

func (KernighanRitchie) Check(s *token.Stream, d Declaration) *Violation {
	if !d.HasBody() {
		return nil
	}

	end := signatureEnd(s, d)
	if s.At(d.Body).Line != s.At(end).Line {
		v := newViolation(s, d.Body, CodeBraceOnNewLine, "Opening brace should be on the same line as the declaration")
		return &v
	}

	if length := singleSpaceWidth(s, d.Body-1); length != 1 {
		v := newViolation(s, d.Body, CodeSpaceBeforeBrace, "Expected 1 space before opening brace; found %v", length)
		return &v
	}

	return nil
}

// BsdAllman requires the opening brace on the line directly after the
// declaration.
type BsdAllman struct{}

func (BsdAllman) Name() string { return StyleBsdAllman }

func (BsdAllman) Check(s *token.Stream, d Declaration) *Violation {
	if !d.HasBody() {
		return nil
	}

	end := signatureEnd(s, d)
	lineDifference := s.At(d.Body).Line - s.At(end).Line
	switch {
	case lineDifference == 0:
		v := newViolation(s, d.Body, CodeBraceOnSameLine, "Opening brace should be on a new line")
		return &v
	case lineDifference > 1:
		v := newViolation(s, d.Body, CodeBraceSpacing,
			"Opening brace should be on the line after the declaration; found %v blank line(s)", lineDifference-1)
		return &v
	}

	return nil
}

// BraceRegistry resolves brace styles by name.
type BraceRegistry map[string]BraceStyle

// DefaultBraceRegistry returns a registry holding the built-in styles.
func DefaultBraceRegistry() BraceRegistry {
	return BraceRegistry{
		StyleKernighanRitchie: KernighanRitchie{},
		StyleBsdAllman:        BsdAllman{},
	}
}

// Lookup returns the named style or a *ConfigError.
func (r BraceRegistry) Lookup(kind DeclKind, name string) (BraceStyle, error) {
	style, ok := r[name]
	if !ok || style == nil {
		return nil, &ConfigError{
			Kind:   kind,
			Policy: name,
			Err:    fmt.Errorf("%w (known: %v)", ErrPolicyUnavailable, r.Names()),
		}
	}
	return style, nil
}

// Names lists the registered style names in sorted order.
func (r BraceRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
