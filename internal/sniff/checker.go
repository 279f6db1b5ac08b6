// Package sniff checks the layout of PHP function and closure declarations.
//
// Each declaration is classified as single-line or multi-line from its
// parameter list and capture clause. Keyword spacing is checked for every
// declaration. Single-line declarations then have their opening brace checked
// by a BraceStyle chosen by declaration kind. Multi-line declarations have
// their closing parentheses, brace gap and parameter indentation checked.
package sniff

import (
	"errors"
	"sort"

	"github.com/mvp-joe/fndecl/internal/token"
)

// Checker runs the declaration rules. It holds no per-declaration state and
// may be shared across goroutines.
type Checker struct {
	// IndentStep is the expected parameter indentation past the declaration.
	IndentStep int
	// FunctionBrace checks single-line named functions and methods.
	FunctionBrace BraceStyle
	// ClosureBrace checks single-line closures.
	ClosureBrace BraceStyle
}

// NewChecker creates a checker with the default brace styles.
func NewChecker(indentStep int) *Checker {
	return &Checker{
		IndentStep:    indentStep,
		FunctionBrace: BsdAllman{},
		ClosureBrace:  KernighanRitchie{},
	}
}

// NewCheckerFromRegistry resolves the brace styles by name.
func NewCheckerFromRegistry(registry BraceRegistry, indentStep int, functionBrace, closureBrace string) (*Checker, error) {
	fn, err := registry.Lookup(Function, functionBrace)
	if err != nil {
		return nil, err
	}
	cl, err := registry.Lookup(Closure, closureBrace)
	if err != nil {
		return nil, err
	}
	return &Checker{
		IndentStep:    indentStep,
		FunctionBrace: fn,
		ClosureBrace:  cl,
	}, nil
}

// braceStyle selects the policy for a declaration kind.
func (c *Checker) braceStyle(kind DeclKind) (BraceStyle, error) {
	style := c.FunctionBrace
	if kind == Closure {
		style = c.ClosureBrace
	}
	if style == nil {
		return nil, &ConfigError{Kind: kind, Err: ErrPolicyUnavailable}
	}
	return style, nil
}

// Check classifies one declaration and returns its violations ordered by
// token index. A *ConfigError aborts the declaration.
func (c *Checker) Check(s *token.Stream, keyword int) ([]Violation, error) {
	d, err := Classify(s, keyword)
	if err != nil {
		return nil, err
	}

	found := checkSpacing(s, d)

	if d.Class(s) == SingleLine {
		style, err := c.braceStyle(d.Kind)
		if err != nil {
			return nil, err
		}
		if v := style.Check(s, d); v != nil {
			found = append(found, *v)
		}
	} else {
		found = append(found, c.checkMultiLine(s, d)...)
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Location < found[j].Location
	})

	return found, nil
}

// Process checks one declaration and delivers its violations to sink.
func (c *Checker) Process(s *token.Stream, keyword int, sink Sink) error {
	found, err := c.Check(s, keyword)
	if err != nil {
		return err
	}
	for _, v := range found {
		sink.Report(v)
	}
	return nil
}

// Run checks every declaration in the stream. Keywords without a resolved
// parameter list are skipped; configuration errors stop the run.
func (c *Checker) Run(s *token.Stream, sink Sink) error {
	for i := 0; i < s.Len(); i++ {
		switch s.At(i).Kind {
		case token.KindFunction, token.KindClosure:
			err := c.Process(s, i, sink)
			if errors.Is(err, ErrUnresolvedParams) {
				continue
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
