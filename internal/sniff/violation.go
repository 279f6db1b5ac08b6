package sniff

import (
	"fmt"
	"sync"
)

// Violation codes.
const (
	CodeSpaceAfterFunction     = "SpaceAfterFunction"
	CodeSpaceBeforeOpenParen   = "SpaceBeforeOpenParen"
	CodeSpaceAfterUse          = "SpaceAfterUse"
	CodeSpaceBeforeUse         = "SpaceBeforeUse"
	CodeCloseBracketLine       = "CloseBracketLine"
	CodeUseCloseBracketLine    = "UseCloseBracketLine"
	CodeSpaceBeforeOpenBrace   = "SpaceBeforeOpenBrace"
	CodeNewlineBeforeOpenBrace = "NewlineBeforeOpenBrace"
	CodeNoSpaceBeforeOpenBrace = "NoSpaceBeforeOpenBrace"
	CodeIndent                 = "Indent"
	CodeBraceOnNewLine         = "BraceOnNewLine"
	CodeSpaceBeforeBrace       = "SpaceBeforeBrace"
	CodeBraceOnSameLine        = "BraceOnSameLine"
	CodeBraceSpacing           = "BraceSpacing"
)

// newline is reported in place of a width when the gap is a line break.
const newline = "newline"

// Violation is one formatting deviation. Message is a fmt template filled
// from Data.
type Violation struct {
	Code     string
	Message  string
	Location int
	Line     int
	Column   int
	Data     []any
}

// Text renders the message with its data.
func (v Violation) Text() string {
	if len(v.Data) == 0 {
		return v.Message
	}
	return fmt.Sprintf(v.Message, v.Data...)
}

// Sink receives violations.
type Sink interface {
	Report(v Violation)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(v Violation)

func (f SinkFunc) Report(v Violation) { f(v) }

// Collector is an in-memory Sink. Use one Collector per stream when checking
// files in parallel.
type Collector struct {
	mu         sync.Mutex
	violations []Violation
}

// Report records a violation.
func (c *Collector) Report(v Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.violations = append(c.violations, v)
}

// Violations returns a copy of the recorded violations in report order.
func (c *Collector) Violations() []Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Violation, len(c.violations))
	copy(out, c.violations)
	return out
}

// Len returns the number of recorded violations.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.violations)
}
