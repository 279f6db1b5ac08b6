package sniff

import (
	"errors"
	"fmt"
)

var (
	// ErrPolicyUnavailable indicates a brace style policy is missing or
	// unknown. It is fatal for the whole run.
	ErrPolicyUnavailable = errors.New("brace style policy unavailable")

	// ErrNotDeclaration indicates the token is not a function or closure keyword.
	ErrNotDeclaration = errors.New("token is not a function declaration keyword")

	// ErrUnresolvedParams indicates the keyword has no linked parameter list.
	ErrUnresolvedParams = errors.New("declaration has no resolved parameter list")
)

// ConfigError is the fatal tier: the checker cannot run without the named
// policy. It is returned to the caller, never reported as a Violation.
type ConfigError struct {
	Kind   DeclKind
	Policy string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Policy == "" {
		return fmt.Sprintf("no brace style configured for %s declarations: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("brace style %q for %s declarations: %v", e.Policy, e.Kind, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
