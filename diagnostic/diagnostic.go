// Package diagnostic defines the three-level severity taxonomy the
// analyzer reports through: fatal structural errors, soundness-hazard
// warnings, and postcondition verdicts.
package diagnostic

import (
	"fmt"
	"go/token"

	"golang.org/x/xerrors"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// Warning is a soundness hazard (division that may divide by zero,
	// arithmetic overflow, a pruned-to-⊥ branch). Printed, never aborts
	// the run.
	Warning Severity = iota
	// Verdict is a postcondition's satisfied/violated result. Printed,
	// never changes the process exit code.
	Verdict
	// Fatal is a structural error (unknown AST node, malformed condition
	// orientation). Aborts the run.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Verdict:
		return "verdict"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Category further classifies Warning and Verdict diagnostics. Warning
// diagnostics are filtered by category per package config; verdicts are
// never filtered.
type Category string

const (
	CategoryDivisionByZero Category = "division-by-zero"
	CategoryOverflow       Category = "overflow"
	CategoryUnreachable    Category = "unreachable-branch"
	CategoryDeadBranch     Category = "dead-branch"
	CategorySatisfied      Category = "satisfied"
	CategoryViolated       Category = "violated"
)

// Diagnostic is the uniform payload every warning and verdict is reported
// through.
type Diagnostic struct {
	Severity Severity
	Category Category
	Pos      token.Position
	Message  string
}

func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// FatalError wraps a structural failure with the position it was detected
// at. It is constructed with golang.org/x/xerrors so that %w-wrapped
// causes (a malformed condition surfaced by the parser, for instance)
// remain inspectable with errors.As by callers such as tests, without the
// CLI's top-level error handling needing to know about wrapping at all.
type FatalError struct {
	Pos token.Position
	err error
}

func (e *FatalError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.err)
	}
	return e.err.Error()
}

func (e *FatalError) Unwrap() error { return e.err }

// Fatalf builds a *FatalError positioned at pos, wrapping any %w verb in
// format the way xerrors.Errorf does.
func Fatalf(pos token.Position, format string, args ...any) error {
	return &FatalError{Pos: pos, err: xerrors.Errorf(format, args...)}
}
