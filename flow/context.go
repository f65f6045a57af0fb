package flow

import (
	"fmt"
	"go/token"

	"honnef.co/go/rangecheck/diagnostic"
)

// Context is threaded explicitly into every location's step function
// instead of being captured in a closure over the location itself. It
// carries the things a step needs that aren't part of its own slots:
// where to route queue traffic, where to send warnings, and how to
// resolve positions for diagnostics.
type Context struct {
	Fset *token.FileSet
	Sink func(diagnostic.Diagnostic)

	queues    *queues
	reporting bool
}

func (c *Context) warn(pos token.Pos, category diagnostic.Category, format string, args ...any) {
	c.report(diagnostic.Warning, pos, category, format, args...)
}

// verdict reports a postcondition's satisfied/violated result. Unlike
// warn, this is never subject to config.WarningEnabled filtering: a
// postcondition's outcome is the analysis's answer to the question the
// source asked, not a soundness hazard the user can choose to silence.
func (c *Context) verdict(pos token.Pos, category diagnostic.Category, format string, args ...any) {
	c.report(diagnostic.Verdict, pos, category, format, args...)
}

func (c *Context) report(severity diagnostic.Severity, pos token.Pos, category diagnostic.Category, format string, args ...any) {
	if c.Sink == nil {
		return
	}
	c.Sink(diagnostic.Diagnostic{
		Severity: severity,
		Category: category,
		Pos:      c.Fset.Position(pos),
		Message:  fmt.Sprintf(format, args...),
	})
}
