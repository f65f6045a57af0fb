// Package driver is the top-level glue: parse, build, solve, report. It
// is the only package that owns a concrete integer type end to end
// (flow.Int) and the only package that constructs a token.FileSet.
package driver

import (
	"go/token"

	"honnef.co/go/rangecheck/config"
	"honnef.co/go/rangecheck/diagnostic"
	"honnef.co/go/rangecheck/flow"
	"honnef.co/go/rangecheck/parse"
)

// Result is everything a caller needs after a run: every diagnostic
// emitted, in emission order, and whether a fatal error aborted the run
// before a verdict was reached.
type Result struct {
	Diagnostics []diagnostic.Diagnostic
	Err         error
}

// Run parses src (named filename, for diagnostic positions), builds the
// location sequence, and solves it to a fixpoint. A fatal structural
// error (parse failure or an unrecognized node reaching the Builder)
// stops the run early and is returned in Result.Err as well as recorded
// as the final diagnostic.
func Run(filename, src string, cfg config.Config) Result {
	fset := token.NewFileSet()
	file := fset.AddFile(filename, -1, len(src))

	var diags []diagnostic.Diagnostic
	sink := func(d diagnostic.Diagnostic) {
		if d.Severity == diagnostic.Warning && !config.WarningEnabled(cfg, string(d.Category)) {
			return
		}
		diags = append(diags, d)
	}

	prog, err := parse.ParseFile(file, src)
	if err != nil {
		return Result{Diagnostics: append(diags, asDiagnostic(err)), Err: err}
	}

	builder := flow.NewBuilder(fset, cfg.WidenAfter)
	locations, precondition, err := builder.Build(prog)
	if err != nil {
		return Result{Diagnostics: append(diags, asDiagnostic(err)), Err: err}
	}

	solver := flow.NewSolver(fset, locations, precondition, cfg.MaxIterations, sink)
	if err := solver.Run(); err != nil {
		return Result{Diagnostics: append(diags, asDiagnostic(err)), Err: err}
	}

	return Result{Diagnostics: diags}
}

func asDiagnostic(err error) diagnostic.Diagnostic {
	if fe, ok := err.(*diagnostic.FatalError); ok {
		return diagnostic.Diagnostic{Severity: diagnostic.Fatal, Pos: fe.Pos, Message: fe.Unwrap().Error()}
	}
	return diagnostic.Diagnostic{Severity: diagnostic.Fatal, Message: err.Error()}
}
