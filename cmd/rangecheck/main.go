// Command rangecheck runs the interval abstract interpreter over a
// single ".rc" source file and prints the diagnostics and postcondition
// verdicts it produces.
package main

import (
	"fmt"
	"os"

	"path/filepath"

	"github.com/spf13/pflag"

	"honnef.co/go/rangecheck/config"
	"honnef.co/go/rangecheck/diagnostic"
	"honnef.co/go/rangecheck/driver"
	"honnef.co/go/rangecheck/report"
	"honnef.co/go/rangecheck/version"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("rangecheck", pflag.ContinueOnError)
	maxIterations := fs.Int("max-iterations", 0, "cap on Jacobi iterations (0 = use config/default)")
	widenAfter := fs.Int("widen-after", 0, "rounds before the while-loop head join starts widening (0 = use config/default)")
	format := fs.String("format", "text", "diagnostic format: text, json, or stylish")
	trace := fs.Bool("trace", false, "format each diagnostic on its own instead of as one batch (both after the analysis finishes)")
	printVersion := fs.Bool("version", false, "print version information and exit")
	fs.SortFlags = false

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *printVersion {
		version.Print()
		return 0
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rangecheck [flags] <file.rc>")
		return 1
	}
	path := fs.Arg(0)

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rangecheck: %s\n", err)
		return 1
	}

	cfg, err := config.Load(sourceDir(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "rangecheck: reading config: %s\n", err)
		return 1
	}
	if *maxIterations > 0 {
		cfg.MaxIterations = *maxIterations
	}
	if *widenAfter > 0 {
		cfg.WidenAfter = *widenAfter
	}

	result := driver.Run(path, string(src), cfg)

	// Every diagnostic (warnings, fatal errors, and postcondition
	// verdicts alike) goes to stderr; a violated postcondition is
	// reported but never changes the exit code.
	stderrFormatter := report.NewFormatter(*format, os.Stderr)

	fatalCount, warningCount := 0, 0
	for _, d := range result.Diagnostics {
		switch d.Severity {
		case diagnostic.Fatal:
			fatalCount++
		case diagnostic.Warning:
			warningCount++
		}
		if *trace {
			stderrFormatter.Format([]diagnostic.Diagnostic{d})
		}
	}

	if !*trace {
		stderrFormatter.Format(result.Diagnostics)
	}
	if *format == "stylish" {
		report.Summary(os.Stderr, len(result.Diagnostics), fatalCount, warningCount)
	}

	if result.Err != nil {
		return 1
	}
	return 0
}

func sourceDir(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "."
	}
	return filepath.Dir(abs)
}
