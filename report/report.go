// Package report renders diagnostic.Diagnostic values to an io.Writer in
// one of three formats: text (plain, one line per diagnostic), json (one
// object per line), and stylish (grouped, tabwriter-aligned, colorized
// with mpldr.codes/ansi). Every severity — warnings, fatal errors, and
// postcondition verdicts alike — is written to the same stream (the
// CLI's error stream); this package only formats, it doesn't route.
package report

import (
	"encoding/json"
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"mpldr.codes/ansi"

	"honnef.co/go/rangecheck/diagnostic"
)

// relativeToCWD shortens path to be relative to the working directory,
// when that's actually shorter, so diagnostics don't print an absolute
// path for the common case of analyzing a file below the cwd.
func relativeToCWD(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}

// formatPosition renders pos as "file:line:col", "file" if the position
// carries no line/column, or "-" if pos has neither a filename nor a
// valid line/column (a diagnostic with no source location, e.g. one
// raised before a token.FileSet even exists).
func formatPosition(pos token.Position) string {
	file := relativeToCWD(pos.Filename)
	if !pos.IsValid() {
		if file == "" {
			return "-"
		}
		return file
	}
	if file == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	return fmt.Sprintf("%s:%d:%d", file, pos.Line, pos.Column)
}

// Formatter renders a batch of diagnostics to its underlying writer.
type Formatter interface {
	Format(ds []diagnostic.Diagnostic)
}

// NewFormatter selects a Formatter by name ("text", "json", "stylish");
// an unrecognized name falls back to "text".
func NewFormatter(name string, w io.Writer) Formatter {
	switch name {
	case "json":
		return &JSONFormatter{W: w}
	case "stylish":
		return &StylishFormatter{W: w}
	default:
		return &TextFormatter{W: w}
	}
}

type TextFormatter struct {
	W io.Writer
}

func (f *TextFormatter) Format(ds []diagnostic.Diagnostic) {
	for _, d := range ds {
		fmt.Fprintf(f.W, "%s: %s: %s\n", formatPosition(d.Pos), d.Severity, d.Message)
	}
}

type JSONFormatter struct {
	W io.Writer
}

func (f *JSONFormatter) Format(ds []diagnostic.Diagnostic) {
	type location struct {
		File   string `json:"file"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}
	enc := json.NewEncoder(f.W)
	for _, d := range ds {
		jd := struct {
			Severity string   `json:"severity"`
			Category string   `json:"category,omitempty"`
			Location location `json:"location"`
			Message  string   `json:"message"`
		}{
			Severity: d.Severity.String(),
			Category: string(d.Category),
			Location: location{File: d.Pos.Filename, Line: d.Pos.Line, Column: d.Pos.Column},
			Message:  d.Message,
		}
		_ = enc.Encode(jd)
	}
}

// StylishFormatter groups diagnostics by file and aligns them with a
// tabwriter, colorizing severity with mpldr.codes/ansi: fatal in red, a
// warning in yellow, a verdict in green.
type StylishFormatter struct {
	W io.Writer

	prevFile string
	tw       *tabwriter.Writer
}

func (f *StylishFormatter) Format(ds []diagnostic.Diagnostic) {
	for _, d := range ds {
		pos := d.Pos
		if pos.Filename == "" {
			pos.Filename = "-"
		}
		if pos.Filename != f.prevFile {
			if f.prevFile != "" {
				f.tw.Flush()
				fmt.Fprintln(f.W)
			}
			fmt.Fprintln(f.W, pos.Filename)
			f.prevFile = pos.Filename
			f.tw = tabwriter.NewWriter(f.W, 0, 4, 2, ' ', 0)
		}

		label := severityFormatter(d.Severity)(d.Severity.String())
		fmt.Fprintf(f.tw, "  (%d, %d)\t%s\t%s\n", pos.Line, pos.Column, label, d.Message)
	}
	if f.tw != nil {
		f.tw.Flush()
	}
}

func severityFormatter(s diagnostic.Severity) func(...any) string {
	switch s {
	case diagnostic.Fatal:
		return func(a ...any) string { return ansi.Red(ansi.Bold(a...)) }
	case diagnostic.Verdict:
		return func(a ...any) string { return ansi.Green(a...) }
	default:
		return func(a ...any) string { return ansi.Yellow(a...) }
	}
}

// Summary prints the closing diagnostic-count line below a stylish run.
func Summary(w io.Writer, total, fatal, warnings int) {
	icon := ansi.Green("✔")
	if warnings != 0 {
		icon = ansi.Yellow(ansi.Bold("!"))
	}
	if fatal != 0 {
		icon = ansi.Red("✘")
	}
	fmt.Fprintf(w, " %s %d diagnostics (%d fatal, %d warnings)\n", icon, total, fatal, warnings)
}
