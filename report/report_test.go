package report

import (
	"bytes"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"

	"honnef.co/go/rangecheck/diagnostic"
)

func sampleDiagnostics() []diagnostic.Diagnostic {
	return []diagnostic.Diagnostic{
		{
			Severity: diagnostic.Warning,
			Category: diagnostic.CategoryDivisionByZero,
			Pos:      token.Position{Filename: "t.rc", Line: 3, Column: 5},
			Message:  "division by an interval that may be zero",
		},
		{
			Severity: diagnostic.Verdict,
			Category: diagnostic.CategorySatisfied,
			Pos:      token.Position{Filename: "t.rc", Line: 7, Column: 1},
			Message:  "postcondition satisfied: [5, 5] == [5, 5]",
		},
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TextFormatter{W: &buf}
	f.Format(sampleDiagnostics())

	out := buf.String()
	assert.Contains(t, out, "division by an interval that may be zero")
	assert.Contains(t, out, "postcondition satisfied")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "verdict")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{W: &buf}
	f.Format(sampleDiagnostics())

	out := buf.String()
	assert.Contains(t, out, `"severity":"warning"`)
	assert.Contains(t, out, `"category":"division-by-zero"`)
	assert.Contains(t, out, `"line":3`)
}

func TestStylishFormatterGroupsByFile(t *testing.T) {
	var buf bytes.Buffer
	f := &StylishFormatter{W: &buf}
	f.Format(sampleDiagnostics())

	out := buf.String()
	assert.Contains(t, out, "t.rc")
	assert.Contains(t, out, "(3, 5)")
	assert.Contains(t, out, "(7, 1)")
}

func TestNewFormatterFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter("unknown-format", &buf)
	_, ok := f.(*TextFormatter)
	assert.True(t, ok)
}
