package driver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"honnef.co/go/rangecheck/config"
	"honnef.co/go/rangecheck/diagnostic"
	"honnef.co/go/rangecheck/driver"
)

func TestRunReportsParseErrorAsFatal(t *testing.T) {
	result := driver.Run("bad.rc", "int x;\nx = ;\n", config.Default)
	require.Error(t, result.Err)
	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, diagnostic.Fatal, result.Diagnostics[0].Severity)
}

func TestRunFiltersDisabledWarningCategories(t *testing.T) {
	src := "int x;\nint y;\n0 <= x;\nx <= 3;\ny = 10 / x;\n"

	cfg := config.Default
	cfg.EnabledWarnings = []string{"overflow"}
	result := driver.Run("t.rc", src, cfg)
	require.NoError(t, result.Err)
	for _, d := range result.Diagnostics {
		require.NotEqual(t, diagnostic.CategoryDivisionByZero, d.Category)
	}

	cfg.EnabledWarnings = []string{"all"}
	result = driver.Run("t.rc", src, cfg)
	require.NoError(t, result.Err)
	found := false
	for _, d := range result.Diagnostics {
		if d.Category == diagnostic.CategoryDivisionByZero {
			found = true
		}
	}
	require.True(t, found)
}

func TestRunSucceedsOnSatisfiedPostcondition(t *testing.T) {
	result := driver.Run("t.rc", "int x;\nx = 5;\nassert(x == 5);\n", config.Default)
	require.NoError(t, result.Err)
	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, diagnostic.Verdict, result.Diagnostics[0].Severity)
	require.Equal(t, diagnostic.CategorySatisfied, result.Diagnostics[0].Category)
}

func TestRunReportsViolatedPostconditionWithoutError(t *testing.T) {
	result := driver.Run("t.rc", "int x;\nx = 5;\nassert(x == 6);\n", config.Default)
	require.NoError(t, result.Err)
	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, diagnostic.CategoryViolated, result.Diagnostics[0].Category)
}
