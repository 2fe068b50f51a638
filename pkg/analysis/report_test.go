package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/a11ylint/pkg/config"
)

func TestTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		totals     Totals
		wantIssues bool
		wantErrors bool
	}{
		{name: "empty", totals: Totals{}},
		{name: "warnings only", totals: Totals{Issues: 5, Warnings: 5}, wantIssues: true},
		{name: "errors", totals: Totals{Issues: 3, Errors: 3}, wantIssues: true, wantErrors: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantIssues, tt.totals.HasIssues())
			assert.Equal(t, tt.wantErrors, tt.totals.HasErrors())
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	assert.True(t, opts.IncludeDiagnostics)
	assert.True(t, opts.IncludeByFile)
	assert.True(t, opts.IncludeByRule)
	assert.Equal(t, SortByCount, opts.SortBy)
	assert.True(t, opts.SortDesc)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByCount.IsValid())
	assert.True(t, SortByAlpha.IsValid())
	assert.True(t, SortBySeverity.IsValid())
	assert.False(t, SortField("invalid").IsValid())
}
