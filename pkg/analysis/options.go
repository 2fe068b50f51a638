package analysis

import "github.com/yaklabco/a11ylint/pkg/config"

// SortField selects the order of the ByFile and ByRule views.
type SortField string

const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"
	SortBySeverity SortField = "severity"
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByRule      bool

	SortBy SortField

	// SortDesc puts the largest counts first. It only affects SortByCount;
	// alphabetical order is always ascending and severity order always
	// puts errors first.
	SortDesc bool

	// RuleFormat controls the Rule label of entries.
	RuleFormat config.RuleFormat

	// WorkingDir, when set, makes paths relative to it.
	WorkingDir string
}

// DefaultOptions returns Options that compute every view.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
