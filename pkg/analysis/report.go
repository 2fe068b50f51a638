package analysis

import "time"

// Report holds every view of a run that a renderer needs. It is computed
// once by Analyze and shared by all output formats.
type Report struct {
	// Diagnostics lists findings in file order, then document order.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	ByFile []FileAnalysis `json:"byFile,omitempty"`
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// FileErrors lists files that could not be processed.
	FileErrors []FileError `json:"fileErrors,omitempty"`

	Totals Totals `json:"summary"`

	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is one finding with its path made relative for display.
type DiagnosticEntry struct {
	FilePath    string     `json:"filePath"`
	RuleID      string     `json:"ruleId"`
	RuleName    string     `json:"ruleName"`
	Rule        string     `json:"rule"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	Element     string     `json:"element,omitempty"`
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	Suggestion  string     `json:"suggestion,omitempty"`
	Fixable     bool       `json:"fixable"`
	Fixes       []FixEntry `json:"fixes,omitempty"`
}

// FixEntry is one text edit of a fix, in byte offsets.
type FixEntry struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// FileError records a file the pipeline failed on.
type FileError struct {
	FilePath string `json:"filePath"`
	Error    string `json:"error"`
}

// Totals aggregates the whole run.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Fixable         int `json:"fixable"`
	Malformed       int `json:"malformed"`
}

// HasIssues reports whether the run produced any finding.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors reports whether any finding has error severity.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis aggregates the findings of one file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates the findings of one rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Rule     string   `json:"rule"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
