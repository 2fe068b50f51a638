package runner

import (
	"time"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// FileOutcome is the result of processing one discovered file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult

	// Error is set when the file could not be read, parsed or written.
	Error error

	// Duration is the time spent in the pipeline for this file.
	Duration time.Duration
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesSkipped counts files whose fixes were not written, for example
	// because they changed on disk during the run.
	FilesSkipped int

	FilesWithIssues int
	FilesModified   int

	DiagnosticsTotal   int
	DiagnosticsFixable int

	// DiagnosticsFixed is the number of edits applied across all passes.
	DiagnosticsFixed int

	// DiagnosticsMalformed counts malformed-input findings.
	DiagnosticsMalformed int

	// DiagnosticsBySeverity maps a severity to its finding count.
	DiagnosticsBySeverity map[config.Severity]int

	// RuleErrors counts internal rule failures across all files.
	RuleErrors int
}

// Result is the outcome of a run, with Files in path order.
type Result struct {
	Files    []FileOutcome
	Stats    Stats
	Errors   []error
	Duration time.Duration
}

// HasFailures reports whether any finding has error severity.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0
}

// HasWarnings reports whether any finding has warning severity.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0
}

// HasIssues reports whether any finding was produced.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every finding of the run in file order, then
// document order.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}
	var out []lint.Diagnostic
	for _, f := range r.Files {
		if f.Result != nil && f.Result.FileResult != nil {
			out = append(out, f.Result.Diagnostics...)
		}
	}
	return out
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[config.Severity]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += pr.TotalEditsApplied

	if pr.FileResult == nil {
		return
	}

	r.Stats.RuleErrors += len(pr.RuleErrors)
	r.Stats.DiagnosticsTotal += len(pr.Diagnostics)
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	if len(pr.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range pr.Diagnostics {
		sev := diag.Severity
		if sev == "" {
			sev = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[sev]++
		if diag.RuleID == lint.MalformedRuleID {
			r.Stats.DiagnosticsMalformed++
		}
	}
}
