package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/runner"
)

// ReportVersion is the version of the JSON report layout.
const ReportVersion = "1.0.0"

// DisplayPath returns path relative to workDir, or path itself when that
// is not possible.
func DisplayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (t *Totals) count(sev config.Severity) {
	switch sev {
	case config.SeverityError:
		t.Errors++
	case config.SeverityWarning:
		t.Warnings++
	case config.SeverityInfo:
		t.Infos++
	}
}

func (f *FileAnalysis) count(sev config.Severity) {
	switch sev {
	case config.SeverityError:
		f.Errors++
	case config.SeverityWarning:
		f.Warnings++
	case config.SeverityInfo:
		f.Infos++
	}
}

func (r *RuleAnalysis) count(sev config.Severity) {
	switch sev {
	case config.SeverityError:
		r.Errors++
	case config.SeverityWarning:
		r.Warnings++
	case config.SeverityInfo:
		r.Infos++
	}
}

// accumulator holds the per-file and per-rule state of one Analyze call.
type accumulator struct {
	opts      Options
	files     map[string]*FileAnalysis
	rules     map[string]*RuleAnalysis
	ruleFiles map[string]map[string]struct{}
	fileRules map[string]map[string]struct{}
}

func newAccumulator(opts Options) *accumulator {
	return &accumulator{
		opts:      opts,
		files:     make(map[string]*FileAnalysis),
		rules:     make(map[string]*RuleAnalysis),
		ruleFiles: make(map[string]map[string]struct{}),
		fileRules: make(map[string]map[string]struct{}),
	}
}

func (a *accumulator) file(path string) *FileAnalysis {
	fa, ok := a.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		a.files[path] = fa
		a.fileRules[path] = make(map[string]struct{})
	}
	return fa
}

func (a *accumulator) rule(diag *lint.Diagnostic) *RuleAnalysis {
	ra, ok := a.rules[diag.RuleID]
	if !ok {
		ra = &RuleAnalysis{
			RuleID:   diag.RuleID,
			RuleName: diag.RuleName,
			Rule:     config.FormatRuleID(a.opts.RuleFormat, diag.RuleID, diag.RuleName),
		}
		a.rules[diag.RuleID] = ra
		a.ruleFiles[diag.RuleID] = make(map[string]struct{})
	}
	return ra
}

// Analyze computes a Report from a runner result in a single pass over
// its findings.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	acc := newAccumulator(opts)

	for _, file := range result.Files {
		report.Totals.Files++
		path := DisplayPath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.FileErrors = append(report.FileErrors, FileError{FilePath: path, Error: file.Error.Error()})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if len(file.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		fa := acc.file(path)
		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			sev := diag.Severity
			if sev == "" {
				sev = config.SeverityWarning
			}
			fixable := diag.HasFix()

			report.Totals.Issues++
			report.Totals.count(sev)
			if fixable {
				report.Totals.Fixable++
			}
			if diag.RuleID == lint.MalformedRuleID {
				report.Totals.Malformed++
			}

			fa.Issues++
			fa.count(sev)
			acc.fileRules[path][diag.RuleID] = struct{}{}

			ra := acc.rule(diag)
			ra.Issues++
			ra.count(sev)
			ra.Fixable = ra.Fixable || fixable
			acc.ruleFiles[diag.RuleID][path] = struct{}{}

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, newEntry(path, sev, diag, opts.RuleFormat))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = acc.byRule()
	}
	if opts.IncludeByFile {
		report.ByFile = acc.byFile()
	}

	return report
}

func newEntry(path string, sev config.Severity, diag *lint.Diagnostic, format config.RuleFormat) DiagnosticEntry {
	entry := DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Rule:        config.FormatRuleID(format, diag.RuleID, diag.RuleName),
		Severity:    string(sev),
		Message:     diag.Message,
		Element:     diag.Element,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     diag.HasFix(),
	}
	for _, edit := range diag.FixEdits {
		entry.Fixes = append(entry.Fixes, FixEntry{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return entry
}

func (a *accumulator) byRule() []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(a.rules))
	for id, ra := range a.rules {
		ra.Files = sortedKeys(a.ruleFiles[id])
		out = append(out, *ra)
	}
	slices.SortFunc(out, func(left, right RuleAnalysis) int {
		return compareCounts(a.opts,
			counts{left.Issues, left.Errors, left.Warnings, left.RuleID},
			counts{right.Issues, right.Errors, right.Warnings, right.RuleID})
	})
	return out
}

func (a *accumulator) byFile() []FileAnalysis {
	var out []FileAnalysis
	for path, fa := range a.files {
		if fa.Issues == 0 {
			continue
		}
		fa.Rules = sortedKeys(a.fileRules[path])
		out = append(out, *fa)
	}
	slices.SortFunc(out, func(left, right FileAnalysis) int {
		return compareCounts(a.opts,
			counts{left.Issues, left.Errors, left.Warnings, left.Path},
			counts{right.Issues, right.Errors, right.Warnings, right.Path})
	})
	return out
}

type counts struct {
	issues, errors, warnings int
	key                      string
}

// compareCounts orders two rows by opts.SortBy, breaking ties by key so
// the result never depends on map iteration order.
func compareCounts(opts Options, left, right counts) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right.errors, left.errors),
			cmp.Compare(right.warnings, left.warnings),
			cmp.Compare(right.issues, left.issues),
		)
	default:
		result = cmp.Compare(left.issues, right.issues)
		if opts.SortDesc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(left.key, right.key))
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
