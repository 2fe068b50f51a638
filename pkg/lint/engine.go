package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/fix"
)

// FileResult contains the results of checking a single file.
type FileResult struct {
	// Doc is the parsed document. Nil when the file could not be parsed.
	Doc *dom.Document

	// Diagnostics contains all findings, ordered by document position then rule ID.
	Diagnostics []Diagnostic

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When multiple edits overlap, earlier edits (by start position) take precedence.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts.
	EditConflicts bool

	// RuleErrors contains internal errors from rule execution, keyed by rule ID.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution.
type Engine struct {
	// Parser parses files into Documents.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry

	// ParallelRules runs the rules for one file concurrently.
	// Diagnostic order is identical either way.
	ParallelRules bool

	// MaxParallel bounds concurrent rules when ParallelRules is set.
	// Zero means GOMAXPROCS.
	MaxParallel int
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// ruleOutcome is what one rule produced for one document.
type ruleOutcome struct {
	diags     []Diagnostic
	malformed []*MalformedInputError
	err       error
}

// LintFile parses and checks a single file.
//
// A file that cannot be parsed yields a result with a single malformed-input
// diagnostic and no error. Errors are returned only for cancellation or
// parser failures unrelated to the content.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	result := &FileResult{RuleErrors: make(map[string]error)}

	doc, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		var malformed *MalformedInputError
		if errors.As(err, &malformed) {
			result.Diagnostics = []Diagnostic{malformedDiagnostic(nil, path, malformed, "")}
			return result, nil
		}
		return nil, fmt.Errorf("parse error: %w", err)
	}
	result.Doc = doc

	for _, problem := range doc.Problems {
		result.Diagnostics = append(result.Diagnostics,
			malformedDiagnostic(doc, path, NewMalformedInputError(problem.Span, problem.Message, nil), ""))
	}

	resolved := ResolveRules(e.Registry, cfg)
	index := NewDocIndex(doc)

	outcomes, err := e.runRules(ctx, doc, index, cfg, resolved)
	if err != nil {
		return result, err
	}

	var allEdits []fix.TextEdit

	for i, rr := range resolved {
		outcome := outcomes[i]
		if outcome.err != nil {
			result.RuleErrors[rr.Rule.ID()] = outcome.err
		}

		diags := outcome.diags
		for diagIdx := range diags {
			if diags[diagIdx].Severity == "" || rr.SeverityExplicit {
				diags[diagIdx].Severity = rr.Severity
			}

			if diags[diagIdx].FilePath == "" {
				diags[diagIdx].FilePath = path
			}
			if diags[diagIdx].RuleName == "" {
				diags[diagIdx].RuleName = rr.Rule.Name()
			}

			// Collect edits if auto-fix is enabled for this rule.
			if rr.AutoFix && len(diags[diagIdx].FixEdits) > 0 {
				allEdits = append(allEdits, diags[diagIdx].FixEdits...)
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)

		for _, malformed := range outcome.malformed {
			diag := malformedDiagnostic(doc, path, malformed, rr.Rule.ID())
			diag.RuleName = rr.Rule.Name()
			result.Diagnostics = append(result.Diagnostics, diag)
		}
	}

	SortDiagnostics(result.Diagnostics)

	// Overlapping deletions are merged; other conflicts keep the earlier edit.
	if len(allEdits) > 0 {
		plan, err := fix.Prepare(allEdits, len(content))
		if err != nil {
			// A rule produced an out-of-range edit. Keep the diagnostics.
			result.EditConflicts = true
		} else {
			result.Edits = plan.Accepted
			result.SkippedEdits = plan.Skipped
			result.EditConflicts = plan.HasConflicts()
		}
	}

	return result, nil
}

// runRules applies each resolved rule, sequentially or on an errgroup.
// Outcomes are stored by rule index so the merge order never depends on
// scheduling.
func (e *Engine) runRules(
	ctx context.Context,
	doc *dom.Document,
	index *DocIndex,
	cfg *config.Config,
	resolved []ResolvedRule,
) ([]ruleOutcome, error) {
	outcomes := make([]ruleOutcome, len(resolved))

	if !e.ParallelRules || len(resolved) < 2 {
		for i, rr := range resolved {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("linting cancelled: %w", err)
			}
			outcomes[i] = e.applyRule(ctx, doc, index, cfg, rr)
		}
		return outcomes, nil
	}

	limit := e.MaxParallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for i, rr := range resolved {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = e.applyRule(groupCtx, doc, index, cfg, rr)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("linting cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("linting cancelled: %w", err)
	}

	return outcomes, nil
}

func (e *Engine) applyRule(
	ctx context.Context,
	doc *dom.Document,
	index *DocIndex,
	cfg *config.Config,
	rr ResolvedRule,
) (outcome ruleOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = ruleOutcome{err: fmt.Errorf("rule %s panicked: %v", rr.Rule.ID(), r)}
		}
	}()

	ruleCtx := NewRuleContext(ctx, doc, cfg, rr.Config)
	ruleCtx.Registry = e.Registry
	ruleCtx.index = index

	diags, err := rr.Rule.Apply(ruleCtx)
	malformed, rest := splitMalformed(err)

	return ruleOutcome{diags: diags, malformed: malformed, err: rest}
}

// malformedDiagnostic turns a MalformedInputError into an error-severity
// diagnostic. ruleID is empty for parse-level failures.
func malformedDiagnostic(doc *dom.Document, path string, err *MalformedInputError, ruleID string) Diagnostic {
	message := err.Reason
	if message == "" {
		message = "malformed input"
	}
	if err.Err != nil {
		message = fmt.Sprintf("%s: %v", message, err.Err)
	}

	var diag Diagnostic
	if doc != nil {
		diag = NewDiagnosticAt(ruleID, doc, err.Span, message).Build()
	} else {
		diag = Diagnostic{RuleID: ruleID, Message: message, StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1}
	}

	if ruleID == "" {
		diag.RuleID = MalformedRuleID
		diag.RuleName = MalformedRuleName
	}
	diag.Severity = config.SeverityError
	diag.FilePath = path
	return diag
}

// SortDiagnostics orders diagnostics by document position, then rule ID,
// then message.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Offset, b.Offset),
			cmp.Compare(a.StartLine, b.StartLine),
			cmp.Compare(a.StartColumn, b.StartColumn),
			cmp.Compare(a.RuleID, b.RuleID),
			cmp.Compare(a.Message, b.Message),
		)
	})
}
