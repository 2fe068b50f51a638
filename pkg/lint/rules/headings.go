package rules

import (
	"fmt"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// HeadingOrderRule checks that the heading outline has no gaps.
type HeadingOrderRule struct {
	lint.BaseRule
}

// NewHeadingOrderRule creates the heading order rule.
func NewHeadingOrderRule() *HeadingOrderRule {
	return &HeadingOrderRule{
		BaseRule: lint.NewBaseRule(
			"A11Y003",
			"heading-order",
			"Heading levels should only increase by one, and a page should have a single top-level heading",
			[]string{"headings", "structure", "wcag-1.3.1"},
			false,
		).WithSeverity(config.SeverityWarning),
	}
}

// DefaultOptions returns the tunable options of the rule.
func (r *HeadingOrderRule) DefaultOptions() map[string]any {
	return map[string]any{
		"allow_multiple_h1": false,
	}
}

// Apply walks the headings in document order. The first heading may be at
// any level.
func (r *HeadingOrderRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	allowMultipleH1 := ctx.OptionBool("allow_multiple_h1", false)

	var (
		diags     []lint.Diagnostic
		prevLevel int
		firstH1   *dom.Node
	)

	for _, node := range ctx.Index().Elements() {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		level := lint.HeadingLevel(node)
		if level == 0 || lint.IsHidden(node) {
			continue
		}

		if prevLevel > 0 && level > prevLevel+1 {
			diags = append(diags, lint.NewDiagnostic(r.ID(), node,
				fmt.Sprintf("Heading level jumped from h%d to h%d", prevLevel, level)).
				WithSuggestion(fmt.Sprintf("Use h%d instead", prevLevel+1)).
				Build())
		}

		if level == 1 {
			if firstH1 == nil {
				firstH1 = node
			} else if !allowMultipleH1 {
				diags = append(diags, lint.NewDiagnostic(r.ID(), node,
					fmt.Sprintf("Multiple top-level headings; the first is on line %d", firstH1.Position().StartLine)).
					WithSuggestion("Demote this heading to h2").
					Build())
			}
		}

		prevLevel = level
	}

	return diags, nil
}
