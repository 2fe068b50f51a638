package rules

import (
	"fmt"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// DuplicateIDRule checks that id values are unique.
type DuplicateIDRule struct {
	lint.BaseRule
}

// NewDuplicateIDRule creates the duplicate id rule.
func NewDuplicateIDRule() *DuplicateIDRule {
	return &DuplicateIDRule{
		BaseRule: lint.NewBaseRule(
			"A11Y011",
			"duplicate-id",
			"id attribute values must be unique so labels and ARIA references resolve to one element",
			[]string{"parsing", "aria", "wcag-4.1.1"},
			false,
		).WithSeverity(config.SeverityError),
	}
}

// Apply reports every element that reuses an id seen earlier in the document.
func (r *DuplicateIDRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	seen := make(map[string]*dom.Node)

	var diags []lint.Diagnostic
	for _, node := range ctx.Index().Elements() {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		id := node.ID()
		if id == "" {
			continue
		}

		first, dup := seen[id]
		if !dup {
			seen[id] = node
			continue
		}

		diags = append(diags, lint.NewDiagnostic(r.ID(), node,
			fmt.Sprintf("Duplicate id %q; first used on line %d", id, first.Position().StartLine)).
			WithSuggestion("Give each element a unique id").
			Build())
	}

	return diags, nil
}
