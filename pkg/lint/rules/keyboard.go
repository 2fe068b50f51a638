package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// TabindexPositiveRule checks for tabindex values that reorder keyboard focus.
type TabindexPositiveRule struct {
	lint.BaseRule
}

// NewTabindexPositiveRule creates the positive tabindex rule.
func NewTabindexPositiveRule() *TabindexPositiveRule {
	return &TabindexPositiveRule{
		BaseRule: lint.NewBaseRule(
			"A11Y010",
			"tabindex-positive",
			"tabindex should not be greater than zero",
			[]string{"keyboard", "focus-order", "wcag-2.4.3"},
			false,
		).WithSeverity(config.SeverityWarning),
	}
}

// Apply reports positive tabindex values. A tabindex that is not an integer
// is malformed input for that element.
func (r *TabindexPositiveRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var (
		diags     []lint.Diagnostic
		malformed []error
	)

	for _, node := range ctx.Index().Elements() {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		raw, ok := node.Attr("tabindex")
		if !ok {
			continue
		}

		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			malformed = append(malformed, lint.NewMalformedInputError(attrSpan(node, "tabindex"),
				fmt.Sprintf("tabindex %q is not an integer", raw), nil))
			continue
		}

		if value > 0 {
			diags = append(diags, lint.NewDiagnostic(r.ID(), node,
				fmt.Sprintf("tabindex=%d takes the element out of the natural focus order", value)).
				WithSuggestion(`Use tabindex="0" and arrange the DOM in the intended order`).
				Build())
		}
	}

	return diags, errors.Join(malformed...)
}
