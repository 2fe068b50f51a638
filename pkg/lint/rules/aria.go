package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/fix"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// AriaRoleRule checks role attribute values.
type AriaRoleRule struct {
	lint.BaseRule
}

// NewAriaRoleRule creates the ARIA role rule.
func NewAriaRoleRule() *AriaRoleRule {
	return &AriaRoleRule{
		BaseRule: lint.NewBaseRule(
			"A11Y008",
			"aria-role",
			"role attributes must name valid roles that suit the element",
			[]string{"aria", "wcag-4.1.2"},
			true,
		),
	}
}

// Apply reports unknown role tokens and interactive elements given a
// non-interactive role as errors. A role that repeats the element's implicit
// role is a warning, fixed by removing the attribute.
func (r *AriaRoleRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, node := range ctx.Index().Elements() {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		raw, ok := node.Attr("role")
		if !ok {
			continue
		}
		tokens := strings.Fields(strings.ToLower(raw))
		if len(tokens) == 0 {
			continue
		}

		effective := ""
		for _, token := range tokens {
			if !lint.IsKnownRole(token) {
				diags = append(diags, lint.NewDiagnostic(r.ID(), node,
					fmt.Sprintf("Unknown ARIA role %q", token)).
					WithSeverity(config.SeverityError).
					WithSuggestion("Use a role defined by WAI-ARIA, or remove it").
					Build())
				continue
			}
			if effective == "" {
				effective = token
			}
		}
		if effective == "" {
			continue
		}

		switch {
		case lint.IsNativeInteractive(node) && !lint.IsWidgetRole(effective):
			diags = append(diags, lint.NewDiagnostic(r.ID(), node,
				fmt.Sprintf("Interactive <%s> is given non-interactive role %q", node.Tag, effective)).
				WithSeverity(config.SeverityError).
				WithSuggestion("Remove the role, or use an element that matches the intended semantics").
				Build())
		case len(tokens) == 1 && isRedundantRole(node, effective):
			diags = append(diags, r.redundant(ctx, node, effective))
		}
	}

	return diags, nil
}

func (r *AriaRoleRule) redundant(ctx *lint.RuleContext, node *dom.Node, role string) lint.Diagnostic {
	builder := lint.NewDiagnostic(r.ID(), node,
		fmt.Sprintf("Redundant role %q; <%s> already has this role", role, node.Tag)).
		WithSeverity(config.SeverityWarning).
		WithSuggestion("Remove the role attribute")

	if span, ok := node.AttrSpan("role"); ok && !span.IsEmpty() {
		edits := fix.NewEditBuilder()
		edits.DeleteWithLeadingSpace(ctx.Doc.Content, span.Start, span.End)
		builder = builder.WithFix(edits)
	}

	return builder.Build()
}

// isRedundantRole reports whether role repeats what the element already
// exposes. Presentation roles are an explicit author statement and are
// never treated as redundant.
func isRedundantRole(n *dom.Node, role string) bool {
	switch role {
	case "presentation", "none", "generic":
		return false
	}
	return lint.ImplicitRole(n) == role
}
