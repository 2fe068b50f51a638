package rules

import (
	"fmt"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// AccessibleNameRule checks that form controls, buttons and links have a name.
type AccessibleNameRule struct {
	lint.BaseRule
}

// NewAccessibleNameRule creates the accessible name rule.
func NewAccessibleNameRule() *AccessibleNameRule {
	return &AccessibleNameRule{
		BaseRule: lint.NewBaseRule(
			"A11Y004",
			"accessible-name",
			"Form controls, buttons and links must have an accessible name",
			[]string{"forms", "names", "wcag-4.1.2"},
			false,
		).WithSeverity(config.SeverityError),
	}
}

// Apply reports controls without an accessible name and aria-labelledby
// references to ids that do not exist.
func (r *AccessibleNameRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	idx := ctx.Index()

	var diags []lint.Diagnostic
	for _, node := range idx.Elements("input", "select", "textarea", "button", "a") {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		if !needsName(node) || lint.IsHidden(node) {
			continue
		}

		for _, id := range lint.DanglingLabelledBy(idx, node) {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.Doc, attrSpan(node, "aria-labelledby"),
				fmt.Sprintf("aria-labelledby references missing id %q", id)).
				WithElement(elementLabel(node)).
				Build())
		}

		if name, _ := lint.AccessibleName(idx, node); name != "" {
			continue
		}

		diags = append(diags, lint.NewDiagnostic(r.ID(), node, missingNameMessage(node)).
			WithSuggestion(nameSuggestion(node)).
			Build())
	}

	return diags, nil
}

// needsName filters the candidate elements down to those that must be named.
// Image inputs are covered by the img-alt rule.
func needsName(n *dom.Node) bool {
	switch {
	case n.IsElement("input"):
		t := lint.InputType(n)
		return t != "hidden" && t != "image"
	case n.IsElement("a"):
		return n.HasAttr("href")
	}
	return true
}

func missingNameMessage(n *dom.Node) string {
	switch n.Tag {
	case "button":
		return "Button has no accessible name"
	case "a":
		return "Link has no accessible name"
	case "input":
		switch lint.InputType(n) {
		case "button", "submit", "reset":
			return "Button has no accessible name"
		}
		return fmt.Sprintf("Form field (type=%s) has no label", lint.InputType(n))
	default:
		return "Form field has no label"
	}
}

func nameSuggestion(n *dom.Node) string {
	if n.IsElement("button", "a") {
		return "Add text content or an aria-label"
	}
	if id := n.ID(); id != "" {
		return fmt.Sprintf(`Add <label for=%q>, or an aria-label`, id)
	}
	return "Wrap the field in a <label>, or add an aria-label"
}
