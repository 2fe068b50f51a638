package rules

import (
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// LinkHrefRule checks that links point somewhere.
type LinkHrefRule struct {
	lint.BaseRule
}

// NewLinkHrefRule creates the link href rule.
func NewLinkHrefRule() *LinkHrefRule {
	return &LinkHrefRule{
		BaseRule: lint.NewBaseRule(
			"A11Y005",
			"link-href",
			"Anchors must have an href; placeholder targets are not keyboard-reachable links",
			[]string{"links", "keyboard", "wcag-2.1.1"},
			false,
		).WithSeverity(config.SeverityWarning),
	}
}

// DefaultOptions returns the tunable options of the rule.
func (r *LinkHrefRule) DefaultOptions() map[string]any {
	return map[string]any{
		"allow_placeholder": false,
	}
}

// Apply reports anchors without an href. Unless allow_placeholder is set,
// href="", href="#" and javascript: URLs are reported too. Anchors given a
// role other than link are left to the aria-role rule.
func (r *LinkHrefRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	allowPlaceholder := ctx.OptionBool("allow_placeholder", false)

	var diags []lint.Diagnostic
	for _, node := range ctx.Index().Elements("a") {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		if role := node.Role(); role != "" && role != "link" {
			continue
		}
		if lint.IsHidden(node) {
			continue
		}

		href, ok := node.Attr("href")
		if !ok {
			diags = append(diags, lint.NewDiagnostic(r.ID(), node, "Link has no href attribute").
				WithSuggestion("Add an href, or use a <button> for actions").
				Build())
			continue
		}

		if allowPlaceholder {
			continue
		}
		if placeholder, kind := isPlaceholderHref(href); placeholder {
			diags = append(diags, lint.NewDiagnostic(r.ID(), node, "Link href is a placeholder ("+kind+")").
				WithSuggestion("Point the link at a real destination, or use a <button> for actions").
				Build())
		}
	}

	return diags, nil
}

// isPlaceholderHref reports whether href navigates nowhere.
func isPlaceholderHref(href string) (bool, string) {
	trimmed := strings.TrimSpace(href)
	switch {
	case trimmed == "":
		return true, "empty"
	case trimmed == "#":
		return true, `"#"`
	case strings.HasPrefix(strings.ToLower(trimmed), "javascript:"):
		return true, "javascript: URL"
	}
	return false, ""
}
