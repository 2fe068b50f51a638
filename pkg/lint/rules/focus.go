package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// FocusOutlineRule checks for stylesheets that hide the focus indicator
// everywhere without providing a replacement.
type FocusOutlineRule struct {
	lint.BaseRule
}

// NewFocusOutlineRule creates the focus outline rule.
func NewFocusOutlineRule() *FocusOutlineRule {
	return &FocusOutlineRule{
		BaseRule: lint.NewBaseRule(
			"A11Y002",
			"focus-outline",
			"Global styles must not remove the focus outline unless a custom focus style is provided",
			[]string{"css", "focus", "keyboard", "wcag-2.4.7"},
			false,
		).WithSeverity(config.SeverityError),
	}
}

// Apply checks each stylesheet separately. A removal is excused when the
// same sheet has a :focus, :focus-visible or :focus-within rule that draws a
// visible indicator.
func (r *FocusOutlineRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, sheet := range ctx.Doc.StyleSheets {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}
		if sheet.Origin == dom.OriginStyleAttr || hasCustomFocusStyle(sheet) {
			continue
		}

		for _, rule := range sheet.Rules {
			if !anyGlobalSelector(rule.Selectors) {
				continue
			}
			for _, decl := range rule.Declarations {
				if !removesOutline(decl) {
					continue
				}
				diags = append(diags, lint.NewDiagnosticForRule(r.ID(), ctx.Doc, rule, decl.Span,
					fmt.Sprintf("%q removes the focus outline for every element", rule.SelectorText())).
					WithSuggestion("Restyle focus with :focus-visible { outline: 2px solid ... } instead of removing it").
					Build())
			}
		}
	}
	return diags, nil
}

// removesOutline reports whether decl hides the outline.
func removesOutline(decl *dom.Declaration) bool {
	value := strings.ToLower(strings.TrimSpace(decl.Value))
	switch decl.Property {
	case "outline":
		for _, token := range strings.Fields(value) {
			if token == "none" || token == "hidden" || isZeroLength(token) {
				return true
			}
		}
	case "outline-style":
		return value == "none" || value == "hidden"
	case "outline-width":
		return isZeroLength(value)
	}
	return false
}

// hasCustomFocusStyle reports whether sheet styles focus visibly.
func hasCustomFocusStyle(sheet *dom.StyleSheet) bool {
	for _, rule := range sheet.Rules {
		if !strings.Contains(strings.ToLower(rule.SelectorText()), ":focus") {
			continue
		}
		for _, decl := range rule.Declarations {
			if drawsIndicator(decl) {
				return true
			}
		}
	}
	return false
}

func drawsIndicator(decl *dom.Declaration) bool {
	value := strings.ToLower(strings.TrimSpace(decl.Value))
	prop := decl.Property
	switch {
	case prop == "outline", prop == "outline-style", prop == "outline-width":
		return !removesOutline(decl)
	case prop == "outline-color", prop == "outline-offset", prop == "border-radius":
		return false
	case prop == "box-shadow", prop == "text-decoration", strings.HasPrefix(prop, "text-decoration-"):
		return value != "none" && value != ""
	case strings.HasPrefix(prop, "border"), strings.HasPrefix(prop, "background"):
		return value != "none" && value != "0" && value != ""
	}
	return false
}

// anyGlobalSelector reports whether one of the selectors matches every
// element, e.g. "*", ":focus", "*:focus" or "body *".
func anyGlobalSelector(selectors []string) bool {
	for _, selector := range selectors {
		if isGlobalSelector(selector) {
			return true
		}
	}
	return false
}

func isGlobalSelector(selector string) bool {
	compounds := splitCompounds(strings.ToLower(selector))
	if len(compounds) == 0 {
		return false
	}

	last := compounds[len(compounds)-1]
	if !strings.HasPrefix(last, "*") && !strings.HasPrefix(last, ":") {
		return false
	}

	for _, compound := range compounds[:len(compounds)-1] {
		switch compound {
		case "html", "body", ":root", "*":
		default:
			return false
		}
	}
	return true
}

// splitCompounds splits a selector on combinators, ignoring anything inside
// brackets, parentheses or quotes.
func splitCompounds(selector string) []string {
	var (
		out     []string
		current strings.Builder
		depth   int
		quote   byte
	)

	flush := func() {
		if current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(selector); i++ {
		c := selector[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case depth == 0 && (c == ' ' || c == '\t' || c == '\n' || c == '>' || c == '+' || c == '~'):
			flush()
			continue
		}
		current.WriteByte(c)
	}
	flush()

	return out
}

// isZeroLength reports whether value is a zero CSS length such as "0" or "0px".
func isZeroLength(value string) bool {
	number := strings.TrimRightFunc(value, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || r == '%'
	})
	if number == "" {
		return false
	}
	f, err := strconv.ParseFloat(number, 64)
	return err == nil && f == 0
}
