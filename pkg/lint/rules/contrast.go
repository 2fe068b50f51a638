package rules

import (
	"errors"
	"fmt"

	"github.com/yaklabco/a11ylint/pkg/color"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// ColorContrastRule checks text contrast for declaration blocks that set
// both a text color and a background.
type ColorContrastRule struct {
	lint.BaseRule
}

// NewColorContrastRule creates the color contrast rule.
func NewColorContrastRule() *ColorContrastRule {
	return &ColorContrastRule{
		BaseRule: lint.NewBaseRule(
			"A11Y006",
			"color-contrast",
			"Text color must have a contrast ratio of at least 4.5:1 against its background (3:1 for large text)",
			[]string{"css", "color", "wcag-1.4.3"},
			false,
		).WithSeverity(config.SeverityError),
	}
}

// DefaultOptions returns the tunable options of the rule.
func (r *ColorContrastRule) DefaultOptions() map[string]any {
	return map[string]any{
		"large_text_pt":      color.DefaultLargeTextPt,
		"large_bold_text_pt": color.DefaultLargeBoldTextPt,
	}
}

// Apply evaluates every style rule and style attribute on its own. Text is
// large at large_text_pt, or at large_bold_text_pt when font-weight is bold;
// values inherited through the cascade are not resolved. Colors that cannot be
// parsed are reported as malformed input and the remaining rules are still
// checked.
func (r *ColorContrastRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	thresholds := largeText{
		regular: ctx.OptionFloat("large_text_pt", color.DefaultLargeTextPt),
		bold:    ctx.OptionFloat("large_bold_text_pt", color.DefaultLargeBoldTextPt),
	}

	var (
		diags     []lint.Diagnostic
		malformed []error
	)

	for _, rule := range ctx.Doc.AllRules() {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		diag, err := r.checkRule(ctx, rule, thresholds)
		if err != nil {
			malformed = append(malformed, err)
			continue
		}
		if diag != nil {
			diags = append(diags, *diag)
		}
	}

	return diags, errors.Join(malformed...)
}

func (r *ColorContrastRule) checkRule(ctx *lint.RuleContext, rule *dom.StyleRule, thresholds largeText) (*lint.Diagnostic, error) {
	fgDecl := rule.Get("color")
	bgDecl := backgroundDecl(rule)
	if fgDecl == nil || bgDecl == nil || isCSSWideKeyword(fgDecl.Value) || isCSSWideKeyword(bgDecl.Value) {
		return nil, nil
	}

	fg, err := color.Parse(fgDecl.Value)
	if err != nil {
		return nil, lint.NewMalformedInputError(fgDecl.Span, "unparseable color", err)
	}
	bg, solid, err := color.ParseBackground(bgDecl.Value)
	if err != nil {
		return nil, lint.NewMalformedInputError(bgDecl.Span, "unparseable background color", err)
	}
	if !solid || bg.IsTransparent() {
		return nil, nil
	}

	sizePt := color.DefaultFontSizePt
	if sizeDecl := rule.Get("font-size"); sizeDecl != nil && !isCSSWideKeyword(sizeDecl.Value) {
		if pt, err := color.ParseFontSize(sizeDecl.Value); err == nil {
			sizePt = pt
		}
	}

	largePt := thresholds.regular
	if weight := rule.Get("font-weight"); weight != nil && color.IsBold(weight.Value) {
		largePt = thresholds.bold
	}

	ratio := color.TextContrast(fg, bg)
	required := color.RequiredRatio(sizePt, largePt)
	if color.Passes(ratio, required) {
		return nil, nil
	}

	diag := lint.NewDiagnosticForRule(r.ID(), ctx.Doc, rule, fgDecl.Span,
		fmt.Sprintf("Contrast ratio %.2f:1 between %s and %s is below the required %.1f:1",
			ratio, fg.Hex(), bg.Hex(), required)).
		WithSuggestion(contrastSuggestion(sizePt, largePt)).
		Build()
	return &diag, nil
}

// largeText holds the sizes, in points, at which regular and bold text count
// as large.
type largeText struct {
	regular float64
	bold    float64
}

// backgroundDecl returns whichever of background-color and background is
// declared last, since the later one decides the painted color.
func backgroundDecl(rule *dom.StyleRule) *dom.Declaration {
	longhand := rule.Get("background-color")
	shorthand := rule.Get("background")
	switch {
	case longhand == nil:
		return shorthand
	case shorthand == nil:
		return longhand
	case shorthand.Span.Start > longhand.Span.Start:
		return shorthand
	default:
		return longhand
	}
}

func contrastSuggestion(sizePt, largePt float64) string {
	if sizePt >= largePt {
		return "Darken or lighten one of the colors; large text needs at least 3:1"
	}
	return "Darken or lighten one of the colors; body text needs at least 4.5:1"
}
