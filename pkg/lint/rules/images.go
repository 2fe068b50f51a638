package rules

import (
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// ImgAltRule checks that images carry alternative text.
type ImgAltRule struct {
	lint.BaseRule
}

// NewImgAltRule creates the image alt rule.
func NewImgAltRule() *ImgAltRule {
	return &ImgAltRule{
		BaseRule: lint.NewBaseRule(
			"A11Y001",
			"img-alt",
			"Images, image inputs and image map areas must have an alt attribute",
			[]string{"images", "text-alternatives", "wcag-1.1.1"},
			false,
		).WithSeverity(config.SeverityError),
	}
}

// DefaultOptions returns the tunable options of the rule.
func (r *ImgAltRule) DefaultOptions() map[string]any {
	return map[string]any{
		"require_decorative_marker": false,
		"skip_hidden":               false,
	}
}

// Apply reports images with a missing alt attribute. An empty alt marks the
// image as decorative and is accepted unless require_decorative_marker is
// set, in which case role="presentation", role="none" or aria-hidden must
// say so explicitly. Hidden images are checked too unless skip_hidden is set.
func (r *ImgAltRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	requireMarker := ctx.OptionBool("require_decorative_marker", false)
	skipHidden := ctx.OptionBool("skip_hidden", false)

	var diags []lint.Diagnostic
	for _, node := range ctx.Index().Elements("img", "input", "area") {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		switch {
		case node.IsElement("input") && lint.InputType(node) != "image":
			continue
		case node.IsElement("area") && !node.HasAttr("href"):
			continue
		case skipHidden && lint.IsHidden(node):
			continue
		}

		alt, ok := node.Attr("alt")
		if !ok {
			diags = append(diags, lint.NewDiagnostic(r.ID(), node, missingAltMessage(node.Tag)).
				WithSuggestion(`Describe the image in alt="...", or use alt="" if it is purely decorative`).
				Build())
			continue
		}

		if requireMarker && strings.TrimSpace(alt) == "" && !lint.IsPresentational(node) {
			diags = append(diags, lint.NewDiagnostic(r.ID(), node,
				"Empty alt text without role=\"presentation\" or aria-hidden").
				WithSuggestion(`Add role="presentation" to confirm the image is decorative`).
				Build())
		}
	}

	return diags, nil
}

func missingAltMessage(tag string) string {
	switch tag {
	case "input":
		return "Image input is missing an alt attribute"
	case "area":
		return "Image map area is missing an alt attribute"
	default:
		return "Image is missing an alt attribute"
	}
}
