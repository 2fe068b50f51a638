package rules

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/fix"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// HTMLLangRule checks that the root element declares the page language.
type HTMLLangRule struct {
	lint.BaseRule
}

// NewHTMLLangRule creates the html lang rule.
func NewHTMLLangRule() *HTMLLangRule {
	return &HTMLLangRule{
		BaseRule: lint.NewBaseRule(
			"A11Y009",
			"html-lang",
			"The html element must have a lang attribute naming the page language",
			[]string{"language", "document", "wcag-3.1.1"},
			true,
		).WithSeverity(config.SeverityError),
	}
}

// DefaultOptions returns the tunable options of the rule.
func (r *HTMLLangRule) DefaultOptions() map[string]any {
	return map[string]any{
		"default_lang":  "",
		"validate_tags": true,
	}
}

// Apply reports an html element with a missing or empty lang. When
// default_lang is set the finding carries a fix that writes it. With
// validate_tags the value must also be a well-formed BCP 47 tag.
func (r *HTMLLangRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	defaultLang := strings.TrimSpace(ctx.OptionString("default_lang", ""))
	validate := ctx.OptionBool("validate_tags", true)

	var diags []lint.Diagnostic
	for _, node := range ctx.Index().Elements("html") {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		value, ok := node.Attr("lang")
		lang := strings.TrimSpace(value)

		switch {
		case !ok:
			diags = append(diags, r.missing(ctx, node, defaultLang, "<html> element has no lang attribute"))
		case lang == "":
			diags = append(diags, r.missing(ctx, node, defaultLang, "<html> element has an empty lang attribute"))
		case validate:
			if _, err := language.Parse(lang); err != nil {
				diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.Doc, attrSpan(node, "lang"),
					fmt.Sprintf("lang %q is not a valid language tag", lang)).
					WithElement("<html>").
					WithSuggestion(`Use a BCP 47 tag such as "en" or "fr-CA"`).
					Build())
			}
		}
	}

	return diags, nil
}

func (r *HTMLLangRule) missing(ctx *lint.RuleContext, node *dom.Node, defaultLang, message string) lint.Diagnostic {
	builder := lint.NewDiagnostic(r.ID(), node, message).
		WithSuggestion(`Add lang="en" (or the page's language) to <html>`)

	if defaultLang == "" {
		return builder.Build()
	}

	attr := fmt.Sprintf("lang=%q", defaultLang)
	edits := fix.NewEditBuilder()
	if span, ok := node.AttrSpan("lang"); ok && !span.IsEmpty() {
		edits.ReplaceRange(span.Start, span.End, attr)
	} else if at, ok := afterTagName(ctx.Doc.Content, node); ok {
		edits.Insert(at, " "+attr)
	}

	return builder.WithFix(edits).Build()
}

// afterTagName returns the offset just past the element name in its start tag.
func afterTagName(content []byte, node *dom.Node) (int, bool) {
	if node.StartTag.IsEmpty() {
		return 0, false
	}
	at := node.StartTag.Start + 1 + len(node.Tag)
	if at > len(content) || !strings.EqualFold(string(content[node.StartTag.Start+1:at]), node.Tag) {
		return 0, false
	}
	return at, true
}

// LandmarkMainRule checks that a page has exactly one main landmark.
type LandmarkMainRule struct {
	lint.BaseRule
}

// NewLandmarkMainRule creates the main landmark rule.
func NewLandmarkMainRule() *LandmarkMainRule {
	return &LandmarkMainRule{
		BaseRule: lint.NewBaseRule(
			"A11Y012",
			"landmark-main",
			"A full page must contain exactly one main landmark",
			[]string{"landmarks", "structure", "wcag-1.3.1"},
			false,
		).WithSeverity(config.SeverityWarning),
	}
}

// Apply counts visible main landmarks. Fragments and stylesheets are skipped.
func (r *LandmarkMainRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Doc == nil || !ctx.Doc.IsFullDocument() {
		return nil, nil
	}

	idx := ctx.Index()

	var mains []*dom.Node
	for _, node := range idx.Elements() {
		if ctx.Cancelled() {
			return nil, ctx.Ctx.Err()
		}
		if !isMainLandmark(node) || lint.IsHidden(node) {
			continue
		}
		mains = append(mains, node)
	}

	switch len(mains) {
	case 1:
		return nil, nil
	case 0:
		anchor := firstOf(idx, "body", "html")
		return []lint.Diagnostic{
			lint.NewDiagnostic(r.ID(), anchor, "Page has no main landmark").
				WithSuggestion("Wrap the primary content in <main>").
				Build(),
		}, nil
	}

	first := mains[0].Position().StartLine
	diags := make([]lint.Diagnostic, 0, len(mains)-1)
	for _, extra := range mains[1:] {
		diags = append(diags, lint.NewDiagnostic(r.ID(), extra,
			fmt.Sprintf("Page has more than one main landmark; the first is on line %d", first)).
			WithSuggestion("Keep a single <main> per page").
			Build())
	}
	return diags, nil
}

func isMainLandmark(n *dom.Node) bool {
	if role := n.Role(); role != "" {
		return role == "main"
	}
	return n.IsElement("main")
}

// firstOf returns the first element with the earliest listed tag that exists.
func firstOf(idx *lint.DocIndex, tags ...string) *dom.Node {
	for _, tag := range tags {
		if nodes := idx.Elements(tag); len(nodes) > 0 {
			return nodes[0]
		}
	}
	return nil
}
