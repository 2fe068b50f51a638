package dom

import "strings"

// StyleOrigin records where a stylesheet came from.
type StyleOrigin uint8

const (
	// OriginFile is a standalone .css file.
	OriginFile StyleOrigin = iota
	// OriginStyleElement is the body of a <style> element.
	OriginStyleElement
	// OriginStyleAttr is an inline style="" attribute.
	OriginStyleAttr
	// OriginMarkdownBlock is a fenced css block in a Markdown file.
	OriginMarkdownBlock
)

func (o StyleOrigin) String() string {
	switch o {
	case OriginFile:
		return "file"
	case OriginStyleElement:
		return "style-element"
	case OriginStyleAttr:
		return "style-attribute"
	case OriginMarkdownBlock:
		return "markdown-block"
	default:
		return "unknown"
	}
}

// StyleSheet is an ordered list of style rules sharing one style scope.
type StyleSheet struct {
	Origin StyleOrigin

	// Owner is the <style> element or the element carrying a style attribute.
	// Nil for file and Markdown origins.
	Owner *Node

	// Span covers the stylesheet source.
	Span Span

	Rules []*StyleRule
}

// StyleRule is a qualified rule (selectors + declarations). For style
// attributes there is a single rule with no selectors.
type StyleRule struct {
	// Selectors holds the comma-separated selectors, trimmed.
	Selectors []string

	// AtRule is the enclosing at-rule prelude, e.g. "@media (max-width: 600px)".
	AtRule string

	Declarations []*Declaration

	// Span covers the prelude through the closing brace.
	Span Span

	Sheet *StyleSheet
}

// Declaration is a single property: value pair.
type Declaration struct {
	// Property is lower-cased.
	Property  string
	Value     string
	Important bool
	Span      Span
}

// Get returns the last declaration for property in the rule, or nil.
// Later declarations win, except that !important wins over normal ones.
func (r *StyleRule) Get(property string) *Declaration {
	property = strings.ToLower(property)
	var found *Declaration
	for _, decl := range r.Declarations {
		if decl.Property != property {
			continue
		}
		if found != nil && found.Important && !decl.Important {
			continue
		}
		found = decl
	}
	return found
}

// SelectorText joins the selectors as written.
func (r *StyleRule) SelectorText() string {
	return strings.Join(r.Selectors, ", ")
}

// AllRules returns every style rule in the document in source order.
func (d *Document) AllRules() []*StyleRule {
	var rules []*StyleRule
	for _, sheet := range d.StyleSheets {
		rules = append(rules, sheet.Rules...)
	}
	return rules
}
