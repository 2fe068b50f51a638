package lint

import (
	"strconv"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/dom"
)

// Role tables follow WAI-ARIA 1.2 and HTML-AAM.

// knownRoles lists every concrete WAI-ARIA role.
var knownRoles = toSet(
	"alert", "alertdialog", "application", "article", "banner", "blockquote",
	"button", "caption", "cell", "checkbox", "code", "columnheader", "combobox",
	"complementary", "contentinfo", "definition", "deletion", "dialog",
	"directory", "document", "emphasis", "feed", "figure", "form", "generic",
	"grid", "gridcell", "group", "heading", "img", "insertion", "link", "list",
	"listbox", "listitem", "log", "main", "marquee", "math", "menu", "menubar",
	"menuitem", "menuitemcheckbox", "menuitemradio", "meter", "navigation",
	"none", "note", "option", "paragraph", "presentation", "progressbar",
	"radio", "radiogroup", "region", "row", "rowgroup", "rowheader",
	"scrollbar", "search", "searchbox", "separator", "slider", "spinbutton",
	"status", "strong", "subscript", "superscript", "switch", "tab", "table",
	"tablist", "tabpanel", "term", "textbox", "time", "timer", "toolbar",
	"tooltip", "tree", "treegrid", "treeitem",
)

// widgetRoles are the interactive roles.
var widgetRoles = toSet(
	"button", "checkbox", "combobox", "gridcell", "link", "listbox", "menu",
	"menubar", "menuitem", "menuitemcheckbox", "menuitemradio", "option",
	"radio", "radiogroup", "scrollbar", "searchbox", "slider", "spinbutton",
	"switch", "tab", "tablist", "textbox", "tree", "treegrid", "treeitem",
)

// LandmarkRoles identify major page regions.
var LandmarkRoles = toSet(
	"banner", "complementary", "contentinfo", "form", "main", "navigation",
	"region", "search",
)

func toSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// IsKnownRole reports whether role is a valid WAI-ARIA or DPUB/graphics role.
func IsKnownRole(role string) bool {
	return knownRoles[role] || strings.HasPrefix(role, "doc-") || strings.HasPrefix(role, "graphics-")
}

// IsWidgetRole reports whether role is interactive.
func IsWidgetRole(role string) bool {
	return widgetRoles[role]
}

// InputType returns the lower-cased type of an input, defaulting to "text".
func InputType(n *dom.Node) string {
	t := strings.ToLower(strings.TrimSpace(n.AttrValue("type")))
	if t == "" {
		return "text"
	}
	return t
}

// IsNativeInteractive reports whether n is focusable and operable by default.
func IsNativeInteractive(n *dom.Node) bool {
	switch {
	case n.IsElement("a", "area"):
		return n.HasAttr("href")
	case n.IsElement("input"):
		return InputType(n) != "hidden"
	case n.IsElement("button", "select", "textarea", "summary"):
		return true
	}
	return false
}

// ImplicitRole returns the role an element has without a role attribute,
// or "" if it has none worth comparing against.
func ImplicitRole(n *dom.Node) string {
	if !n.IsElement() {
		return ""
	}

	switch n.Tag {
	case "a", "area":
		if n.HasAttr("href") {
			return "link"
		}
		return "generic"
	case "article":
		return "article"
	case "aside":
		return "complementary"
	case "button":
		return "button"
	case "datalist":
		return "listbox"
	case "details", "fieldset", "optgroup":
		return "group"
	case "dialog":
		return "dialog"
	case "figure":
		return "figure"
	case "footer":
		if inSectioningContent(n) {
			return "generic"
		}
		return "contentinfo"
	case "form":
		return "form"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "heading"
	case "header":
		if inSectioningContent(n) {
			return "generic"
		}
		return "banner"
	case "hr":
		return "separator"
	case "img":
		if alt, ok := n.Attr("alt"); ok && alt == "" {
			return "presentation"
		}
		return "img"
	case "input":
		return inputRole(n)
	case "li":
		return "listitem"
	case "main":
		return "main"
	case "menu", "ol", "ul":
		return "list"
	case "meter":
		return "meter"
	case "nav":
		return "navigation"
	case "option":
		return "option"
	case "output":
		return "status"
	case "progress":
		return "progressbar"
	case "search":
		return "search"
	case "section":
		return "region"
	case "select":
		if n.HasAttr("multiple") {
			return "listbox"
		}
		if size, err := strconv.Atoi(n.AttrValue("size")); err == nil && size > 1 {
			return "listbox"
		}
		return "combobox"
	case "table":
		return "table"
	case "tbody", "tfoot", "thead":
		return "rowgroup"
	case "td":
		return "cell"
	case "textarea":
		return "textbox"
	case "th":
		return "columnheader"
	case "tr":
		return "row"
	}
	return ""
}

func inputRole(n *dom.Node) string {
	switch InputType(n) {
	case "button", "image", "reset", "submit":
		return "button"
	case "checkbox":
		return "checkbox"
	case "radio":
		return "radio"
	case "range":
		return "slider"
	case "number":
		return "spinbutton"
	case "search":
		if n.HasAttr("list") {
			return "combobox"
		}
		return "searchbox"
	case "email", "tel", "text", "url":
		if n.HasAttr("list") {
			return "combobox"
		}
		return "textbox"
	}
	return ""
}

func inSectioningContent(n *dom.Node) bool {
	return n.Closest("article", "aside", "main", "nav", "section") != nil
}

// HeadingLevel returns the level of an h1-h6 element or a role=heading
// element (aria-level, default 2). Returns 0 for non-headings.
func HeadingLevel(n *dom.Node) int {
	if n.IsElement("h1", "h2", "h3", "h4", "h5", "h6") && n.Role() == "" {
		return int(n.Tag[1] - '0')
	}
	if n.Role() == "heading" {
		if level, err := strconv.Atoi(strings.TrimSpace(n.AttrValue("aria-level"))); err == nil && level > 0 {
			return level
		}
		if n.IsElement("h1", "h2", "h3", "h4", "h5", "h6") {
			return int(n.Tag[1] - '0')
		}
		return 2
	}
	return 0
}

// IsHidden reports whether n or an ancestor is removed from the
// accessibility tree by hidden or aria-hidden="true".
func IsHidden(n *dom.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Kind != dom.NodeElement {
			continue
		}
		if p.HasAttr("hidden") || strings.EqualFold(strings.TrimSpace(p.AttrValue("aria-hidden")), "true") {
			return true
		}
	}
	return false
}

// IsPresentational reports whether n has role none or presentation.
func IsPresentational(n *dom.Node) bool {
	role := n.Role()
	return role == "none" || role == "presentation"
}

// NameSource describes where an accessible name came from.
type NameSource string

const (
	NameNone       NameSource = ""
	NameLabelledBy NameSource = "aria-labelledby"
	NameAriaLabel  NameSource = "aria-label"
	NameLabel      NameSource = "label"
	NameContent    NameSource = "content"
	NameValue      NameSource = "value"
	NameAlt        NameSource = "alt"
	NameTitle      NameSource = "title"
)

// AccessibleName computes a simplified accessible name for a form control,
// button or link. It returns the name and where it came from.
func AccessibleName(idx *DocIndex, n *dom.Node) (string, NameSource) {
	if ids := strings.Fields(n.AttrValue("aria-labelledby")); len(ids) > 0 {
		var parts []string
		for _, id := range ids {
			if target := idx.ByID(id); target != nil {
				if text := labelText(target); text != "" {
					parts = append(parts, text)
				}
			}
		}
		if name := strings.Join(parts, " "); name != "" {
			return name, NameLabelledBy
		}
	}

	if label := strings.TrimSpace(n.AttrValue("aria-label")); label != "" {
		return label, NameAriaLabel
	}

	if n.IsElement("input", "select", "textarea", "meter", "progress", "output") {
		if name := associatedLabelText(idx, n); name != "" {
			return name, NameLabel
		}
	}

	if n.IsElement("input") {
		switch InputType(n) {
		case "submit", "reset", "button":
			if value := strings.TrimSpace(n.AttrValue("value")); value != "" {
				return value, NameValue
			}
			switch InputType(n) {
			case "submit":
				return "Submit", NameValue
			case "reset":
				return "Reset", NameValue
			}
		case "image":
			if alt := strings.TrimSpace(n.AttrValue("alt")); alt != "" {
				return alt, NameAlt
			}
		}
	}

	if n.IsElement("button", "a", "summary") || (IsWidgetRole(n.Role()) && !n.IsElement("input", "select", "textarea")) {
		if text := dom.TextContent(n, true); text != "" {
			return text, NameContent
		}
	}

	if title := strings.TrimSpace(n.AttrValue("title")); title != "" {
		return title, NameTitle
	}

	return "", NameNone
}

// DanglingLabelledBy returns aria-labelledby ids that match no element.
func DanglingLabelledBy(idx *DocIndex, n *dom.Node) []string {
	var missing []string
	for _, id := range strings.Fields(n.AttrValue("aria-labelledby")) {
		if idx.ByID(id) == nil {
			missing = append(missing, id)
		}
	}
	return missing
}

func associatedLabelText(idx *DocIndex, n *dom.Node) string {
	var parts []string
	if id := n.ID(); id != "" {
		for _, label := range idx.LabelsFor(id) {
			if text := labelText(label); text != "" {
				parts = append(parts, text)
			}
		}
	}
	if wrapping := n.Closest("label"); wrapping != nil && !wrapping.HasAttr("for") {
		if text := labelText(wrapping); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// labelText is the text of a labelling element, with aria-label taking
// precedence and nested form controls skipped.
func labelText(n *dom.Node) string {
	if label := strings.TrimSpace(n.AttrValue("aria-label")); label != "" {
		return label
	}

	var sb strings.Builder
	//nolint:errcheck // callback never returns a real error
	dom.Walk(n, func(node *dom.Node) error {
		switch {
		case node.IsElement("input", "select", "textarea", "script", "style"):
			return dom.SkipChildren
		case node.Kind == dom.NodeText:
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
		case node.IsElement("img"):
			sb.WriteString(node.AttrValue("alt"))
			sb.WriteByte(' ')
		}
		return nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}
