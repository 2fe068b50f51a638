package dom

import "strings"

// NodeKind classifies the type of a document node.
type NodeKind uint8

const (
	NodeDocument NodeKind = iota
	NodeElement
	NodeText
	NodeComment
	NodeDoctype
)

var nodeKindNames = [...]string{
	NodeDocument: "Document",
	NodeElement:  "Element",
	NodeText:     "Text",
	NodeComment:  "Comment",
	NodeDoctype:  "Doctype",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Attr is a single attribute as written in the source.
type Attr struct {
	// Name is the lower-cased attribute name.
	Name string

	// Value is the unescaped attribute value.
	Value string

	// Span covers the attribute including its value, or is empty if unknown.
	Span Span

	// ValueSpan covers the raw value between its quotes.
	ValueSpan Span
}

// Node represents a single node in the document tree.
// Nodes form a tree structure with parent/child/sibling relationships.
// Parent is a non-owning back-reference; the Document owns every node.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tag is the lower-cased element name. Empty for non-elements.
	Tag string

	// Data holds text, comment or doctype content.
	Data string

	// Attrs lists attributes in source order.
	Attrs []Attr

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span covers the node in the source. For elements this runs from the
	// start tag to the end of the end tag (or the last child if unclosed).
	Span Span

	// StartTag covers the element's start tag only.
	StartTag Span

	// Doc is a back-reference to the containing Document.
	Doc *Document
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	child.Prev = n.LastChild
	child.Next = nil
	if n.LastChild != nil {
		n.LastChild.Next = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
}

// IsElement reports whether n is an element with one of the given tags.
// With no tags it reports whether n is an element at all.
func (n *Node) IsElement(tags ...string) bool {
	if n == nil || n.Kind != NodeElement {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if n.Tag == tag {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute and whether it is present.
// Lookup is case-insensitive.
func (n *Node) Attr(name string) (string, bool) {
	if a := n.attr(name); a != nil {
		return a.Value, true
	}
	return "", false
}

// AttrValue returns the attribute value or "" if absent.
func (n *Node) AttrValue(name string) string {
	value, _ := n.Attr(name)
	return value
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	return n.attr(name) != nil
}

// AttrSpan returns the source span of the named attribute.
func (n *Node) AttrSpan(name string) (Span, bool) {
	if a := n.attr(name); a != nil {
		return a.Span, true
	}
	return Span{}, false
}

func (n *Node) attr(name string) *Attr {
	if n == nil {
		return nil
	}
	for i := range n.Attrs {
		if strings.EqualFold(n.Attrs[i].Name, name) {
			return &n.Attrs[i]
		}
	}
	return nil
}

// Role returns the first token of the role attribute, lower-cased.
func (n *Node) Role() string {
	fields := strings.Fields(strings.ToLower(n.AttrValue("role")))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ID returns the trimmed id attribute.
func (n *Node) ID() string {
	return strings.TrimSpace(n.AttrValue("id"))
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Closest returns the nearest ancestor element (excluding n) with one of the tags.
func (n *Node) Closest(tags ...string) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.IsElement(tags...) {
			return p
		}
	}
	return nil
}

// Position returns the line/column range of the node.
func (n *Node) Position() SourcePosition {
	if n == nil || n.Doc == nil {
		return SourcePosition{}
	}
	return n.Doc.Position(n.Span)
}

// TextContent concatenates the text of all descendant text nodes,
// collapsing runs of whitespace. Alt text of descendant images is included
// when includeAlt is set.
func TextContent(n *Node, includeAlt bool) string {
	var sb strings.Builder
	//nolint:errcheck // callback never fails
	Walk(n, func(node *Node) error {
		switch {
		case node.Kind == NodeText:
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
		case includeAlt && node.IsElement("img"):
			sb.WriteString(node.AttrValue("alt"))
			sb.WriteByte(' ')
		}
		return nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}
