package dom_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/pkg/dom"
)

// buildTestTree builds:
//
//	document
//	  html
//	    label for=name
//	      "Name"
//	    input id=name
//	    a href=#
//	      "Go "
//	      img alt=home
func buildTestTree() *dom.Node {
	doc := dom.NewDocument("", nil, dom.SourceHTML)

	html := &dom.Node{Kind: dom.NodeElement, Tag: "html"}
	doc.Root.AppendChild(html)

	label := &dom.Node{Kind: dom.NodeElement, Tag: "label", Attrs: []dom.Attr{{Name: "for", Value: "name"}}}
	label.AppendChild(&dom.Node{Kind: dom.NodeText, Data: "Name"})
	html.AppendChild(label)

	html.AppendChild(&dom.Node{Kind: dom.NodeElement, Tag: "input", Attrs: []dom.Attr{{Name: "id", Value: " name "}}})

	link := &dom.Node{Kind: dom.NodeElement, Tag: "a", Attrs: []dom.Attr{{Name: "HREF", Value: "#"}}}
	link.AppendChild(&dom.Node{Kind: dom.NodeText, Data: "Go\n  "})
	link.AppendChild(&dom.Node{Kind: dom.NodeElement, Tag: "img", Attrs: []dom.Attr{{Name: "alt", Value: "home"}}})
	html.AppendChild(link)

	return doc.Root
}

func TestNodeAttrs(t *testing.T) {
	t.Parallel()

	root := buildTestTree()
	link := dom.Elements(root, "a")[0]

	value, ok := link.Attr("href")
	assert.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, "#", value)
	assert.False(t, link.HasAttr("title"))
	assert.Empty(t, link.AttrValue("title"))
}

func TestNodeTreeLinks(t *testing.T) {
	t.Parallel()

	root := buildTestTree()
	html := root.FirstChild
	require.NotNil(t, html)

	children := html.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "label", children[0].Tag)
	assert.Same(t, children[1], children[0].Next)
	assert.Same(t, children[1], children[2].Prev)
	assert.Same(t, html, children[2].Parent)
	assert.Same(t, children[2], html.LastChild)

	img := dom.Elements(root, "img")[0]
	assert.Same(t, children[2], img.Closest("a"))
	assert.Nil(t, img.Closest("table"))
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	root := buildTestTree()
	link := dom.Elements(root, "a")[0]

	assert.Equal(t, "Go", dom.TextContent(link, false))
	assert.Equal(t, "Go home", dom.TextContent(link, true))
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	root := buildTestTree()

	assert.Len(t, dom.Elements(root), 5)
	assert.Len(t, dom.Elements(root, "label", "input"), 2)

	input := dom.ByID(root, "name")
	require.NotNil(t, input)
	assert.Equal(t, "input", input.Tag)
	assert.Nil(t, dom.ByID(root, "missing"))
	assert.Nil(t, dom.ByID(root, ""))

	assert.Nil(t, dom.FindFirst(root, func(n *dom.Node) bool { return n.IsElement("table") }))
}

func TestWalkSkipAndStop(t *testing.T) {
	t.Parallel()

	root := buildTestTree()

	var tags []string
	err := dom.Walk(root, func(n *dom.Node) error {
		if n.IsElement() {
			tags = append(tags, n.Tag)
		}
		if n.IsElement("a") {
			return dom.SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"html", "label", "input", "a"}, tags)

	sentinel := errors.New("boom")
	err = dom.Walk(root, func(n *dom.Node) error {
		if n.IsElement("input") {
			return sentinel
		}
		return nil
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestWalkWithContext(t *testing.T) {
	t.Parallel()

	root := buildTestTree()
	label := dom.Elements(root, "label")[0]

	var events []string
	err := dom.WalkWithContext(label,
		func(n *dom.Node) error {
			events = append(events, "enter:"+n.Kind.String())
			return nil
		},
		func(n *dom.Node) error {
			events = append(events, "leave:"+n.Kind.String())
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"enter:Element", "enter:Text", "leave:Text", "leave:Element"}, events)
}

func TestStyleRuleGet(t *testing.T) {
	t.Parallel()

	rule := &dom.StyleRule{
		Selectors: []string{"a", "p"},
		Declarations: []*dom.Declaration{
			{Property: "color", Value: "red", Important: true},
			{Property: "color", Value: "blue"},
			{Property: "background", Value: "white"},
			{Property: "background", Value: "black"},
		},
	}

	assert.Equal(t, "red", rule.Get("COLOR").Value)
	assert.Equal(t, "black", rule.Get("background").Value)
	assert.Nil(t, rule.Get("outline"))
	assert.Equal(t, "a, p", rule.SelectorText())
}
