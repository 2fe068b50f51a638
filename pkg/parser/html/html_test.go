package html_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/parser/html"
)

func parse(t *testing.T, src string) *dom.Document {
	t.Helper()

	doc, err := html.New().Parse(context.Background(), "page.html", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc
}

func TestParseTree(t *testing.T) {
	t.Parallel()

	src := `<!DOCTYPE html>
<html lang="en">
<body>
  <img src="a.png">
  <p>Hello <b>world</b></p>
</body>
</html>
`
	doc := parse(t, src)
	assert.True(t, doc.IsFullDocument())

	htmlNode := dom.Elements(doc.Root, "html")[0]
	assert.Equal(t, "en", htmlNode.AttrValue("lang"))
	assert.Same(t, doc, htmlNode.Doc)

	img := dom.Elements(doc.Root, "img")[0]
	assert.False(t, img.HasChildren(), "void elements take no children")
	pos := img.Position()
	assert.Equal(t, 4, pos.StartLine)
	assert.Equal(t, 3, pos.StartColumn)

	para := dom.Elements(doc.Root, "p")[0]
	assert.Equal(t, "Hello world", dom.TextContent(para, false))
	assert.Equal(t, `<p>Hello <b>world</b></p>`, string(doc.Text(para.Span)))
	assert.Equal(t, "body", para.Parent.Tag)
}

func TestParseAttributeSpans(t *testing.T) {
	t.Parallel()

	src := `<a HREF='#top' title=plain data-x>x</a>`
	doc := parse(t, src)
	link := dom.Elements(doc.Root, "a")[0]

	require.Len(t, link.Attrs, 3)
	assert.Equal(t, "href", link.Attrs[0].Name)
	assert.Equal(t, "#top", link.Attrs[0].Value)
	assert.Equal(t, "HREF='#top'", string(doc.Text(link.Attrs[0].Span)))
	assert.Equal(t, "#top", string(doc.Text(link.Attrs[0].ValueSpan)))
	assert.Equal(t, "plain", string(doc.Text(link.Attrs[1].ValueSpan)))
	assert.True(t, link.HasAttr("data-x"))
	assert.Equal(t, "data-x", string(doc.Text(link.Attrs[2].Span)))
}

func TestParseRecovery(t *testing.T) {
	t.Parallel()

	t.Run("stray end tag ignored", func(t *testing.T) {
		t.Parallel()
		doc := parse(t, "<div></span><p>x</p></div>")
		div := dom.Elements(doc.Root, "div")[0]
		require.Len(t, div.Children(), 1)
		assert.Equal(t, "p", div.FirstChild.Tag)
	})

	t.Run("unclosed elements closed at EOF", func(t *testing.T) {
		t.Parallel()
		doc := parse(t, "<main><section><h1>Title")
		h1 := dom.Elements(doc.Root, "h1")[0]
		assert.Equal(t, "section", h1.Parent.Tag)
		assert.Equal(t, "Title", dom.TextContent(h1, false))
		main := dom.Elements(doc.Root, "main")[0]
		assert.Equal(t, len("<main><section><h1>Title"), main.Span.End)
	})

	t.Run("implied paragraph and list item ends", func(t *testing.T) {
		t.Parallel()
		doc := parse(t, "<p>one<p>two<ul><li>a<li>b</ul>")
		paras := dom.Elements(doc.Root, "p")
		require.Len(t, paras, 2)
		assert.Nil(t, paras[1].Closest("p"))
		items := dom.Elements(doc.Root, "li")
		require.Len(t, items, 2)
		assert.Equal(t, "ul", items[1].Parent.Tag)
	})

	t.Run("self-closing tag", func(t *testing.T) {
		t.Parallel()
		doc := parse(t, "<div/><span>x</span>")
		div := dom.Elements(doc.Root, "div")[0]
		assert.False(t, div.HasChildren())
	})
}

func TestParseStyles(t *testing.T) {
	t.Parallel()

	src := `<style>
*:focus { outline: none }
</style>
<p style="color: #999; background-color: #fff">x</p>
<style type="text/less">@x: 1;</style>`
	doc := parse(t, src)

	require.Len(t, doc.StyleSheets, 2)
	assert.Equal(t, dom.OriginStyleElement, doc.StyleSheets[0].Origin)
	assert.Equal(t, "style", doc.StyleSheets[0].Owner.Tag)
	rule := doc.StyleSheets[0].Rules[0]
	assert.Equal(t, []string{"*:focus"}, rule.Selectors)
	line, _ := doc.LineAt(rule.Declarations[0].Span.Start)
	assert.Equal(t, 2, line)

	inline := doc.StyleSheets[1]
	assert.Equal(t, dom.OriginStyleAttr, inline.Origin)
	assert.Equal(t, "p", inline.Owner.Tag)
	assert.Equal(t, "#999", inline.Rules[0].Get("color").Value)
	assert.Empty(t, doc.Problems)
}

func TestParseBrokenStyleIsLocalized(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<style>a { color: red } }</style><img>")
	require.Len(t, doc.Problems, 1)
	assert.Len(t, dom.Elements(doc.Root, "img"), 1)
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	_, err := html.New().Parse(context.Background(), "bad.html", []byte("<p>\x00</p>"))
	var malformed *lint.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "bad.html", malformed.Path)

	_, err = html.New().Parse(context.Background(), "bad.html", []byte{0xc3, 0x28})
	require.ErrorAs(t, err, &malformed)
}

func TestIntoFragment(t *testing.T) {
	t.Parallel()

	content := []byte("# Title\n\n<img src=x>\n")
	doc := dom.NewDocument("readme.md", content, dom.SourceMarkdown)

	require.NoError(t, html.Into(doc, doc.Root, dom.Span{Start: 9, End: 20}))
	img := dom.Elements(doc.Root, "img")[0]
	assert.Equal(t, 9, img.Span.Start)
	assert.Equal(t, 3, img.Position().StartLine)
}
