package css_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/parser/css"
)

func TestParseStylesheet(t *testing.T) {
	t.Parallel()

	src := `/* base */
a, a:visited {
  color: #767676;
  background-color: white !important;
}

@media (max-width: 600px) {
  *:focus { outline: none; }
}
`
	doc, err := css.New().Parse(context.Background(), "site.css", []byte(src))
	require.NoError(t, err)
	require.Len(t, doc.StyleSheets, 1)
	assert.Equal(t, dom.SourceCSS, doc.Kind)

	sheet := doc.StyleSheets[0]
	assert.Equal(t, dom.OriginFile, sheet.Origin)
	require.Len(t, sheet.Rules, 2)

	first := sheet.Rules[0]
	assert.Equal(t, []string{"a", "a:visited"}, first.Selectors)
	assert.Empty(t, first.AtRule)
	require.Len(t, first.Declarations, 2)
	assert.Equal(t, "color", first.Declarations[0].Property)
	assert.Equal(t, "#767676", first.Declarations[0].Value)
	assert.True(t, first.Declarations[1].Important)

	line, col := doc.LineAt(first.Span.Start)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
	assert.Equal(t, "color: #767676", string(doc.Text(first.Declarations[0].Span)))

	second := sheet.Rules[1]
	assert.Equal(t, []string{"*:focus"}, second.Selectors)
	assert.Equal(t, "@media (max-width: 600px)", second.AtRule)
	line, _ = doc.LineAt(second.Declarations[0].Span.Start)
	assert.Equal(t, 8, line)
	assert.Equal(t, "outline: none", string(doc.Text(second.Declarations[0].Span)))
}

func TestParseSkipsKeyframes(t *testing.T) {
	t.Parallel()

	src := "@keyframes fade { from { color: black; } to { color: white; } }\np { color: red; }"
	doc, err := css.New().Parse(context.Background(), "", []byte(src))
	require.NoError(t, err)

	rules := doc.AllRules()
	require.Len(t, rules, 1)
	assert.Equal(t, []string{"p"}, rules[0].Selectors)
	assert.Equal(t, "color: red", string(doc.Text(rules[0].Declarations[0].Span)))
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	_, err := css.New().Parse(context.Background(), "broken.css", []byte("a { color: red; } }"))
	require.Error(t, err)

	var malformed *lint.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "broken.css", malformed.Path)

	_, err = css.New().Parse(context.Background(), "bin.css", []byte{0xff, 0xfe, 0x00})
	require.ErrorAs(t, err, &malformed)
}

func TestParseCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := css.New().Parse(ctx, "", []byte("p{}"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseInline(t *testing.T) {
	t.Parallel()

	content := []byte(`<p style="color: #fff; background: #000">`)
	doc := dom.NewDocument("", content, dom.SourceHTML)
	span := dom.Span{Start: 10, End: 39}

	sheet, err := css.ParseInline(doc, span, nil)
	require.NoError(t, err)
	assert.Equal(t, dom.OriginStyleAttr, sheet.Origin)
	require.Len(t, sheet.Rules, 1)

	rule := sheet.Rules[0]
	assert.Empty(t, rule.Selectors)
	require.Len(t, rule.Declarations, 2)
	assert.Equal(t, "background: #000", string(doc.Text(rule.Declarations[1].Span)))
	assert.Len(t, doc.StyleSheets, 1)
}

func TestParseInline_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style string
		want  map[string]string
	}{
		{
			name:  "no trailing semicolon",
			style: "color: #999; background-color: #fff",
			want:  map[string]string{"color": "#999", "background-color": "#fff"},
		},
		{
			name:  "trailing semicolon",
			style: "color: #999; background-color: #fff;",
			want:  map[string]string{"color": "#999", "background-color": "#fff"},
		},
		{
			name:  "single declaration",
			style: "font-size: 14pt",
			want:  map[string]string{"font-size": "14pt"},
		},
		{
			name:  "trailing whitespace",
			style: "color: red ; font-weight: bold  ",
			want:  map[string]string{"color": "red", "font-weight": "bold"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content := []byte(`<p style="` + tt.style + `">`)
			doc := dom.NewDocument("", content, dom.SourceHTML)
			span := dom.Span{Start: len(`<p style="`), End: len(`<p style="`) + len(tt.style)}

			sheet, err := css.ParseInline(doc, span, nil)
			require.NoError(t, err)
			require.Len(t, sheet.Rules, 1)

			rule := sheet.Rules[0]
			require.Len(t, rule.Declarations, len(tt.want))
			for property, value := range tt.want {
				decl := rule.Get(property)
				require.NotNil(t, decl, property)
				assert.Equal(t, value, decl.Value, property)
			}
		})
	}
}
