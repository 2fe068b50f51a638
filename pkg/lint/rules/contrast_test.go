package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/pkg/color"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

func TestColorContrastRule(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		input     string
		options   map[string]any
		wantDiags int
		wantMsgs  []string
	}{
		{
			name:      "black on white",
			input:     "p { color: #000; background-color: #fff; }",
			wantDiags: 0,
		},
		{
			name:      "just below 4.5",
			input:     "p { color: #777; background-color: #fff; }",
			wantDiags: 1,
			wantMsgs:  []string{"Contrast ratio 4.48:1 between #777777 and #ffffff is below the required 4.5:1"},
		},
		{
			name:      "just above 4.5",
			input:     "p { color: #767676; background: #fff; }",
			wantDiags: 0,
		},
		{
			name:      "large text needs 3:1",
			input:     "h1 { color: #777; background: white; font-size: 24px; }",
			wantDiags: 0,
		},
		{
			name:      "large text boundary is inclusive",
			input:     "h2 { color: #777; background: white; font-size: 18pt; }",
			wantDiags: 0,
		},
		{
			name:      "just under large text",
			input:     "h3 { color: #777; background: white; font-size: 17.5pt; }",
			wantDiags: 1,
		},
		{
			name:      "14pt regular text at 4.5:1 passes",
			input:     "p { color: rgb(118.65, 118.65, 118.65); background: #fff; font-size: 14pt; }",
			wantDiags: 0,
		},
		{
			name:      "14pt regular text at 4.49:1 fails",
			input:     "p { color: rgb(118.8, 118.8, 118.8); background: #fff; font-size: 14pt; }",
			wantDiags: 1,
			wantMsgs:  []string{"Contrast ratio 4.49:1", "below the required 4.5:1"},
		},
		{
			name:      "14pt bold text is large",
			input:     "b { color: #777; background: #fff; font-size: 14pt; font-weight: bold; }",
			wantDiags: 0,
		},
		{
			name:      "numeric bold weight",
			input:     "b { color: #777; background: #fff; font-size: 14pt; font-weight: 700; }",
			wantDiags: 0,
		},
		{
			name:      "semibold is not bold",
			input:     "b { color: #777; background: #fff; font-size: 14pt; font-weight: 600; }",
			wantDiags: 1,
		},
		{
			name:      "bold below the bold threshold",
			input:     "b { color: #777; background: #fff; font-size: 13pt; font-weight: bold; }",
			wantDiags: 1,
		},
		{
			name:      "custom large text threshold",
			input:     "p { color: #777; background: white; }",
			options:   map[string]any{"large_text_pt": 12},
			wantDiags: 0,
		},
		{
			name:      "custom bold threshold",
			input:     "b { color: #777; background: white; font-size: 14pt; font-weight: bold; }",
			options:   map[string]any{"large_bold_text_pt": 16},
			wantDiags: 1,
		},
		{
			name:      "translucent background composited over white",
			input:     ".badge { color: #fff; background-color: rgba(0, 0, 0, 0.5); }",
			wantDiags: 1,
		},
		{
			name:      "shorthand with other longhands",
			input:     ".hero { color: #aaa; background: #fff no-repeat center; }",
			wantDiags: 1,
		},
		{
			name:      "image backgrounds are skipped",
			input:     ".hero { color: #aaa; background: url(hero.jpg) #fff; }",
			wantDiags: 0,
		},
		{
			name:      "gradients are skipped",
			input:     ".hero { color: #aaa; background: linear-gradient(#fff, #eee); }",
			wantDiags: 0,
		},
		{
			name:      "no background",
			input:     "p { color: #eee; }",
			wantDiags: 0,
		},
		{
			name:      "cascade keywords are skipped",
			input:     "p { color: inherit; background: #fff; } q { color: var(--fg); background: #fff; }",
			wantDiags: 0,
		},
		{
			name:      "later background wins",
			input:     "p { color: #fff; background-color: #000; background: #fff; }",
			wantDiags: 1,
		},
		{
			name:      "style attribute",
			path:      "page.html",
			input:     `<p style="color: #999; background-color: #fff">Muted</p>`,
			wantDiags: 1,
		},
		{
			name:      "style attribute with trailing semicolon",
			path:      "page.html",
			input:     `<p style="color: #999; background-color: #fff;">Muted</p>`,
			wantDiags: 1,
		},
		{
			name:      "style attribute background first",
			path:      "page.html",
			input:     `<p style="background: #fff; color: #999">Muted</p>`,
			wantDiags: 1,
		},
		{
			name:      "style element",
			path:      "page.html",
			input:     "<style>\n.muted { color: #999; background: #fff; }\n</style>",
			wantDiags: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path
			if path == "" {
				path = "site.css"
			}

			diags := mustRunRule(t, NewColorContrastRule(), path, tt.input, tt.options)
			require.Len(t, diags, tt.wantDiags, messages(diags))

			for i, msg := range tt.wantMsgs {
				assert.Contains(t, diags[i].Message, msg)
			}
		})
	}
}

func TestColorContrastRule_MalformedColorContinues(t *testing.T) {
	src := "a { color: #ggg; background: #fff; }\nb { color: #999; background: #fff; }\n"

	diags, err := runRule(t, NewColorContrastRule(), "site.css", src, nil)
	require.Error(t, err)

	var malformed *lint.MalformedInputError
	require.True(t, errors.As(err, &malformed))
	var parseErr *color.ParseError
	assert.True(t, errors.As(err, &parseErr), "the color parse error is kept as the cause")

	require.Len(t, diags, 1)
	assert.Equal(t, 2, diags[0].StartLine)
	assert.Equal(t, "b", diags[0].Element)
}

func TestColorContrastRule_NonFiniteColor(t *testing.T) {
	for _, value := range []string{"rgb(nan, 0, 0)", "rgb(inf, 0, 0)", "hsl(0, nan%, 50%)", "rgba(0, 0, 0, nan)"} {
		t.Run(value, func(t *testing.T) {
			diags, err := runRule(t, NewColorContrastRule(), "site.css", "p { color: "+value+"; background: #fff; }", nil)

			var malformed *lint.MalformedInputError
			require.True(t, errors.As(err, &malformed), "err = %v", err)
			assert.Empty(t, diags)
		})
	}
}

func TestColorContrastRule_DefaultOptions(t *testing.T) {
	opts := NewColorContrastRule().DefaultOptions()
	assert.InDelta(t, 18.0, opts["large_text_pt"], 0)
	assert.InDelta(t, 14.0, opts["large_bold_text_pt"], 0)
}
