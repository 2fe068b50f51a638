package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/internal/ui/pretty"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

func imgDiagnostic() *lint.Diagnostic {
	return &lint.Diagnostic{
		RuleID:      "A11Y001",
		RuleName:    "img-alt",
		Message:     "Image is missing an alt attribute",
		Severity:    config.SeverityError,
		FilePath:    "/site/index.html",
		Element:     "<img>",
		StartLine:   12,
		StartColumn: 5,
		Suggestion:  `Add alt text, or alt="" if the image is decorative`,
	}
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name       string
		view       pretty.DiagnosticView
		contains   []string
		notContain []string
	}{
		{
			name:     "defaults to the diagnostic path",
			view:     pretty.DiagnosticView{},
			contains: []string{"/site/index.html:12:5", "error", "Image is missing an alt attribute", "<img>", "(img-alt)", "Suggestion:"},
		},
		{
			name:     "display path and id format",
			view:     pretty.DiagnosticView{Path: "index.html", RuleFormat: config.RuleFormatID},
			contains: []string{"  index.html:12:5", "(A11Y001)"},
		},
		{
			name:     "combined format",
			view:     pretty.DiagnosticView{RuleFormat: config.RuleFormatCombined},
			contains: []string{"(A11Y001/img-alt)"},
		},
		{
			name:     "source context",
			view:     pretty.DiagnosticView{SourceLine: `    <img src="logo.png">`},
			contains: []string{`<img src="logo.png">`, "            ^"},
		},
		{
			name:       "no context without a source line",
			view:       pretty.DiagnosticView{},
			notContain: []string{"^"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := styles.FormatDiagnostic(imgDiagnostic(), tt.view)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContain {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		severity config.Severity
		expected string
	}{
		{config.SeverityError, "error"},
		{config.SeverityWarning, "warning"},
		{config.SeverityInfo, "info"},
		{"custom", "custom"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, styles.FormatSeverity(tt.severity))
		})
	}
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("caret under column", func(t *testing.T) {
		t.Parallel()

		lines := strings.Split(styles.FormatSourceContext("<p><img></p>", 4), "\n")
		require.GreaterOrEqual(t, len(lines), 2)
		assert.Equal(t, strings.Index(lines[0], "<img>"), strings.Index(lines[1], "^"))
	})

	t.Run("tabs are kept", func(t *testing.T) {
		t.Parallel()

		lines := strings.Split(styles.FormatSourceContext("\t\t<img>", 3), "\n")
		require.GreaterOrEqual(t, len(lines), 2)
		assert.Equal(t, "        \t\t^", lines[1])
	})

	t.Run("zero column has no caret", func(t *testing.T) {
		t.Parallel()

		out := styles.FormatSourceContext("body{color:#777}", 0)
		assert.Contains(t, out, "body{color:#777}")
		assert.NotContains(t, out, "^")
	})

	t.Run("long lines are windowed", func(t *testing.T) {
		t.Parallel()

		line := strings.Repeat("a{color:red}", 50) + "x{outline:none}" + strings.Repeat("b{color:red}", 50)
		column := strings.Index(line, "x{") + 1

		lines := strings.Split(styles.FormatSourceContext(line, column), "\n")
		require.GreaterOrEqual(t, len(lines), 2)
		assert.Less(t, len(lines[0]), 140)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "..."))
		assert.True(t, strings.HasSuffix(lines[0], "..."))
		assert.Equal(t, strings.Index(lines[0], "x{outline"), strings.Index(lines[1], "^"))
	})
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "docs/index.html (5 issues)", styles.FormatFileHeader("docs/index.html", 5))
	assert.Equal(t, "docs/index.html (1 issue)", styles.FormatFileHeader("docs/index.html", 1))
	assert.Equal(t, "docs/index.html", styles.FormatFileHeader("docs/index.html", 0))
}
