package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/pkg/config"
)

func TestAriaRoleRule(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantSeverity []config.Severity
		wantMsgs     []string
	}{
		{
			name:  "valid role",
			input: `<div role="navigation">links</div>`,
		},
		{
			name:         "unknown role",
			input:        `<div role="navgation">links</div>`,
			wantSeverity: []config.Severity{config.SeverityError},
			wantMsgs:     []string{`Unknown ARIA role "navgation"`},
		},
		{
			name:         "abstract roles are not allowed",
			input:        `<div role="widget">x</div>`,
			wantSeverity: []config.Severity{config.SeverityError},
		},
		{
			name:  "fallback list with a known role",
			input: `<div role="switch checkbox">x</div>`,
		},
		{
			name:         "redundant role",
			input:        `<nav role="navigation">links</nav>`,
			wantSeverity: []config.Severity{config.SeverityWarning},
			wantMsgs:     []string{`Redundant role "navigation"`},
		},
		{
			name:  "presentation on decorative image is not redundant",
			input: `<img src="x.png" alt="" role="presentation">`,
		},
		{
			name:         "interactive element made static",
			input:        `<button role="heading">Save</button>`,
			wantSeverity: []config.Severity{config.SeverityError},
			wantMsgs:     []string{`Interactive <button> is given non-interactive role "heading"`},
		},
		{
			name:  "interactive element with widget role",
			input: `<button role="tab">Tab 1</button>`,
		},
		{
			name:  "anchor without href is not interactive",
			input: `<a role="heading" aria-level="2">Title</a>`,
		},
		{
			name:  "dpub roles",
			input: `<section role="doc-chapter">x</section>`,
		},
		{
			name:  "empty role ignored",
			input: `<div role="">x</div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := mustRunRule(t, NewAriaRoleRule(), "test.html", tt.input, nil)
			require.Len(t, diags, len(tt.wantSeverity), messages(diags))

			for i, sev := range tt.wantSeverity {
				assert.Equal(t, sev, diags[i].Severity)
			}
			for i, msg := range tt.wantMsgs {
				assert.Contains(t, diags[i].Message, msg)
			}
		})
	}
}

func TestAriaRoleRule_Fix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes attribute and its leading space",
			input: `<nav class="top" role="navigation">links</nav>`,
			want:  `<nav class="top">links</nav>`,
		},
		{
			name:  "unquoted value",
			input: "<ul role=list>\n<li>a</li>\n</ul>",
			want:  "<ul>\n<li>a</li>\n</ul>",
		},
		{
			name:  "several elements",
			input: `<main role="main"><button role="button">Go</button></main>`,
			want:  `<main><button>Go</button></main>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := mustRunRule(t, NewAriaRoleRule(), "test.html", tt.input, nil)
			require.NotEmpty(t, diags)
			for _, d := range diags {
				require.True(t, d.HasFix(), "redundant role finding should carry a fix")
			}

			assert.Equal(t, tt.want, applyFixes(t, tt.input, diags))
		})
	}
}

func TestAriaRoleRule_UnknownHasNoFix(t *testing.T) {
	diags := mustRunRule(t, NewAriaRoleRule(), "test.html", `<div role="bogus">x</div>`, nil)
	require.Len(t, diags, 1)
	assert.False(t, diags[0].HasFix())
}
