package lint_test

import (
	"testing"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/fix"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

func TestNewDiagnostic_Node(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, "<p>intro</p>\n<img id=\"logo\" src=\"a.png\">")
	img := dom.FindFirst(doc.Root, func(n *dom.Node) bool { return n.IsElement("img") })
	if img == nil {
		t.Fatal("img not found")
	}

	diag := lint.NewDiagnostic("A11Y001", img, "Image is missing alt text").Build()

	if diag.RuleID != "A11Y001" {
		t.Errorf("RuleID = %q", diag.RuleID)
	}
	if diag.Offset != 13 {
		t.Errorf("Offset = %d, want 13", diag.Offset)
	}
	if diag.StartLine != 2 || diag.StartColumn != 1 {
		t.Errorf("start = %d:%d, want 2:1", diag.StartLine, diag.StartColumn)
	}
	if diag.EndLine != 2 {
		t.Errorf("EndLine = %d, want 2", diag.EndLine)
	}
	if diag.Element != `<img id="logo">` {
		t.Errorf("Element = %q", diag.Element)
	}
	if diag.FilePath != "test.html" {
		t.Errorf("FilePath = %q", diag.FilePath)
	}
}

func TestNewDiagnostic_NilNode(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnostic("A11Y012", nil, "no main landmark").Build()

	if diag.Message != "no main landmark" || diag.StartLine != 0 {
		t.Errorf("unexpected diagnostic: %+v", diag)
	}
}

func TestNewDiagnosticAt(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument("a.css", []byte("a {\n  color: red;\n}\n"), dom.SourceCSS)

	diag := lint.NewDiagnosticAt("A11Y002", doc, dom.Span{Start: 6, End: 17}, "msg").Build()

	pos := diag.SourcePosition()
	if pos.StartLine != 2 || pos.StartColumn != 3 {
		t.Errorf("start = %d:%d, want 2:3", pos.StartLine, pos.StartColumn)
	}
	if pos.EndLine != 2 || pos.EndColumn != 14 {
		t.Errorf("end = %d:%d, want 2:14", pos.EndLine, pos.EndColumn)
	}
}

func TestNewDiagnosticForRule(t *testing.T) {
	t.Parallel()

	doc := dom.NewDocument("a.css", []byte("a:focus { outline: none }"), dom.SourceCSS)
	owner := &dom.Node{Kind: dom.NodeElement, Tag: "button", Doc: doc}

	tests := []struct {
		name string
		rule *dom.StyleRule
		want string
	}{
		{name: "nil rule", rule: nil, want: ""},
		{
			name: "selector text",
			rule: &dom.StyleRule{Selectors: []string{"a:focus", "button:focus"}},
			want: "a:focus, button:focus",
		},
		{
			name: "inline style",
			rule: &dom.StyleRule{Sheet: &dom.StyleSheet{Origin: dom.OriginStyleAttr, Owner: owner}},
			want: "<button> style",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			diag := lint.NewDiagnosticForRule("A11Y002", doc, testCase.rule, dom.Span{Start: 10, End: 23}, "m").Build()
			if diag.Element != testCase.want {
				t.Errorf("Element = %q, want %q", diag.Element, testCase.want)
			}
		})
	}
}

func TestDiagnosticBuilder_Chaining(t *testing.T) {
	t.Parallel()

	builder := fix.NewEditBuilder()
	builder.Insert(5, ` lang="en"`)

	diag := lint.NewDiagnosticAt("A11Y009", nil, dom.Span{Start: 0, End: 6}, "missing lang").
		WithSeverity(config.SeverityError).
		WithSuggestion(`Add lang="en"`).
		WithElement("<html>").
		WithFix(builder).
		WithEdit(fix.TextEdit{StartOffset: 6, EndOffset: 6, NewText: "\n"}).
		Build()

	if diag.Severity != config.SeverityError {
		t.Errorf("Severity = %q", diag.Severity)
	}
	if diag.Suggestion != `Add lang="en"` {
		t.Errorf("Suggestion = %q", diag.Suggestion)
	}
	if diag.Element != "<html>" {
		t.Errorf("Element = %q", diag.Element)
	}
	if !diag.HasFix() || len(diag.FixEdits) != 2 {
		t.Errorf("expected 2 fix edits, got %d", len(diag.FixEdits))
	}
	if diag.FixEdits[0].NewText != ` lang="en"` {
		t.Errorf("first edit = %+v", diag.FixEdits[0])
	}
}

func TestDiagnosticBuilder_WithFixNil(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnosticAt("A11Y001", nil, dom.Span{}, "m").WithFix(nil).Build()

	if diag.HasFix() {
		t.Error("nil builder should add no edits")
	}
}
