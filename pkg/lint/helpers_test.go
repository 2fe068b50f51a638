package lint_test

import (
	"context"
	"testing"

	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
	htmlparser "github.com/yaklabco/a11ylint/pkg/parser/html"
)

// parseHTML parses src as test.html and fails the test on error.
func parseHTML(t *testing.T, src string) *dom.Document {
	t.Helper()

	doc, err := htmlparser.New().Parse(context.Background(), "test.html", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

// firstByID returns the element with id or fails the test.
func firstByID(t *testing.T, doc *dom.Document, id string) *dom.Node {
	t.Helper()

	n := dom.ByID(doc.Root, id)
	if n == nil {
		t.Fatalf("element #%s not found", id)
	}
	return n
}

func TestIsKnownRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role string
		want bool
	}{
		{"button", true},
		{"navigation", true},
		{"doc-chapter", true},
		{"graphics-document", true},
		{"buton", false},
		{"", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.role, func(t *testing.T) {
			t.Parallel()

			if got := lint.IsKnownRole(testCase.role); got != testCase.want {
				t.Errorf("IsKnownRole(%q) = %v, want %v", testCase.role, got, testCase.want)
			}
		})
	}
}

func TestImplicitRole(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `
<header id="page-header"></header>
<article><header id="article-header"></header></article>
<a id="link" href="/">x</a>
<a id="anchor">x</a>
<img id="decorative" alt="">
<img id="photo" alt="Dog">
<input id="checkbox" type="checkbox">
<input id="text">
<input id="combo" list="opts">
<select id="select"></select>
<select id="listbox" size="4"></select>
<nav id="nav"></nav>
<div id="div"></div>
`)

	tests := []struct {
		id   string
		want string
	}{
		{"page-header", "banner"},
		{"article-header", "generic"},
		{"link", "link"},
		{"anchor", "generic"},
		{"decorative", "presentation"},
		{"photo", "img"},
		{"checkbox", "checkbox"},
		{"text", "textbox"},
		{"combo", "combobox"},
		{"select", "combobox"},
		{"listbox", "listbox"},
		{"nav", "navigation"},
		{"div", ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.id, func(t *testing.T) {
			t.Parallel()

			if got := lint.ImplicitRole(firstByID(t, doc, testCase.id)); got != testCase.want {
				t.Errorf("ImplicitRole(#%s) = %q, want %q", testCase.id, got, testCase.want)
			}
		})
	}
}

func TestIsNativeInteractive(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<a id="a1" href="#x">x</a><a id="a2">x</a><input id="hidden" type="hidden"><button id="b">b</button><div id="d"></div>`)

	want := map[string]bool{"a1": true, "a2": false, "hidden": false, "b": true, "d": false}
	for id, expected := range want {
		if got := lint.IsNativeInteractive(firstByID(t, doc, id)); got != expected {
			t.Errorf("IsNativeInteractive(#%s) = %v, want %v", id, got, expected)
		}
	}
}

func TestHeadingLevel(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<h3 id="h3">a</h3><div id="aria" role="heading" aria-level="4">b</div><div id="noLevel" role="heading">c</div><p id="p">d</p>`)

	want := map[string]int{"h3": 3, "aria": 4, "noLevel": 2, "p": 0}
	for id, expected := range want {
		if got := lint.HeadingLevel(firstByID(t, doc, id)); got != expected {
			t.Errorf("HeadingLevel(#%s) = %d, want %d", id, got, expected)
		}
	}
}

func TestIsHidden(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<div aria-hidden="true"><span id="inner">x</span></div><div hidden><p id="p">y</p></div><span id="visible">z</span>`)

	if !lint.IsHidden(firstByID(t, doc, "inner")) {
		t.Error("aria-hidden ancestor should hide")
	}
	if !lint.IsHidden(firstByID(t, doc, "p")) {
		t.Error("hidden ancestor should hide")
	}
	if lint.IsHidden(firstByID(t, doc, "visible")) {
		t.Error("visible element reported hidden")
	}
}

func TestAccessibleName(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `
<span id="l1">First</span><span id="l2">Name</span>
<input id="labelledby" aria-labelledby="l1 l2">
<input id="arialabel" aria-label="  Search  ">
<label for="forlabel">Email <input id="inner-ignored"></label><input id="forlabel">
<label>Phone <input id="wrapped"></label>
<input id="submit" type="submit">
<input id="submit-value" type="submit" value="Send">
<input id="image" type="image" alt="Go">
<button id="button"><img src="x.png" alt="Close"></button>
<a id="link" href="/">Home</a>
<div id="widget" role="button">Toggle</div>
<input id="titled" title="Zip code">
<input id="nameless">
<button id="empty"></button>
`)

	tests := []struct {
		id         string
		wantName   string
		wantSource lint.NameSource
	}{
		{"labelledby", "First Name", lint.NameLabelledBy},
		{"arialabel", "Search", lint.NameAriaLabel},
		{"forlabel", "Email", lint.NameLabel},
		{"wrapped", "Phone", lint.NameLabel},
		{"submit", "Submit", lint.NameValue},
		{"submit-value", "Send", lint.NameValue},
		{"image", "Go", lint.NameAlt},
		{"button", "Close", lint.NameContent},
		{"link", "Home", lint.NameContent},
		{"widget", "Toggle", lint.NameContent},
		{"titled", "Zip code", lint.NameTitle},
		{"nameless", "", lint.NameNone},
		{"empty", "", lint.NameNone},
	}

	idx := lint.NewDocIndex(doc)

	for _, testCase := range tests {
		t.Run(testCase.id, func(t *testing.T) {
			t.Parallel()

			name, source := lint.AccessibleName(idx, firstByID(t, doc, testCase.id))
			if name != testCase.wantName || source != testCase.wantSource {
				t.Errorf("AccessibleName(#%s) = (%q, %q), want (%q, %q)",
					testCase.id, name, source, testCase.wantName, testCase.wantSource)
			}
		})
	}
}

func TestDanglingLabelledBy(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<span id="real">x</span><input id="in" aria-labelledby="real ghost">`)
	idx := lint.NewDocIndex(doc)

	missing := lint.DanglingLabelledBy(idx, firstByID(t, doc, "in"))
	if len(missing) != 1 || missing[0] != "ghost" {
		t.Errorf("DanglingLabelledBy = %v, want [ghost]", missing)
	}
}

func TestDocIndex(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<div id="a"><img src="1.png"></div><p id="a">dup</p><label for="f">F</label><img src="2.png">`)
	idx := lint.NewDocIndex(doc)

	if got := len(idx.Elements()); got != 5 {
		t.Errorf("Elements() = %d, want 5", got)
	}
	if got := len(idx.Elements("img")); got != 2 {
		t.Errorf("Elements(img) = %d, want 2", got)
	}
	if got := len(idx.Elements("img", "p")); got != 3 {
		t.Errorf("Elements(img, p) = %d, want 3", got)
	}
	if n := idx.ByID("a"); n == nil || n.Tag != "div" {
		t.Error("ByID should return the first element in document order")
	}
	if got := len(idx.AllByID("a")); got != 2 {
		t.Errorf("AllByID(a) = %d, want 2", got)
	}
	if got := len(idx.LabelsFor("f")); got != 1 {
		t.Errorf("LabelsFor(f) = %d, want 1", got)
	}
	if idx.ByID("missing") != nil {
		t.Error("ByID(missing) should be nil")
	}
}

func TestNewDocIndex_NilDocument(t *testing.T) {
	t.Parallel()

	idx := lint.NewDocIndex(nil)
	if len(idx.Elements()) != 0 || len(idx.IDs()) != 0 {
		t.Error("nil document should produce an empty index")
	}
}
