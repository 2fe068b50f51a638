// Package langdetect decides whether a Markdown code block holds HTML, CSS,
// or something else. Tagged blocks are mapped from their info string;
// untagged blocks are sniffed with go-enry.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Detected languages.
const (
	LangHTML  = "html"
	LangCSS   = "css"
	LangOther = "text"
)

// classifierCandidates keeps the classifier honest: markup competes with
// the languages that commonly appear untagged in documentation.
var classifierCandidates = []string{
	"HTML", "CSS", "SCSS", "JavaScript", "TypeScript", "JSON", "YAML",
	"Shell", "Python", "Go", "Markdown", "XML",
}

var (
	htmlTagPattern = regexp.MustCompile(`(?i)^<(!doctype|[a-z][a-z0-9-]*)[\s>/]`)
	cssRulePattern = regexp.MustCompile(`(?s)^(@[a-z-]+[^{;]*|[^{}<>;=()"']+)\{[^{}]*:[^{}]*\}`)
)

// FromInfo maps a fenced code block language tag to a detected language.
func FromInfo(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "html", "htm", "xhtml", "html5":
		return LangHTML
	case "css":
		return LangCSS
	default:
		return LangOther
	}
}

// Detect returns LangHTML, LangCSS or LangOther for untagged code content.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return LangOther
	}

	// Strategy 1: a shebang means a script.
	if _, safe := enry.GetLanguageByShebang(content); safe {
		return LangOther
	}

	// Strategy 2: structural patterns.
	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	// Strategy 3: the classifier's best guess, kept only when the content
	// has the delimiters that language needs.
	ranked := enry.GetLanguagesByClassifier("", content, classifierCandidates)
	if len(ranked) == 0 {
		return LangOther
	}
	switch lang := normalize(ranked[0]); {
	case lang == LangHTML && bytes.Contains(trimmed, []byte("<")) && bytes.Contains(trimmed, []byte(">")):
		return LangHTML
	case lang == LangCSS && bytes.Contains(trimmed, []byte("{")) && bytes.Contains(trimmed, []byte(":")):
		return LangCSS
	default:
		return LangOther
	}
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(trimmed []byte) string {
	lower := bytes.ToLower(trimmed)

	switch {
	case bytes.HasPrefix(lower, []byte("<?xml")):
		return LangOther
	case htmlTagPattern.Match(trimmed):
		return LangHTML
	case cssRulePattern.Match(stripCSSComments(trimmed)):
		return LangCSS
	}

	return ""
}

// stripCSSComments drops leading /* ... */ comments.
func stripCSSComments(content []byte) []byte {
	for bytes.HasPrefix(content, []byte("/*")) {
		end := bytes.Index(content, []byte("*/"))
		if end < 0 {
			return content
		}
		content = bytes.TrimSpace(content[end+2:])
	}
	return content
}

// normalize converts go-enry language names to detected languages.
func normalize(lang string) string {
	switch lang {
	case "HTML":
		return LangHTML
	case "CSS":
		return LangCSS
	default:
		return LangOther
	}
}
