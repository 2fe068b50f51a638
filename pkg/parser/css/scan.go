package css

import (
	"strings"

	"github.com/yaklabco/a11ylint/pkg/dom"
)

// block is a statement found by the span scanner: either a rule with a
// {...} body or a body-less at-rule ending in ';'.
type block struct {
	// Prelude covers the selectors or at-rule prelude.
	Prelude dom.Span

	// Body covers the text between the braces. Empty for body-less at-rules.
	Body dom.Span

	// Full covers the prelude through the closing brace or semicolon.
	Full dom.Span

	// Nested is set for at-rules whose body holds rules instead of declarations.
	Nested bool
}

// declSpan is one "property: value" piece inside a body.
type declSpan struct {
	Property string
	Span     dom.Span
}

// nestingAtRules hold rules, not declarations. The list matches the at-rules
// douceur parses as rule blocks so both walks stay aligned.
var nestingAtRules = []string{"@document", "@font-feature-values", "@keyframes", "@media", "@supports"}

// scanner walks CSS source recording statement spans in pre-order.
// It only tracks structure; values are taken from the real parser.
type scanner struct {
	src    []byte
	base   int
	blocks []block
}

func scanBlocks(src []byte, base int) []block {
	s := &scanner{src: src, base: base}
	s.statements(0, len(src))
	return s.blocks
}

// statements scans a rule list in src[pos:end].
func (s *scanner) statements(pos, end int) {
	for {
		pos = s.skipSpaceAndComments(pos, end)
		if pos >= end {
			return
		}
		if s.src[pos] == '}' || s.src[pos] == ';' {
			pos++
			continue
		}

		start := pos
		stop, terminator := s.findTerminator(pos, end)
		prelude := dom.Span{Start: s.base + start, End: s.base + trimRight(s.src, start, stop)}

		if terminator != '{' {
			full := min(stop+1, end)
			s.blocks = append(s.blocks, block{Prelude: prelude, Full: dom.Span{Start: s.base + start, End: s.base + full}})
			pos = full
			continue
		}

		closeAt := s.matchBrace(stop, end)
		nested := isNestingAtRule(string(s.src[start:stop]))
		s.blocks = append(s.blocks, block{
			Prelude: prelude,
			Body:    dom.Span{Start: s.base + stop + 1, End: s.base + closeAt},
			Full:    dom.Span{Start: s.base + start, End: s.base + min(closeAt+1, end)},
			Nested:  nested,
		})
		if nested {
			s.statements(stop+1, closeAt)
		}
		pos = closeAt + 1
	}
}

// findTerminator returns the index of the next top-level '{' or ';'.
func (s *scanner) findTerminator(pos, end int) (int, byte) {
	depth := 0
	for pos < end {
		switch c := s.src[pos]; c {
		case '"', '\'':
			pos = s.skipString(pos, end)
			continue
		case '/':
			if pos+1 < end && s.src[pos+1] == '*' {
				pos = s.skipComment(pos, end)
				continue
			}
		case '(', '[':
			depth++
		case ')', ']':
			depth = max(0, depth-1)
		case '{', ';':
			if depth == 0 {
				return pos, c
			}
		}
		pos++
	}
	return end, 0
}

// matchBrace returns the index of the '}' closing the '{' at open, or end.
func (s *scanner) matchBrace(open, end int) int {
	depth := 0
	for pos := open; pos < end; {
		switch s.src[pos] {
		case '"', '\'':
			pos = s.skipString(pos, end)
			continue
		case '/':
			if pos+1 < end && s.src[pos+1] == '*' {
				pos = s.skipComment(pos, end)
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return pos
			}
		}
		pos++
	}
	return end
}

func (s *scanner) skipSpaceAndComments(pos, end int) int {
	for pos < end {
		switch {
		case isSpace(s.src[pos]):
			pos++
		case s.src[pos] == '/' && pos+1 < end && s.src[pos+1] == '*':
			pos = s.skipComment(pos, end)
		case strings.HasPrefix(string(s.src[pos:min(pos+4, end)]), "<!--"):
			pos += 4
		case strings.HasPrefix(string(s.src[pos:min(pos+3, end)]), "-->"):
			pos += 3
		default:
			return pos
		}
	}
	return pos
}

func (s *scanner) skipComment(pos, end int) int {
	closeIdx := strings.Index(string(s.src[pos+2:end]), "*/")
	if closeIdx < 0 {
		return end
	}
	return pos + 2 + closeIdx + 2
}

func (s *scanner) skipString(pos, end int) int {
	quote := s.src[pos]
	for pos++; pos < end; pos++ {
		switch s.src[pos] {
		case '\\':
			pos++
		case quote, '\n':
			return pos + 1
		}
	}
	return end
}

// scanDeclarations splits a declaration body into "property: value" pieces.
func scanDeclarations(src []byte, base int, body dom.Span) []declSpan {
	s := &scanner{src: src, base: base}
	start, end := body.Start-base, body.End-base

	var decls []declSpan
	pos := start
	for pos < end {
		pos = s.skipSpaceAndComments(pos, end)
		if pos >= end {
			break
		}
		stop, _ := s.findTerminator(pos, end)
		piece := string(src[pos:stop])
		if colon := strings.IndexByte(piece, ':'); colon > 0 {
			decls = append(decls, declSpan{
				Property: strings.ToLower(strings.TrimSpace(piece[:colon])),
				Span:     dom.Span{Start: base + pos, End: base + trimRight(src, pos, stop)},
			})
		}
		pos = stop + 1
	}
	return decls
}

func isNestingAtRule(prelude string) bool {
	prelude = strings.ToLower(strings.TrimSpace(prelude))
	for _, name := range nestingAtRules {
		if prelude == name || strings.HasPrefix(prelude, name+" ") || strings.HasPrefix(prelude, name+"(") {
			return true
		}
	}
	return false
}

func trimRight(src []byte, start, stop int) int {
	for stop > start && isSpace(src[stop-1]) {
		stop--
	}
	return stop
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
