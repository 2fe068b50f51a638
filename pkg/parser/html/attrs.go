package html

import (
	"strings"

	"github.com/yaklabco/a11ylint/pkg/dom"
)

// scanAttrs finds attribute name and value spans in a raw start tag.
// Values are left raw; callers take unescaped values from the tokenizer.
func scanAttrs(content []byte, tag dom.Span) []dom.Attr {
	src := content[tag.Start:tag.End]
	pos := 1
	for pos < len(src) && !isTagSpace(src[pos]) && src[pos] != '>' && src[pos] != '/' {
		pos++
	}

	var attrs []dom.Attr
	for pos < len(src) {
		for pos < len(src) && (isTagSpace(src[pos]) || src[pos] == '/') {
			pos++
		}
		if pos >= len(src) || src[pos] == '>' {
			break
		}

		nameStart := pos
		for pos < len(src) && !isTagSpace(src[pos]) && src[pos] != '=' && src[pos] != '>' && src[pos] != '/' {
			pos++
		}
		attr := dom.Attr{Name: strings.ToLower(string(src[nameStart:pos]))}
		valueSpan := dom.Span{Start: pos, End: pos}

		after := pos
		for after < len(src) && isTagSpace(src[after]) {
			after++
		}
		if after < len(src) && src[after] == '=' {
			pos = after + 1
			for pos < len(src) && isTagSpace(src[pos]) {
				pos++
			}
			if pos < len(src) && (src[pos] == '"' || src[pos] == '\'') {
				quote := src[pos]
				end := pos + 1
				for end < len(src) && src[end] != quote {
					end++
				}
				valueSpan = dom.Span{Start: pos + 1, End: end}
				pos = min(end+1, len(src))
			} else {
				start := pos
				for pos < len(src) && !isTagSpace(src[pos]) && src[pos] != '>' {
					pos++
				}
				valueSpan = dom.Span{Start: start, End: pos}
			}
		}

		attr.Span = dom.Span{Start: tag.Start + nameStart, End: tag.Start + pos}
		attr.ValueSpan = valueSpan.Shift(tag.Start)
		attrs = append(attrs, attr)
	}

	return attrs
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
