// Package dom provides the read-only document model checked by a11ylint rules.
//
// A Document owns a tree of Nodes built by one of the parser adapters together
// with the stylesheets found in the source (external files, <style> elements,
// style attributes). Every node and style rule carries a byte span into the
// original content so findings can be reported at exact lines and columns.
package dom

import "sort"

// SourceKind identifies what kind of file a Document was built from.
type SourceKind string

const (
	SourceHTML     SourceKind = "html"
	SourceCSS      SourceKind = "css"
	SourceMarkdown SourceKind = "markdown"
)

// Document is an immutable view of one parsed input file.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Kind is the source kind the document was parsed from.
	Kind SourceKind

	// Root is the tree root. It is always a NodeDocument, even for CSS-only input.
	Root *Node

	// StyleSheets holds every stylesheet found in the file, in source order.
	StyleSheets []*StyleSheet

	// Problems lists embedded content that could not be parsed, such as a
	// broken <style> element. The rest of the document is still usable.
	Problems []Problem
}

// Problem is a localized parse failure inside an otherwise usable document.
type Problem struct {
	Span    Span
	Message string
}

// AddProblem records a localized parse failure.
func (d *Document) AddProblem(span Span, message string) {
	d.Problems = append(d.Problems, Problem{Span: span, Message: message})
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For a last line without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewDocument creates a Document with its line index and an empty root.
func NewDocument(path string, content []byte, kind SourceKind) *Document {
	doc := &Document{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Kind:    kind,
	}
	doc.Root = &Node{Kind: NodeDocument, Span: Span{Start: 0, End: len(content)}, Doc: doc}
	return doc
}

// BuildLines constructs line metadata from content, handling LF and CRLF.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Columns count bytes. Returns (0, 0) if the offset is negative or the
// document is empty.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(d.Content) {
		last := d.Lines[len(d.Lines)-1]
		return len(d.Lines), offset - last.StartOffset + 1
	}

	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if idx >= len(d.Lines) {
		idx = len(d.Lines) - 1
	}

	return idx + 1, offset - d.Lines[idx].StartOffset + 1
}

// LineContent returns a 1-based line without its newline, or nil if out of range.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}
	info := d.Lines[line-1]
	return d.Content[info.StartOffset:info.NewlineStart]
}

// Position converts a span to a line/column range.
func (d *Document) Position(span Span) SourcePosition {
	if d == nil || len(d.Lines) == 0 {
		return SourcePosition{}
	}
	startLine, startCol := d.LineAt(span.Start)
	endLine, endCol := d.LineAt(span.End)
	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// Text returns the source bytes covered by span, clamped to the content.
func (d *Document) Text(span Span) []byte {
	start := max(0, min(span.Start, len(d.Content)))
	end := max(start, min(span.End, len(d.Content)))
	return d.Content[start:end]
}

// IsFullDocument reports whether the markup contains an <html> or <body>
// element, as opposed to a fragment.
func (d *Document) IsFullDocument() bool {
	return FindFirst(d.Root, func(n *Node) bool {
		return n.IsElement("html", "body")
	}) != nil
}
