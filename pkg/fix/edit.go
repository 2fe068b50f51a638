// Package fix provides text edits, their validation and application, and
// unified diffs of the result.
package fix

// TextEdit replaces bytes [StartOffset, EndOffset) with NewText.
// An empty range is an insertion; an empty NewText is a deletion.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// IsDeletion reports whether the edit only removes text.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// EditBuilder accumulates the edits proposed for one finding.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0)}
}

// ReplaceRange replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// Insert inserts text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete removes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// DeleteWithLeadingSpace removes [start, end) together with the spaces and
// tabs directly before it, so removing an attribute does not leave a
// double space behind.
func (b *EditBuilder) DeleteWithLeadingSpace(content []byte, start, end int) {
	for start > 0 && (content[start-1] == ' ' || content[start-1] == '\t') {
		start--
	}
	b.Delete(start, end)
}
