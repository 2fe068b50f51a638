package fix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines kept around each change.
const contextLines = 3

// Diff is a unified diff between the original and fixed content of a file.
type Diff struct {
	Path      string
	Original  []byte
	Modified  []byte
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// DiffHunk is one "@@" section. Starts are 1-based line numbers.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is one line of a hunk without its prefix character.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// prefix returns the unified diff marker for the kind.
func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// GenerateDiff computes a unified diff of original and modified.
// Returns nil when the contents are line-for-line identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)
	if slices.Equal(origLines, modLines) {
		return nil
	}

	matcher := difflib.NewMatcher(origLines, modLines)
	groups := matcher.GetGroupedOpCodes(contextLines)

	diff := &Diff{Path: path, Original: original, Modified: modified}
	for _, group := range groups {
		hunk := buildHunk(group, origLines, modLines)
		if !hunkHasChanges(hunk) {
			continue
		}
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			}
		}
		diff.Hunks = append(diff.Hunks, hunk)
	}

	if len(diff.Hunks) == 0 {
		return nil
	}
	return diff
}

func buildHunk(group []difflib.OpCode, orig, mod []string) DiffHunk {
	first, last := group[0], group[len(group)-1]
	hunk := DiffHunk{
		OriginalStart: first.I1 + 1,
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: first.J1 + 1,
		ModifiedCount: last.J2 - first.J1,
	}

	for _, op := range group {
		if op.Tag == 'e' {
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineContext, Content: line})
			}
			continue
		}
		if op.Tag == 'r' || op.Tag == 'd' {
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineRemove, Content: line})
			}
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			for _, line := range mod[op.J1:op.J2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineAdd, Content: line})
			}
		}
	}

	return hunk
}

func hunkHasChanges(h DiffHunk) bool {
	for _, line := range h.Lines {
		if line.Kind != DiffLineContext {
			return true
		}
	}
	return false
}

// splitLines splits content on "\n", dropping the empty element after a
// trailing newline.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// formatRange renders a hunk range the way diff -u does: an empty range
// points at the line before it.
func formatRange(start, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	case 1:
		return fmt.Sprintf("%d", start)
	default:
		return fmt.Sprintf("%d,%d", start, count)
	}
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n+++ b/%s\n", path, path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%s +%s @@\n",
			formatRange(hunk.OriginalStart, hunk.OriginalCount),
			formatRange(hunk.ModifiedStart, hunk.ModifiedCount))
		for _, line := range hunk.Lines {
			builder.WriteByte(line.Kind.prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// FullString returns the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}
