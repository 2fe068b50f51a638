package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// Plan is the outcome of preparing a set of edits for one file.
type Plan struct {
	// Accepted edits are sorted and non-overlapping, ready for ApplyEdits.
	Accepted []TextEdit

	// Skipped edits overlapped an earlier accepted edit.
	Skipped []TextEdit

	// Merged counts overlapping deletions folded into a single deletion.
	Merged int
}

// HasConflicts reports whether any edit was skipped.
func (p Plan) HasConflicts() bool {
	return len(p.Skipped) > 0
}

// ValidateEdits checks that every edit range lies within content.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset, then text, so
// the outcome never depends on rule scheduling.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(
			cmp.Compare(a.StartOffset, b.StartOffset),
			cmp.Compare(a.EndOffset, b.EndOffset),
			cmp.Compare(a.NewText, b.NewText),
		)
	})
}

// Prepare validates and sorts edits, drops exact duplicates, merges
// overlapping deletions and skips any other edit that overlaps one already
// accepted. The earlier edit wins a conflict. Only a range error fails.
func Prepare(edits []TextEdit, contentLen int) (Plan, error) {
	if len(edits) == 0 {
		return Plan{}, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return Plan{}, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	sorted = slices.Compact(sorted)

	var plan Plan
	current := sorted[0]
	for _, edit := range sorted[1:] {
		switch {
		case !overlaps(current, edit):
			plan.Accepted = append(plan.Accepted, current)
			current = edit
		case current.IsDeletion() && edit.IsDeletion():
			current.EndOffset = max(current.EndOffset, edit.EndOffset)
			plan.Merged++
		default:
			plan.Skipped = append(plan.Skipped, edit)
		}
	}
	plan.Accepted = append(plan.Accepted, current)

	return plan, nil
}

// overlaps reports whether b, sorted after a, touches a's range. Two
// insertions at the same offset overlap since their order would be
// arbitrary.
func overlaps(a, b TextEdit) bool {
	if b.StartOffset < a.EndOffset {
		return true
	}
	return a.StartOffset == a.EndOffset && b.StartOffset == b.EndOffset && b.StartOffset == a.StartOffset
}
