package fix_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/a11ylint/pkg/fix"
)

func FuzzGenerateDiff(f *testing.F) {
	f.Add([]byte(""), []byte(""))
	f.Add([]byte("<html>\n"), []byte("<html lang=\"en\">\n"))
	f.Add([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))
	f.Add([]byte("a\nb\nc\nd\ne\n"), []byte("a\nB\nc\nD\ne\n"))

	f.Fuzz(func(t *testing.T, original, modified []byte) {
		diff := fix.GenerateDiff("fuzz.html", original, modified)
		if diff == nil {
			return
		}

		added, removed := 0, 0
		for _, line := range strings.Split(diff.String(), "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			case strings.HasPrefix(line, "+"):
				added++
			case strings.HasPrefix(line, "-"):
				removed++
			}
		}
		if added != diff.Additions || removed != diff.Deletions {
			t.Fatalf("counts %d/%d do not match rendered %d/%d", diff.Additions, diff.Deletions, added, removed)
		}
	})
}

func FuzzPrepareApply(f *testing.F) {
	f.Add([]byte("<html><body></body></html>"), 5, 5, 0, 4)
	f.Add([]byte("abcdef"), 0, 3, 2, 6)

	f.Fuzz(func(t *testing.T, content []byte, s1, e1, s2, e2 int) {
		edits := []fix.TextEdit{
			{StartOffset: s1, EndOffset: e1, NewText: "x"},
			{StartOffset: s2, EndOffset: e2},
		}

		plan, err := fix.Prepare(edits, len(content))
		if err != nil {
			return
		}

		for i := 1; i < len(plan.Accepted); i++ {
			if plan.Accepted[i].StartOffset < plan.Accepted[i-1].EndOffset {
				t.Fatalf("accepted edits overlap: %+v", plan.Accepted)
			}
		}
		_ = fix.ApplyEdits(content, plan.Accepted)
	})
}
