package fsutil_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/yaklabco/a11ylint/pkg/fsutil"
)

func FuzzWriteAtomicReadFile(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("<p>hello</p>\n"))
	f.Add([]byte("a { color: #777 }\r\n"))
	f.Add([]byte("\x00\xff\xfe"))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.html")
		ctx := context.Background()

		if err := fsutil.WriteAtomic(ctx, path, content, 0o644); err != nil {
			t.Fatalf("WriteAtomic: %v", err)
		}

		got, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Fatalf("round trip mismatch: %q != %q", got, content)
		}

		changed, err := fsutil.Changed(ctx, info, true)
		if err != nil {
			t.Fatalf("Changed: %v", err)
		}
		if changed {
			t.Fatal("freshly read file reported as changed")
		}
	})
}
