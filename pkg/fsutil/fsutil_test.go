package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/pkg/fsutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "index.html", "<p>hi</p>")

		content, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(9), info.Size)
		assert.Equal(t, os.FileMode(0o644), info.Mode.Perm())
		assert.NotEqual(t, [32]byte{}, info.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.css"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, writeFile(t, "a.css", "a{}"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(t *testing.T, path string)
		strict bool
		want   bool
	}{
		{name: "untouched", mutate: func(*testing.T, string) {}, strict: true, want: false},
		{
			name: "content grows",
			mutate: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("<p>changed</p>"), 0o644))
			},
			want: true,
		},
		{
			name: "removed",
			mutate: func(t *testing.T, path string) {
				require.NoError(t, os.Remove(path))
			},
			want: true,
		},
		{
			name: "same size and mtime, different bytes",
			mutate: func(t *testing.T, path string) {
				stat, err := os.Stat(path)
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(path, []byte("<b>hi</b>"), 0o644))
				require.NoError(t, os.Chtimes(path, stat.ModTime(), stat.ModTime()))
			},
			strict: true,
			want:   true,
		},
		{
			name: "quick check misses same-size rewrite",
			mutate: func(t *testing.T, path string) {
				stat, err := os.Stat(path)
				require.NoError(t, err)
				require.NoError(t, os.WriteFile(path, []byte("<b>hi</b>"), 0o644))
				require.NoError(t, os.Chtimes(path, stat.ModTime(), stat.ModTime()))
			},
			strict: false,
			want:   false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "index.html", "<p>hi</p>")
			_, info, err := fsutil.ReadFile(context.Background(), path)
			require.NoError(t, err)

			testCase.mutate(t, path)

			changed, err := fsutil.Changed(context.Background(), info, testCase.strict)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, changed)
		})
	}
}

func TestChangedNilInfo(t *testing.T) {
	t.Parallel()

	_, err := fsutil.Changed(context.Background(), nil, true)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and mode", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "style.css", "a { color: red }")

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("a { color: blue }"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a { color: blue }", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("zero mode uses default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.html")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.html")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0o644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "a.html")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0o644))
	})
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/site/index.html.a11ylint.bak", fsutil.BackupPath("/site/index.html", fsutil.BackupModeSidecar))
	assert.Equal(t, "/site/index.html.a11ylint.bak", fsutil.BackupPath("/site/index.html", "weird"))
	assert.Empty(t, fsutil.BackupPath("/site/index.html", fsutil.BackupModeNone))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("writes sidecar once", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "index.html", "original")

		created, err := fsutil.CreateBackup(context.Background(), path, enabled)
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(path, []byte("fixed"), 0o644))

		created, err = fsutil.CreateBackup(context.Background(), path, enabled)
		require.NoError(t, err)
		assert.False(t, created, "existing backup must not be overwritten")

		backup, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "original", string(backup))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "index.html", "x")

		created, err := fsutil.CreateBackup(context.Background(), path, fsutil.DefaultBackupConfig())
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		created, err := fsutil.CreateBackup(context.Background(), filepath.Join(t.TempDir(), "gone.html"), enabled)
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestChangedAfterTouch(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "a.css", "a{}")
	_, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	later := info.ModTime.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err := fsutil.Changed(context.Background(), info, false)
	require.NoError(t, err)
	assert.True(t, changed)
}
