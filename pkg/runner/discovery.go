package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/a11ylint/internal/logging"
)

// Discover returns the sorted, de-duplicated absolute paths of every file
// selected by opts. Explicitly named files are subject to the extension and
// glob filters just like walked ones.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    normalizePatterns(opts.IncludeGlobs),
		exclude:    normalizePatterns(opts.ExcludeGlobs),
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.matchFile(absPath) {
				add(absPath)
			}
			continue
		}

		found, err := m.walk(ctx, absPath, opts.FollowSymlinks, map[string]bool{})
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	slices.Sort(files)

	logging.FromContext(ctx).Debug("discovery finished",
		logging.FieldWorkingDir, workDir,
		logging.FieldFilesDiscovered, len(files))

	return files, nil
}

// Selects reports whether a file at path would be linted under opts,
// applying the same extension, glob and hidden-name filters as Discover.
// Relative paths are resolved against opts.WorkingDir.
func (o Options) Selects(path string) bool {
	workDir, err := resolveWorkDir(o.WorkingDir)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	rel, err := filepath.Rel(workDir, path)
	if err == nil {
		for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
			if strings.HasPrefix(part, ".") && part != "." && part != ".." {
				return false
			}
		}
	}

	m := matcher{
		workDir:    workDir,
		extensions: o.effectiveExtensions(),
		include:    normalizePatterns(o.IncludeGlobs),
		exclude:    normalizePatterns(o.ExcludeGlobs),
	}
	return m.matchFile(filepath.Clean(path))
}

// Excludes reports whether path, a file or a directory, matches the
// exclude globs of opts.
func (o Options) Excludes(path string) bool {
	workDir, err := resolveWorkDir(o.WorkingDir)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	m := matcher{workDir: workDir, exclude: normalizePatterns(o.ExcludeGlobs)}
	return m.excluded(filepath.Clean(path))
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// matcher applies the extension and glob filters. Patterns are matched
// against slash-separated paths relative to workDir.
type matcher struct {
	workDir    string
	extensions []string
	include    []string
	exclude    []string
}

// walk collects matching files under root. visited holds resolved
// directories already entered through symlinks, so link cycles terminate.
func (m matcher) walk(ctx context.Context, root string, followSymlinks bool, visited map[string]bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && m.excluded(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken links are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks || visited[target] || m.excluded(path) {
					return nil
				}
				visited[target] = true
				// Walk the target, since WalkDir does not descend into a
				// symlinked root.
				sub, err := m.walk(ctx, target, followSymlinks, visited)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.matchFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (m matcher) matchFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(m.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	if m.excluded(path) {
		return false
	}
	return len(m.include) == 0 || matchAny(m.rel(path), m.include)
}

func (m matcher) excluded(path string) bool {
	return matchAny(m.rel(path), m.exclude)
}

func (m matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// normalizePatterns converts patterns to slash form and drops invalid ones.
// A pattern without a slash matches a base name at any depth, the way
// .gitignore entries do, so "*.min.css" becomes "**/*.min.css". A
// trailing "/**" also matches the directory itself.
func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(p)), "./")
		if p == "" {
			continue
		}
		if !strings.Contains(strings.TrimSuffix(p, "/"), "/") {
			p = "**/" + p
		}
		p = strings.TrimSuffix(p, "/")
		if !doublestar.ValidatePattern(p) {
			continue
		}
		out = append(out, p)
		if base, ok := strings.CutSuffix(p, "/**"); ok && base != "**" {
			out = append(out, base)
		}
	}
	return out
}

func matchAny(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}
