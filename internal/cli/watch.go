package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/a11ylint/internal/logging"
	"github.com/yaklabco/a11ylint/pkg/runner"
)

// watchDebounce collapses the burst of events an editor save produces
// into a single run.
const watchDebounce = 200 * time.Millisecond

// watchAndLint lints once, then again after every batch of changes to a
// file the run would select. It returns when ctx is cancelled. Each run's
// report goes to the session writer; status lines go to status.
func watchAndLint(ctx context.Context, session *lintSession, status io.Writer) error {
	logger := logging.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	roots, err := watchRoots(session.runOpts)
	if err != nil {
		return err
	}
	for _, root := range roots {
		if err := addWatchDirs(watcher, root, session.runOpts); err != nil {
			return err
		}
	}

	runs := 0
	run := func() {
		runs++
		code, err := session.lintOnce(ctx)
		if err != nil {
			logger.Error("lint run failed", logging.FieldRun, runs, logging.FieldError, err)
			return
		}
		fmt.Fprintf(status, "\n[run %d] exit %d; watching for changes (Ctrl+C to stop)\n", runs, code)
	}

	run()

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchDirs(watcher, event.Name, session.runOpts); err != nil {
						logger.Warn("cannot watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
					continue
				}
			}
			if !triggersRun(event, session.runOpts) {
				continue
			}
			logger.Debug("change detected", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-debounce.C:
			run()
		}
	}
}

// triggersRun reports whether event concerns a file the run lints.
// Chmod-only events are ignored since fixing rewrites files in place.
func triggersRun(event fsnotify.Event, opts runner.Options) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return opts.Selects(event.Name)
}

// watchRoots returns the directories to watch: each directory argument,
// and the parent directory of each file argument.
func watchRoots(opts runner.Options) ([]string, error) {
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var roots []string
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.WorkingDir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			path = filepath.Dir(path)
		}
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			roots = append(roots, path)
		}
	}
	return roots, nil
}

// addWatchDirs watches root and every directory below it that discovery
// would enter. fsnotify watches are not recursive.
func addWatchDirs(watcher *fsnotify.Watcher, root string, opts runner.Options) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return filepath.SkipDir
			}
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(entry.Name(), ".") || opts.Excludes(path)) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
