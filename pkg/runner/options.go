// Package runner lints many files concurrently on top of lint.Pipeline.
package runner

import (
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/parser"
)

// Options controls which files are linted and how.
type Options struct {
	// Paths are the files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob patterns.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase, dot-prefixed extensions to lint.
	// Empty falls back to Config.Extensions, then DefaultExtensions.
	Extensions []string

	// IncludeGlobs restricts discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories. Config ignore
	// patterns and --ignore flags both end up here.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the number of concurrent file workers. Zero or negative
	// means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for the run.
	Config *config.Config
}

// DefaultExtensions returns the extensions linted when nothing else is set.
// Markdown is left out when the config disables it.
func DefaultExtensions(cfg *config.Config) []string {
	if cfg != nil && !cfg.Markdown.Enabled {
		exts := make([]string, 0, len(parser.HTMLExtensions)+len(parser.CSSExtensions))
		exts = append(exts, parser.HTMLExtensions...)
		return append(exts, parser.CSSExtensions...)
	}
	return parser.DefaultExtensions()
}

func (o Options) effectiveExtensions() []string {
	switch {
	case len(o.Extensions) > 0:
		return o.Extensions
	case o.Config != nil && len(o.Config.Extensions) > 0:
		return o.Config.Extensions
	default:
		return DefaultExtensions(o.Config)
	}
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
