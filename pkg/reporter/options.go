package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/a11ylint/pkg/analysis"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output: "auto" (default), "always" or "never".
	Color string

	// ShowContext includes the offending source line under each finding.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups findings under a header per file (text format).
	GroupByFile bool

	// Compact uses minified output where applicable.
	Compact bool

	// PerFile prints a separate table for each file (table format only).
	PerFile bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder config.SummaryOrder

	// WorkingDir is the directory paths are shown relative to.
	// If empty, paths are kept as-is.
	WorkingDir string

	// Registry supplies rule metadata for SARIF output. Optional.
	Registry *lint.Registry

	// ToolVersion is the version reported in SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: config.SummaryOrderRules,
	}
}

// displayPath returns path as shown to the user.
func (o Options) displayPath(path string) string {
	return analysis.DisplayPath(path, o.WorkingDir)
}
