// Package reporter writes lint results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/a11ylint/pkg/analysis"
	"github.com/yaklabco/a11ylint/pkg/runner"
)

var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of issues reported and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes a pre-aggregated report. The json, sarif and summary
// formats need per-rule and per-file totals, so they render an
// analysis.Report instead of walking runner.Result themselves.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// reporterFacade analyzes a run once and hands the report to a Renderer.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report analyzes result once and renders the report. Write errors are
// returned as they are so callers can match them.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, err
	}
	return report.Totals.Issues, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeDiagnostics: true,
			IncludeByFile:      true,
			IncludeByRule:      true,
			SortBy:             analysis.SortByCount,
			SortDesc:           true,
			RuleFormat:         opts.RuleFormat,
			WorkingDir:         opts.WorkingDir,
		},
	}
}

// New creates a Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts), nil
	case FormatSARIF:
		return newRendererFacade(NewSARIFRenderer(opts), opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
