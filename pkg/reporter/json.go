package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yaklabco/a11ylint/pkg/analysis"
)

// JSONRenderer writes the analysis report as one JSON document.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer. Empty views are written as empty arrays so
// consumers can index them without nil checks.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	out := *report
	if out.Diagnostics == nil {
		out.Diagnostics = []analysis.DiagnosticEntry{}
	}
	if out.ByFile == nil {
		out.ByFile = []analysis.FileAnalysis{}
	}
	if out.ByRule == nil {
		out.ByRule = []analysis.RuleAnalysis{}
	}

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(jsonReport(out)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return bw.Flush()
}

// jsonReport mirrors analysis.Report without omitempty on the views.
type jsonReport struct {
	Diagnostics []analysis.DiagnosticEntry `json:"diagnostics"`
	ByFile      []analysis.FileAnalysis    `json:"byFile"`
	ByRule      []analysis.RuleAnalysis    `json:"byRule"`
	FileErrors  []analysis.FileError       `json:"fileErrors,omitempty"`
	Totals      analysis.Totals            `json:"summary"`
	Version     string                     `json:"version"`
	Timestamp   time.Time                  `json:"timestamp"`
}
