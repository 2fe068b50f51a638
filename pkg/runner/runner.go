package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/a11ylint/internal/logging"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// Runner lints many files with a shared lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a Runner around pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files selected by opts and processes them with at most
// opts.Jobs workers. Outcomes are returned in path order regardless of the
// order in which workers finish. Per-file failures are recorded on the
// outcome; only discovery failures and cancellation are returned as errors.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	outcomes := r.processAll(ctx, files, opts)
	for _, outcome := range outcomes {
		if outcome.Path == "" {
			// Never dispatched because the run was cancelled.
			continue
		}
		result.accumulate(outcome)
	}
	result.Duration = time.Since(started)

	logging.FromContext(ctx).Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, result.Duration)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// processAll fans files out to a bounded pool. Each worker writes to the
// slot of its file index, so no reordering is needed afterwards.
func (r *Runner) processAll(ctx context.Context, files []string, opts Options) []FileOutcome {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	outcomes := make([]FileOutcome, len(files))
	work := make(chan int)

	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			for idx := range work {
				outcomes[idx] = r.processOne(ctx, files[idx], opts.Config, pipelineOpts)
			}
		})
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case work <- idx:
		}
	}
	close(work)
	wg.Wait()

	return outcomes
}

func (r *Runner) processOne(ctx context.Context, path string, cfg *config.Config, opts lint.PipelineOptions) FileOutcome {
	started := time.Now()
	outcome := FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, opts)
	outcome.Duration = time.Since(started)
	if err != nil {
		outcome.Error = err
		logging.FromContext(ctx).Debug("file failed",
			logging.FieldPath, path,
			logging.FieldError, err)
		return outcome
	}
	outcome.Result = pr

	logging.FromContext(ctx).Debug("file processed",
		logging.FieldPath, path,
		logging.FieldDiagnosticsTotal, len(pr.Diagnostics),
		logging.FieldDuration, outcome.Duration)

	return outcome
}
