package cli

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/yaklabco/a11ylint/internal/configloader"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/runner"
)

// Exit codes for a11ylint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrLintIssuesFound is returned when lint issues decide the exit status.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

// usageArgs makes argument validation failures usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
// Errors without an explicit code are classified by their cause.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, lint.ErrFileNotFound),
		errors.Is(err, lint.ErrPermissionDenied),
		errors.Is(err, lint.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Files that could not be read or written fail the run with ExitIOError
// unless error findings already decide it.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitLintErrors
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	case strict && result.HasWarnings():
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}
