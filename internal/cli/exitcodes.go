package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gowiki/internal/configloader"
	"github.com/yaklabco/gowiki/pkg/fsutil"
	"github.com/yaklabco/gowiki/pkg/runner"
)

// Exit codes for gowiki.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitCompileErrors indicates a batch run in which some files failed.
	ExitCompileErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrCompileFailed is returned when at least one file of a batch failed.
	ErrCompileFailed = errors.New("some files failed to compile")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage marks invalid flag values or arguments.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromResult determines the exit code of a batch run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitCompileErrors
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrCompileFailed):
		return ExitCompileErrors
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation),
		errors.Is(err, configloader.ErrConfigExists), errors.Is(err, configloader.ErrNoBackup):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
