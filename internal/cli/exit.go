package cli

import (
	"errors"

	"github.com/syssam/weave"
)

// Process exit statuses of the weave command.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the definitions or a behavior configuration are wrong
	ExitCommandError = 2 // the command could not run: flags, paths, database
)

// ExitError carries the exit status a command failed with. main reads it
// back with GetExitCode.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError prefixing err with message.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps err to a process exit status. Errors that carry no
// ExitError fail with ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify wraps a generation error with the exit code matching its kind.
// Definition, configuration and generation errors are failures; anything
// else means the command could not run.
func classify(message string, err error) error {
	switch {
	case weave.IsSchemaError(err), weave.IsConfigError(err), weave.IsGenerationError(err):
		return WrapExitError(ExitFailure, message, err)
	default:
		return WrapExitError(ExitCommandError, message, err)
	}
}
