package errors

import (
	"errors"
	"strconv"
)

// Exit codes of the gencontrol command.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates malformed defines, templates or config.
	ExitValidationError = 2

	// ExitMissingKey indicates a required configuration key was not found.
	ExitMissingKey = 3

	// ExitUnresolvedVariable indicates a template placeholder had no value.
	ExitUnresolvedVariable = 4

	// ExitConflict indicates packages differed between architectures in
	// strict mode.
	ExitConflict = 5

	// ExitNotFound indicates a file, template or section was not found.
	ExitNotFound = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed reports whether the command layer already showed the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrMissingKey):
		return ExitMissingKey
	case errors.Is(err, ErrUnresolvedVariable):
		return ExitUnresolvedVariable
	case errors.Is(err, ErrDuplicatePackageConflict):
		return ExitConflict
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
