package cmd

import (
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess            = gerrors.ExitSuccess
	ExitGeneralError       = gerrors.ExitGeneralError
	ExitValidationError    = gerrors.ExitValidationError
	ExitMissingKey         = gerrors.ExitMissingKey
	ExitUnresolvedVariable = gerrors.ExitUnresolvedVariable
	ExitConflict           = gerrors.ExitConflict
	ExitNotFound           = gerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = gerrors.ExitError

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitMissingKey:
		return "Missing Key"
	case ExitUnresolvedVariable:
		return "Unresolved Variable"
	case ExitConflict:
		return "Package Conflict"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	return gerrors.ExitCodeFromError(err)
}
