package cli

import "errors"

const (
	// ExitFailure is returned when loading, planning or running fails.
	ExitFailure = 1
	// ExitUsage is returned for invalid arguments or flags.
	ExitUsage = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// asExitError maps any error returned by cobra to an ExitError. Errors not
// produced by a command's own logic are usage errors.
func asExitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}
