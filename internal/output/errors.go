package output

import "errors"

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
	ExitConflict    = 3
)

// ExitError is an error that decides the process exit code.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the cause so errors.Is sees through ExitError.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewUserError reports a problem the user can fix (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message}
}

// NewUserErrorWithCause is NewUserError keeping the underlying error.
func NewUserErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message, Cause: cause}
}

// NewSystemError reports an environment failure such as an I/O error
// (exit code 2).
func NewSystemError(message string, cause error) *ExitError {
	return &ExitError{Code: ExitSystemError, Message: message, Cause: cause}
}

// NewConflictError reports conflicting component definitions (exit code 3).
func NewConflictError(message string, cause error) *ExitError {
	return &ExitError{Code: ExitConflict, Message: message, Cause: cause}
}

// GetExitCode returns the exit code for err. Errors that are not an
// ExitError count as user errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}
