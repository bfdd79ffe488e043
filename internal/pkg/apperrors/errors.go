package apperrors

import "errors"

// Input errors
var (
	ErrInputNotFound   = errors.New("input file not found")
	ErrInputPermission = errors.New("input file permission denied")
	ErrInputRead       = errors.New("failed to read input")
)

// Output errors
var (
	ErrOutputPermission = errors.New("output file permission denied")
	ErrOutputWrite      = errors.New("failed to write output")
)

// Configuration errors
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUsage         = errors.New("invalid usage")
)

// Record errors. These never abort a run; the extractor drops the record.
var (
	ErrMissingBirthDate = errors.New("birth date line missing")
	ErrInvalidBirthDate = errors.New("invalid birth date")
)

// Process exit codes
const (
	ExitOK            = 0
	ExitInternal      = 1
	ExitUsage         = 2
	ExitInputNotFound = 3
	ExitPermission    = 4
	ExitIO            = 5
)

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// ExitCode maps an error returned by a run onto the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case Is(err, ErrUsage, ErrInvalidConfig):
		return ExitUsage
	case errors.Is(err, ErrInputNotFound):
		return ExitInputNotFound
	case Is(err, ErrInputPermission, ErrOutputPermission):
		return ExitPermission
	case Is(err, ErrInputRead, ErrOutputWrite):
		return ExitIO
	default:
		return ExitInternal
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
