package errors

import (
	stderrors "errors"
	"fmt"
)

// ResultsError is the structured error type for resultsmcp.
// It provides rich context for error handling, logging, and user presentation.
type ResultsError struct {
	// Code is the unique error code (e.g., "ERR_601_TOURNAMENT_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Parse, Fetch, NotFound, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *ResultsError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ResultsError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with ResultsError.
func (e *ResultsError) Is(target error) bool {
	if t, ok := target.(*ResultsError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *ResultsError) WithDetail(key, value string) *ResultsError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *ResultsError) WithSuggestion(suggestion string) *ResultsError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ResultsError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *ResultsError {
	return &ResultsError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Newf creates a new ResultsError with a formatted message.
func Newf(code string, format string, args ...any) *ResultsError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a ResultsError from an existing error.
// The error's message becomes the ResultsError message.
func Wrap(code string, err error) *ResultsError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// CategoryOf returns the category of err, or CategoryInternal for
// errors that are not ResultsErrors.
func CategoryOf(err error) Category {
	var re *ResultsError
	if stderrors.As(err, &re) {
		return re.Category
	}
	return CategoryInternal
}

// IsNotFound reports whether err is any of the not-found errors.
func IsNotFound(err error) bool {
	return CategoryOf(err) == CategoryNotFound
}

// IsTournamentNotFound reports whether err is specifically a missing
// tournament record. Callers translate this case into a normal
// "not found" answer rather than a protocol failure.
func IsTournamentNotFound(err error) bool {
	var re *ResultsError
	if stderrors.As(err, &re) {
		return re.Code == ErrCodeTournamentNotFound
	}
	return false
}
