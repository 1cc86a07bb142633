package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Gateway errors
	ErrNetwork            = fmt.Errorf("network request failed")
	ErrTimeout            = fmt.Errorf("request timed out")
	ErrHTTPStatus         = fmt.Errorf("unexpected HTTP status")
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrImageNotFound      = fmt.Errorf("image not found")

	// Workflow errors
	ErrPrecondition         = fmt.Errorf("precondition not met")
	ErrConcurrentSubmission = fmt.Errorf("a transfer is already in progress")
	ErrValidation           = fmt.Errorf("invalid parameter")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// HTTPError records a non-2xx response from the backend.
//
// Matches [ErrHTTPStatus] under [errors.Is] so callers can branch on the
// error kind without losing the status code.
type HTTPError struct {
	Status  int
	Method  string
	Path    string
	Message string // Backend-provided message, when the body carried one
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTPStatus
}
