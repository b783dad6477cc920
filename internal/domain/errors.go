package domain

import "fmt"

// Error types for consistent error handling across the dashboard.

// ErrRequest indicates the admin API answered with a non-2xx status.
type ErrRequest struct {
	Path   string
	Status int
}

func (e *ErrRequest) Error() string {
	return fmt.Sprintf("admin API error %d on %s", e.Status, e.Path)
}

// ErrDecode indicates a 2xx response whose body was not the expected JSON.
type ErrDecode struct {
	Path string
	Err  error
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *ErrDecode) Unwrap() error {
	return e.Err
}

// ErrCancelled indicates no admin credential could be obtained.
type ErrCancelled struct {
	Reason string
}

func (e *ErrCancelled) Error() string {
	if e.Reason != "" {
		return "credential prompt cancelled: " + e.Reason
	}
	return "credential prompt cancelled"
}

// ErrExternalService indicates a transport failure talking to an external service.
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}
