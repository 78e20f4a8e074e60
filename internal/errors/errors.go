package errors

import "fmt"

// ErrorCode represents a Herald error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrEmptyContent   ErrorCode = "EMPTY_CONTENT"   // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// HeraldError represents a structured error with code, status, and details.
type HeraldError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *HeraldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *HeraldError {
	return &HeraldError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when an edition cannot be found.
func NewNotFound(id string) *HeraldError {
	return &HeraldError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("edition not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewConflict creates a 409 error for invalid status transitions.
func NewConflict(msg string) *HeraldError {
	return &HeraldError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewEmptyContent creates a 422 error for approving an edition that has no
// rendered HTML.
func NewEmptyContent(id string) *HeraldError {
	return &HeraldError{
		Code:    ErrEmptyContent,
		Status:  422,
		Message: fmt.Sprintf("edition %s has no rendered content and cannot be approved", id),
		Details: map[string]any{"id": id},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *HeraldError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &HeraldError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a HeraldError with the given code.
func Is(err error, code ErrorCode) bool {
	if hErr, ok := err.(*HeraldError); ok {
		return hErr.Code == code
	}
	return false
}
