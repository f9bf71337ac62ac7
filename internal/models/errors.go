package models

import "fmt"

// AppError is an application error carrying the HTTP status it maps to.
// Handlers translate it into a JSON error response; anything that is not
// an AppError surfaces as a generic 500.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// BadRequestError reports malformed or missing input.
func BadRequestError(message string) *AppError {
	return &AppError{StatusCode: 400, Message: message}
}

// UnauthorizedError reports failed authentication.
func UnauthorizedError(message string) *AppError {
	return &AppError{StatusCode: 401, Message: message}
}

// ForbiddenError reports an authenticated but unauthorized request.
func ForbiddenError(message string) *AppError {
	return &AppError{StatusCode: 403, Message: message}
}

// NotFoundError reports an id that does not resolve.
func NotFoundError(message string) *AppError {
	return &AppError{StatusCode: 404, Message: message}
}

// ConflictError reports a deliberately surfaced unique-constraint
// violation, e.g. a duplicate username or tag.
func ConflictError(message string) *AppError {
	return &AppError{StatusCode: 409, Message: message}
}
