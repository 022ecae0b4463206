// Package apperror defines a centralized system for application-specific errors.
// Every error that crosses the HTTP boundary is an *AppError whose Type decides the
// status code, so handlers never inspect error strings to pick a response.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is a closed enumeration of application error categories.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// InvalidCredentialsError is a failed login. Unknown user and wrong password share it.
	InvalidCredentialsError
	// UnauthorizedError means the caller is not authenticated (missing, malformed, expired or invalid token).
	UnauthorizedError
	// ForbiddenError means the caller is authenticated but the policy disallows the operation.
	ForbiddenError
	// ConfigError represents a deployment misconfiguration, e.g. a missing signing secret.
	ConfigError
	// DuplicateKeyError is a uniqueness violation reported by a store.
	DuplicateKeyError
	// ValidationError represents a malformed resource payload
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// NotFoundError represents a resource not found error
	NotFoundError
	// DatabaseError represents an error originating from the database
	DatabaseError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
)

var typeNames = map[ErrorType]string{
	UnknownError:            "unknown",
	InvalidCredentialsError: "invalid_credentials",
	UnauthorizedError:       "unauthorized",
	ForbiddenError:          "forbidden",
	ConfigError:             "config",
	DuplicateKeyError:       "duplicate_key",
	ValidationError:         "validation",
	BadRequestError:         "bad_request",
	NotFoundError:           "not_found",
	DatabaseError:           "database",
	InternalError:           "internal",
	MigrationError:          "migration",
}

// String returns a stable name for logging.
func (t ErrorType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// AppError is a custom error type for the application.
// It allows wrapping an underlying error (`Err`) for debugging; only Message reaches clients.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case InvalidCredentialsError, UnauthorizedError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case DuplicateKeyError:
		return http.StatusConflict
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case ConfigError, DatabaseError, InternalError, MigrationError, UnknownError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// IsServerError reports whether the error is caused by the server rather than the client.
func (e *AppError) IsServerError() bool {
	return e.StatusCode() >= http.StatusInternalServerError
}

// NewAppError creates a new AppError. This is a generic constructor.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// Constructor functions for specific error types

// NewInvalidCredentialsError creates a new InvalidCredentialsError
func NewInvalidCredentialsError(message string, underlyingError error) *AppError {
	return NewAppError(InvalidCredentialsError, message, underlyingError)
}

// NewUnauthorizedError creates a new UnauthorizedError (not authenticated)
func NewUnauthorizedError(message string, underlyingError error) *AppError {
	return NewAppError(UnauthorizedError, message, underlyingError)
}

// NewForbiddenError creates a new ForbiddenError (authenticated, not permitted)
func NewForbiddenError(message string, underlyingError error) *AppError {
	return NewAppError(ForbiddenError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewDuplicateKeyError creates a new DuplicateKeyError
func NewDuplicateKeyError(message string, underlyingError error) *AppError {
	return NewAppError(DuplicateKeyError, message, underlyingError)
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// ErrorResponse is the body of every rejected request.
type ErrorResponse struct {
	Error string `json:"Error" example:"Not Authorized"`
}

// SuccessResponse is the body of requests that succeed without returning a resource.
type SuccessResponse struct {
	Success string `json:"Success" example:"Token created successfully"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for API responses.
// Server-side failures never expose their message detail.
func (e *AppError) ToResponse() ErrorResponse {
	if e.IsServerError() {
		return ErrorResponse{Error: "Internal server error"}
	}
	return ErrorResponse{Error: e.Message}
}

// FromError finds the first *AppError in err's chain.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func isType(err error, t ErrorType) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Type == t
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool { return isType(err, NotFoundError) }

// IsInvalidCredentials checks if an error is a failed login
func IsInvalidCredentials(err error) bool { return isType(err, InvalidCredentialsError) }

// IsUnauthorized checks if an error is an UnauthorizedError
func IsUnauthorized(err error) bool { return isType(err, UnauthorizedError) }

// IsForbidden checks if an error is a ForbiddenError
func IsForbidden(err error) bool { return isType(err, ForbiddenError) }

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool { return isType(err, ValidationError) }

// IsDuplicateKey checks if an error is a uniqueness violation
func IsDuplicateKey(err error) bool { return isType(err, DuplicateKeyError) }

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool { return isType(err, ConfigError) }
