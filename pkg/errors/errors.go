package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is()
var (
	ErrNotFound            = errors.New("resource not found")
	ErrForbidden           = errors.New("forbidden")
	ErrValidation          = errors.New("validation error")
	ErrConfiguration       = errors.New("configuration error")
	ErrReauthRequired      = errors.New("reauthorization required")
	ErrUpstream            = errors.New("upstream service error")
	ErrInvalidState        = errors.New("invalid state")
	ErrConflict            = errors.New("resource already exists")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrCipherAuth          = errors.New("ciphertext authentication failed")
)

// AppError carries a machine-readable code alongside the wrapped cause.
type AppError struct {
	Code    string
	Message string
	Err     error
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

// Constructors
func NotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Err: ErrNotFound}
}

func Forbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Err: ErrForbidden}
}

func Validation(msg string) *AppError {
	return &AppError{Code: "VALIDATION", Message: msg, Err: ErrValidation}
}

func Configuration(msg string) *AppError {
	return &AppError{Code: "CONFIGURATION", Message: msg, Err: ErrConfiguration}
}

func ReauthRequired(msg string, cause error) *AppError {
	if cause == nil {
		return &AppError{Code: "REAUTH_REQUIRED", Message: msg, Err: ErrReauthRequired}
	}
	return &AppError{Code: "REAUTH_REQUIRED", Message: msg, Err: fmt.Errorf("%w: %w", ErrReauthRequired, cause)}
}

func Upstream(msg string, cause error) *AppError {
	if cause == nil {
		return &AppError{Code: "UPSTREAM", Message: msg, Err: ErrUpstream}
	}
	return &AppError{Code: "UPSTREAM", Message: msg, Err: fmt.Errorf("%w: %w", ErrUpstream, cause)}
}

func InvalidState(msg string) *AppError {
	return &AppError{Code: "INVALID_STATE", Message: msg, Err: ErrInvalidState}
}

func Conflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Err: ErrConflict}
}

func UnsupportedPlatform(platform string) *AppError {
	return &AppError{Code: "UNSUPPORTED_PLATFORM", Message: fmt.Sprintf("platform %q is not supported", platform), Err: ErrUnsupportedPlatform}
}

func CipherAuth(cause error) *AppError {
	if cause == nil {
		return &AppError{Code: "CIPHER_AUTH", Message: "decryption failed", Err: ErrCipherAuth}
	}
	return &AppError{Code: "CIPHER_AUTH", Message: "decryption failed", Err: fmt.Errorf("%w: %w", ErrCipherAuth, cause)}
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need to import both this package and stdlib errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
