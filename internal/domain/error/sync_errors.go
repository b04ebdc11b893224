// Package error defines domain-specific errors for the Weight Tracker application.
package error

import "errors"

// Synchronization domain errors.
var (
	// ErrUnauthenticated is returned when an operation is attempted with no active user.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrStoreSubscriptionFailed is returned when the live subscription to the store fails.
	ErrStoreSubscriptionFailed = errors.New("store subscription failed")

	// ErrStoreReadFailed is returned when a one-shot read from the store fails.
	ErrStoreReadFailed = errors.New("store read failed")

	// ErrStoreWriteFailed is returned when a one-shot write to the store fails.
	ErrStoreWriteFailed = errors.New("store write failed")
)

// SyncErrorCode defines error codes for synchronization errors.
// Format: WGT-XXYYYY where XX is category and YYYY is specific error.
type SyncErrorCode string

const (
	// Precondition errors (01XXXX)
	ErrCodeUnauthenticated SyncErrorCode = "WGT-010001"

	// Store errors (02XXXX)
	ErrCodeSubscriptionFailed SyncErrorCode = "WGT-020001"
	ErrCodeReadFailed         SyncErrorCode = "WGT-020002"
	ErrCodeWriteFailed        SyncErrorCode = "WGT-020003"
)

// SyncError represents a synchronization error with code and message.
type SyncError struct {
	Code    SyncErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError with the given code and message.
func NewSyncError(code SyncErrorCode, message string, err error) *SyncError {
	return &SyncError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
