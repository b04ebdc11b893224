// Package error defines domain-specific errors for the Weight Tracker application.
package error

import "errors"

// Authentication domain errors. Identity itself is managed externally; the
// API only validates tokens and extracts the opaque user identifier.
var (
	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// Rate limiting (02XXXX)
	ErrCodeRateLimited AuthErrorCode = "AUTH-020003"
)
