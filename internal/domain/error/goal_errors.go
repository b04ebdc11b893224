// Package error defines domain-specific errors for the Weight Tracker application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrInvalidWeight is returned when a weight is zero or negative.
	ErrInvalidWeight = errors.New("weight must be greater than zero")

	// ErrEqualWeights is returned when the target weight equals the start weight,
	// leaving the goal direction undefined.
	ErrEqualWeights = errors.New("target weight must differ from start weight")

	// ErrInvalidDateRange is returned when the target date is not after the start date.
	ErrInvalidDateRange = errors.New("target date must be after start date")

	// ErrInvalidDate is returned when a date string cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrWeightOutOfRange is returned when an entry weight falls outside the goal bounds.
	ErrWeightOutOfRange = errors.New("weight is outside the goal range")
)

// GoalErrorCode defines error codes for goal validation errors.
// Format: WGT-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (03XXXX)
	ErrCodeInvalidWeight     GoalErrorCode = "WGT-030001"
	ErrCodeEqualWeights      GoalErrorCode = "WGT-030002"
	ErrCodeInvalidDateRange  GoalErrorCode = "WGT-030003"
	ErrCodeInvalidDate       GoalErrorCode = "WGT-030004"
	ErrCodeWeightOutOfRange  GoalErrorCode = "WGT-030005"
	ErrCodeMissingGoalFields GoalErrorCode = "WGT-030006"
)

// GoalError represents a goal validation error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
