package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeExportNotFound      = "CMP001"
	ErrCodeExportPending       = "CMP002"
	ErrCodeDeletionPending     = "CMP003"
	ErrCodeNoActiveRestriction = "CMP004"
	ErrCodeBreachNotFound      = "CMP005"
	ErrCodeValidation          = "CMP006"
	ErrCodeRequestNotFound     = "CMP007"
)

// Errors
var (
	ErrExportNotFound   = errors.New("export request not found")
	ErrDeletionNotFound = errors.New("deletion request not found")
	ErrNoRestriction    = errors.New("no active restriction")
	ErrBreachNotFound   = errors.New("breach report not found")
)

// ComplianceError custom error type
type ComplianceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ComplianceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ComplianceError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewExportNotFoundError() *ComplianceError {
	return &ComplianceError{
		Code:    ErrCodeExportNotFound,
		Message: "Export request not found",
		Err:     ErrExportNotFound,
	}
}

func NewExportPendingError() *ComplianceError {
	return &ComplianceError{
		Code:    ErrCodeExportPending,
		Message: "An export is already being prepared",
	}
}

func NewDeletionPendingError() *ComplianceError {
	return &ComplianceError{
		Code:    ErrCodeDeletionPending,
		Message: "An account deletion request is already in progress",
	}
}

func NewNoActiveRestrictionError() *ComplianceError {
	return &ComplianceError{
		Code:    ErrCodeNoActiveRestriction,
		Message: "No active processing restriction",
		Err:     ErrNoRestriction,
	}
}

func NewBreachNotFoundError() *ComplianceError {
	return &ComplianceError{
		Code:    ErrCodeBreachNotFound,
		Message: "Breach report not found",
		Err:     ErrBreachNotFound,
	}
}

func NewValidationError(message string) *ComplianceError {
	return &ComplianceError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewRequestNotFoundError() *ComplianceError {
	return &ComplianceError{
		Code:    ErrCodeRequestNotFound,
		Message: "Request not found",
		Err:     ErrDeletionNotFound,
	}
}
