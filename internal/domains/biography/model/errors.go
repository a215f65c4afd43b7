package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBiographyNotFound = "BIO001"
	ErrCodeChapterNotFound   = "BIO002"
	ErrCodeInvalidType       = "BIO003"
	ErrCodeNotChapterBased   = "BIO004"
	ErrCodeInvalidDateRange  = "BIO005"
	ErrCodeValidation        = "BIO006"
	ErrCodeUnauthorized      = "BIO007"
	ErrCodeRestricted        = "BIO008"
)

// Errors
var (
	ErrBiographyNotFound = errors.New("biography not found")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrNotChapterBased   = errors.New("biography is not chapter based")
	ErrInvalidDateRange  = errors.New("date_from must not be after date_to")
	ErrUnauthorized      = errors.New("unauthorized to perform this action")
	ErrRestricted        = errors.New("processing restricted for this account")
)

// BiographyError custom error type
type BiographyError struct {
	Code    string
	Message string
	Err     error
}

func (e *BiographyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BiographyError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBiographyNotFoundError() *BiographyError {
	return &BiographyError{
		Code:    ErrCodeBiographyNotFound,
		Message: "Biography not found",
		Err:     ErrBiographyNotFound,
	}
}

func NewChapterNotFoundError() *BiographyError {
	return &BiographyError{
		Code:    ErrCodeChapterNotFound,
		Message: "Chapter not found",
		Err:     ErrChapterNotFound,
	}
}

func NewNotChapterBasedError() *BiographyError {
	return &BiographyError{
		Code:    ErrCodeNotChapterBased,
		Message: "Chapters can only be added to a chapters-type biography",
		Err:     ErrNotChapterBased,
	}
}

func NewInvalidDateRangeError() *BiographyError {
	return &BiographyError{
		Code:    ErrCodeInvalidDateRange,
		Message: "Chapter start date must not be after its end date",
		Err:     ErrInvalidDateRange,
	}
}

func NewValidationError(message string) *BiographyError {
	return &BiographyError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError() *BiographyError {
	return &BiographyError{
		Code:    ErrCodeUnauthorized,
		Message: "You do not have permission to perform this action",
		Err:     ErrUnauthorized,
	}
}

func NewProcessingRestrictedError() *BiographyError {
	return &BiographyError{
		Code:    ErrCodeRestricted,
		Message: "Content changes are blocked while a processing restriction is active",
		Err:     ErrRestricted,
	}
}
