package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeMediaNotFound     = "MED001"
	ErrCodeInvalidCollection = "MED002"
	ErrCodeInvalidFile       = "MED003"
	ErrCodeFileTooLarge      = "MED004"
	ErrCodeUnauthorized      = "MED005"
	ErrCodeOwnerNotFound     = "MED006"
	ErrCodeValidation        = "MED007"
)

// Errors
var (
	ErrMediaNotFound = errors.New("media not found")
	ErrOwnerNotFound = errors.New("owning entity not found")
	ErrUnauthorized  = errors.New("unauthorized to perform this action")
)

// MediaError custom error type
type MediaError struct {
	Code    string
	Message string
	Err     error
}

func (e *MediaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewMediaNotFoundError() *MediaError {
	return &MediaError{
		Code:    ErrCodeMediaNotFound,
		Message: "Media not found",
		Err:     ErrMediaNotFound,
	}
}

func NewInvalidCollectionError(message string) *MediaError {
	return &MediaError{
		Code:    ErrCodeInvalidCollection,
		Message: message,
	}
}

func NewInvalidFileError(reason string) *MediaError {
	return &MediaError{
		Code:    ErrCodeInvalidFile,
		Message: fmt.Sprintf("Invalid file: %s", reason),
	}
}

func NewFileTooLargeError() *MediaError {
	return &MediaError{
		Code:    ErrCodeFileTooLarge,
		Message: fmt.Sprintf("File exceeds the %dMB upload limit", MaxUploadSize/(1024*1024)),
	}
}

func NewUnauthorizedError() *MediaError {
	return &MediaError{
		Code:    ErrCodeUnauthorized,
		Message: "You do not have permission to perform this action",
		Err:     ErrUnauthorized,
	}
}

func NewValidationError(message string) *MediaError {
	return &MediaError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewOwnerNotFoundError() *MediaError {
	return &MediaError{
		Code:    ErrCodeOwnerNotFound,
		Message: "Owning entity not found",
		Err:     ErrOwnerNotFound,
	}
}
