package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeEmailTaken         = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeValidation         = "USR004"
	ErrCodeSamePassword       = "USR005"
	ErrCodeInvalidToken       = "USR006"
)

// Errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// UserError custom error type
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}

func NewEmailTakenError() *UserError {
	return &UserError{
		Code:    ErrCodeEmailTaken,
		Message: "Email is already registered",
		Err:     ErrEmailTaken,
	}
}

// NewInvalidCredentialsError covers both unknown email and wrong password so
// login failures do not reveal which one it was.
func NewInvalidCredentialsError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidCredentials,
		Message: "Invalid email or password",
		Err:     ErrInvalidCredentials,
	}
}

func NewValidationError(message string) *UserError {
	return &UserError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

func NewSamePasswordError() *UserError {
	return &UserError{
		Code:    ErrCodeSamePassword,
		Message: "New password must differ from the current one",
	}
}

func NewInvalidTokenError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidToken,
		Message: "Invalid or expired token",
		Err:     ErrInvalidToken,
	}
}
