package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MikeBarney88/golf-club-api/models"
)

var (
	// ErrNotFound is matched by every error reporting a missing member or tournament
	ErrNotFound = errors.New("not found")
	// ErrValidation is matched by every error reporting rejected input
	ErrValidation = errors.New("validation error")
)

// NotFoundError reports that the referenced row does not exist
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError lists the request fields that were rejected
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(fields ...models.FieldError) error {
	return &ValidationError{Fields: fields}
}

func memberNotFound(id int64) error {
	return &NotFoundError{Resource: "member", ID: id}
}

func tournamentNotFound(id int64) error {
	return &NotFoundError{Resource: "tournament", ID: id}
}

func duplicateEmailError(email string) error {
	return newValidationError(models.FieldError{
		Field:   "memberEmail",
		Message: fmt.Sprintf("is already registered (%s)", email),
	})
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFoundError checks if an error reports a missing row
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
