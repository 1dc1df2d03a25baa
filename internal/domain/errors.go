package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError marks caller mistakes that map to a 400 response.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return ValidationError(fmt.Sprintf(format, args...))
}
