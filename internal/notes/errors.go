package notes

import (
	"errors"
	"fmt"
)

// EmptyFieldMessage is reported when a note is saved without a title or body.
const EmptyFieldMessage = "Oops, you left something empty ..."

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrInvalidInput) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// validate checks the fields a save requires.
func validate(title, body string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if body == "" {
		return &ValidationError{Field: "body", Message: "cannot be empty"}
	}
	return nil
}
