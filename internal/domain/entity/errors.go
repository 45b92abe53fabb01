package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is matched by every *ValidationError through errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError reports the first rule an article field breaks.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
