package dosing

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrNoPolicy is returned for insulins outside every dosing class.
	ErrNoPolicy = errors.New("no dosing policy for insulin class")
)

// ValidationError describes a patient input outside its declared range.
type ValidationError struct {
	Field  string
	Value  *float64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s=%g: %s", e.Field, *e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field string, v *float64, format string, args ...any) error {
	return &ValidationError{Field: field, Value: v, Reason: fmt.Sprintf(format, args...)}
}
