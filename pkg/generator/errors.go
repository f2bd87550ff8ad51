package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType reports a descriptor no handler can generate. It is
	// the only fatal generation error.
	ErrUnsupportedType = errors.New("generator: unsupported type")

	// ErrInvalidConfig reports a Config that fails validation.
	ErrInvalidConfig = errors.New("generator: invalid config")
)

// UnsupportedTypeError carries the offending type and the field path it was
// found at.
type UnsupportedTypeError struct {
	Type  string
	Field string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrUnsupportedType, e.Type)
	}
	return fmt.Sprintf("%s: %s (field %q)", ErrUnsupportedType, e.Type, e.Field)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}
