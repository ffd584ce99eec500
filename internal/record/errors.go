package record

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a recognized variant lacks a required key.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is returned when a key holds a value of the wrong JSON type.
	ErrInvalidField = errors.New("invalid field")

	// ErrUnsupportedType is returned when serializing a value outside the record variants.
	ErrUnsupportedType = errors.New("unsupported direct URL data type")
)

// FieldError reports a structural problem with one key of the descriptor.
type FieldError struct {
	Path   string // dotted key path, e.g. "vcs_info.commit_id"
	Reason string
	Err    error // ErrMissingField or ErrInvalidField
}

func (e *FieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: '%s' %s", e.Err, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: '%s'", e.Err, e.Path)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// SyntaxError reports input that is not valid JSON.
type SyntaxError struct {
	Source string // file path, or "<input>"
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Source, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError is returned by ToMap and CanonicalJSON for values outside
// the closed set of record variants. It always indicates a programming error.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cannot serialize unknown direct URL data of type %s", e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

func missing(path string) error {
	return &FieldError{Path: path, Err: ErrMissingField}
}

func invalid(path, reason string) error {
	return &FieldError{Path: path, Reason: reason, Err: ErrInvalidField}
}
