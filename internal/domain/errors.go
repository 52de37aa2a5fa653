package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all tools.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotArray     = errors.New("top-level JSON value must be an array")
)

// InputError describes a fatal problem with an input document.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("input: %v", e.Err)
	}
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// NewInputError wraps err as an InputError for path. A nil err is reported
// as ErrInvalidInput.
func NewInputError(path string, err error) *InputError {
	if err == nil {
		err = ErrInvalidInput
	}
	return &InputError{Path: path, Err: err}
}
