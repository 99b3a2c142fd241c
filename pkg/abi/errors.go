package abi

import (
	"errors"
	"fmt"
)

// ErrParse indicates an interface document could not be parsed.
var ErrParse = errors.New("invalid interface document")

// ParseError provides detail about a rejected interface document.
type ParseError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid interface document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid interface document: %s", e.Reason)
}

// Is implements errors.Is for ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Unwrap returns the underlying decode error, if any, otherwise ErrParse.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}
