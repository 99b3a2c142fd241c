package binding

import (
	"errors"
	"fmt"
)

// Sentinel errors for binding generation.
var (
	// ErrDuplicateFunction indicates two functions map to the same Go method.
	ErrDuplicateFunction = errors.New("duplicate function")

	// ErrInvalidName indicates a contract or function name that yields no Go identifier.
	ErrInvalidName = errors.New("invalid name")
)

// DuplicateFunctionError provides detail about colliding function names.
type DuplicateFunctionError struct {
	Contract string
	Function string
	Method   string
}

// Error implements the error interface.
func (e *DuplicateFunctionError) Error() string {
	return fmt.Sprintf("duplicate function in %s: %q (method %s) is declared more than once", e.Contract, e.Function, e.Method)
}

// Is implements errors.Is for DuplicateFunctionError.
func (e *DuplicateFunctionError) Is(target error) bool {
	return target == ErrDuplicateFunction
}

// Unwrap returns the underlying error for errors.Unwrap.
func (e *DuplicateFunctionError) Unwrap() error {
	return ErrDuplicateFunction
}
