package contract

import (
	"errors"
	"fmt"
)

// Sentinel errors for contract runtime operations.
var (
	// ErrLookup indicates the requested function is not in the contract interface.
	ErrLookup = errors.New("function not found")

	// ErrConversion indicates an argument does not fit its declared parameter.
	ErrConversion = errors.New("argument conversion failed")

	// ErrStorage indicates the node reported an error for a storage read.
	ErrStorage = errors.New("storage read failed")

	// ErrSubmission indicates a transport failure talking to a node.
	ErrSubmission = errors.New("submission failed")
)

// LookupError provides detail about a missing function.
type LookupError struct {
	Function string
	CodeHash string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("function not found: %s (contract %s)", e.Function, e.CodeHash)
}

// Is implements errors.Is for LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// Unwrap returns the underlying error for errors.Unwrap.
func (e *LookupError) Unwrap() error {
	return ErrLookup
}

// ConversionError provides detail about an argument that could not be
// converted to its parameter kind.
type ConversionError struct {
	Function string
	Param    string
	Index    int
	Reason   string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("argument conversion failed: %s: %s", e.Function, e.Reason)
	}
	return fmt.Sprintf("argument conversion failed: %s: parameter #%d %q: %s", e.Function, e.Index, e.Param, e.Reason)
}

// Is implements errors.Is for ConversionError.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// Unwrap returns the underlying error for errors.Unwrap.
func (e *ConversionError) Unwrap() error {
	return ErrConversion
}

// StorageError carries the error code and description reported by the node.
type StorageError struct {
	Code int64
	Desc string
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to get storage (error code: %d, msg: %s)", e.Code, e.Desc)
}

// Is implements errors.Is for StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// Unwrap returns the underlying error for errors.Unwrap.
func (e *StorageError) Unwrap() error {
	return ErrStorage
}

// SubmissionError wraps a transport failure of a network client.
type SubmissionError struct {
	Op       string
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Endpoint, e.Err)
}

// Is implements errors.Is for SubmissionError.
func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmission
}

// Unwrap returns the transport error.
func (e *SubmissionError) Unwrap() error {
	return e.Err
}
