package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classifying failures with errors.Is.
// Each sentinel corresponds to one error kind surfaced by the core:
// validation failures, missing objects, invariant conflicts, and
// storage-level faults.
var (
	ErrValueIsRequired = errors.New("value is required")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrObjectNotFound  = errors.New("object not found")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage failure")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValueIsRequiredError indicates a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates an error for a missing required value.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates an error for a missing required value
// with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value was present but malformed or out of
// the allowed set.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates an error for an invalid value.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates an error for an invalid value
// with an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates an operation referenced an object that does
// not exist in storage.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an error for a missing object.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an error for a missing object
// with an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ConflictError indicates a uniqueness or state invariant would be violated,
// such as a duplicate insert rejected by a database constraint.
type ConflictError struct {
	ParamName string
	Value     any
	Cause     error
}

// NewConflictError creates an error for an invariant conflict.
func NewConflictError(paramName string, value any) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value}
}

// NewConflictErrorWithCause creates an error for an invariant conflict
// with an underlying cause.
func NewConflictErrorWithCause(paramName string, value any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, value is: %v (cause: %s)",
			ErrConflict, e.ParamName, e.Value, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s %v", ErrConflict, e.ParamName, e.Value))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// StorageError indicates the backing store was unreachable or a transaction
// failed to commit. Any partially applied work has been rolled back before
// this error is surfaced.
type StorageError struct {
	Operation string
	Cause     error
}

// NewStorageError creates an error for a storage-level failure.
func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{Operation: operation, Cause: cause}
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrStorage, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrStorage, e.Operation))
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}
