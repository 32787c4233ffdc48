// Package guard provides a lightweight defensive pattern that ensures
// commands, queries, and value objects are only created through their
// designated constructor functions. Embedding a ConstructorGuard in a struct
// makes zero-value instances detectable, so validation can reject objects
// that bypassed construction.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller supplies
// a nil validation error for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether its enclosing struct was built through a
// constructor. The zero value always fails validation.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// For zero-value objects it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
