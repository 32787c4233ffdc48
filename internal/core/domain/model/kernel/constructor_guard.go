package kernel

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created through
// their designated constructor functions. The guard maintains an internal flag
// that is only set when the object is built through a constructor; zero-value
// structs fail validation.
//
// Example usage:
//
//	var ErrCellNotConstructed = errors.New("Cell must be created via CellSet.Cell")
//
//	type Cell struct {
//	    label string
//	    guard ConstructorGuard
//	}
//
//	func (c Cell) Validate() error {
//	    return c.guard.Validate(ErrCellNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking an object as properly constructed.
// Call this in the constructor of domain objects so they can be distinguished
// from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed.
// Returns nil for constructed objects. For zero values it returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
