// Package guard provides a defensive programming pattern that ensures value objects,
// commands, and queries are only created through their designated constructor functions.
// Embedding a ConstructorGuard in a struct makes zero-value instances detectable,
// so validation can reject objects that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard maintains an internal flag that is only set when the object is
// created through the proper constructor function. Any attempt to use a zero-value
// struct fails validation.
//
// Example usage:
//
//	type RecordCashCollectionCommand struct {
//	    orderID kernel.UUID
//	    amount  kernel.Money
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewRecordCashCollectionCommand(...) (RecordCashCollectionCommand, error) {
//	    return RecordCashCollectionCommand{
//	        ...,
//	        guard: guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c RecordCashCollectionCommand) Validate() error {
//	    return c.guard.Validate(ErrCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
// Call it in the constructor of domain objects so they can be distinguished from
// zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its constructor.
// Returns nil for properly constructed objects. For zero values it returns the
// provided validation error, or ErrDefaultConstructorGuard when that error is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
