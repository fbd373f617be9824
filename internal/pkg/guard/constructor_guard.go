// Package guard provides the constructor-guard pattern used by domain value
// objects and aggregates. A zero-value guard marks an object that bypassed its
// constructor, letting Validate methods reject improperly built instances.
package guard

import "errors"

// ErrNotConstructed is the default error returned when validating a zero-value guard
// and no custom error is supplied.
var ErrNotConstructed = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value is invalid; embed a guard and initialize it with
// NewConstructorGuard inside the constructor.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a properly constructed guard.
// For a zero-value guard it returns notConstructed, or ErrNotConstructed
// when notConstructed is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed == nil {
		return ErrNotConstructed
	}
	return notConstructed
}
