package auto

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/junioryono/auto/internal/engine"
	"github.com/junioryono/auto/internal/reflection"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================

var (
	// Request errors.
	ErrTypeNil = engine.ErrTypeNil

	// Constructor registration errors.
	ErrConstructorNil                 = reflection.ErrConstructorNil
	ErrConstructorNotFunction         = reflection.ErrConstructorNotFunction
	ErrConstructorNoReturn            = reflection.ErrConstructorNoReturn
	ErrConstructorTooManyReturns      = reflection.ErrConstructorTooManyReturns
	ErrConstructorInvalidSecondReturn = reflection.ErrConstructorInvalidSecondReturn
	ErrConstructorReturnedNil         = reflection.ErrConstructorReturnedNil

	// Configuration errors.
	ErrFactoryNil          = errors.New("factory cannot be nil")
	ErrInvalidSequenceSize = errors.New("sequence size cannot be negative")
	ErrNotInterface        = errors.New("binding target must be an interface type")
	ErrNotImplemented      = errors.New("type does not implement interface")
	ErrEnumValuesEmpty     = errors.New("enum must declare at least one value")
	ErrUnknownValueType    = errors.New("unknown value type")
)

var (
	_ error = RegistrationError{}
	_ error = TypeMismatchError{}
	_ error = ConstructorInvocationError{}
	_ error = ConstructorPanicError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// TypeMismatchError indicates an override factory or polymorphic builder
// returned a value that cannot stand in for the requested type.
type TypeMismatchError = engine.TypeMismatchError

// ConstructorInvocationError describes a constructor that returned an error
// or a nil value. It never reaches callers of CreateObject; construction
// failures fall back to the zero value and are logged at debug level.
type ConstructorInvocationError = reflection.ConstructorInvocationError

// ConstructorPanicError describes a constructor that panicked. Like
// ConstructorInvocationError it is only logged.
type ConstructorPanicError = reflection.ConstructorPanicError

// RegistrationError wraps errors raised while configuring overrides,
// constructors, bindings and enums.
type RegistrationError struct {
	Type reflect.Type
	// Operation is one of "register", "register constructor", "bind",
	// "register enum", "set sequence size", "load yaml", "load env" or
	// "use dig container".
	Operation string
	Cause     error
}

func (e RegistrationError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("failed to %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, formatType(e.Type), e.Cause)
}

func (e RegistrationError) Unwrap() error {
	return e.Cause
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	return reflection.FormatType(t)
}
