package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrConstructorNil                 = errors.New("constructor cannot be nil")
	ErrConstructorNotFunction         = errors.New("constructor must be a function")
	ErrConstructorNoReturn            = errors.New("constructor must return a value")
	ErrConstructorTooManyReturns      = errors.New("constructor can return at most 2 values")
	ErrConstructorInvalidSecondReturn = errors.New("second return value must be error")
	ErrConstructorReturnedNil         = errors.New("constructor returned nil")
)

var (
	_ error = ConstructorInvocationError{}
	_ error = ConstructorPanicError{}
)

// ConstructorInvocationError for constructor call failures
type ConstructorInvocationError struct {
	Constructor reflect.Type
	Parameters  []reflect.Type
	Cause       error
}

func (e ConstructorInvocationError) Error() string {
	paramStrs := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		paramStrs[i] = FormatType(p)
	}
	return fmt.Sprintf("failed to invoke %s with parameters [%s]: %v",
		FormatType(e.Constructor), strings.Join(paramStrs, ", "), e.Cause)
}

func (e ConstructorInvocationError) Unwrap() error {
	return e.Cause
}

// ConstructorPanicError indicates a constructor panicked during invocation.
// It captures the panic value and stack trace for debugging.
type ConstructorPanicError struct {
	Constructor reflect.Type
	Panic       any
	Stack       []byte
}

func (e ConstructorPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("constructor %s panicked: %v", FormatType(e.Constructor), e.Panic))

	if len(e.Stack) > 0 {
		b.WriteString("\n\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}
