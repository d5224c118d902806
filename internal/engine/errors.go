package engine

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/junioryono/auto/internal/reflection"
)

// ErrTypeNil is returned when a nil reflect.Type is requested.
var ErrTypeNil = errors.New("type cannot be nil")

var _ error = TypeMismatchError{}

// TypeMismatchError indicates a collaborator produced a value that cannot
// stand in for the requested type.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "override factory", "polymorphic builder"
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context,
		reflection.FormatType(e.Expected), reflection.FormatType(e.Actual))
}

// fit adapts v to type t. An invalid v becomes the zero value of t.
func fit(v reflect.Value, t reflect.Type, context string) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(t), nil
	}

	vt := v.Type()
	switch {
	case vt == t:
		return v, nil
	case t.Kind() == reflect.Interface && vt.Implements(t):
		iv := reflect.New(t).Elem()
		iv.Set(v)
		return iv, nil
	case vt.Kind() == t.Kind() && vt.ConvertibleTo(t):
		return v.Convert(t), nil
	}

	return reflect.Value{}, TypeMismatchError{Expected: t, Actual: vt, Context: context}
}
