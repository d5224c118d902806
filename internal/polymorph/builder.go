// Package polymorph produces values for interface types.
//
// Go cannot create new method sets at runtime, so an interface is satisfied
// by a concrete type: an explicit binding wins, otherwise the first
// registered constructor result implementing the interface is used. The
// concrete value itself is synthesized through the resolver.
package polymorph

import (
	"fmt"
	"reflect"
)

// Resolver synthesizes the concrete implementation.
type Resolver interface {
	Resolve(t reflect.Type) (reflect.Value, error)
}

// Builder resolves interface types to concrete implementations.
type Builder struct {
	resolver   Resolver
	bindings   map[reflect.Type]reflect.Type
	candidates []reflect.Type
}

// New creates a builder. bindings maps interface types to the concrete types
// implementing them; candidates lists types that may be picked for unbound
// interfaces, in priority order.
func New(r Resolver, bindings map[reflect.Type]reflect.Type, candidates []reflect.Type) *Builder {
	return &Builder{
		resolver:   r,
		bindings:   bindings,
		candidates: candidates,
	}
}

// Build returns a value of interface type t. When no implementation is known
// the nil interface value is returned.
func (b *Builder) Build(t reflect.Type) (reflect.Value, error) {
	if t.Kind() != reflect.Interface {
		return reflect.Value{}, fmt.Errorf("%v is not an interface type", t)
	}

	impl := b.Implementation(t)
	if impl == nil {
		return reflect.Zero(t), nil
	}

	v, err := b.resolver.Resolve(impl)
	if err != nil {
		return reflect.Value{}, err
	}

	if !v.IsValid() || !v.Type().Implements(t) || isNil(v) {
		return reflect.Zero(t), nil
	}

	iv := reflect.New(t).Elem()
	iv.Set(v)
	return iv, nil
}

// Implementation returns the concrete type used for interface t, or nil.
// Empty interfaces are only satisfied through explicit bindings.
func (b *Builder) Implementation(t reflect.Type) reflect.Type {
	if impl, ok := b.bindings[t]; ok {
		return impl
	}

	if t.NumMethod() == 0 {
		return nil
	}

	for _, c := range b.candidates {
		if c.Kind() != reflect.Interface && c.Implements(t) {
			return c
		}
	}
	return nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	}
	return false
}
