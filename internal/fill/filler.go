// Package fill populates freshly constructed instances with synthesized
// member values.
package fill

import (
	"reflect"

	"google.golang.org/protobuf/proto"
)

// Resolver synthesizes a value for a member type.
type Resolver interface {
	Resolve(t reflect.Type) (reflect.Value, error)
}

// Filler assigns synthesized values to the zero-valued members of an
// instance. Values already set by a constructor are left untouched.
//
// Structs (addressable or behind a pointer) get every member filled, the
// pointee of any other pointer is filled as a whole, empty maps get a single
// entry and protobuf messages are filled through protoreflect.
type Filler struct {
	resolver     Resolver
	members      *Members
	sequenceSize int

	// messages currently being filled; see fillMessage.
	active map[proto.Message]struct{}
}

// New creates a filler that resolves member values through r. sequenceSize
// is the number of elements appended to repeated protobuf fields.
func New(r Resolver, members *Members, sequenceSize int) *Filler {
	if members == nil {
		members = NewMembers()
	}
	return &Filler{
		resolver:     r,
		members:      members,
		sequenceSize: sequenceSize,
		active:       make(map[proto.Message]struct{}),
	}
}

// Fill populates instance.
func (f *Filler) Fill(instance reflect.Value) error {
	if !instance.IsValid() {
		return nil
	}

	if msg, ok := asMessage(instance); ok {
		return f.fillMessage(msg)
	}

	switch instance.Kind() {
	case reflect.Pointer:
		if instance.IsNil() {
			return nil
		}
		return f.fillPointee(instance.Elem())
	case reflect.Struct:
		return f.fillStruct(instance)
	case reflect.Map:
		return f.fillMap(instance)
	}
	return nil
}

func (f *Filler) fillPointee(target reflect.Value) error {
	if target.Kind() == reflect.Struct {
		return f.fillStruct(target)
	}
	return f.assign(target)
}

func (f *Filler) fillStruct(v reflect.Value) error {
	return f.members.ForEach(v.Type(), func(m Member) error {
		return f.assign(v.Field(m.Index))
	})
}

// assign resolves a value for target when it is settable and still zero.
func (f *Filler) assign(target reflect.Value) error {
	if !target.CanSet() || !target.IsZero() {
		return nil
	}

	resolved, err := f.resolver.Resolve(target.Type())
	if err != nil {
		return err
	}

	if resolved.IsValid() && resolved.Type().AssignableTo(target.Type()) {
		target.Set(resolved)
	}
	return nil
}

func (f *Filler) fillMap(m reflect.Value) error {
	if m.IsNil() || m.Len() > 0 {
		return nil
	}

	t := m.Type()
	key, err := f.resolver.Resolve(t.Key())
	if err != nil {
		return err
	}

	if !key.IsValid() || !hashable(key) {
		return nil
	}

	elem, err := f.resolver.Resolve(t.Elem())
	if err != nil {
		return err
	}

	if elem.IsValid() {
		m.SetMapIndex(key, elem)
	}
	return nil
}

// hashable reports whether v can be used as a map key without panicking.
func hashable(v reflect.Value) bool {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return true
		}
		return v.Elem().Type().Comparable()
	}
	return v.Type().Comparable()
}
