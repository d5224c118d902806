package reflection

import "reflect"

// TypeKey identifies a requested type in the instance cache and the
// in-progress set. reflect.Type identity already separates distinct generic
// instantiations, so List[int] and List[string] never share a key.
type TypeKey struct {
	Type reflect.Type

	// Sequence keys guard element synthesis of slices, iterators and
	// channels. They never collide with construction keys of the same type.
	Sequence bool
}

// KeyOf returns the construction key of t.
func KeyOf(t reflect.Type) TypeKey {
	return TypeKey{Type: t}
}

// SequenceKeyOf returns the sequence synthesis key of t.
func SequenceKeyOf(t reflect.Type) TypeKey {
	return TypeKey{Type: t, Sequence: true}
}

func (k TypeKey) String() string {
	if k.Sequence {
		return "seq:" + FormatType(k.Type)
	}
	return FormatType(k.Type)
}
