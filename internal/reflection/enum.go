package reflection

import (
	"reflect"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// DefaultEnumNumber picks the value used for a synthesized protobuf enum:
// the first declared non-zero value, falling back to the first value.
func DefaultEnumNumber(ed protoreflect.EnumDescriptor) protoreflect.EnumNumber {
	values := ed.Values()
	if values.Len() == 0 {
		return 0
	}

	for i := 0; i < values.Len(); i++ {
		if n := values.Get(i).Number(); n != 0 {
			return n
		}
	}
	return values.Get(0).Number()
}

// ProtoEnumValue returns the default value of the generated protobuf enum
// type t. ok is false when t is not a protobuf enum.
func ProtoEnumValue(t reflect.Type) (v reflect.Value, ok bool) {
	if t.Kind() == reflect.Interface || !t.Implements(protoEnumType) {
		return reflect.Value{}, false
	}

	enum, ok := reflect.Zero(t).Interface().(protoreflect.Enum)
	if !ok {
		return reflect.Value{}, false
	}

	n := DefaultEnumNumber(enum.Descriptor())
	return reflect.ValueOf(n).Convert(t), true
}
