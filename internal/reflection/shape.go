package reflection

import (
	"reflect"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// Shape classifies a requested type into the resolution path used to
// synthesize it.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapePrimitive
	ShapeEnum
	ShapeArray
	ShapeSlice
	ShapeSeq
	ShapeSeq2
	ShapeChan
	ShapeMap
	ShapeInterface
	ShapePointer
	ShapeStruct
	ShapeFunc
)

var shapeNames = [...]string{
	ShapeInvalid:   "invalid",
	ShapePrimitive: "primitive",
	ShapeEnum:      "enum",
	ShapeArray:     "array",
	ShapeSlice:     "slice",
	ShapeSeq:       "seq",
	ShapeSeq2:      "seq2",
	ShapeChan:      "chan",
	ShapeMap:       "map",
	ShapeInterface: "interface",
	ShapePointer:   "pointer",
	ShapeStruct:    "struct",
	ShapeFunc:      "func",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// IsSequence reports whether values of this shape are synthesized by
// repeating a single element value.
func (s Shape) IsSequence() bool {
	switch s {
	case ShapeArray, ShapeSlice, ShapeSeq, ShapeChan:
		return true
	}
	return false
}

// Enum is the marker type under which the generic enum factory is registered.
type Enum struct{}

var (
	// EnumType is the override key consulted for enums without a
	// type-specific factory.
	EnumType = reflect.TypeFor[Enum]()

	protoEnumType = reflect.TypeFor[protoreflect.Enum]()
	boolType      = reflect.TypeFor[bool]()
)

// EnumSet reports whether a type has been declared as an enumeration.
type EnumSet interface {
	IsEnum(t reflect.Type) bool
}

// Classify returns the shape of t. Types implementing protoreflect.Enum and
// types reported by enums are classified as ShapeEnum.
func Classify(t reflect.Type, enums EnumSet) Shape {
	if t == nil {
		return ShapeInvalid
	}

	if IsEnum(t, enums) {
		return ShapeEnum
	}

	switch t.Kind() {
	case reflect.Array:
		return ShapeArray
	case reflect.Slice:
		return ShapeSlice
	case reflect.Chan:
		return ShapeChan
	case reflect.Map:
		return ShapeMap
	case reflect.Interface:
		return ShapeInterface
	case reflect.Pointer:
		return ShapePointer
	case reflect.Struct:
		return ShapeStruct
	case reflect.Func:
		switch yieldArity(t) {
		case 1:
			return ShapeSeq
		case 2:
			return ShapeSeq2
		}
		return ShapeFunc
	case reflect.UnsafePointer, reflect.Invalid:
		return ShapeInvalid
	}

	if IsPrimitive(t) {
		return ShapePrimitive
	}
	return ShapeInvalid
}

// IsEnum reports whether t is an enumeration, either declared through enums
// or generated by protoc.
func IsEnum(t reflect.Type, enums EnumSet) bool {
	if enums != nil && enums.IsEnum(t) {
		return true
	}
	return t.Kind() != reflect.Interface && t.Implements(protoEnumType)
}

// IsPrimitive reports whether t has a basic scalar kind.
func IsPrimitive(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.String:
		return true
	}
	return false
}

// yieldArity returns the number of values passed to the yield function of an
// iterator shaped func type (iter.Seq has 1, iter.Seq2 has 2), or 0.
func yieldArity(t reflect.Type) int {
	if t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return 0
	}

	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumOut() != 1 || yield.Out(0) != boolType || yield.IsVariadic() {
		return 0
	}

	switch n := yield.NumIn(); n {
	case 1, 2:
		return n
	}
	return 0
}

// ElemTypes returns the element types synthesized for a sequence or
// dictionary shaped type. For ShapeSeq2 both key and value are returned.
func ElemTypes(t reflect.Type, shape Shape) (key, elem reflect.Type) {
	switch shape {
	case ShapeArray, ShapeSlice, ShapeChan:
		return nil, t.Elem()
	case ShapeMap:
		return t.Key(), t.Elem()
	case ShapeSeq:
		return nil, t.In(0).In(0)
	case ShapeSeq2:
		yield := t.In(0)
		return yield.In(0), yield.In(1)
	}
	return nil, nil
}
