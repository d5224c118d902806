package reflection

import "reflect"

// Uninitialized allocates a value of t without running any constructor.
// Reference kinds come back non-nil: pointers point at a zero value, maps
// and slices are empty, channels are unbuffered and funcs are stubs that
// return zero values. Every other kind is an addressable zero value.
func Uninitialized(t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Pointer:
		return reflect.New(t.Elem())
	case reflect.Map:
		return reflect.MakeMap(t)
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0)
	case reflect.Chan:
		return makeChan(t, 0)
	case reflect.Func:
		return reflect.MakeFunc(t, zeroResults(t))
	case reflect.Interface:
		return reflect.Zero(t)
	default:
		return reflect.New(t).Elem()
	}
}

// Addressable returns v itself when its fields can be set, otherwise an
// addressable copy of it.
func Addressable(v reflect.Value) reflect.Value {
	if !v.IsValid() || v.CanSet() {
		return v
	}

	switch v.Kind() {
	case reflect.Struct, reflect.Array:
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		return cp
	}
	return v
}

// makeChan creates a channel of type t. Directional channel types are built
// bidirectionally and then converted.
func makeChan(t reflect.Type, buffer int) reflect.Value {
	if t.ChanDir() == reflect.BothDir {
		return reflect.MakeChan(t, buffer)
	}
	return reflect.MakeChan(reflect.ChanOf(reflect.BothDir, t.Elem()), buffer).Convert(t)
}

func zeroResults(t reflect.Type) func([]reflect.Value) []reflect.Value {
	out := make([]reflect.Value, t.NumOut())
	for i := range out {
		out[i] = reflect.Zero(t.Out(i))
	}
	return func([]reflect.Value) []reflect.Value {
		return out
	}
}
