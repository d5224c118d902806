package reflection

import (
	"go/token"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
)

var errType = reflect.TypeFor[error]()

// Visibility splits constructors into the public set, tried first, and the
// non-public set, tried when no public constructor is eligible.
type Visibility int

const (
	Public Visibility = iota
	NonPublic
)

func (v Visibility) String() string {
	if v == NonPublic {
		return "non-public"
	}
	return "public"
}

// Constructor is an analyzed constructor function: func(args...) T or
// func(args...) (T, error).
type Constructor struct {
	Name           string
	Value          reflect.Value
	Type           reflect.Type
	Result         reflect.Type
	Parameters     []reflect.Type
	HasErrorReturn bool
	Visibility     Visibility
}

// Analyze validates fn and extracts its result and parameter types. The
// visibility is derived from the function name: exported functions and
// anonymous closures are public, unexported functions are not.
func Analyze(fn any) (*Constructor, error) {
	if fn == nil {
		return nil, ErrConstructorNil
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()
	if typ.Kind() != reflect.Func {
		return nil, ErrConstructorNotFunction
	}

	if val.IsNil() {
		return nil, ErrConstructorNil
	}

	switch typ.NumOut() {
	case 0:
		return nil, ErrConstructorNoReturn
	case 1:
	case 2:
		if typ.Out(1) != errType {
			return nil, ErrConstructorInvalidSecondReturn
		}
	default:
		return nil, ErrConstructorTooManyReturns
	}

	ctor := &Constructor{
		Name:           funcName(val),
		Value:          val,
		Type:           typ,
		Result:         typ.Out(0),
		Parameters:     make([]reflect.Type, typ.NumIn()),
		HasErrorReturn: typ.NumOut() == 2,
	}

	for i := range ctor.Parameters {
		ctor.Parameters[i] = typ.In(i)
	}

	ctor.Visibility = visibilityOf(ctor.Name)
	return ctor, nil
}

// Weight ranks a constructor by how expensive its arguments are to
// synthesize. Parameterless constructors always win.
func (c *Constructor) Weight() int {
	if len(c.Parameters) == 0 {
		return -1
	}

	weight := 0
	for _, p := range c.Parameters {
		if !IsPrimitive(p) {
			weight++
		}
	}
	return weight
}

// Eligible reports whether c can build t without immediately re-entering the
// construction of t or synthesizing raw pointer-sized handles.
func (c *Constructor) Eligible(t reflect.Type) bool {
	for _, p := range c.Parameters {
		if p == t {
			return false
		}

		switch p.Kind() {
		case reflect.Uintptr, reflect.UnsafePointer:
			return false
		}
	}
	return true
}

// Invoke calls the constructor. Panics, returned errors and nil results are
// reported as errors.
func (c *Constructor) Invoke(args []reflect.Value) (result reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = reflect.Value{}
			err = ConstructorPanicError{
				Constructor: c.Type,
				Panic:       r,
				Stack:       debug.Stack(),
			}
		}
	}()

	var out []reflect.Value
	if c.Type.IsVariadic() {
		out = c.Value.CallSlice(args)
	} else {
		out = c.Value.Call(args)
	}

	if c.HasErrorReturn && !out[1].IsNil() {
		return reflect.Value{}, ConstructorInvocationError{
			Constructor: c.Type,
			Parameters:  c.Parameters,
			Cause:       out[1].Interface().(error),
		}
	}

	result = out[0]
	switch result.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if result.IsNil() {
			return reflect.Value{}, ConstructorInvocationError{
				Constructor: c.Type,
				Parameters:  c.Parameters,
				Cause:       ErrConstructorReturnedNil,
			}
		}
	}

	return result, nil
}

// Select filters candidates for building t and returns the one with the
// lowest weight. Ties keep registration order. It returns nil when no
// candidate is eligible.
func Select(candidates []*Constructor, t reflect.Type) *Constructor {
	var best *Constructor
	bestWeight := 0

	for _, c := range candidates {
		if !c.Eligible(t) {
			continue
		}

		if w := c.Weight(); best == nil || w < bestWeight {
			best, bestWeight = c, w
		}
	}

	return best
}

func funcName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return ""
	}
	return f.Name()
}

// visibilityOf inspects a runtime function name such as
// "github.com/x/pkg.NewThing", "github.com/x/pkg.(*T).New-fm" or
// "github.com/x/pkg.TestThing.func1".
func visibilityOf(name string) Visibility {
	if name == "" {
		return Public
	}

	name = strings.ReplaceAll(name, "[...]", "")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return Public
	}

	last := strings.TrimSuffix(parts[len(parts)-1], "-fm")
	if isClosureName(last) {
		return Public
	}

	if token.IsExported(last) {
		return Public
	}
	return NonPublic
}

func isClosureName(s string) bool {
	s = strings.TrimPrefix(s, "func")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
