package auto

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/junioryono/auto/internal/reflection"
)

var (
	stringType   = reflect.TypeFor[string]()
	uuidType     = reflect.TypeFor[uuid.UUID]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	contextType  = reflect.TypeFor[context.Context]()
)

// defaultFactory returns the built-in factory for t. Callers hold c.mu.
func (c *Configuration) defaultFactory(t reflect.Type) (Factory, bool) {
	switch t {
	case stringType:
		return c.newString, true
	case uuidType:
		return newUUID, true
	case timeType:
		return newTime, true
	case durationType:
		return newDuration, true
	case contextType:
		return newContext, true
	case EnumType:
		return c.newEnum, true
	}

	// Named string types share the string factory unless declared as enums.
	if _, isEnum := c.enums[t]; isEnum {
		return nil, false
	}
	if t.Kind() == reflect.String {
		return c.newString, true
	}
	return nil, false
}

// scalarFactory returns the factory for booleans and numbers, named or not,
// excluding enums. Callers hold c.mu.
func (c *Configuration) scalarFactory(t reflect.Type) (Factory, bool) {
	if _, isEnum := c.enums[t]; isEnum {
		return nil, false
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		if reflection.IsEnum(t, nil) {
			return nil, false
		}
		return newScalar, true
	}
	return nil, false
}

// newScalar returns true for booleans and 1 for every numeric kind.
func newScalar(t reflect.Type) (any, error) {
	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Bool:
		v.SetBool(true)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(1)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(1)
	case reflect.Float32, reflect.Float64:
		v.SetFloat(1)
	case reflect.Complex64, reflect.Complex128:
		v.SetComplex(1)
	}
	return v.Interface(), nil
}

func (c *Configuration) newString(reflect.Type) (any, error) {
	return c.StringPrefix() + uuid.NewString(), nil
}

func newUUID(reflect.Type) (any, error) {
	return uuid.New(), nil
}

func newTime(reflect.Type) (any, error) {
	return time.Now().UTC().Truncate(time.Second), nil
}

func newDuration(reflect.Type) (any, error) {
	return time.Second, nil
}

func newContext(reflect.Type) (any, error) {
	return context.Background(), nil
}

// newEnum returns the first declared value of a registered enum, the default
// value of a protobuf enum, or the zero value.
func (c *Configuration) newEnum(t reflect.Type) (any, error) {
	c.mu.RLock()
	values := c.enums[t]
	c.mu.RUnlock()

	if len(values) > 0 {
		return values[0].Interface(), nil
	}

	if v, ok := reflection.ProtoEnumValue(t); ok {
		return v.Interface(), nil
	}
	return reflect.Zero(t).Interface(), nil
}
