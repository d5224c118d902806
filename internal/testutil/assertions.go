package testutil

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/auto"
)

// AssertCreatable creates a T and fails the test on error.
func AssertCreatable[T any](t *testing.T, b *auto.Builder) T {
	t.Helper()
	obj, err := auto.Create[T](b)
	require.NoError(t, err, "failed to create value of type %T", *new(T))
	return obj
}

// AssertFilled checks that every exported field of the struct behind v is
// non-zero, except the named ones.
func AssertFilled(t *testing.T, v any, except ...string) {
	t.Helper()

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		require.False(t, rv.IsNil(), "value is nil")
		rv = rv.Elem()
	}
	require.Equal(t, reflect.Struct, rv.Kind(), "value is not a struct")

	skip := make(map[string]bool, len(except))
	for _, name := range except {
		skip[name] = true
	}

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Type().Field(i)
		if !field.IsExported() || skip[field.Name] {
			continue
		}
		assert.False(t, rv.Field(i).IsZero(), "field %s.%s is zero", rv.Type().Name(), field.Name)
	}
}

// AssertCreateFails checks that creating T fails with target in the error
// chain.
func AssertCreateFails[T any](t *testing.T, b *auto.Builder, target error) {
	t.Helper()
	_, err := auto.Create[T](b)
	require.Error(t, err)
	assert.ErrorIs(t, err, target)
}
