package engine

import (
	"reflect"

	"github.com/junioryono/auto/internal/reflection"
)

// instanceCache memoizes constructed instances for the lifetime of an Engine.
// It is not synchronized; an Engine has a single owner.
type instanceCache struct {
	instances map[reflection.TypeKey]reflect.Value
}

func newInstanceCache() *instanceCache {
	return &instanceCache{
		instances: make(map[reflection.TypeKey]reflect.Value),
	}
}

func (c *instanceCache) get(key reflection.TypeKey) (reflect.Value, bool) {
	v, ok := c.instances[key]
	return v, ok
}

func (c *instanceCache) set(key reflection.TypeKey, v reflect.Value) {
	c.instances[key] = v
}

// keySet tracks the types whose construction is active on the call stack.
type keySet map[reflection.TypeKey]struct{}

func (s keySet) add(key reflection.TypeKey) bool {
	if _, ok := s[key]; ok {
		return false
	}
	s[key] = struct{}{}
	return true
}

func (s keySet) remove(key reflection.TypeKey) {
	delete(s, key)
}
