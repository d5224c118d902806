package fill

import (
	"reflect"
	"sync"
)

// TagName is the struct tag consulted for members. `auto:"-"` excludes a
// field from filling.
const TagName = "auto"

// Member is an assignable struct field.
type Member struct {
	Name  string
	Index int
	Type  reflect.Type
	Tag   reflect.StructTag
}

// Members enumerates the assignable members of struct types. The member list
// of each type is computed once and cached.
type Members struct {
	cache sync.Map // map[reflect.Type][]Member
}

// NewMembers creates a member enumerator.
func NewMembers() *Members {
	return &Members{}
}

// ForEach calls fn for every exported field of the struct type t that is not
// tagged `auto:"-"`. It stops at the first error fn returns. Non-struct
// types have no members.
func (m *Members) ForEach(t reflect.Type, fn func(Member) error) error {
	for _, member := range m.members(t) {
		if err := fn(member); err != nil {
			return err
		}
	}
	return nil
}

func (m *Members) members(t reflect.Type) []Member {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	if cached, ok := m.cache.Load(t); ok {
		return cached.([]Member)
	}

	members := make([]Member, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get(TagName) == "-" {
			continue
		}

		members = append(members, Member{
			Name:  field.Name,
			Index: i,
			Type:  field.Type,
			Tag:   field.Tag,
		})
	}

	actual, _ := m.cache.LoadOrStore(t, members)
	return actual.([]Member)
}
