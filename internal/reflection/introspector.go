package reflection

import "reflect"

// Introspector answers every reflection question the synthesis engine asks:
// how a type is classified, which constructors can build it and how to
// allocate it when no constructor runs.
type Introspector struct {
	catalog *Catalog
	enums   EnumSet
}

// NewIntrospector creates an introspector over the given constructors and
// declared enums. Both may be nil.
func NewIntrospector(catalog *Catalog, enums EnumSet) *Introspector {
	if catalog == nil {
		catalog = NewCatalog()
	}
	return &Introspector{catalog: catalog, enums: enums}
}

func (i *Introspector) Classify(t reflect.Type) Shape {
	return Classify(t, i.enums)
}

func (i *Introspector) Constructors(t reflect.Type, v Visibility) []*Constructor {
	return i.catalog.Candidates(t, v)
}

func (i *Introspector) Uninitialized(t reflect.Type) reflect.Value {
	return Uninitialized(t)
}
