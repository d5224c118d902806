package reflection

import "reflect"

// Catalog indexes registered constructors by the type they produce,
// preserving registration order.
type Catalog struct {
	byResult map[reflect.Type][]*Constructor
	results  []reflect.Type
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byResult: make(map[reflect.Type][]*Constructor),
	}
}

// Add registers ctor under its result type.
func (c *Catalog) Add(ctor *Constructor) {
	if _, ok := c.byResult[ctor.Result]; !ok {
		c.results = append(c.results, ctor.Result)
	}
	c.byResult[ctor.Result] = append(c.byResult[ctor.Result], ctor)
}

// Candidates returns the constructors producing exactly t with the given
// visibility, in registration order.
func (c *Catalog) Candidates(t reflect.Type, v Visibility) []*Constructor {
	all := c.byResult[t]
	if len(all) == 0 {
		return nil
	}

	out := make([]*Constructor, 0, len(all))
	for _, ctor := range all {
		if ctor.Visibility == v {
			out = append(out, ctor)
		}
	}
	return out
}

// Results returns every constructed type in the order it was first
// registered.
func (c *Catalog) Results() []reflect.Type {
	return append([]reflect.Type(nil), c.results...)
}

// Len returns the number of registered constructors.
func (c *Catalog) Len() int {
	n := 0
	for _, ctors := range c.byResult {
		n += len(ctors)
	}
	return n
}

// Clone returns an independent copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	clone := &Catalog{
		byResult: make(map[reflect.Type][]*Constructor, len(c.byResult)),
		results:  append([]reflect.Type(nil), c.results...),
	}
	for t, ctors := range c.byResult {
		clone.byResult[t] = append([]*Constructor(nil), ctors...)
	}
	return clone
}
