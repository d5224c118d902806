package auto

// Expression is a fluent request for a single synthesized value of type T.
// Every call to Object uses a new Builder, so nothing is shared between
// objects made from different expressions.
//
// Example:
//
//	user := auto.Make[*User]().
//	    Configure(func(c *auto.Configuration) error {
//	        return c.SetSequenceSize(1)
//	    }).
//	    With(func(u **User) { (*u).Admin = true }).
//	    MustObject()
type Expression[T any] struct {
	config  *Configuration
	cloned  bool
	err     error
	options []Option
	with    []func(*T)
}

// Make starts an expression for T over the default configuration.
func Make[T any]() *Expression[T] {
	return &Expression[T]{config: DefaultConfiguration()}
}

// Configure adjusts the configuration used by this expression only. The
// first error returned by fn is reported by Object. A nil fn is ignored.
func (e *Expression[T]) Configure(fn func(*Configuration) error) *Expression[T] {
	if fn == nil {
		return e
	}

	if !e.cloned {
		e.config = e.config.Clone()
		e.cloned = true
	}

	if err := fn(e.config); err != nil && e.err == nil {
		e.err = err
	}
	return e
}

// Options sets builder options, such as WithLogger.
func (e *Expression[T]) Options(opts ...Option) *Expression[T] {
	e.options = append(e.options, opts...)
	return e
}

// With registers a function applied to the synthesized value before it is
// returned, in registration order. A nil fn is ignored.
func (e *Expression[T]) With(fn func(*T)) *Expression[T] {
	if fn != nil {
		e.with = append(e.with, fn)
	}
	return e
}

// Object synthesizes the value.
func (e *Expression[T]) Object() (T, error) {
	var zero T
	if e.err != nil {
		return zero, e.err
	}

	obj, err := Create[T](NewBuilder(e.config, e.options...))
	if err != nil {
		return zero, err
	}

	for _, fn := range e.with {
		fn(&obj)
	}
	return obj, nil
}

// MustObject is like Object but panics on error.
func (e *Expression[T]) MustObject() T {
	obj, err := e.Object()
	if err != nil {
		panic(err)
	}
	return obj
}
