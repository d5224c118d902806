package auto

import (
	"reflect"

	"go.uber.org/dig"
)

// FromDig returns a Factory serving the requested type out of a dig
// container. Resolution errors from dig are returned unchanged.
//
// Example:
//
//	c := dig.New()
//	c.Provide(NewDatabase)
//	cfg.Register(reflect.TypeFor[*Database](), auto.FromDig(c))
func FromDig(c *dig.Container) Factory {
	return func(t reflect.Type) (any, error) {
		var out any
		fnType := reflect.FuncOf([]reflect.Type{t}, nil, false)
		fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
			out = args[0].Interface()
			return nil
		})

		if err := c.Invoke(fn.Interface()); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// UseDig registers FromDig(container) as the factory for each of types.
func (c *Configuration) UseDig(container *dig.Container, types ...reflect.Type) error {
	if container == nil {
		return RegistrationError{Operation: "use dig container", Cause: ErrFactoryNil}
	}

	factory := FromDig(container)
	for _, t := range types {
		if err := c.Register(t, factory); err != nil {
			return err
		}
	}
	return nil
}
