package auto

import (
	"reflect"

	"github.com/junioryono/auto/internal/engine"
	"github.com/junioryono/auto/internal/fill"
	"github.com/junioryono/auto/internal/polymorph"
	"github.com/junioryono/auto/internal/reflection"
)

// globalMembers caches member lists of struct types across builders.
var globalMembers = fill.NewMembers()

// Builder synthesizes values of arbitrary types.
//
// Instances constructed by a Builder are memoized per type: asking twice for
// *User returns the same pointer. Slices, arrays, iterators and channels are
// synthesized fresh on every request, and interface values are produced by
// the polymorphic builder without memoization.
//
// A Builder is NOT safe for concurrent use. Create one per goroutine.
type Builder struct {
	config *Configuration
	engine *engine.Engine
}

// NewBuilder creates a Builder over a snapshot of cfg. A nil cfg uses the
// default configuration.
func NewBuilder(cfg *Configuration, opts ...Option) *Builder {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}

	options := &builderOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(options)
		}
	}

	snapshot := cfg.Clone()
	b := &Builder{config: snapshot}

	newFiller := options.filler
	if newFiller == nil {
		newFiller = func(r Resolver) Filler {
			return fill.New(r, globalMembers, snapshot.SequenceSize())
		}
	}

	newPolymorphic := options.polymorphic
	if newPolymorphic == nil {
		newPolymorphic = func(r Resolver) PolymorphicBuilder {
			return polymorph.New(r, snapshot.bindings, snapshot.constructors.Results())
		}
	}

	b.engine = engine.New(engine.Config{
		Overrides:    overrides{config: snapshot},
		Introspector: reflection.NewIntrospector(snapshot.constructors, snapshot),
		Polymorphic:  newPolymorphic,
		Filler:       newFiller,
		Logger:       options.logger,
	})

	return b
}

// Configuration returns a copy of the configuration the Builder was created
// with.
func (b *Builder) Configuration() *Configuration {
	return b.config.Clone()
}

// CreateObject returns a synthesized value of type t. It returns an error
// only when t is nil or when an override factory, the polymorphic builder or
// the filler fails. Types that cannot be constructed yield their zero value.
func (b *Builder) CreateObject(t reflect.Type) (any, error) {
	if t == nil {
		return nil, ErrTypeNil
	}

	v, err := b.engine.Resolve(t)
	if err != nil {
		return nil, err
	}

	if !v.IsValid() || !v.CanInterface() {
		return nil, nil
	}
	return v.Interface(), nil
}

// Create returns a synthesized value of type T.
//
// Example:
//
//	b := auto.NewBuilder(nil)
//	user, err := auto.Create[*User](b)
func Create[T any](b *Builder) (T, error) {
	var zero T

	obj, err := b.CreateObject(reflect.TypeFor[T]())
	if err != nil || obj == nil {
		return zero, err
	}
	return obj.(T), nil
}

// MustCreate is like Create but panics on error.
func MustCreate[T any](b *Builder) T {
	obj, err := Create[T](b)
	if err != nil {
		panic(err)
	}
	return obj
}

// overrides adapts a Configuration snapshot to the engine.
type overrides struct {
	config *Configuration
}

func (o overrides) Factory(t reflect.Type) (engine.Factory, bool) {
	f, ok := o.config.Lookup(t)
	if !ok {
		return nil, false
	}

	return func(t reflect.Type) (reflect.Value, error) {
		obj, err := f(t)
		if err != nil || obj == nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(obj), nil
	}, true
}

func (o overrides) SequenceSize() int {
	return o.config.SequenceSize()
}
