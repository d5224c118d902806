// Package engine implements recursive synthesis of values from runtime type
// information.
//
// An Engine resolves a requested type by, in order: substituting collection
// shapes, synthesizing sequences, consulting override factories, falling back
// to the generic enum factory, and finally constructing a new instance through
// the cheapest registered constructor. Interfaces use a constructor declared
// to return them when one exists and the Polymorphic builder otherwise.
// Constructed instances are memoized per type for the lifetime of the Engine
// and handed to the Filler exactly once.
//
// An Engine is not safe for concurrent use.
package engine

import (
	"log/slog"
	"reflect"

	"github.com/junioryono/auto/internal/reflection"
)

// Factory produces the value for a requested type, bypassing synthesis.
type Factory func(t reflect.Type) (reflect.Value, error)

// Overrides supplies override factories and the sequence size.
type Overrides interface {
	// Factory returns the factory registered for exactly t.
	Factory(t reflect.Type) (Factory, bool)

	// SequenceSize is the number of elements in every synthesized slice,
	// iterator and channel.
	SequenceSize() int
}

// Resolver is the callback surface collaborators use to synthesize nested
// values.
type Resolver interface {
	Resolve(t reflect.Type) (reflect.Value, error)
}

// Polymorphic produces values for interface types.
type Polymorphic interface {
	Build(t reflect.Type) (reflect.Value, error)
}

// Filler populates the members of a freshly constructed instance.
type Filler interface {
	Fill(instance reflect.Value) error
}

// Introspector classifies types, lists their constructors and allocates
// them without running a constructor.
type Introspector interface {
	Classify(t reflect.Type) reflection.Shape
	Constructors(t reflect.Type, v reflection.Visibility) []*reflection.Constructor
	Uninitialized(t reflect.Type) reflect.Value
}

// Config wires an Engine to its collaborators. Polymorphic and Filler are
// factories because both call back into the Engine they serve.
type Config struct {
	Overrides    Overrides
	Introspector Introspector
	Polymorphic  func(Resolver) Polymorphic
	Filler       func(Resolver) Filler
	Logger       *slog.Logger
}

// Engine is the recursive synthesis engine.
type Engine struct {
	overrides   Overrides
	introspect  Introspector
	polymorphic Polymorphic
	filler      Filler
	logger      *slog.Logger

	cache      *instanceCache
	inProgress keySet
}

// New creates an Engine with an empty instance cache.
func New(cfg Config) *Engine {
	if cfg.Overrides == nil {
		panic("overrides cannot be nil")
	}

	e := &Engine{
		overrides:  cfg.Overrides,
		introspect: cfg.Introspector,
		logger:     cfg.Logger,
		cache:      newInstanceCache(),
		inProgress: make(keySet),
	}

	if e.introspect == nil {
		e.introspect = reflection.NewIntrospector(nil, nil)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}

	if cfg.Polymorphic != nil {
		e.polymorphic = cfg.Polymorphic(e)
	} else {
		e.polymorphic = zeroPolymorphic{}
	}

	if cfg.Filler != nil {
		e.filler = cfg.Filler(e)
	} else {
		e.filler = noopFiller{}
	}

	return e
}

// Resolve returns a value of type t. The only errors returned come from
// collaborators: override factories, the polymorphic builder and the filler.
// Construction failures are absorbed and surface as the zero value of t.
func (e *Engine) Resolve(t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, ErrTypeNil
	}

	factory, overridden := e.overrides.Factory(t)

	// A factory for a defined collection type such as uuid.UUID substitutes
	// for its shape. Unnamed collections and iterators are always synthesized.
	shape := e.introspect.Classify(t)
	if !overridden || !isDefined(t) {
		switch shape {
		case reflection.ShapeSeq2:
			return e.resolveDictionary(t)
		case reflection.ShapeArray, reflection.ShapeSlice, reflection.ShapeSeq, reflection.ShapeChan:
			return e.resolveSequence(t, shape)
		}
	}

	if overridden {
		return e.invokeFactory(factory, t)
	}

	if shape == reflection.ShapeEnum {
		if factory, ok := e.overrides.Factory(reflection.EnumType); ok {
			return e.invokeFactory(factory, t)
		}
	}

	v, err := e.buildNew(t)
	if err != nil {
		return reflect.Value{}, err
	}

	if !v.IsValid() {
		e.logger.Debug("falling back to zero value", "type", reflection.FormatType(t))
		return reflect.Zero(t), nil
	}
	return v, nil
}

// Cached reports whether an instance of t has been memoized.
func (e *Engine) Cached(t reflect.Type) bool {
	_, ok := e.cache.get(reflection.KeyOf(t))
	return ok
}

// resolveDictionary substitutes map[K]V for an iter.Seq2[K, V] request and
// iterates the resolved map.
func (e *Engine) resolveDictionary(t reflect.Type) (reflect.Value, error) {
	key, elem := reflection.ElemTypes(t, reflection.ShapeSeq2)
	if !key.Comparable() {
		return reflection.Empty(t, reflection.ShapeSeq2), nil
	}

	m, err := e.Resolve(reflect.MapOf(key, elem))
	if err != nil {
		return reflect.Value{}, err
	}
	return reflection.Seq2Of(t, m), nil
}

// resolveSequence synthesizes one element and repeats it in every slot.
// Sequences are never memoized. A sequence type that is already being
// synthesized further up the stack yields an empty value.
func (e *Engine) resolveSequence(t reflect.Type, shape reflection.Shape) (reflect.Value, error) {
	key := reflection.SequenceKeyOf(t)
	if !e.inProgress.add(key) {
		return reflection.Empty(t, shape), nil
	}
	defer e.inProgress.remove(key)

	_, elemType := reflection.ElemTypes(t, shape)
	elem, err := e.Resolve(elemType)
	if err != nil {
		return reflect.Value{}, err
	}

	return reflection.Repeat(t, shape, elem, e.overrides.SequenceSize()), nil
}

func (e *Engine) invokeFactory(factory Factory, t reflect.Type) (reflect.Value, error) {
	v, err := factory(t)
	if err != nil {
		return reflect.Value{}, err
	}
	return fit(v, t, "override factory")
}

// buildNew returns the memoized instance of t, or constructs, memoizes and
// fills a new one. An invalid value means construction failed.
func (e *Engine) buildNew(t reflect.Type) (reflect.Value, error) {
	key := reflection.KeyOf(t)
	if v, ok := e.cache.get(key); ok {
		return v, nil
	}

	if t.Kind() == reflect.Interface {
		return e.buildInterface(t)
	}

	v, err := e.constructInstance(t)
	if err != nil {
		return reflect.Value{}, err
	}

	if !v.IsValid() {
		return reflect.Value{}, nil
	}

	v = reflection.Addressable(v)
	e.cache.set(key, v)

	if err := e.filler.Fill(v); err != nil {
		return reflect.Value{}, err
	}
	return v, nil
}

// buildInterface prefers a constructor declared to return interface t. Its
// result is memoized and its dynamic value filled like any constructed
// instance. Without one, or when it fails, the polymorphic builder decides.
func (e *Engine) buildInterface(t reflect.Type) (reflect.Value, error) {
	v, err := e.constructInterface(t)
	if err != nil {
		return reflect.Value{}, err
	}

	if !v.IsValid() {
		v, err := e.polymorphic.Build(t)
		if err != nil {
			return reflect.Value{}, err
		}
		return fit(v, t, "polymorphic builder")
	}

	e.cache.set(reflection.KeyOf(t), v)
	if err := e.filler.Fill(v.Elem()); err != nil {
		return reflect.Value{}, err
	}
	return v, nil
}

// constructInterface invokes the cheapest constructor producing exactly
// interface t. Re-entry, a missing constructor and a failed invocation all
// yield an invalid value.
func (e *Engine) constructInterface(t reflect.Type) (reflect.Value, error) {
	key := reflection.KeyOf(t)
	if !e.inProgress.add(key) {
		return reflect.Value{}, nil
	}
	defer e.inProgress.remove(key)

	for _, visibility := range []reflection.Visibility{reflection.Public, reflection.NonPublic} {
		ctor := reflection.Select(e.introspect.Constructors(t, visibility), t)
		if ctor == nil {
			continue
		}

		v, err := e.invokeConstructor(ctor)
		if err != nil || !v.IsValid() {
			return reflect.Value{}, err
		}
		return fit(v, t, "constructor")
	}
	return reflect.Value{}, nil
}

// constructInstance builds t through its cheapest eligible constructor,
// trying public constructors before non-public ones. Re-entering the
// construction of t, or having no eligible constructor, yields an
// uninitialized instance.
func (e *Engine) constructInstance(t reflect.Type) (reflect.Value, error) {
	key := reflection.KeyOf(t)
	if !e.inProgress.add(key) {
		return e.introspect.Uninitialized(t), nil
	}
	defer e.inProgress.remove(key)

	for _, visibility := range []reflection.Visibility{reflection.Public, reflection.NonPublic} {
		ctor := reflection.Select(e.introspect.Constructors(t, visibility), t)
		if ctor == nil {
			continue
		}
		return e.invokeConstructor(ctor)
	}

	return e.introspect.Uninitialized(t), nil
}

func (e *Engine) invokeConstructor(ctor *reflection.Constructor) (reflect.Value, error) {
	args := make([]reflect.Value, len(ctor.Parameters))
	for i, p := range ctor.Parameters {
		arg, err := e.Resolve(p)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = arg
	}

	v, err := ctor.Invoke(args)
	if err != nil {
		e.logger.Debug("construction failed",
			"type", reflection.FormatType(ctor.Result),
			"constructor", ctor.Name,
			"visibility", ctor.Visibility,
			"error", err)
		return reflect.Value{}, nil
	}
	return v, nil
}

// isDefined reports whether t is a named type declared outside the iter
// package. iter.Seq and iter.Seq2 instantiations are named but are requests
// for a sequence.
func isDefined(t reflect.Type) bool {
	return t.Name() != "" && t.PkgPath() != "iter"
}

type zeroPolymorphic struct{}

func (zeroPolymorphic) Build(t reflect.Type) (reflect.Value, error) {
	return reflect.Zero(t), nil
}

type noopFiller struct{}

func (noopFiller) Fill(reflect.Value) error {
	return nil
}
