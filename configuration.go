package auto

import (
	"maps"
	"reflect"
	"sync"

	"github.com/junioryono/auto/internal/reflection"
)

// DefaultSequenceSize is the number of elements synthesized for slices,
// iterators and channels unless configured otherwise.
const DefaultSequenceSize = 3

// Factory produces the value used for a requested type, replacing synthesis
// entirely. It receives the requested type, which lets one factory serve
// several types (the generic enum factory is called with the actual enum
// type). Returning nil yields the zero value of the type. A returned error
// is passed to the caller unchanged.
type Factory func(t reflect.Type) (any, error)

// Enum is the marker type under which the generic enum factory is
// registered. It is consulted for enum types without their own factory.
type Enum = reflection.Enum

// EnumType is the reflect.Type of Enum.
var EnumType = reflection.EnumType

// Configuration holds override factories, constructors, interface bindings,
// enum declarations and the sequence size.
//
// A Configuration is safe for concurrent registration. Builders take a
// snapshot of it when they are created, so later changes never affect an
// existing Builder.
//
// Example:
//
//	cfg := auto.NewConfiguration().UseDefaultConfiguration()
//	cfg.SetSequenceSize(5)
//	cfg.Constructor(NewUserService)
//	auto.Register(cfg, func() time.Time { return fixedNow })
type Configuration struct {
	mu sync.RWMutex

	factories    map[reflect.Type]Factory
	sequenceSize int
	stringPrefix string
	defaults     bool
	scalars      bool

	constructors *reflection.Catalog
	bindings     map[reflect.Type]reflect.Type
	enums        map[reflect.Type][]reflect.Value
}

// NewConfiguration creates an empty configuration with DefaultSequenceSize
// and no factories.
func NewConfiguration() *Configuration {
	return &Configuration{
		factories:    make(map[reflect.Type]Factory),
		sequenceSize: DefaultSequenceSize,
		constructors: reflection.NewCatalog(),
		bindings:     make(map[reflect.Type]reflect.Type),
		enums:        make(map[reflect.Type][]reflect.Value),
	}
}

// UseDefaultConfiguration enables the built-in factories for strings,
// uuid.UUID, time.Time, time.Duration, context.Context and the generic enum
// factory. Booleans and numbers keep their zero value unless
// UseScalarDefaults is also called. Explicitly registered factories take
// precedence.
func (c *Configuration) UseDefaultConfiguration() *Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaults = true
	return c
}

// UseScalarDefaults enables the built-in factories for booleans (true) and
// every numeric kind (1), so synthesized objects have no zero scalars.
// Declared and protobuf enums are not affected.
func (c *Configuration) UseScalarDefaults() *Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scalars = true
	return c
}

// Register sets the factory used for exactly type t.
func (c *Configuration) Register(t reflect.Type, f Factory) error {
	if t == nil {
		return RegistrationError{Operation: "register", Cause: ErrTypeNil}
	}
	if f == nil {
		return RegistrationError{Type: t, Operation: "register", Cause: ErrFactoryNil}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[t] = f
	return nil
}

// Register sets fn as the factory for T.
func Register[T any](c *Configuration, fn func() T) error {
	t := reflect.TypeFor[T]()
	if fn == nil {
		return RegistrationError{Type: t, Operation: "register", Cause: ErrFactoryNil}
	}

	return c.Register(t, func(reflect.Type) (any, error) {
		return fn(), nil
	})
}

// Unregister removes the factory registered for t.
func (c *Configuration) Unregister(t reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.factories, t)
}

// Lookup returns the factory for exactly t: a registered one first, then a
// built-in default when defaults are enabled.
func (c *Configuration) Lookup(t reflect.Type) (Factory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if f, ok := c.factories[t]; ok {
		return f, true
	}

	if c.defaults {
		if f, ok := c.defaultFactory(t); ok {
			return f, true
		}
	}
	if c.scalars {
		return c.scalarFactory(t)
	}
	return nil, false
}

// SetSequenceSize sets the number of elements synthesized for every slice,
// iterator and channel.
func (c *Configuration) SetSequenceSize(n int) error {
	if n < 0 {
		return RegistrationError{Operation: "set sequence size", Cause: ErrInvalidSequenceSize}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sequenceSize = n
	return nil
}

// SequenceSize returns the configured sequence size.
func (c *Configuration) SequenceSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sequenceSize
}

// SetStringPrefix sets the prefix of strings produced by the default string
// factory.
func (c *Configuration) SetStringPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stringPrefix = prefix
}

// StringPrefix returns the prefix used by the default string factory.
func (c *Configuration) StringPrefix() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stringPrefix
}

// Constructor registers a constructor function, func(args...) T or
// func(args...) (T, error). When T is requested the cheapest eligible
// constructor is called with synthesized arguments.
//
// Exported functions and closures are public constructors, unexported
// functions are non-public and only used when no public constructor for T
// is eligible. WithVisibility overrides this.
func (c *Configuration) Constructor(fn any, opts ...ConstructorOption) error {
	ctor, err := reflection.Analyze(fn)
	if err != nil {
		var t reflect.Type
		if fn != nil {
			t = reflect.TypeOf(fn)
		}
		return RegistrationError{Type: t, Operation: "register constructor", Cause: err}
	}

	options := &constructorOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(options)
		}
	}
	if options.visibility != nil {
		ctor.Visibility = *options.visibility
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.constructors.Add(ctor)
	return nil
}

// Bind makes the polymorphic builder satisfy interface I with type C.
func Bind[I, C any](c *Configuration) error {
	return c.BindType(reflect.TypeFor[I](), reflect.TypeFor[C]())
}

// BindType makes the polymorphic builder satisfy iface with impl.
func (c *Configuration) BindType(iface, impl reflect.Type) error {
	if iface == nil || impl == nil {
		return RegistrationError{Type: iface, Operation: "bind", Cause: ErrTypeNil}
	}
	if iface.Kind() != reflect.Interface {
		return RegistrationError{Type: iface, Operation: "bind", Cause: ErrNotInterface}
	}
	if !impl.Implements(iface) {
		return RegistrationError{Type: impl, Operation: "bind", Cause: ErrNotImplemented}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[iface] = impl
	return nil
}

// RegisterEnum declares T as an enumeration with the given values. The
// default enum factory returns the first value.
func RegisterEnum[T comparable](c *Configuration, values ...T) error {
	t := reflect.TypeFor[T]()
	if len(values) == 0 {
		return RegistrationError{Type: t, Operation: "register enum", Cause: ErrEnumValuesEmpty}
	}

	rv := make([]reflect.Value, len(values))
	for i, v := range values {
		rv[i] = reflect.ValueOf(v)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.enums[t] = rv
	return nil
}

// IsEnum reports whether t was declared with RegisterEnum.
func (c *Configuration) IsEnum(t reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.enums[t]
	return ok
}

// EnumValues returns the declared values of enum type t.
func (c *Configuration) EnumValues(t reflect.Type) []any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	values := c.enums[t]
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}
	return out
}

// Clone returns an independent copy of the configuration.
func (c *Configuration) Clone() *Configuration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return &Configuration{
		factories:    maps.Clone(c.factories),
		sequenceSize: c.sequenceSize,
		stringPrefix: c.stringPrefix,
		defaults:     c.defaults,
		scalars:      c.scalars,
		constructors: c.constructors.Clone(),
		bindings:     maps.Clone(c.bindings),
		enums:        maps.Clone(c.enums),
	}
}
