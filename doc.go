// Package auto synthesizes fully populated values of arbitrary Go types from
// runtime type information. It is meant for tests, stubs and fixtures: ask for
// a type and get a realistic object graph back, without writing factories.
//
// # Overview
//
// auto resolves a requested type by walking its structure:
//   - Slices, arrays, iter.Seq and channels hold one synthesized element
//     repeated in every slot (the sequence size, 3 by default)
//   - iter.Seq2[K, V] iterates a synthesized map[K]V
//   - Registered factories replace synthesis for a type
//   - Enums get the generic enum factory
//   - Everything else is constructed through the cheapest registered
//     constructor, or allocated directly, and then has its zero-valued
//     exported fields filled recursively
//
// # Basic Usage
//
//	user, err := auto.Make[*User]().Object()
//
// or, with an explicit configuration and a reusable builder:
//
//	cfg := auto.NewConfiguration().UseDefaultConfiguration()
//	cfg.Constructor(NewUserService)
//
//	b := auto.NewBuilder(cfg)
//	svc, err := auto.Create[*UserService](b)
//
// # Constructors
//
// Go has no constructors, so auto uses registered constructor functions of the
// form func(args...) T or func(args...) (T, error). Exported functions and
// closures are public, unexported functions are non-public. For a requested T:
//
//   - Constructors taking T itself, uintptr or unsafe.Pointer are skipped
//   - A parameterless constructor is preferred
//   - Otherwise the constructor with the fewest non-primitive parameters wins,
//     ties going to the one registered first
//   - Non-public constructors are only tried when no public one is eligible
//   - With no eligible constructor the value is allocated without one
//
// A constructor that panics, returns an error or returns nil makes the request
// fall back to the zero value of T. These failures are logged at debug level
// when a logger is configured with WithLogger, but never returned.
//
// # Memoization
//
// A Builder memoizes every constructed instance per type. Requesting *User
// twice returns the same pointer, which lets cyclic graphs such as
// parent/child references resolve consistently:
//
//	type Parent struct{ Child *Child }
//	type Child struct{ Parent *Parent }
//
//	p, _ := auto.Create[*Parent](b)
//	// p.Child.Parent == p
//
// A type whose construction re-enters itself, directly or through other
// constructors, receives an instance allocated without a constructor instead
// of recursing forever.
//
// # Overrides
//
// Factories registered for a type always win over construction:
//
//	auto.Register(cfg, func() time.Time { return fixedNow })
//
// UseDefaultConfiguration enables built-in factories for strings (a uuid with
// an optional prefix), uuid.UUID, time.Time, time.Duration and
// context.Context, plus the generic enum factory which returns the first
// value declared with RegisterEnum or the first non-zero value of a protobuf
// enum. Booleans and numbers stay zero unless UseScalarDefaults is enabled,
// which makes them true and 1.
//
// # Interfaces
//
// A constructor declared to return an interface, such as
// func NewRepo() Repository, builds that interface like any other type and
// its result is memoized. Other interfaces are satisfied by a concrete type
// bound with Bind, or else by the first registered constructor result
// implementing the interface. Otherwise the nil interface value is used.
//
// # Errors
//
// Errors are only returned when a registered factory, the polymorphic builder
// or the filler fails; these are passed through unchanged.
//
// # Concurrency
//
// A Builder is single-owner: it must not be used from several goroutines at
// once. Configuration is safe for concurrent registration.
package auto
