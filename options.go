package auto

import (
	"log/slog"

	"github.com/junioryono/auto/internal/engine"
	"github.com/junioryono/auto/internal/reflection"
)

// Resolver is the callback surface handed to custom fillers and polymorphic
// builders. Resolving through it shares the Builder's instance cache.
type Resolver = engine.Resolver

// Filler populates the members of each freshly constructed instance. It is
// called exactly once per constructed instance and never for cached
// instances or values produced by the polymorphic builder.
type Filler = engine.Filler

// PolymorphicBuilder produces values for interface types.
type PolymorphicBuilder = engine.Polymorphic

// Visibility selects the constructor set a constructor belongs to.
type Visibility = reflection.Visibility

const (
	Public    = reflection.Public
	NonPublic = reflection.NonPublic
)

// Option configures a Builder.
type Option interface {
	apply(*builderOptions)
}

// builderOptions holds builder configuration.
type builderOptions struct {
	logger      *slog.Logger
	filler      func(Resolver) Filler
	polymorphic func(Resolver) PolymorphicBuilder
}

// optionFunc adapts a function to Option.
type optionFunc func(*builderOptions)

func (f optionFunc) apply(opts *builderOptions) {
	f(opts)
}

// WithLogger sets the logger receiving debug records about construction
// failures and zero-value fallbacks. Without it nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(opts *builderOptions) {
		opts.logger = logger
	})
}

// WithFiller replaces the default member filler.
func WithFiller(newFiller func(Resolver) Filler) Option {
	return optionFunc(func(opts *builderOptions) {
		opts.filler = newFiller
	})
}

// WithPolymorphicBuilder replaces the default interface builder.
func WithPolymorphicBuilder(newBuilder func(Resolver) PolymorphicBuilder) Option {
	return optionFunc(func(opts *builderOptions) {
		opts.polymorphic = newBuilder
	})
}

// ConstructorOption configures constructor registration.
type ConstructorOption interface {
	apply(*constructorOptions)
}

// constructorOptions holds constructor configuration.
type constructorOptions struct {
	visibility *Visibility
}

// constructorOptionFunc adapts a function to ConstructorOption.
type constructorOptionFunc func(*constructorOptions)

func (f constructorOptionFunc) apply(opts *constructorOptions) {
	f(opts)
}

// WithVisibility overrides the visibility derived from the constructor's
// name.
func WithVisibility(v Visibility) ConstructorOption {
	return constructorOptionFunc(func(opts *constructorOptions) {
		opts.visibility = &v
	})
}
