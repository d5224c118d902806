package testutil

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/junioryono/auto"
)

// ConfigurationBuilder provides a fluent interface for building test
// configurations.
type ConfigurationBuilder struct {
	t      *testing.T
	config *auto.Configuration
}

// NewConfigurationBuilder creates a builder over a configuration with the
// built-in defaults enabled.
func NewConfigurationBuilder(t *testing.T) *ConfigurationBuilder {
	return &ConfigurationBuilder{
		t:      t,
		config: auto.NewConfiguration().UseDefaultConfiguration(),
	}
}

// NewBareConfigurationBuilder creates a builder over an empty configuration.
func NewBareConfigurationBuilder(t *testing.T) *ConfigurationBuilder {
	return &ConfigurationBuilder{
		t:      t,
		config: auto.NewConfiguration(),
	}
}

// WithConstructor registers a constructor.
func (b *ConfigurationBuilder) WithConstructor(fn any, opts ...auto.ConstructorOption) *ConfigurationBuilder {
	require.NoError(b.t, b.config.Constructor(fn, opts...))
	return b
}

// WithFactory registers a factory returning value for its dynamic type.
func (b *ConfigurationBuilder) WithFactory(value any) *ConfigurationBuilder {
	require.NoError(b.t, b.config.Register(reflect.TypeOf(value), func(reflect.Type) (any, error) {
		return value, nil
	}))
	return b
}

// WithSequenceSize sets the sequence size.
func (b *ConfigurationBuilder) WithSequenceSize(n int) *ConfigurationBuilder {
	require.NoError(b.t, b.config.SetSequenceSize(n))
	return b
}

// WithScalarDefaults enables the boolean and numeric factories.
func (b *ConfigurationBuilder) WithScalarDefaults() *ConfigurationBuilder {
	b.config.UseScalarDefaults()
	return b
}

// WithBinding binds iface to impl.
func (b *ConfigurationBuilder) WithBinding(iface, impl reflect.Type) *ConfigurationBuilder {
	require.NoError(b.t, b.config.BindType(iface, impl))
	return b
}

// Build returns the configuration.
func (b *ConfigurationBuilder) Build() *auto.Configuration {
	return b.config
}

// BuildBuilder returns a Builder over the configuration.
func (b *ConfigurationBuilder) BuildBuilder(opts ...auto.Option) *auto.Builder {
	return auto.NewBuilder(b.config, opts...)
}
