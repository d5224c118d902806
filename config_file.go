package auto

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadEnv.
const (
	EnvSequenceSize = "AUTO_SEQUENCE_SIZE"
	EnvStringPrefix = "AUTO_STRING_PREFIX"
)

// fileConfig is the YAML document accepted by LoadYAML:
//
//	sequence_size: 5
//	string_prefix: "fixture-"
//	scalar_defaults: true
//	values:
//	  int: 42
//	  bool: true
//	  time.Duration: 1500ms
type fileConfig struct {
	SequenceSize *int                 `yaml:"sequence_size"`
	StringPrefix *string              `yaml:"string_prefix"`
	Scalars      bool                 `yaml:"scalar_defaults"`
	Values       map[string]yaml.Node `yaml:"values"`
}

// valueTypes maps the type names accepted under "values" to their types.
var valueTypes = map[string]reflect.Type{
	"bool":          reflect.TypeFor[bool](),
	"int":           reflect.TypeFor[int](),
	"int8":          reflect.TypeFor[int8](),
	"int16":         reflect.TypeFor[int16](),
	"int32":         reflect.TypeFor[int32](),
	"int64":         reflect.TypeFor[int64](),
	"uint":          reflect.TypeFor[uint](),
	"uint8":         reflect.TypeFor[uint8](),
	"uint16":        reflect.TypeFor[uint16](),
	"uint32":        reflect.TypeFor[uint32](),
	"uint64":        reflect.TypeFor[uint64](),
	"float32":       reflect.TypeFor[float32](),
	"float64":       reflect.TypeFor[float64](),
	"string":        reflect.TypeFor[string](),
	"time.Duration": durationType,
	"time.Time":     timeType,
}

// LoadYAML applies a YAML document to the configuration. Entries under
// "values" register factories returning the given fixed value.
func (c *Configuration) LoadYAML(data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return RegistrationError{Operation: "load yaml", Cause: err}
	}

	if fc.SequenceSize != nil {
		if err := c.SetSequenceSize(*fc.SequenceSize); err != nil {
			return err
		}
	}

	if fc.StringPrefix != nil {
		c.SetStringPrefix(*fc.StringPrefix)
	}

	if fc.Scalars {
		c.UseScalarDefaults()
	}

	for name, node := range fc.Values {
		t, ok := valueTypes[name]
		if !ok {
			return RegistrationError{Operation: "load yaml", Cause: fmt.Errorf("%w: %q", ErrUnknownValueType, name)}
		}

		v, err := decodeValue(&node, t)
		if err != nil {
			return RegistrationError{Type: t, Operation: "load yaml", Cause: err}
		}

		value := v.Interface()
		if err := c.Register(t, func(reflect.Type) (any, error) { return value, nil }); err != nil {
			return err
		}
	}

	return nil
}

// LoadYAMLFile reads path and applies it with LoadYAML.
func (c *Configuration) LoadYAMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return RegistrationError{Operation: "load yaml", Cause: err}
	}
	return c.LoadYAML(data)
}

func decodeValue(node *yaml.Node, t reflect.Type) (reflect.Value, error) {
	if t == durationType {
		var s string
		if err := node.Decode(&s); err != nil {
			return reflect.Value{}, err
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	}

	ptr := reflect.New(t)
	if err := node.Decode(ptr.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return ptr.Elem(), nil
}

// LoadEnv reads AUTO_SEQUENCE_SIZE and AUTO_STRING_PREFIX. Values present in
// the process environment win over values read from the given .env files.
// The process environment itself is never modified.
func (c *Configuration) LoadEnv(files ...string) error {
	fileValues := map[string]string{}
	if len(files) > 0 {
		values, err := godotenv.Read(files...)
		if err != nil {
			return RegistrationError{Operation: "load env", Cause: err}
		}
		fileValues = values
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}

	if v, ok := lookup(EnvSequenceSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return RegistrationError{Operation: "load env", Cause: fmt.Errorf("%s: %w", EnvSequenceSize, err)}
		}
		if err := c.SetSequenceSize(n); err != nil {
			return err
		}
	}

	if v, ok := lookup(EnvStringPrefix); ok {
		c.SetStringPrefix(v)
	}

	return nil
}
