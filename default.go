package auto

var (
	// defaultConfiguration holds the Configuration used by Make and by
	// NewBuilder(nil).
	defaultConfiguration = NewConfiguration().UseDefaultConfiguration()
)

// SetDefaultConfiguration sets the Configuration used by the package-level
// functions. This is similar to slog.SetDefault.
//
// Passing nil restores a fresh configuration with the built-in defaults.
func SetDefaultConfiguration(cfg *Configuration) {
	if cfg == nil {
		cfg = NewConfiguration().UseDefaultConfiguration()
	}
	defaultConfiguration = cfg
}

// DefaultConfiguration returns the Configuration used by the package-level
// functions. Registrations on it affect every later Make call.
func DefaultConfiguration() *Configuration {
	return defaultConfiguration
}
