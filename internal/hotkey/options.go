package hotkey

// Option configures a registry.
type Option func(*options)

type options struct {
	confine func(op string)
	sandbox bool
}

func buildOptions(opts []Option) options {
	o := options{confine: func(string) {}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithThreadCheck installs the event-loop confinement assertion called at the
// top of every public operation.
func WithThreadCheck(assert func(op string)) Option {
	return func(o *options) {
		if assert != nil {
			o.confine = assert
		}
	}
}

// WithSandbox enables the development-sandbox fallback binding of the global
// registry.
func WithSandbox(enabled bool) Option {
	return func(o *options) { o.sandbox = enabled }
}
