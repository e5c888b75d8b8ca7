package analyser

// Option configures an Analyser.
type Option func(*options)

type options struct {
	unitsCheck      bool
	unitsStrictness Level
}

func defaultOptions() options {
	return options{
		unitsCheck:      true,
		unitsStrictness: LevelWarning,
	}
}

// WithUnitsCheck turns the units consistency check on or off. It is on by
// default.
func WithUnitsCheck(enabled bool) Option {
	return func(o *options) {
		o.unitsCheck = enabled
	}
}

// WithUnitsStrictness sets the level of units mismatch issues. The default
// is LevelWarning. Unresolvable units are always reported as warnings.
func WithUnitsStrictness(level Level) Option {
	return func(o *options) {
		o.unitsStrictness = level
	}
}
