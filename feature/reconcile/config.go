package reconcile

// Config holds configuration for the reconciliation engine.
type Config struct {
	// WindowDays is the trailing window, in days, over which metrics from
	// both stores are compared.
	WindowDays int `mapstructure:"window_days" default:"30"`
}
