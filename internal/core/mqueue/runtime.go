package mqueue

// RuntimeConfig controls default behavior for queue constructors.
// Zero values mean "use built-in defaults".
type RuntimeConfig struct {
	// StalenessThreshold is the number of values a queue with no registered
	// views retains. The default of 0 retains nothing: a push with no
	// readers is dropped immediately.
	StalenessThreshold int
}

var defaultRuntimeConfig RuntimeConfig

// SetDefaultRuntimeConfig overrides the default queue settings.
func SetDefaultRuntimeConfig(cfg RuntimeConfig) { defaultRuntimeConfig = cfg }
