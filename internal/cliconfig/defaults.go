package cliconfig

import "runtime"

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// DefaultConcurrency returns the default number of candidates matched at once.
func DefaultConcurrency() int {
	return runtime.GOMAXPROCS(0)
}

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		Concurrency: DefaultConcurrency(),
		Sources:     make(map[string]string),
	}

	// Mark all as default source
	for _, key := range []string{"logLevel", "logFormat", "json", "concurrency", "allDifferences"} {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
