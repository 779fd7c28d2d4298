package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvConfig         = "JSONMATCH_CONFIG"
	EnvLogLevel       = "JSONMATCH_LOG_LEVEL"
	EnvLogFormat      = "JSONMATCH_LOG_FORMAT"
	EnvJSON           = "JSONMATCH_JSON"
	EnvConcurrency    = "JSONMATCH_CONCURRENCY"
	EnvAllDifferences = "JSONMATCH_ALL_DIFFERENCES"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}

	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}

	if v := os.Getenv(EnvJSON); v != "" {
		cfg.JSON = parseBool(v)
		cfg.Sources["json"] = SourceEnv
	}

	if v := os.Getenv(EnvConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
			cfg.Sources["concurrency"] = SourceEnv
		}
	}

	if v := os.Getenv(EnvAllDifferences); v != "" {
		cfg.AllDifferences = parseBool(v)
		cfg.Sources["allDifferences"] = SourceEnv
	}
}

func parseBool(v string) bool {
	return v == "true" || v == "1" || v == "yes"
}
