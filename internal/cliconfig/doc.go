// Package cliconfig provides configuration types and loading for the jsonmatch CLI.
//
// It implements a layered configuration system with the following precedence
// (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (JSONMATCH_* prefix)
//  3. Config file (--config, $JSONMATCH_CONFIG, or .jsonmatch.yaml in the
//     current directory)
//  4. Default values
//
// It tracks the source of each configuration value for debugging purposes.
//
// Key types:
//
//   - CLIConfig: Complete configuration structure for the CLI
//   - ConfigError: A config file error with line/column information
//
// Key functions:
//
//   - Load: Loads and merges configuration from all sources
//   - FindLocalConfig: Locates .jsonmatch.yaml in the current directory
//   - LoadEnvConfig: Applies environment variable overrides
package cliconfig
