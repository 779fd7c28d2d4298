// Package cli provides the command-line interface for jsonmatch.
//
// The cli package implements the jsonmatch commands:
//   - compare: Match candidate documents against an expected document
//   - config: Display effective configuration
//   - version: Show jsonmatch version
//
// Global flags (--config, --log-level, --log-format, --json) are layered over
// the configuration loaded by internal/cliconfig. With --json every command
// writes only JSON to stdout.
package cli
