package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/jsonmatch/internal/cliconfig"
	"github.com/getmockd/jsonmatch/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configFile string
	logLevel   string
	logFormat  string
	jsonOutput bool

	// cfg and log are set by the root command before any subcommand runs.
	cfg = cliconfig.NewDefault()
	log = logging.Nop()

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jsonmatch",
	Short: "jsonmatch compares JSON documents structurally",
	Long: `jsonmatch compares JSON documents by structure and value.

Object key order and formatting are ignored, array order is significant and
numbers compare by value (1, 1.0 and 1e0 are equal). For every document that
differs, jsonmatch reports the path of the first divergence and a diff.

Configuration can be provided via flags, environment variables (JSONMATCH_*),
or a configuration file. By default, jsonmatch looks for .jsonmatch.yaml in
the current directory.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
}

// loadConfig layers flags over the loaded configuration and builds the logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := cliconfig.Load(configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
		loaded.Sources["logLevel"] = cliconfig.SourceFlag
	}
	if flags.Changed("log-format") {
		loaded.LogFormat = logFormat
		loaded.Sources["logFormat"] = cliconfig.SourceFlag
	}
	if flags.Changed("json") {
		loaded.JSON = jsonOutput
		loaded.Sources["json"] = cliconfig.SourceFlag
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	cfg = loaded
	jsonOutput = cfg.JSON
	log = newLogger(cfg, cmd.ErrOrStderr())

	log.Debug("configuration loaded",
		"file", cfg.ConfigFile,
		"logLevel", cfg.LogLevel,
		"concurrency", cfg.Concurrency,
		"sources", cfg.Sources,
	)
	return nil
}

func newLogger(c *cliconfig.CLIConfig, w io.Writer) *slog.Logger {
	lc := logging.DefaultConfig()
	lc.Level = logging.ParseLevel(c.LogLevel)
	lc.Format = logging.ParseFormat(c.LogFormat)
	lc.Output = w
	return logging.New(lc)
}

// Main runs the root command and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintln(os.Stderr, exitErr.Err)
			}
			return exitErr.Code
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitUsage
	}
	return ExitOK
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(Main())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: .jsonmatch.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
