package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigOutput is the JSON form of the resolved configuration.
type ConfigOutput struct {
	LogLevel       string            `json:"logLevel"`
	LogFormat      string            `json:"logFormat"`
	JSON           bool              `json:"json"`
	Concurrency    int               `json:"concurrency"`
	AllDifferences bool              `json:"allDifferences"`
	ConfigFile     string            `json:"configFile,omitempty"`
	Sources        map[string]string `json:"sources"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the effective configuration after merging defaults, the config file,
JSONMATCH_* environment variables and flags, along with where each value
came from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		out := ConfigOutput{
			LogLevel:       cfg.LogLevel,
			LogFormat:      cfg.LogFormat,
			JSON:           cfg.JSON,
			Concurrency:    cfg.Concurrency,
			AllDifferences: cfg.AllDifferences,
			ConfigFile:     cfg.ConfigFile,
			Sources:        cfg.Sources,
		}

		var yamlErr error
		err := printResult(w, out, func() {
			yamlErr = printConfigAsYAML(w)
		})
		if err != nil {
			return err
		}
		return yamlErr
	},
}

// printConfigAsYAML outputs the config as YAML with a header comment.
func printConfigAsYAML(w io.Writer) error {
	if cfg.ConfigFile != "" {
		fmt.Fprintf(w, "# Resolved configuration from %s\n", cfg.ConfigFile)
	} else {
		fmt.Fprintln(w, "# Resolved configuration (no config file)")
	}

	keys := make([]string, 0, len(cfg.Sources))
	for k := range cfg.Sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "#   %s: %s\n", k, cfg.Sources[k])
	}
	fmt.Fprintln(w)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
}
