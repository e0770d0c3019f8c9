// Package cli provides the command-line interface for inkform.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/inkform/internal/config"
	"github.com/jmylchreest/inkform/internal/version"
)

var (
	// Global flags
	globalConfigPath string
	globalLogJSON    bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "inkform",
		Short: "Structural analysis and palette reduction for vector logos",
		Long: `Inkform analyses an SVG document's structure: it normalizes the
geometry, registers every visible path and paint, detects background
plates and punched white counters, clusters shapes into icon and
wordmark groups, and reduces the ink profile to fixed-size palettes
for limited-colour reproduction.

The output drives a downstream renderer: each reduced version carries
a paint mapping from every paint group to its target colour.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "path to a TOML configuration file")
	rootCmd.PersistentFlags().BoolVar(&globalLogJSON, "log-json", false, "emit logs as JSON lines")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyseCmd)
	rootCmd.AddCommand(versionsCmd)
}

// loadConfig resolves the effective configuration for a command run:
// the --config file when given, otherwise the defaults.
func loadConfig() (*config.Config, error) {
	if globalConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(globalConfigPath)
}

// newLogger builds the command logger from the global flags and the
// configured level.
func newLogger(cmd *cobra.Command, cfg *config.Config) hclog.Logger {
	level := hclog.LevelFromString(cfg.Logging.Level)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "inkform",
		Level:      level,
		Output:     os.Stderr,
		JSONFormat: globalLogJSON || cfg.Logging.JSON,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
