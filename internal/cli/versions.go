package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/inkform/internal/pipeline"
	"github.com/jmylchreest/inkform/internal/svg"
)

var versionsOutput string

// versionsCmd represents the versions command
var versionsCmd = &cobra.Command{
	Use:   "versions <svg>",
	Short: "Derive the reduced colour versions of an SVG document",
	Long: `Analyse an SVG document and emit its fixed set of colour versions as
JSON: the reduced palette of each version and the paint mapping that
takes every paint group onto that palette.

Examples:
  # Derive the version set for a logo
  inkform versions logo.svg

  # Write the version set to a file
  inkform versions -o versions.json logo.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().StringVarP(&versionsOutput, "output", "o", "", "output file (default: stdout)")
}

// runVersions executes the versions command.
func runVersions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	markup, err := svg.LoadFile(args[0])
	if err != nil {
		return err
	}

	result, err := pipeline.New(cfg, nil, logger).Analyze(markup, nil)
	if err != nil {
		return err
	}

	out := os.Stdout
	if versionsOutput != "" {
		f, err := os.Create(versionsOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Versions)
}
