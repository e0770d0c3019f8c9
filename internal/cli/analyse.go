package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/inkform/internal/colour"
	"github.com/jmylchreest/inkform/internal/config"
	"github.com/jmylchreest/inkform/internal/geometry"
	"github.com/jmylchreest/inkform/internal/pipeline"
	"github.com/jmylchreest/inkform/internal/shapes"
	"github.com/jmylchreest/inkform/internal/svg"
)

var (
	// Analyse command flags
	analyseFormat      formatValue
	analyseOutput      string
	analyseHints       string
	analyseDeltaE      float64
	analysePlugin      string
	analyseShowPreview bool
)

// formatValue is a pflag.Value that only accepts the supported output
// formats, so a typo fails at flag parsing instead of after analysis.
type formatValue string

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(v string) error {
	switch v {
	case "text", "json":
		*f = formatValue(v)
		return nil
	}
	return fmt.Errorf("must be text or json, got %q", v)
}

func (f *formatValue) Type() string { return "format" }

// analyseCmd represents the analyse command
var analyseCmd = &cobra.Command{
	Use:   "analyse <svg>",
	Short: "Analyse the structure of an SVG document",
	Long: `Analyse an SVG document: normalize its geometry, register paths and
paints, detect the background plate, classify white regions, cluster
shapes and derive reduced colour versions.

Examples:
  # Analyse a logo and print a structural summary
  inkform analyse logo.svg

  # Full analysis as JSON
  inkform analyse --format json logo.svg

  # Use externally supplied icon/wordmark hints
  inkform analyse --hints hints.json logo.svg

  # Tighten paint grouping to a perceptual distance of 6
  inkform analyse --delta-e 6 logo.svg

  # Measure geometry through an external provider plugin
  inkform analyse --geometry-plugin ./resvg-geometry logo.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyse,
}

func init() {
	analyseCmd.Flags().VarP(&analyseFormat, "format", "f", "output format (text, json)")
	analyseCmd.Flags().StringVarP(&analyseOutput, "output", "o", "", "output file (default: stdout)")
	analyseCmd.Flags().StringVar(&analyseHints, "hints", "", "JSON file with icon/wordmark path id hints")
	analyseCmd.Flags().Float64Var(&analyseDeltaE, "delta-e", 0, "ΔE threshold for paint grouping (default from config)")
	analyseCmd.Flags().StringVar(&analysePlugin, "geometry-plugin", "", "path to an external geometry provider plugin")
	analyseCmd.Flags().BoolVar(&analyseShowPreview, "preview", false, "show colour previews in terminal output (overrides config)")
}

// runAnalyse executes the analyse command.
func runAnalyse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyseDeltaE > 0 {
		cfg.Analysis.GroupDeltaE = analyseDeltaE
	}
	logger := newLogger(cmd, cfg)

	markup, err := svg.LoadFile(args[0])
	if err != nil {
		return err
	}

	hints, err := loadHints(analyseHints)
	if err != nil {
		return err
	}

	var provider geometry.Provider
	pluginPath := analysePlugin
	if pluginPath == "" {
		pluginPath = cfg.Geometry.PluginPath
	}
	if pluginPath != "" {
		p, closePlugin, err := geometry.ConnectPlugin(pluginPath, logger)
		if err != nil {
			return err
		}
		defer closePlugin()
		provider = p
	}

	result, err := pipeline.New(cfg, provider, logger).Analyze(markup, hints)
	if err != nil {
		return err
	}

	out := os.Stdout
	if analyseOutput != "" {
		f, err := os.Create(analyseOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	format := string(analyseFormat)
	if format == "" {
		format = cfg.Output.Format
	}
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "text":
		preview := previewEnabled(cmd, cfg) && analyseOutput == "" && term.IsTerminal(int(os.Stdout.Fd()))
		return writeTextReport(out, result, preview)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// previewEnabled resolves the effective preview setting. An explicit
// --preview wins over the config in both directions.
func previewEnabled(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Changed("preview") {
		v, _ := cmd.Flags().GetBool("preview")
		return v
	}
	return cfg.Output.Preview
}

// loadHints reads an icon/wordmark hint file. An empty path means no
// hints.
func loadHints(path string) (*shapes.Hints, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hints: %w", err)
	}
	var hints shapes.Hints
	if err := json.Unmarshal(data, &hints); err != nil {
		return nil, fmt.Errorf("parsing hints: %w", err)
	}
	return &hints, nil
}

// writeTextReport renders the human-readable structural summary.
func writeTextReport(w io.Writer, result *pipeline.Result, preview bool) error {
	fmt.Fprintf(w, "viewBox: %g %g %g %g\n\n",
		result.ViewBox.X, result.ViewBox.Y, result.ViewBox.Width, result.ViewBox.Height)

	groups := NewTable([]string{"Group", "Kind", "Colour", "Paints"})
	for _, g := range result.PaintGroups {
		rep := g.Representative
		swatch := rep.Hex
		if rep.Kind != "solid" {
			swatch = string(rep.Kind)
		} else if preview {
			swatch = colour.Preview(rep.RGBA, 4) + " " + rep.Hex
		}
		groups.AddRow([]string{g.ID, string(rep.Kind), swatch, strings.Join(g.Members, ", ")})
	}
	fmt.Fprintf(w, "Paint groups (%d):\n%s\n", len(result.PaintGroups), groups.Render())

	if result.BackgroundPlate != nil {
		fmt.Fprintf(w, "Background plate: %s (score %.2f)\n",
			result.BackgroundPlate.PathID, result.BackgroundPlate.Score)
	} else {
		fmt.Fprintln(w, "Background plate: none")
	}

	if len(result.WhiteDecisions) > 0 {
		decisions := NewTable([]string{"Path", "Classification", "Confidence", "Reason"})
		decisions.SetColumnMaxWidth(3, 50)
		for _, d := range result.WhiteDecisions {
			decisions.AddRow([]string{
				d.PathID,
				string(d.Classification),
				fmt.Sprintf("%.2f", d.Confidence),
				strings.Join(d.Reasons, "; "),
			})
		}
		fmt.Fprintf(w, "\nWhite regions (%d):\n%s", len(result.WhiteDecisions), decisions.Render())
	}

	if len(result.ShapeClusters) > 0 {
		clusters := NewTable([]string{"Cluster", "Type", "Confidence", "Members", "Aspect"})
		for _, c := range result.ShapeClusters {
			clusters.AddRow([]string{
				c.ID,
				string(c.Type),
				fmt.Sprintf("%.2f", c.Confidence),
				fmt.Sprintf("%d", c.MemberCount),
				fmt.Sprintf("%.2f", c.AspectRatio),
			})
		}
		fmt.Fprintf(w, "\nShape clusters (%d):\n%s", len(result.ShapeClusters), clusters.Render())
	}

	inks := NewTable([]string{"Ink", "Area", "Gradient"})
	for _, ink := range result.InkProfile {
		swatch := ink.Hex
		if preview {
			swatch = colour.Preview(ink.RGBA, 4) + " " + ink.Hex
		}
		inks.AddRow([]string{swatch, fmt.Sprintf("%.1f", ink.Area), fmt.Sprintf("%v", ink.IsGradient)})
	}
	fmt.Fprintf(w, "\nInk profile (%d):\n%s", len(result.InkProfile), inks.Render())

	fmt.Fprintln(w, "\nVersions:")
	for _, v := range result.Versions {
		hexes := make([]string, len(v.Palette))
		for i, e := range v.Palette {
			if preview {
				hexes[i] = colour.PreviewWithText(e.RGBA, e.Hex, 9)
			} else {
				hexes[i] = e.Hex
			}
		}
		fmt.Fprintf(w, "  %-12s %d colours: %s\n", v.Spec.Name, len(v.Palette), strings.Join(hexes, " "))
	}
	return nil
}
