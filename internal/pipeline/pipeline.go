// Package pipeline runs the full structural analysis for one SVG
// document: normalization, registry construction, classification,
// clustering and version generation, in that fixed order.
package pipeline

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/classify"
	"github.com/jmylchreest/inkform/internal/config"
	"github.com/jmylchreest/inkform/internal/geometry"
	"github.com/jmylchreest/inkform/internal/palette"
	"github.com/jmylchreest/inkform/internal/registry"
	"github.com/jmylchreest/inkform/internal/shapes"
	"github.com/jmylchreest/inkform/internal/svg"
)

// Analyzer runs analyses against one configuration and geometry
// provider. It holds no per-document state; a single Analyzer may be
// reused across documents sequentially.
type Analyzer struct {
	cfg      *config.Config
	provider geometry.Provider
	logger   hclog.Logger
}

// New returns an Analyzer. A nil config selects the defaults, a nil
// provider the built-in pure-computation one.
func New(cfg *config.Config, provider geometry.Provider, logger hclog.Logger) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	if provider == nil {
		provider = geometry.NewPathProvider()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyzer{cfg: cfg, provider: provider, logger: logger}
}

// Result is the complete analysis output for one document.
type Result struct {
	ViewBox svg.ViewBox `json:"viewbox"`

	Paths       []*registry.PathEntry  `json:"paths"`
	Paints      []*registry.Paint      `json:"paints"`
	PaintGroups []*registry.PaintGroup `json:"paint_groups"`

	// Gradients classifies every non-solid paint by paint id.
	Gradients map[string]registry.GradientClassification `json:"gradients,omitempty"`

	BackgroundPlate *classify.Plate     `json:"background_plate,omitempty"`
	WhiteDecisions  []classify.Decision `json:"white_decisions"`

	ShapeClusters []*shapes.Cluster `json:"shape_clusters"`

	InkProfile []palette.InkEntry `json:"ink_profile"`
	Versions   []palette.Version  `json:"versions"`
}

// Analyze runs the whole pipeline over one document's markup. The
// only terminal error is unparsable markup; everything downstream
// degrades per stage instead of failing.
func (a *Analyzer) Analyze(markup string, hints *shapes.Hints) (*Result, error) {
	doc, err := svg.ParseString(markup)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	norm := svg.Normalize(doc, a.logger)
	reg := registry.Build(norm, a.provider, a.cfg.Analysis.GroupDeltaE, a.logger)

	graph := classify.BuildGraph(reg.Entries, a.provider, a.logger)
	plate := classify.DetectBackground(reg.Entries, norm.ViewBox, a.logger)
	decisions := classify.ClassifyWhiteRegions(reg, graph, plate, norm.ViewBox, a.logger)

	clusters := shapes.BuildClusters(reg, norm.ViewBox, a.cfg.Analysis.ClusterDistanceFrac, hints, a.logger)

	gradients := make(map[string]registry.GradientClassification)
	for _, p := range reg.Paints {
		if p.Kind == registry.PaintSolid || p.Kind == registry.PaintNone {
			continue
		}
		gradients[p.ID] = registry.ClassifyGradient(p)
	}

	result := &Result{
		ViewBox:         norm.ViewBox,
		Paths:           reg.Entries,
		Paints:          reg.Paints,
		PaintGroups:     reg.Groups,
		Gradients:       gradients,
		BackgroundPlate: plate,
		WhiteDecisions:  decisions,
		ShapeClusters:   clusters,
		InkProfile:      palette.BuildInkProfile(reg, decisions, a.logger),
		Versions:        palette.BuildVersions(reg, decisions, markup, a.logger),
	}

	a.logger.Info("analysis complete",
		"paths", len(result.Paths),
		"paints", len(result.Paints),
		"groups", len(result.PaintGroups),
		"clusters", len(result.ShapeClusters),
		"inks", len(result.InkProfile))
	return result, nil
}
