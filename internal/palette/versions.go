package palette

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/classify"
	"github.com/jmylchreest/inkform/internal/registry"
)

// Spec is one fixed output version: a colour ceiling and whether
// gradients survive as authored.
type Spec struct {
	Name          string `json:"name"`
	MaxColours    int    `json:"max_colours"`
	KeepGradients bool   `json:"keep_gradients"`
}

// DefaultSpecs is the fixed version set, always all four.
var DefaultSpecs = []Spec{
	{Name: "Full Color", MaxColours: 0, KeepGradients: true},
	{Name: "3-5 Color", MaxColours: 5},
	{Name: "2 Color", MaxColours: 2},
	{Name: "1 Color", MaxColours: 1},
}

// Version is one generated output: its palette and the paint mapping
// a renderer applies to produce the final markup. The full-colour
// version instead passes the original markup through untouched.
type Version struct {
	Spec    Spec    `json:"spec"`
	Palette []Entry `json:"palette"`
	Mapping Mapping `json:"mapping,omitempty"`
	Markup  string  `json:"markup,omitempty"`
}

// BuildVersions derives the ink profile once and produces every
// default version from it.
func BuildVersions(reg *registry.Registry, decisions []classify.Decision, originalMarkup string, logger hclog.Logger) []Version {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	profile := BuildInkProfile(reg, decisions, logger)

	versions := make([]Version, 0, len(DefaultSpecs))
	for _, spec := range DefaultSpecs {
		v := Version{Spec: spec}
		if spec.KeepGradients {
			// As authored; the palette records the full profile.
			v.Palette = Reduce(profile, 0, logger)
			v.Markup = originalMarkup
		} else {
			v.Palette = Reduce(profile, spec.MaxColours, logger)
			v.Mapping = MapPaints(reg, v.Palette)
		}
		logger.Debug("version built", "name", spec.Name, "palette_size", len(v.Palette))
		versions = append(versions, v)
	}
	return versions
}
