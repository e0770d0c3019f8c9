// Package palette derives the ink profile of a document, reduces it
// to fixed-size palettes, and maps every paint group onto the reduced
// colours.
package palette

import (
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/classify"
	"github.com/jmylchreest/inkform/internal/colour"
	"github.com/jmylchreest/inkform/internal/registry"
)

// InkEntry is one surviving paint group with its total visible area.
type InkEntry struct {
	GroupID    string      `json:"group_id"`
	Hex        string      `json:"hex"`
	RGBA       colour.RGBA `json:"rgba"`
	Lab        colour.Lab  `json:"lab"`
	Area       float64     `json:"area"`
	IsGradient bool        `json:"is_gradient"`
}

// BuildInkProfile totals the visible area of every paint group that
// survives exclusion and returns the groups sorted by area, largest
// first. Excluded: groups whose representative carries no paint, is a
// white-like solid, or whose member paths are all slated for deletion
// or counter punching.
func BuildInkProfile(reg *registry.Registry, decisions []classify.Decision, logger hclog.Logger) []InkEntry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	excluded := make(map[string]bool)
	for _, d := range decisions {
		if d.Classification == classify.BackgroundDelete || d.Classification == classify.CounterHole {
			excluded[d.PathID] = true
		}
	}

	var profile []InkEntry
	for _, g := range reg.Groups {
		rep := g.Representative
		if rep == nil || rep.Kind == registry.PaintNone || rep.IsWhiteLike() {
			continue
		}

		entries := reg.EntriesFilledBy(g)
		area := 0.0
		kept := 0
		for _, e := range entries {
			if excluded[e.ID] {
				continue
			}
			area += e.Area
			kept++
		}
		if len(entries) > 0 && kept == 0 {
			logger.Debug("ink profile drops fully excluded group", "group", g.ID)
			continue
		}

		rgba, lab := representativeColour(rep)
		profile = append(profile, InkEntry{
			GroupID:    g.ID,
			Hex:        rgba.Hex(),
			RGBA:       rgba,
			Lab:        lab,
			Area:       area,
			IsGradient: rep.Kind == registry.PaintLinear || rep.Kind == registry.PaintRadial || rep.Kind == registry.PaintMesh,
		})
	}

	sort.SliceStable(profile, func(i, j int) bool {
		return profile[i].Area > profile[j].Area
	})
	return profile
}

// representativeColour flattens a paint to one solid colour. Solids
// are themselves; gradients average their stop colours; anything else
// falls back to black.
func representativeColour(p *registry.Paint) (colour.RGBA, colour.Lab) {
	if p.IsSolid() {
		return p.RGBA, p.Lab
	}
	if len(p.Stops) > 0 {
		var r, g, b float64
		for _, s := range p.Stops {
			r += float64(s.RGB.R)
			g += float64(s.RGB.G)
			b += float64(s.RGB.B)
		}
		n := float64(len(p.Stops))
		rgba := colour.RGBA{
			R: uint8(r/n + 0.5),
			G: uint8(g/n + 0.5),
			B: uint8(b/n + 0.5),
			A: 255,
		}
		return rgba, colour.RGBToLab(rgba)
	}
	black := colour.Black
	return black, colour.RGBToLab(black)
}
