package palette

import (
	"github.com/jmylchreest/inkform/internal/colour"
	"github.com/jmylchreest/inkform/internal/registry"
)

// Mapping assigns every paint group id a target fill value: "none",
// "#ffffff", or a palette hex.
type Mapping map[string]string

// MapPaints maps every paint group in the registry onto the palette.
// Groups with no paint map to "none", white-like groups to "#ffffff",
// and everything else to the nearest palette entry by ΔE. With an
// empty palette a group keeps its own flattened colour, so the mapping
// stays total.
func MapPaints(reg *registry.Registry, pal []Entry) Mapping {
	m := make(Mapping, len(reg.Groups))
	for _, g := range reg.Groups {
		rep := g.Representative
		switch {
		case rep == nil || rep.Kind == registry.PaintNone:
			m[g.ID] = "none"
		case rep.IsWhiteLike():
			m[g.ID] = "#ffffff"
		default:
			rgba, lab := representativeColour(rep)
			m[g.ID] = nearestHex(lab, pal, rgba.Hex())
		}
	}
	return m
}

// nearestHex returns the hex of the palette entry closest to lab,
// scanning in order so ties resolve to the first entry. fallback is
// used when the palette is empty.
func nearestHex(lab colour.Lab, pal []Entry, fallback string) string {
	if len(pal) == 0 {
		return fallback
	}
	best := pal[0]
	bestD := colour.DeltaE(lab, best.Lab)
	for _, e := range pal[1:] {
		if d := colour.DeltaE(lab, e.Lab); d < bestD {
			best, bestD = e, d
		}
	}
	return best.Hex
}
