package palette

import (
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/colour"
)

// Entry is one colour of a reduced palette.
type Entry struct {
	Hex  string      `json:"hex"`
	RGBA colour.RGBA `json:"rgba"`
	Lab  colour.Lab  `json:"lab"`
	Area float64     `json:"area"`
}

// Reduce shrinks an ink profile to at most max colours by repeatedly
// merging the closest remaining pair. The merged colour is the
// area-weighted average of the pair's RGB channels and keeps their
// combined area, so total area is conserved. A max of zero or less
// means unlimited. Greedy and not optimal; equal-distance ties go to
// the first pair in scan order.
func Reduce(profile []InkEntry, max int, logger hclog.Logger) []Entry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	entries := make([]Entry, len(profile))
	for i, ink := range profile {
		entries[i] = Entry{Hex: ink.Hex, RGBA: ink.RGBA, Lab: ink.Lab, Area: ink.Area}
	}
	if max <= 0 || len(entries) <= max {
		return entries
	}

	for len(entries) > max {
		bi, bj := 0, 1
		best := math.Inf(1)
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if d := colour.DeltaE(entries[i].Lab, entries[j].Lab); d < best {
					best, bi, bj = d, i, j
				}
			}
		}

		merged := merge(entries[bi], entries[bj])
		logger.Debug("palette merge", "a", entries[bi].Hex, "b", entries[bj].Hex,
			"deltaE", best, "into", merged.Hex)
		entries[bi] = merged
		entries = append(entries[:bj], entries[bj+1:]...)
	}
	return entries
}

// merge averages two palette entries channel-wise, weighted by each
// entry's share of their combined area.
func merge(a, b Entry) Entry {
	total := a.Area + b.Area
	wa, wb := 0.5, 0.5
	if total > 0 {
		wa, wb = a.Area/total, b.Area/total
	}

	rgba := colour.RGBA{
		R: uint8(float64(a.RGBA.R)*wa + float64(b.RGBA.R)*wb + 0.5),
		G: uint8(float64(a.RGBA.G)*wa + float64(b.RGBA.G)*wb + 0.5),
		B: uint8(float64(a.RGBA.B)*wa + float64(b.RGBA.B)*wb + 0.5),
		A: 255,
	}
	return Entry{
		Hex:  rgba.Hex(),
		RGBA: rgba,
		Lab:  colour.RGBToLab(rgba),
		Area: total,
	}
}
