// Package classify builds the containment relation over registered
// paths, detects the background plate, and classifies white-filled
// regions as deletable background, letterform counters, or intentional
// interior detail.
package classify

import (
	"errors"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/geometry"
	"github.com/jmylchreest/inkform/internal/registry"
)

// Containment test parameters.
const (
	// BBoxTolerance expands the outer bbox when testing containment.
	BBoxTolerance = 0.5

	// MaxAreaRatio rejects near-identical-size nestings: an inner bbox
	// at more than 95% of the outer's area is overlap, not nesting.
	MaxAreaRatio = 0.95

	// containmentSamples and containmentAgreement govern the boundary
	// point test: 8 evenly spaced horizontal points inside the inner
	// bbox, of which at least 70% must land inside the outer shape.
	containmentSamples   = 8
	containmentAgreement = 0.7
)

// Links records one path's position in the containment relation.
type Links struct {
	ContainedBy []string `json:"contained_by"`
	Contains    []string `json:"contains"`
}

// Graph maps path id to its containment links. The relation is not
// guaranteed acyclic for pathological overlapping input; consumers
// never walk it transitively, so cycles are tolerated.
type Graph map[string]*Links

// BuildGraph tests every ordered pair of entries. An edge (outer,
// inner) is recorded when the outer bbox contains the inner bbox
// within tolerance, the inner/outer area ratio is at most 0.95, and
// the point test agrees. A provider that cannot answer PointInFill
// degrades the edge test to bounding boxes alone.
func BuildGraph(entries []*registry.PathEntry, provider geometry.Provider, logger hclog.Logger) Graph {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	g := make(Graph, len(entries))
	for _, e := range entries {
		g[e.ID] = &Links{}
	}

	edges := 0
	for _, outer := range entries {
		for _, inner := range entries {
			if outer == inner {
				continue
			}
			if !contains(outer, inner, provider) {
				continue
			}
			g[outer.ID].Contains = append(g[outer.ID].Contains, inner.ID)
			g[inner.ID].ContainedBy = append(g[inner.ID].ContainedBy, outer.ID)
			edges++
		}
	}

	logger.Debug("containment graph built", "paths", len(entries), "edges", edges)
	return g
}

// contains applies the bbox, area-ratio, and point tests in order.
func contains(outer, inner *registry.PathEntry, provider geometry.Provider) bool {
	if !outer.BBox.ContainsRect(inner.BBox, BBoxTolerance) {
		return false
	}
	if outer.BBox.Area() <= 0 {
		return false
	}
	if inner.BBox.Area()/outer.BBox.Area() > MaxAreaRatio {
		return false
	}
	return pointTestAgrees(outer, inner, provider)
}

// pointTestAgrees samples horizontal points across the middle of the
// inner bbox and requires 70% of them inside the outer fill. An
// unsupported point test falls back to accepting the bbox result.
func pointTestAgrees(outer, inner *registry.PathEntry, provider geometry.Provider) bool {
	y := inner.BBox.Y + inner.BBox.H/2
	hits := 0
	for i := 0; i < containmentSamples; i++ {
		x := inner.BBox.X + inner.BBox.W*(float64(i)+0.5)/containmentSamples
		in, err := provider.PointInFill(outer.Shape(), x, y)
		if errors.Is(err, geometry.ErrUnsupported) {
			return true
		}
		if err != nil {
			return true
		}
		if in {
			hits++
		}
	}
	return float64(hits)/containmentSamples >= containmentAgreement
}
