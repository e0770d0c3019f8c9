package registry

import (
	"fmt"
	"math"

	"github.com/jmylchreest/inkform/internal/geometry"
)

// Fingerprint is the cheap geometric identity of one path. PointHash
// is a debug aid only; no correctness-critical comparison reads it.
type Fingerprint struct {
	BBox      geometry.Rect  `json:"bbox"`
	Area      float64        `json:"area"`
	Centroid  geometry.Point `json:"centroid"`
	Perimeter float64        `json:"perimeter"`
	PointHash string         `json:"point_hash"`
}

// PathEntry is one registered path. Entries are created once during
// registry construction and never mutated or deleted; a fresh registry
// is built per input document.
type PathEntry struct {
	ID         string `json:"id"`
	OriginalID string `json:"original_id"`

	Fingerprint

	FillPaint   *Paint `json:"fill_paint"`
	StrokePaint *Paint `json:"stroke_paint,omitempty"`
	FillRule    string `json:"fill_rule"`

	// ZIndex is document paint order; earlier paths paint first and
	// are more likely background.
	ZIndex int `json:"z_index"`

	CompoundParent string `json:"compound_parent,omitempty"`
	SubpathIndex   int    `json:"subpath_index"`

	// PathData is the flattened absolute path data the fingerprint was
	// measured from.
	PathData string `json:"-"`
}

// Shape returns the entry's geometry-provider input.
func (e *PathEntry) Shape() geometry.Shape {
	return geometry.Shape{PathData: e.PathData, FillRule: e.FillRule}
}

// fingerprintSamples is the boundary sample count feeding PointHash.
const fingerprintSamples = 16

// fingerprint measures one shape through the provider. Provider
// failures degrade to a zero fingerprint rather than erroring; a shape
// with zero area and zero perimeter is later skipped by the builder.
func fingerprint(provider geometry.Provider, shape geometry.Shape) Fingerprint {
	var fp Fingerprint

	bbox, err := provider.BoundingBox(shape)
	if err == nil {
		fp.BBox = bbox
		fp.Area = bbox.Area()
		fp.Centroid = bbox.Center()
	}

	length, err := provider.PathLength(shape)
	if err == nil {
		fp.Perimeter = length
	}

	fp.PointHash = pointHash(provider, shape, fp.Perimeter)
	return fp
}

// pointHash rolls an order-sensitive hash over up to 16 evenly spaced
// boundary samples. Unsupported sampling yields an empty hash.
func pointHash(provider geometry.Provider, shape geometry.Shape, length float64) string {
	if length <= 0 {
		return ""
	}

	var h uint64 = 1469598103934665603 // FNV offset basis
	for i := 0; i < fingerprintSamples; i++ {
		pt, err := provider.PointAtLength(shape, length*float64(i)/fingerprintSamples)
		if err != nil {
			return ""
		}
		h = h*31 + uint64(int64(math.Round(pt.X*10)))
		h = h*31 + uint64(int64(math.Round(pt.Y*10)))
	}
	return fmt.Sprintf("%016x", h)
}
