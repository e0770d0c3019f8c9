// Package shapes groups registered paths into spatial clusters and
// labels each cluster as icon, wordmark, or unknown.
package shapes

import (
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/colour"
	"github.com/jmylchreest/inkform/internal/geometry"
	"github.com/jmylchreest/inkform/internal/registry"
	"github.com/jmylchreest/inkform/internal/svg"
)

// ClusterType labels what a spatial cluster most likely is.
type ClusterType string

const (
	ClusterIcon     ClusterType = "icon"
	ClusterWordmark ClusterType = "wordmark"
	ClusterUnknown  ClusterType = "unknown"
)

// Cluster is one spatial group of paths with its aggregate geometry
// and type label.
type Cluster struct {
	ID          string        `json:"id"`
	Type        ClusterType   `json:"type"`
	Confidence  float64       `json:"confidence"`
	BBox        geometry.Rect `json:"bbox"`
	AspectRatio float64       `json:"aspect_ratio"`
	MemberCount int           `json:"member_count"`
	PathIDs     []string      `json:"path_ids"`
	OriginalIDs []string      `json:"original_ids"`
}

// Hints carries externally supplied icon/wordmark path id sets. An
// upstream vision pass may know which original elements spell the
// wordmark; those ids override the aspect-ratio heuristic.
type Hints struct {
	IconPaths     []string `json:"icon_paths"`
	WordmarkPaths []string `json:"wordmark_paths"`
}

// ClusterDistanceFrac is the merge threshold as a fraction of the
// viewBox diagonal.
const ClusterDistanceFrac = 0.15

// minClusterArea excludes degenerate slivers from clustering.
const minClusterArea = 1.0

// BuildClusters groups every filled path with area of at least one
// square unit by centroid distance, labels each cluster, applies any
// hints, and returns icon clusters first. distanceFrac is the merge
// threshold as a fraction of the viewBox diagonal; zero selects
// ClusterDistanceFrac.
func BuildClusters(reg *registry.Registry, vb svg.ViewBox, distanceFrac float64, hints *Hints, logger hclog.Logger) []*Cluster {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if distanceFrac <= 0 {
		distanceFrac = ClusterDistanceFrac
	}

	var candidates []*registry.PathEntry
	for _, e := range reg.Entries {
		if e.FillPaint == nil || e.FillPaint.Kind == registry.PaintNone {
			continue
		}
		if e.Area < minClusterArea {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return nil
	}

	threshold := distanceFrac * vb.Diagonal()
	groups := colour.ClusterByDistance(candidates, threshold, func(a, b *registry.PathEntry) float64 {
		return math.Hypot(a.Centroid.X-b.Centroid.X, a.Centroid.Y-b.Centroid.Y)
	})

	clusters := make([]*Cluster, 0, len(groups))
	for i, members := range groups {
		c := &Cluster{
			ID:          fmt.Sprintf("cluster_%d", i),
			BBox:        unionBBox(members),
			MemberCount: len(members),
		}
		for _, m := range members {
			c.PathIDs = append(c.PathIDs, m.ID)
			c.OriginalIDs = append(c.OriginalIDs, m.OriginalID)
		}

		height := c.BBox.H
		if height == 0 {
			height = 1
		}
		c.AspectRatio = c.BBox.W / height

		c.Type, c.Confidence = labelCluster(c.AspectRatio, c.MemberCount)
		applyHints(c, hints)

		logger.Debug("shape cluster", "id", c.ID, "type", c.Type,
			"confidence", c.Confidence, "members", c.MemberCount,
			"aspect", c.AspectRatio)
		clusters = append(clusters, c)
	}

	// Icon clusters sort ahead of everything else; within a band the
	// original order holds.
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Type == ClusterIcon && clusters[j].Type != ClusterIcon
	})
	return clusters
}

// labelCluster maps a cluster's aspect ratio and size onto a type. The
// bands are evaluated in order, so a wide-but-small cluster such as
// aspect 1.8 with 3 members falls through to unknown.
func labelCluster(aspect float64, members int) (ClusterType, float64) {
	switch {
	case aspect > 3.0:
		return ClusterWordmark, 0.85
	case aspect > 2.0 && members > 5:
		return ClusterWordmark, 0.65
	case aspect < 2.0 && members <= 8:
		return ClusterIcon, 0.7
	case aspect < 1.5:
		return ClusterIcon, 0.8
	}
	return ClusterUnknown, 0.5
}

// applyHints overrides the heuristic label when one hinted category
// overlaps strictly more cluster members than the other. A tie keeps
// the heuristic result.
func applyHints(c *Cluster, hints *Hints) {
	if hints == nil {
		return
	}

	iconHits := overlap(c, hints.IconPaths)
	wordHits := overlap(c, hints.WordmarkPaths)
	switch {
	case iconHits > wordHits:
		c.Type = ClusterIcon
	case wordHits > iconHits:
		c.Type = ClusterWordmark
	default:
		return
	}
	if c.Confidence < 0.8 {
		c.Confidence = 0.8
	}
}

// overlap counts hinted ids present among the cluster's path or
// original ids.
func overlap(c *Cluster, hinted []string) int {
	ids := make(map[string]bool, len(c.PathIDs)+len(c.OriginalIDs))
	for _, id := range c.PathIDs {
		ids[id] = true
	}
	for _, id := range c.OriginalIDs {
		ids[id] = true
	}

	n := 0
	for _, h := range hinted {
		if ids[h] {
			n++
		}
	}
	return n
}

func unionBBox(members []*registry.PathEntry) geometry.Rect {
	bbox := members[0].BBox
	for _, m := range members[1:] {
		minX := math.Min(bbox.X, m.BBox.X)
		minY := math.Min(bbox.Y, m.BBox.Y)
		maxX := math.Max(bbox.X+bbox.W, m.BBox.X+m.BBox.W)
		maxY := math.Max(bbox.Y+bbox.H, m.BBox.Y+m.BBox.H)
		bbox = geometry.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	}
	return bbox
}
