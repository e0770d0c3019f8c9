package classify

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/registry"
	"github.com/jmylchreest/inkform/internal/svg"
)

// Classification is the verdict for one white-filled path.
type Classification string

const (
	BackgroundDelete Classification = "background_delete"
	CounterHole      Classification = "counter_hole"
	InteriorKeep     Classification = "interior_keep"
	UnknownReview    Classification = "unknown_review"
)

// Decision is one white-region classification with its confidence and
// the reasons the deciding rule fired.
type Decision struct {
	PathID         string         `json:"path_id"`
	OriginalID     string         `json:"original_id,omitempty"`
	Classification Classification `json:"classification"`
	Confidence     float64        `json:"confidence"`
	Reasons        []string       `json:"reasons"`
}

// Rule cascade thresholds.
const (
	ruleLargeAreaRatio  = 0.85
	ruleLargeZIndex     = 2
	ruleMediumAreaRatio = 0.30
	ruleMediumZIndex    = 3
	ruleSmallAreaRatio  = 0.05

	// simpleContainerLimit is the most shapes a container may hold and
	// still read as a simple letterform.
	simpleContainerLimit = 5
)

// ClassifyWhiteRegions evaluates the rule cascade for every
// white-filled path. Rules run in fixed priority order; the first
// match decides, each carrying a fixed confidence.
func ClassifyWhiteRegions(reg *registry.Registry, graph Graph, plate *Plate, vb svg.ViewBox, logger hclog.Logger) []Decision {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var decisions []Decision
	for _, e := range reg.Entries {
		if e.FillPaint == nil || !e.FillPaint.IsWhiteLike() {
			continue
		}
		d := classifyWhitePath(e, reg, graph, plate, vb)
		decisions = append(decisions, d)
		logger.Debug("white region classified",
			"path", d.PathID, "class", d.Classification, "confidence", d.Confidence)
	}
	return decisions
}

// classifyWhitePath runs the cascade for a single white path.
func classifyWhitePath(e *registry.PathEntry, reg *registry.Registry, graph Graph, plate *Plate, vb svg.ViewBox) Decision {
	d := Decision{PathID: e.ID, OriginalID: e.OriginalID}

	vbArea := vb.Width * vb.Height
	areaRatio := 0.0
	if vbArea > 0 {
		areaRatio = e.Area / vbArea
	}
	edges := TouchedEdges(e, vb)

	// Rule 1: the designated background plate.
	if plate != nil && plate.PathID == e.ID {
		d.Classification = BackgroundDelete
		d.Confidence = 0.95
		d.Reasons = []string{"designated background plate"}
		return d
	}

	// Rule 2: near-full coverage painted first and touching an edge.
	if areaRatio > ruleLargeAreaRatio && e.ZIndex <= ruleLargeZIndex && edges >= 1 {
		d.Classification = BackgroundDelete
		d.Confidence = 0.9
		d.Reasons = []string{"covers most of the viewBox", "paints first", "touches the viewBox edge"}
		return d
	}

	// Rule 3: a white subpath of a compound whose siblings are not
	// white, the classic punched counter.
	if e.CompoundParent != "" && hasNonWhiteSiblings(e, reg) {
		d.Classification = CounterHole
		d.Confidence = 0.85
		d.Reasons = []string{"white subpath of a compound path with non-white siblings"}
		return d
	}

	// Rule 4: contained by a non-white shape.
	if container := simplestNonWhiteContainer(e, reg, graph); container != nil {
		if len(graph[container.ID].Contains) <= simpleContainerLimit {
			d.Classification = CounterHole
			d.Confidence = 0.8
			d.Reasons = []string{"contained by a simple non-white shape"}
		} else {
			d.Classification = InteriorKeep
			d.Confidence = 0.75
			d.Reasons = []string{"contained by a busy non-white shape"}
		}
		return d
	}

	// Rule 5: substantial early shape on the edge.
	if areaRatio > ruleMediumAreaRatio && edges >= 1 && e.ZIndex <= ruleMediumZIndex {
		d.Classification = BackgroundDelete
		d.Confidence = 0.65
		d.Reasons = []string{"large early shape touching the viewBox edge"}
		return d
	}

	// Rule 6: small isolated white detail defaults to keep.
	if areaRatio < ruleSmallAreaRatio {
		d.Classification = InteriorKeep
		d.Confidence = 0.5
		d.Reasons = []string{"small isolated white shape"}
		return d
	}

	// Rule 7: nothing matched.
	d.Classification = UnknownReview
	d.Confidence = 0.3
	d.Reasons = []string{"no rule matched"}
	return d
}

// hasNonWhiteSiblings reports whether any sibling subpath of the same
// compound parent carries a non-white fill.
func hasNonWhiteSiblings(e *registry.PathEntry, reg *registry.Registry) bool {
	for _, other := range reg.Entries {
		if other == e || other.CompoundParent != e.CompoundParent {
			continue
		}
		if other.FillPaint != nil && !other.FillPaint.IsWhiteLike() && other.FillPaint.Kind != registry.PaintNone {
			return true
		}
	}
	return false
}

// simplestNonWhiteContainer returns the containing non-white entry
// with the fewest contained shapes, or nil when no non-white shape
// contains e. Preferring the simplest container makes rule 4 decide
// counter-versus-detail on the tightest letterform around the hole.
func simplestNonWhiteContainer(e *registry.PathEntry, reg *registry.Registry, graph Graph) *registry.PathEntry {
	links, ok := graph[e.ID]
	if !ok {
		return nil
	}

	var best *registry.PathEntry
	bestCount := 0
	for _, id := range links.ContainedBy {
		container := reg.EntryByID(id)
		if container == nil || container.FillPaint == nil {
			continue
		}
		if container.FillPaint.IsWhiteLike() || container.FillPaint.Kind == registry.PaintNone {
			continue
		}
		count := len(graph[id].Contains)
		if best == nil || count < bestCount {
			best = container
			bestCount = count
		}
	}
	return best
}
