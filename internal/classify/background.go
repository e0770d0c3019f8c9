package classify

import (
	"math"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/registry"
	"github.com/jmylchreest/inkform/internal/svg"
)

// Background plate scoring parameters. A candidate needs a weighted
// score above MinPlateScore to be designated the plate.
const (
	MinPlateScore = 0.6

	plateAreaWeight  = 0.3
	plateZWeight     = 0.3
	plateEdgeWeight  = 0.2
	plateWhiteWeight = 0.2

	// plateMinAreaRatio is the viewBox coverage below which a shape
	// earns no area credit at all.
	plateMinAreaRatio = 0.7

	// edgeMarginFrac is the edge-touch margin as a fraction of the
	// viewBox width.
	edgeMarginFrac = 0.02
)

// Plate is the detected background plate and its score breakdown.
type Plate struct {
	PathID     string   `json:"path_id"`
	OriginalID string   `json:"original_id,omitempty"`
	Score      float64  `json:"score"`
	Reasons    []string `json:"reasons"`
}

// DetectBackground scores every candidate and returns the winner, or
// nil when no shape scores above the threshold. A "none"-filled path
// is never a candidate.
func DetectBackground(entries []*registry.PathEntry, vb svg.ViewBox, logger hclog.Logger) *Plate {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var best *Plate
	for _, e := range entries {
		if e.FillPaint == nil || e.FillPaint.Kind == registry.PaintNone {
			continue
		}
		score, reasons := plateScore(e, vb)
		if best == nil || score > best.Score {
			best = &Plate{PathID: e.ID, OriginalID: e.OriginalID, Score: score, Reasons: reasons}
		}
	}

	if best == nil || best.Score <= MinPlateScore {
		logger.Debug("no background plate designated")
		return nil
	}
	logger.Debug("background plate detected", "path", best.PathID, "score", best.Score)
	return best
}

// plateScore computes the weighted component sum for one candidate.
func plateScore(e *registry.PathEntry, vb svg.ViewBox) (float64, []string) {
	var score float64
	var reasons []string

	// Area coverage relative to the viewBox, credited only from 70%
	// up.
	vbArea := vb.Width * vb.Height
	if vbArea > 0 {
		ratio := e.Area / vbArea
		if ratio >= plateMinAreaRatio {
			frac := math.Min(1, ratio)
			score += plateAreaWeight * frac
			reasons = append(reasons, "covers most of the viewBox")
		}
	}

	// Early paint order.
	switch {
	case e.ZIndex <= 2:
		score += plateZWeight
		reasons = append(reasons, "paints first")
	case e.ZIndex <= 5:
		score += plateZWeight * 0.5
		reasons = append(reasons, "paints early")
	default:
		score += plateZWeight * 0.2
	}

	// ViewBox edge proximity, a quarter credit per touched edge.
	touched := TouchedEdges(e, vb)
	if touched > 0 {
		score += plateEdgeWeight * 0.25 * float64(touched)
		reasons = append(reasons, "touches the viewBox edge")
	}

	// White fill reads as background.
	if e.FillPaint.IsWhiteLike() {
		score += plateWhiteWeight
		reasons = append(reasons, "white fill")
	} else {
		score += plateWhiteWeight * 0.3
	}

	return score, reasons
}

// TouchedEdges counts viewBox edges the entry's bbox lies within the
// edge margin of.
func TouchedEdges(e *registry.PathEntry, vb svg.ViewBox) int {
	margin := vb.Width * edgeMarginFrac
	n := 0
	if math.Abs(e.BBox.X-vb.X) <= margin {
		n++
	}
	if math.Abs(e.BBox.Y-vb.Y) <= margin {
		n++
	}
	if math.Abs((e.BBox.X+e.BBox.W)-(vb.X+vb.Width)) <= margin {
		n++
	}
	if math.Abs((e.BBox.Y+e.BBox.H)-(vb.Y+vb.Height)) <= margin {
		n++
	}
	return n
}
