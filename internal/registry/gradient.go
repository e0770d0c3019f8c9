package registry

import "strings"

// GradientClass labels a paint's gradient complexity.
type GradientClass string

const (
	GradientNone         GradientClass = "not_gradient"
	GradientComplexMesh  GradientClass = "complex_mesh"
	GradientTextured     GradientClass = "textured"
	GradientSimpleLinear GradientClass = "simple_linear"
	GradientSimpleRadial GradientClass = "simple_radial"
	GradientUnknown      GradientClass = "unknown"
)

// GradientClassification is the verdict on one paint: what kind of
// gradient it is, how confident the rules are, and whether a vector
// recreation can reproduce it.
type GradientClassification struct {
	Class             GradientClass `json:"class"`
	Confidence        float64       `json:"confidence"`
	CanRecreateVector bool          `json:"can_recreate_vector"`
	StopCount         int           `json:"stop_count,omitempty"`
	Note              string        `json:"note,omitempty"`
}

// simpleStopLimit is the stop count up to which a linear or radial
// gradient still counts as simple.
const simpleStopLimit = 5

// ClassifyGradient classifies a single paint. Pure function; the rules
// run in order and the first match decides.
func ClassifyGradient(p *Paint) GradientClassification {
	if p == nil || p.Kind == PaintSolid || p.Kind == PaintNone {
		return GradientClassification{
			Class:             GradientNone,
			Confidence:        1.0,
			CanRecreateVector: true,
		}
	}

	if p.Kind == PaintMesh {
		return GradientClassification{
			Class:      GradientComplexMesh,
			Confidence: 0.9,
		}
	}

	stops := len(p.Stops)
	if stops == 0 {
		return GradientClassification{
			Class:      GradientUnknown,
			Confidence: 0.5,
			Note:       "gradient reference carries no stops",
		}
	}

	if stops <= simpleStopLimit && hasPatternStop(p) {
		return GradientClassification{
			Class:      GradientTextured,
			Confidence: 0.8,
			StopCount:  stops,
			Note:       "stop colour references another paint server",
		}
	}

	if stops <= simpleStopLimit {
		return GradientClassification{
			Class:             simpleClassFor(p.Kind),
			Confidence:        0.95,
			CanRecreateVector: true,
			StopCount:         stops,
		}
	}

	if p.Kind == PaintLinear || p.Kind == PaintRadial {
		return GradientClassification{
			Class:      simpleClassFor(p.Kind),
			Confidence: 0.7,
			StopCount:  stops,
			Note:       "many stops; flattening will lose detail",
		}
	}

	return GradientClassification{
		Class:      GradientTextured,
		Confidence: 0.5,
		StopCount:  stops,
	}
}

// simpleClassFor maps a gradient paint kind to its simple class.
func simpleClassFor(kind PaintKind) GradientClass {
	if kind == PaintRadial {
		return GradientSimpleRadial
	}
	return GradientSimpleLinear
}

// hasPatternStop reports whether any stop colour is itself a pattern
// or gradient reference.
func hasPatternStop(p *Paint) bool {
	for _, s := range p.Stops {
		if strings.Contains(strings.ToLower(s.ColourRaw), "url(") {
			return true
		}
	}
	return false
}
