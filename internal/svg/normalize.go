package svg

import (
	"github.com/hashicorp/go-hclog"
)

// Provenance attribute names written by the normalizer. Downstream
// stages and external renderers read these to map split paths back to
// their source markup.
const (
	AttrOriginalTag    = "data-original-tag"
	AttrCompoundParent = "data-compound-parent"
	AttrSubpathIndex   = "data-subpath-index"
	AttrOriginalID     = "data-original-id"
)

// Normalize runs the full normalization pipeline over a document and
// returns a new document; the input is never mutated. Stages run in a
// fixed order, each on its own clone:
//
//  1. reference expansion (use elements become copies of their target)
//  2. style resolution (inherited presentation attributes materialize)
//  3. primitive conversion (rect/circle/ellipse/polygon/polyline to path)
//  4. transform flattening (transforms folded into path coordinates)
//  5. compound splitting (multi-subpath paths become sibling paths)
//
// A stage that cannot process an individual element logs and leaves
// that element as it found it; normalization never fails a whole
// document for one bad element.
func Normalize(doc *Document, logger hclog.Logger) *Document {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	out := expandReferences(doc.Clone(), logger)
	out = resolveStyles(out.Clone(), logger)
	out = convertPrimitives(out.Clone(), logger)
	out = flattenTransforms(out.Clone(), logger)
	out = splitCompoundPaths(out.Clone(), logger)

	logger.Debug("normalization complete",
		"paths", len(out.Paths()),
		"viewbox_w", out.ViewBox.Width,
		"viewbox_h", out.ViewBox.Height)
	return out
}
