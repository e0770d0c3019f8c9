package svg

import (
	"github.com/hashicorp/go-hclog"
)

// flattenTransforms re-expresses every path's coordinates in its
// parent's frame and drops the path's transform attribute. The matrix
// applied is the element's global transform composed with the inverse
// of its parent's global transform, so ancestor group transforms stay
// where they are and only the path's own contribution is folded in.
//
// H and V commands are rewritten as explicit L commands. Arc commands
// are approximated: the endpoint is transformed exactly and the radii
// scale by the uniform factor sqrt(|det|), which drifts slightly under
// shear or non-uniform scale. An element whose transform cannot be
// parsed or inverted is left unmodified.
func flattenTransforms(doc *Document, logger hclog.Logger) *Document {
	var flatten func(el *Element, parentGlobal Matrix)
	flatten = func(el *Element, parentGlobal Matrix) {
		global := parentGlobal
		if raw, ok := el.Attrs["transform"]; ok {
			local, err := ParseTransform(raw)
			if err != nil {
				logger.Warn("skipping unparsable transform", "tag", el.Tag, "transform", raw, "error", err)
			} else {
				global = parentGlobal.Mult(local)
			}
		}

		if el.Tag == "path" {
			if err := flattenPathElement(el, global, parentGlobal); err != nil {
				logger.Warn("leaving path transform in place", "error", err)
			} else {
				// Children of this path now live in the parent frame.
				global = parentGlobal
			}
		}

		for _, c := range el.Children {
			flatten(c, global)
		}
	}

	flatten(doc.Root, Identity)
	return doc
}

// flattenPathElement rewrites one path's data through the transform
// relative to its parent and removes the transform attribute.
func flattenPathElement(el *Element, global, parentGlobal Matrix) error {
	parentInv, err := parentGlobal.Invert()
	if err != nil {
		return err
	}
	rel := parentInv.Mult(global)
	if rel.IsIdentity() {
		delete(el.Attrs, "transform")
		return nil
	}

	cmds := ToAbsolute(ParsePathData(el.Attrs["d"]))
	out := make([]PathCommand, 0, len(cmds))

	// Current point in the source (pre-transform) frame, needed to
	// expand H and V into full linetos.
	var cx, cy float64
	var startX, startY float64

	for _, cmd := range cmds {
		switch cmd.Op {
		case 'M', 'L', 'T':
			cx, cy = cmd.Args[0], cmd.Args[1]
			if cmd.Op == 'M' {
				startX, startY = cx, cy
			}
			x, y := rel.TransformPoint(cx, cy)
			out = append(out, PathCommand{Op: cmd.Op, Args: []float64{x, y}})
		case 'H':
			// Horizontal and vertical lines do not survive a general
			// transform; they become explicit linetos.
			cx = cmd.Args[0]
			x, y := rel.TransformPoint(cx, cy)
			out = append(out, PathCommand{Op: 'L', Args: []float64{x, y}})
		case 'V':
			cy = cmd.Args[0]
			x, y := rel.TransformPoint(cx, cy)
			out = append(out, PathCommand{Op: 'L', Args: []float64{x, y}})
		case 'C', 'S', 'Q':
			args := make([]float64, len(cmd.Args))
			for i := 0; i < len(cmd.Args); i += 2 {
				args[i], args[i+1] = rel.TransformPoint(cmd.Args[i], cmd.Args[i+1])
			}
			cx, cy = cmd.Args[len(cmd.Args)-2], cmd.Args[len(cmd.Args)-1]
			out = append(out, PathCommand{Op: cmd.Op, Args: args})
		case 'A':
			scale := rel.ScaleFactor()
			cx, cy = cmd.Args[5], cmd.Args[6]
			ex, ey := rel.TransformPoint(cx, cy)
			out = append(out, PathCommand{Op: 'A', Args: []float64{
				cmd.Args[0] * scale, cmd.Args[1] * scale,
				cmd.Args[2], cmd.Args[3], cmd.Args[4],
				ex, ey,
			}})
		case 'Z':
			cx, cy = startX, startY
			out = append(out, cmd)
		default:
			out = append(out, cmd)
		}
	}

	el.Attrs["d"] = WritePathData(out)
	delete(el.Attrs, "transform")
	return nil
}
