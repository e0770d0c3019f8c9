package svg

import (
	"github.com/hashicorp/go-hclog"
)

// convertPrimitives rewrites rect, circle, ellipse, polygon and
// polyline elements as equivalent path elements. Non-geometric
// attributes carry over; the original tag is retained as provenance
// metadata. An element whose geometry attributes fail to parse is left
// unmodified.
func convertPrimitives(doc *Document, logger hclog.Logger) *Document {
	var convert func(el *Element)
	convert = func(el *Element) {
		for i, child := range el.Children {
			d, geomAttrs, ok := primitiveToPathData(child)
			if ok {
				path := &Element{Tag: "path", Attrs: make(map[string]string, len(child.Attrs)+2)}
				for k, v := range child.Attrs {
					if geomAttrs[k] {
						continue
					}
					path.Attrs[k] = v
				}
				path.Attrs["d"] = d
				path.Attrs[AttrOriginalTag] = child.Tag
				path.Children = child.Children
				el.Children[i] = path
				child = path
			}
			convert(child)
		}
	}

	convert(doc.Root)
	return doc
}

// geometric attribute sets per primitive tag, removed on conversion.
var (
	rectGeomAttrs    = attrSet("x", "y", "width", "height", "rx", "ry")
	circleGeomAttrs  = attrSet("cx", "cy", "r")
	ellipseGeomAttrs = attrSet("cx", "cy", "rx", "ry")
	polyGeomAttrs    = attrSet("points")
)

func attrSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// primitiveToPathData builds path data for a primitive element.
func primitiveToPathData(el *Element) (string, map[string]bool, bool) {
	switch el.Tag {
	case "rect":
		d, ok := rectPathData(el)
		return d, rectGeomAttrs, ok
	case "circle":
		cx := parseLength(el.Attrs["cx"])
		cy := parseLength(el.Attrs["cy"])
		r := parseLength(el.Attrs["r"])
		if r <= 0 {
			return "", nil, false
		}
		return ellipsePathData(cx, cy, r, r), circleGeomAttrs, true
	case "ellipse":
		cx := parseLength(el.Attrs["cx"])
		cy := parseLength(el.Attrs["cy"])
		rx := parseLength(el.Attrs["rx"])
		ry := parseLength(el.Attrs["ry"])
		if rx <= 0 || ry <= 0 {
			return "", nil, false
		}
		return ellipsePathData(cx, cy, rx, ry), ellipseGeomAttrs, true
	case "polygon", "polyline":
		d, ok := polyPathData(el.Attrs["points"], el.Tag == "polygon")
		return d, polyGeomAttrs, ok
	}
	return "", nil, false
}

// rectPathData converts a rect, honouring rounded corners. A missing
// ry falls back to rx and vice versa, per the SVG rules.
func rectPathData(el *Element) (string, bool) {
	x := parseLength(el.Attrs["x"])
	y := parseLength(el.Attrs["y"])
	w := parseLength(el.Attrs["width"])
	h := parseLength(el.Attrs["height"])
	if w <= 0 || h <= 0 {
		return "", false
	}

	rx, hasRx := el.Attrs["rx"]
	ry, hasRy := el.Attrs["ry"]
	rxv, ryv := parseLength(rx), parseLength(ry)
	if hasRx && !hasRy {
		ryv = rxv
	}
	if hasRy && !hasRx {
		rxv = ryv
	}
	if rxv > w/2 {
		rxv = w / 2
	}
	if ryv > h/2 {
		ryv = h / 2
	}

	if rxv <= 0 || ryv <= 0 {
		return WritePathData([]PathCommand{
			{Op: 'M', Args: []float64{x, y}},
			{Op: 'L', Args: []float64{x + w, y}},
			{Op: 'L', Args: []float64{x + w, y + h}},
			{Op: 'L', Args: []float64{x, y + h}},
			{Op: 'Z'},
		}), true
	}

	return WritePathData([]PathCommand{
		{Op: 'M', Args: []float64{x + rxv, y}},
		{Op: 'L', Args: []float64{x + w - rxv, y}},
		{Op: 'A', Args: []float64{rxv, ryv, 0, 0, 1, x + w, y + ryv}},
		{Op: 'L', Args: []float64{x + w, y + h - ryv}},
		{Op: 'A', Args: []float64{rxv, ryv, 0, 0, 1, x + w - rxv, y + h}},
		{Op: 'L', Args: []float64{x + rxv, y + h}},
		{Op: 'A', Args: []float64{rxv, ryv, 0, 0, 1, x, y + h - ryv}},
		{Op: 'L', Args: []float64{x, y + ryv}},
		{Op: 'A', Args: []float64{rxv, ryv, 0, 0, 1, x + rxv, y}},
		{Op: 'Z'},
	}), true
}

// ellipsePathData draws an ellipse as two arc halves.
func ellipsePathData(cx, cy, rx, ry float64) string {
	return WritePathData([]PathCommand{
		{Op: 'M', Args: []float64{cx - rx, cy}},
		{Op: 'A', Args: []float64{rx, ry, 0, 1, 0, cx + rx, cy}},
		{Op: 'A', Args: []float64{rx, ry, 0, 1, 0, cx - rx, cy}},
		{Op: 'Z'},
	})
}

// polyPathData converts a points list; polygons close, polylines do
// not.
func polyPathData(points string, closed bool) (string, bool) {
	vals, err := parseNumberList(points)
	if err != nil || len(vals) < 4 || len(vals)%2 != 0 {
		return "", false
	}

	cmds := make([]PathCommand, 0, len(vals)/2+1)
	cmds = append(cmds, PathCommand{Op: 'M', Args: []float64{vals[0], vals[1]}})
	for i := 2; i < len(vals); i += 2 {
		cmds = append(cmds, PathCommand{Op: 'L', Args: []float64{vals[i], vals[i+1]}})
	}
	if closed {
		cmds = append(cmds, PathCommand{Op: 'Z'})
	}

	return WritePathData(cmds), true
}
