package geometry

import (
	"math"

	"github.com/jmylchreest/inkform/internal/svg"
)

// curveSegments is the number of chords each curve command flattens
// into. Sixteen keeps length and area error well under the half-unit
// tolerances used by containment testing.
const curveSegments = 16

// PathProvider is the pure-computation Provider. It flattens path
// commands into polylines and answers every query from those; no host
// renderer is involved. Arc commands flatten through their endpoint
// parameterization, matching the approximation used upstream by
// transform flattening.
type PathProvider struct{}

// NewPathProvider returns the default pure-computation provider.
func NewPathProvider() *PathProvider {
	return &PathProvider{}
}

// BoundingBox computes the bbox of the flattened outline.
func (p *PathProvider) BoundingBox(shape Shape) (Rect, error) {
	polys := flatten(shape.PathData)
	first := true
	var minX, minY, maxX, maxY float64
	for _, poly := range polys {
		for _, pt := range poly {
			if first {
				minX, maxX = pt.X, pt.X
				minY, maxY = pt.Y, pt.Y
				first = false
				continue
			}
			minX = math.Min(minX, pt.X)
			maxX = math.Max(maxX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	if first {
		return Rect{}, nil
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, nil
}

// PathLength sums the flattened segment lengths over all subpaths.
func (p *PathProvider) PathLength(shape Shape) (float64, error) {
	total := 0.0
	for _, poly := range flatten(shape.PathData) {
		for i := 1; i < len(poly); i++ {
			total += math.Hypot(poly[i].X-poly[i-1].X, poly[i].Y-poly[i-1].Y)
		}
	}
	return total, nil
}

// PointAtLength walks the flattened outline to the given distance.
// Distances past the end clamp to the final point.
func (p *PathProvider) PointAtLength(shape Shape, dist float64) (Point, error) {
	polys := flatten(shape.PathData)
	var last Point
	found := false
	remaining := dist

	for _, poly := range polys {
		for i := 1; i < len(poly); i++ {
			a, b := poly[i-1], poly[i]
			seg := math.Hypot(b.X-a.X, b.Y-a.Y)
			if seg >= remaining && seg > 0 {
				t := remaining / seg
				return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, nil
			}
			remaining -= seg
			last = b
			found = true
		}
		if len(poly) > 0 {
			last = poly[len(poly)-1]
			found = true
		}
	}

	if !found {
		return Point{}, ErrUnsupported
	}
	return last, nil
}

// GlobalTransform is the identity: the pipeline flattens transforms
// into path data before geometry queries.
func (p *PathProvider) GlobalTransform(shape Shape) (svg.Matrix, error) {
	return svg.Identity, nil
}

// PointInFill tests the point against the flattened polygons under the
// shape's fill rule.
func (p *PathProvider) PointInFill(shape Shape, x, y float64) (bool, error) {
	polys := flatten(shape.PathData)
	if len(polys) == 0 {
		return false, nil
	}

	winding := 0
	crossings := 0
	for _, poly := range polys {
		w, c := windingAndCrossings(poly, x, y)
		winding += w
		crossings += c
	}

	if shape.FillRule == "evenodd" {
		return crossings%2 == 1, nil
	}
	return winding != 0, nil
}

// windingAndCrossings computes the winding number contribution and
// ray-crossing count of one closed polygon for a point. The polygon is
// implicitly closed from its last point back to its first.
func windingAndCrossings(poly []Point, x, y float64) (int, int) {
	n := len(poly)
	if n < 3 {
		return 0, 0
	}

	winding := 0
	crossings := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]

		if a.Y <= y {
			if b.Y > y && isLeft(a, b, x, y) > 0 {
				winding++
				crossings++
			}
		} else {
			if b.Y <= y && isLeft(a, b, x, y) < 0 {
				winding--
				crossings++
			}
		}
	}
	return winding, crossings
}

// isLeft is the standard cross-product side test for point (x, y)
// against segment a->b.
func isLeft(a, b Point, x, y float64) float64 {
	return (b.X-a.X)*(y-a.Y) - (x-a.X)*(b.Y-a.Y)
}

// flatten parses path data and reduces every subpath to a polyline.
func flatten(d string) [][]Point {
	cmds := svg.ToAbsolute(svg.ParsePathData(d))
	var polys [][]Point
	var current []Point
	var cx, cy float64
	var startX, startY float64

	emit := func(x, y float64) {
		current = append(current, Point{X: x, Y: y})
		cx, cy = x, y
	}

	for _, cmd := range cmds {
		switch cmd.Op {
		case 'M':
			if len(current) > 0 {
				polys = append(polys, current)
			}
			current = nil
			emit(cmd.Args[0], cmd.Args[1])
			startX, startY = cmd.Args[0], cmd.Args[1]
		case 'L', 'H', 'V', 'T':
			switch cmd.Op {
			case 'H':
				emit(cmd.Args[0], cy)
			case 'V':
				emit(cx, cmd.Args[0])
			default:
				emit(cmd.Args[0], cmd.Args[1])
			}
		case 'C':
			sampleCubic(&current, cx, cy, cmd.Args)
			cx, cy = cmd.Args[4], cmd.Args[5]
		case 'S':
			// Shorthand control reflection is ignored at this
			// resolution; treat the stated control point as both.
			sampleCubic(&current, cx, cy, []float64{
				cmd.Args[0], cmd.Args[1], cmd.Args[0], cmd.Args[1],
				cmd.Args[2], cmd.Args[3],
			})
			cx, cy = cmd.Args[2], cmd.Args[3]
		case 'Q':
			sampleQuadratic(&current, cx, cy, cmd.Args)
			cx, cy = cmd.Args[2], cmd.Args[3]
		case 'A':
			sampleArc(&current, cx, cy, cmd.Args)
			cx, cy = cmd.Args[5], cmd.Args[6]
		case 'Z':
			emit(startX, startY)
		}
	}
	if len(current) > 0 {
		polys = append(polys, current)
	}
	return polys
}

// sampleCubic appends chord samples of a cubic Bézier.
func sampleCubic(poly *[]Point, x0, y0 float64, args []float64) {
	x1, y1, x2, y2, x3, y3 := args[0], args[1], args[2], args[3], args[4], args[5]
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		mt := 1 - t
		x := mt*mt*mt*x0 + 3*mt*mt*t*x1 + 3*mt*t*t*x2 + t*t*t*x3
		y := mt*mt*mt*y0 + 3*mt*mt*t*y1 + 3*mt*t*t*y2 + t*t*t*y3
		*poly = append(*poly, Point{X: x, Y: y})
	}
}

// sampleQuadratic appends chord samples of a quadratic Bézier.
func sampleQuadratic(poly *[]Point, x0, y0 float64, args []float64) {
	x1, y1, x2, y2 := args[0], args[1], args[2], args[3]
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		mt := 1 - t
		x := mt*mt*x0 + 2*mt*t*x1 + t*t*x2
		y := mt*mt*y0 + 2*mt*t*y1 + t*t*y2
		*poly = append(*poly, Point{X: x, Y: y})
	}
}

// sampleArc appends chord samples of an elliptical arc using the SVG
// endpoint-to-centre conversion.
func sampleArc(poly *[]Point, x0, y0 float64, args []float64) {
	rx, ry := math.Abs(args[0]), math.Abs(args[1])
	rot := args[2] * math.Pi / 180
	largeArc := args[3] != 0
	sweep := args[4] != 0
	x1, y1 := args[5], args[6]

	if rx == 0 || ry == 0 || (x0 == x1 && y0 == y1) {
		*poly = append(*poly, Point{X: x1, Y: y1})
		return
	}

	cosR, sinR := math.Cos(rot), math.Sin(rot)

	// Step 1: half the vector between endpoints, rotated into the
	// ellipse frame.
	dx, dy := (x0-x1)/2, (y0-y1)/2
	px := cosR*dx + sinR*dy
	py := -sinR*dx + cosR*dy

	// Scale radii up if the endpoints cannot be connected.
	lambda := px*px/(rx*rx) + py*py/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	// Step 2: centre in the ellipse frame.
	num := rx*rx*ry*ry - rx*rx*py*py - ry*ry*px*px
	den := rx*rx*py*py + ry*ry*px*px
	if num < 0 {
		num = 0
	}
	coef := math.Sqrt(num / den)
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * py / ry
	cyp := -coef * ry * px / rx

	// Step 3: centre back in user space.
	cx := cosR*cxp - sinR*cyp + (x0+x1)/2
	cy := sinR*cxp + cosR*cyp + (y0+y1)/2

	// Step 4: sweep angles.
	theta1 := math.Atan2((py-cyp)/ry, (px-cxp)/rx)
	theta2 := math.Atan2((-py-cyp)/ry, (-px-cxp)/rx)
	delta := theta2 - theta1
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	for i := 1; i <= curveSegments; i++ {
		theta := theta1 + delta*float64(i)/curveSegments
		ex := rx * math.Cos(theta)
		ey := ry * math.Sin(theta)
		x := cosR*ex - sinR*ey + cx
		y := sinR*ex + cosR*ey + cy
		*poly = append(*poly, Point{X: x, Y: y})
	}
	// Land exactly on the stated endpoint.
	(*poly)[len(*poly)-1] = Point{X: x1, Y: y1}
}
