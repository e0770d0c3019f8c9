package geometry

import (
	"math"
	"testing"
)

func TestBoundingBox(t *testing.T) {
	p := NewPathProvider()

	tests := []struct {
		name string
		d    string
		want Rect
		tol  float64
	}{
		{
			name: "axis aligned square",
			d:    "M 10 10 L 30 10 L 30 30 L 10 30 Z",
			want: Rect{X: 10, Y: 10, W: 20, H: 20},
		},
		{
			name: "circle from two arcs",
			d:    "M 40 50 A 10 10 0 1 0 60 50 A 10 10 0 1 0 40 50 Z",
			want: Rect{X: 40, Y: 40, W: 20, H: 20},
			tol:  0.2,
		},
		{
			name: "empty path",
			d:    "",
			want: Rect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.BoundingBox(Shape{PathData: tt.d})
			if err != nil {
				t.Fatal(err)
			}
			for name, pair := range map[string][2]float64{
				"x": {got.X, tt.want.X}, "y": {got.Y, tt.want.Y},
				"w": {got.W, tt.want.W}, "h": {got.H, tt.want.H},
			} {
				if math.Abs(pair[0]-pair[1]) > tt.tol+1e-9 {
					t.Errorf("%s = %g, want %g ± %g", name, pair[0], pair[1], tt.tol)
				}
			}
		})
	}
}

func TestPathLength(t *testing.T) {
	p := NewPathProvider()
	got, err := p.PathLength(Shape{PathData: "M 0 0 L 10 0 L 10 10 L 0 10 Z"})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-40) > 1e-9 {
		t.Errorf("perimeter = %g, want 40", got)
	}
}

func TestPointAtLength(t *testing.T) {
	p := NewPathProvider()
	shape := Shape{PathData: "M 0 0 L 10 0 L 10 10"}

	pt, err := p.PointAtLength(shape, 5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pt.X-5) > 1e-9 || math.Abs(pt.Y) > 1e-9 {
		t.Errorf("point at 5 = (%g,%g), want (5,0)", pt.X, pt.Y)
	}

	pt, err = p.PointAtLength(shape, 15)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(pt.X-10) > 1e-9 || math.Abs(pt.Y-5) > 1e-9 {
		t.Errorf("point at 15 = (%g,%g), want (10,5)", pt.X, pt.Y)
	}

	// Past the end clamps to the final point.
	pt, err = p.PointAtLength(shape, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if pt.X != 10 || pt.Y != 10 {
		t.Errorf("clamped point = (%g,%g), want (10,10)", pt.X, pt.Y)
	}
}

func TestPointInFill(t *testing.T) {
	p := NewPathProvider()
	square := Shape{PathData: "M 0 0 L 10 0 L 10 10 L 0 10 Z"}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{name: "centre", x: 5, y: 5, want: true},
		{name: "outside right", x: 15, y: 5, want: false},
		{name: "outside above", x: 5, y: -1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.PointInFill(square, tt.x, tt.y)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("PointInFill(%g,%g) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPointInFillEvenOddHole(t *testing.T) {
	p := NewPathProvider()
	// Outer square with inner square hole, both clockwise, evenodd.
	donut := Shape{
		PathData: "M 0 0 L 20 0 L 20 20 L 0 20 Z M 5 5 L 15 5 L 15 15 L 5 15 Z",
		FillRule: "evenodd",
	}

	inHole, err := p.PointInFill(donut, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if inHole {
		t.Error("point in the hole tested as filled under evenodd")
	}

	inRing, err := p.PointInFill(donut, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !inRing {
		t.Error("point in the ring tested as unfilled")
	}
}

func TestPointInFillNonzeroOppositeWinding(t *testing.T) {
	p := NewPathProvider()
	// Inner subpath wound opposite to the outer one: a hole under
	// nonzero as well.
	donut := Shape{
		PathData: "M 0 0 L 20 0 L 20 20 L 0 20 Z M 5 5 L 5 15 L 15 15 L 15 5 Z",
	}

	inHole, err := p.PointInFill(donut, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if inHole {
		t.Error("counter-wound hole tested as filled under nonzero")
	}
}

func TestGlobalTransformIsIdentity(t *testing.T) {
	p := NewPathProvider()
	m, err := p.GlobalTransform(Shape{PathData: "M0 0L1 1"})
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsIdentity() {
		t.Errorf("GlobalTransform = %+v, want identity", m)
	}
}
