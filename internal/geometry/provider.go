// Package geometry defines the geometry capability the analysis
// pipeline depends on, together with a pure-computation default
// implementation that works directly from path command data. A host
// rendering engine can stand in through the same interface when exact
// text metrics or curve flattening are needed.
package geometry

import (
	"errors"

	"github.com/jmylchreest/inkform/internal/svg"
)

// ErrUnsupported is returned by a Provider for capabilities it does
// not implement. Every call site has a documented fallback; the error
// is a signal, not a failure.
var ErrUnsupported = errors.New("geometry: operation unsupported by provider")

// Point is a 2D point in viewBox coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Center returns the rectangle's centre point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// ContainsRect reports whether other lies within r, expanded by tol on
// every side.
func (r Rect) ContainsRect(other Rect, tol float64) bool {
	return other.X >= r.X-tol &&
		other.Y >= r.Y-tol &&
		other.X+other.W <= r.X+r.W+tol &&
		other.Y+other.H <= r.Y+r.H+tol
}

// Shape is the geometry input to a Provider: flattened absolute path
// data plus the fill rule that governs interior tests.
type Shape struct {
	PathData string
	FillRule string // "nonzero" (default) or "evenodd"
}

// Provider supplies geometric measurements for shapes. Implementations
// may be backed by pure computation or by a host rendering engine.
// Individual operations may return ErrUnsupported; callers degrade per
// their documented fallbacks rather than failing.
type Provider interface {
	// BoundingBox returns the shape's axis-aligned bounding box.
	BoundingBox(shape Shape) (Rect, error)

	// PathLength returns the total length of the shape's outline.
	PathLength(shape Shape) (float64, error)

	// PointAtLength returns the point at the given distance along the
	// outline.
	PointAtLength(shape Shape, dist float64) (Point, error)

	// GlobalTransform returns the shape's accumulated transform. For
	// pre-flattened path data this is the identity.
	GlobalTransform(shape Shape) (svg.Matrix, error)

	// PointInFill reports whether the point lies inside the shape's
	// filled region under its fill rule.
	PointInFill(shape Shape, x, y float64) (bool, error)
}
