// pure - Pure-Computation Geometry Provider (Inkform Geometry Plugin)
//
// Serves the built-in path-command geometry engine over the go-plugin
// RPC protocol. Mostly useful as a reference implementation and a
// smoke test for the plugin transport: it measures exactly what the
// in-process provider measures.
//
// Build:
//   go build -o pure-geometry
//
// Usage:
//   inkform analyse --geometry-plugin ./pure-geometry logo.svg

package main

import (
	"github.com/jmylchreest/inkform/internal/geometry"
	"github.com/jmylchreest/inkform/pkg/geomplugin"
)

// provider bridges the in-process engine onto the public plugin
// interface.
type provider struct {
	inner geometry.Provider
}

func (p *provider) BoundingBox(shape geomplugin.Shape) (geomplugin.Rect, error) {
	r, err := p.inner.BoundingBox(localShape(shape))
	return geomplugin.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}, wireErr(err)
}

func (p *provider) PathLength(shape geomplugin.Shape) (float64, error) {
	l, err := p.inner.PathLength(localShape(shape))
	return l, wireErr(err)
}

func (p *provider) PointAtLength(shape geomplugin.Shape, dist float64) (geomplugin.Point, error) {
	pt, err := p.inner.PointAtLength(localShape(shape), dist)
	return geomplugin.Point{X: pt.X, Y: pt.Y}, wireErr(err)
}

func (p *provider) GlobalTransform(shape geomplugin.Shape) (geomplugin.Matrix, error) {
	m, err := p.inner.GlobalTransform(localShape(shape))
	return geomplugin.Matrix{A: m.A, B: m.B, C: m.C, D: m.D, E: m.E, F: m.F}, wireErr(err)
}

func (p *provider) PointInFill(shape geomplugin.Shape, x, y float64) (bool, error) {
	in, err := p.inner.PointInFill(localShape(shape), x, y)
	return in, wireErr(err)
}

func localShape(shape geomplugin.Shape) geometry.Shape {
	return geometry.Shape{PathData: shape.PathData, FillRule: shape.FillRule}
}

func wireErr(err error) error {
	if err == geometry.ErrUnsupported {
		return geomplugin.ErrUnsupported
	}
	return err
}

func main() {
	geomplugin.Serve(&provider{inner: geometry.NewPathProvider()})
}
