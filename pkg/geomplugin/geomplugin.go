// Package geomplugin provides the public API for external geometry
// provider plugins. A host rendering engine (a browser bridge, a
// resvg wrapper) can serve exact geometry to inkform over the
// HashiCorp go-plugin protocol by implementing Provider and calling
// Serve from its main.
package geomplugin

import (
	"errors"

	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current geometry plugin API version.
	ProtocolVersion = "0.0.1"
)

// Handshake is the handshake configuration for the go-plugin
// protocol. It ensures geometry plugins only connect to compatible
// hosts.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0,
	MagicCookieKey:   "INKFORM_GEOMETRY_PLUGIN",
	MagicCookieValue: "inkform_geometry_provider",
}

// ErrUnsupported is returned by a plugin for operations it does not
// implement. The host degrades to its built-in fallback for that
// operation.
var ErrUnsupported = errors.New("geometry: operation unsupported by provider")

// Shape is the geometry input: flattened absolute path data plus the
// fill rule governing interior tests.
type Shape struct {
	PathData string `json:"path_data"`
	FillRule string `json:"fill_rule"`
}

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

// Matrix is a 2D affine transform in SVG order: x' = A*x + C*y + E,
// y' = B*x + D*y + F.
type Matrix struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
	F float64 `json:"f"`
}

// Provider is the capability a geometry plugin implements. Any method
// may return ErrUnsupported.
type Provider interface {
	// BoundingBox returns the shape's axis-aligned bounding box.
	BoundingBox(shape Shape) (Rect, error)

	// PathLength returns the total length of the shape's outline.
	PathLength(shape Shape) (float64, error)

	// PointAtLength returns the point at the given distance along the
	// outline.
	PointAtLength(shape Shape, dist float64) (Point, error)

	// GlobalTransform returns the shape's accumulated transform.
	GlobalTransform(shape Shape) (Matrix, error)

	// PointInFill reports whether the point lies inside the shape's
	// filled region under its fill rule.
	PointInFill(shape Shape, x, y float64) (bool, error)
}

// Serve serves a geometry provider implementation. Call from a plugin
// binary's main; it blocks until the host disconnects.
func Serve(impl Provider) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			"geometry": &ProviderPlugin{Impl: impl},
		},
	})
}
