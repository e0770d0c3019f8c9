// Package registry builds the path/paint registry: one immutable
// entry per visible path in the normalized document, a deduplicated
// paint table, and perceptual paint groups. Everything downstream
// (white-region classification, shape clustering, palette reduction)
// reads this registry and never mutates it.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmylchreest/inkform/internal/colour"
	"github.com/jmylchreest/inkform/internal/svg"
)

// PaintKind discriminates the paint variants.
type PaintKind string

const (
	PaintNone   PaintKind = "none"
	PaintSolid  PaintKind = "solid"
	PaintLinear PaintKind = "linear"
	PaintRadial PaintKind = "radial"
	// PaintMesh marks an unresolvable or unrecognized paint
	// reference. It is never an error, only an identity.
	PaintMesh PaintKind = "mesh"
)

// GradientStop is one stop of a gradient paint.
type GradientStop struct {
	OffsetPercent float64     `json:"offset_percent"`
	ColourRaw     string      `json:"colour_raw"`
	Opacity       float64     `json:"opacity"`
	RGB           colour.RGBA `json:"rgb"`
}

// Paint is a deduplicated fill or stroke identity. Two paints with the
// same canonical key are the same Paint even when they come from
// different elements.
type Paint struct {
	ID   string    `json:"id"`
	Kind PaintKind `json:"kind"`

	// Solid paints.
	RGBA colour.RGBA `json:"rgba"`
	Lab  colour.Lab  `json:"lab"`
	Hex  string      `json:"hex"`

	// Gradient paints.
	Stops         []GradientStop    `json:"stops,omitempty"`
	GeometryAttrs map[string]string `json:"geometry_attrs,omitempty"`

	// Raw is the attribute value the paint was resolved from.
	Raw string `json:"raw"`
}

// IsSolid reports whether the paint is a solid colour.
func (p *Paint) IsSolid() bool {
	return p.Kind == PaintSolid
}

// IsWhiteLike reports whether the paint is a solid white-like colour.
func (p *Paint) IsWhiteLike() bool {
	return p.Kind == PaintSolid && colour.IsWhiteLike(p.RGBA)
}

// CanonicalKey is the dedup identity of a paint:
//
//	none
//	solid:<hex>
//	linear:<colours@offsets> / radial:<colours@offsets>
//	complex:<raw>
func (p *Paint) CanonicalKey() string {
	switch p.Kind {
	case PaintNone:
		return "none"
	case PaintSolid:
		return "solid:" + p.Hex
	case PaintLinear, PaintRadial:
		colours := make([]string, len(p.Stops))
		offsets := make([]string, len(p.Stops))
		for i, s := range p.Stops {
			colours[i] = s.RGB.Hex()
			offsets[i] = fmt.Sprintf("%g", s.OffsetPercent)
		}
		return fmt.Sprintf("%s:%s@%s", p.Kind, strings.Join(colours, ","), strings.Join(offsets, ","))
	default:
		return "complex:" + p.Raw
	}
}

// gradientGeometryAttrs are the positioning attributes carried from a
// gradient element onto its Paint.
var gradientGeometryAttrs = []string{
	"x1", "y1", "x2", "y2",
	"cx", "cy", "r", "fx", "fy",
	"gradientUnits", "gradientTransform", "spreadMethod",
}

// ResolvePaint turns a fill/stroke attribute value into a Paint.
// A url(#id) reference resolves against defs: linearGradient and
// radialGradient elements become gradient paints; anything missing or
// unrecognized becomes a Mesh paint. Any other non-"none" value parses
// as a solid colour.
func ResolvePaint(raw string, defs map[string]*svg.Element) Paint {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)

	if lower == "" || lower == "none" {
		return Paint{Kind: PaintNone, Raw: trimmed}
	}

	if strings.HasPrefix(lower, "url(") {
		return resolveReference(trimmed, defs)
	}

	rgba := colour.Parse(trimmed)
	return Paint{
		Kind: PaintSolid,
		RGBA: rgba,
		Lab:  colour.RGBToLab(rgba),
		Hex:  rgba.Hex(),
		Raw:  trimmed,
	}
}

// resolveReference resolves url(#id) paints.
func resolveReference(raw string, defs map[string]*svg.Element) Paint {
	id := referenceID(raw)
	target, ok := defs[id]
	if !ok || id == "" {
		return Paint{Kind: PaintMesh, Raw: raw}
	}

	var kind PaintKind
	switch target.Tag {
	case "linearGradient":
		kind = PaintLinear
	case "radialGradient":
		kind = PaintRadial
	default:
		return Paint{Kind: PaintMesh, Raw: raw}
	}

	p := Paint{Kind: kind, Raw: raw}
	for _, attr := range gradientGeometryAttrs {
		if v, ok := target.Attrs[attr]; ok {
			if p.GeometryAttrs == nil {
				p.GeometryAttrs = make(map[string]string)
			}
			p.GeometryAttrs[attr] = v
		}
	}
	for _, child := range target.Children {
		if child.Tag != "stop" {
			continue
		}
		p.Stops = append(p.Stops, parseStop(child))
	}
	sortStops(p.Stops)
	return p
}

// parseStop reads one gradient stop element.
func parseStop(el *svg.Element) GradientStop {
	stop := GradientStop{Opacity: 1}

	offset := strings.TrimSpace(el.Attrs["offset"])
	if strings.HasSuffix(offset, "%") {
		fmt.Sscanf(offset, "%f%%", &stop.OffsetPercent)
	} else if offset != "" {
		var frac float64
		if _, err := fmt.Sscanf(offset, "%f", &frac); err == nil {
			stop.OffsetPercent = frac * 100
		}
	}

	stop.ColourRaw = el.Attrs["stop-color"]
	if stop.ColourRaw == "" {
		// stop-color may hide in a style attribute that normalization
		// has not touched inside defs.
		for _, decl := range strings.Split(el.Attrs["style"], ";") {
			parts := strings.SplitN(decl, ":", 2)
			if len(parts) == 2 && strings.TrimSpace(parts[0]) == "stop-color" {
				stop.ColourRaw = strings.TrimSpace(parts[1])
			}
		}
	}
	stop.RGB = colour.Parse(stop.ColourRaw)

	if v, ok := el.Attrs["stop-opacity"]; ok {
		fmt.Sscanf(strings.TrimSpace(v), "%f", &stop.Opacity)
	}
	return stop
}

// referenceID extracts the fragment id from url(#id), tolerating
// quotes.
func referenceID(raw string) string {
	open := strings.IndexByte(raw, '(')
	close := strings.LastIndexByte(raw, ')')
	if open < 0 || close <= open {
		return ""
	}
	id := strings.TrimSpace(raw[open+1 : close])
	id = strings.Trim(id, `"'`)
	return strings.TrimPrefix(id, "#")
}

// PaintGroup is a cluster of perceptually-identical solid paints, or a
// singleton holding one non-solid paint. Every paint belongs to
// exactly one group.
type PaintGroup struct {
	ID             string   `json:"id"`
	Representative *Paint   `json:"representative"`
	Members        []string `json:"members"`
}

// sortStops orders stops by offset, keeping document order for ties.
func sortStops(stops []GradientStop) {
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].OffsetPercent < stops[j].OffsetPercent
	})
}
