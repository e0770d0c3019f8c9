// Package colour implements the perceptual colour engine: CSS colour
// parsing, sRGB to CIE-Lab conversion, ΔE distance and single-linkage
// perceptual clustering.
package colour

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RGBA is an 8-bit-per-channel sRGB colour with alpha.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Transparent is fully transparent black, the fallback for "none",
// "transparent", and empty input.
var Transparent = RGBA{}

// Black is opaque black, the fallback for unparsable non-empty input.
var Black = RGBA{A: 255}

// Hex returns the colour as a lowercase #rrggbb string. Alpha is not
// encoded; callers that care about opacity read A directly.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the colour in rgba() notation.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)", c.R, c.G, c.B, float64(c.A)/255.0)
}

// IsOpaque reports whether the colour has full alpha.
func (c RGBA) IsOpaque() bool {
	return c.A == 255
}

// Parse parses a CSS colour value as found in SVG presentation
// attributes. Supported forms: named colours, #rgb, #rgba, #rrggbb,
// #rrggbbaa, rgb() and rgba() with integer or percentage components.
//
// "none", "transparent" and empty input parse to transparent black.
// Anything else that fails to parse yields opaque black rather than an
// error, so a malformed fill degrades to a visible default instead of
// aborting analysis.
func Parse(raw string) RGBA {
	s := strings.TrimSpace(strings.ToLower(raw))
	switch s {
	case "", "none", "transparent":
		return Transparent
	}

	if strings.HasPrefix(s, "#") {
		if c, ok := parseHex(s[1:]); ok {
			return c
		}
		return Black
	}

	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		if c, ok := parseRGBFunc(s); ok {
			return c
		}
		return Black
	}

	if named, ok := colornames.Map[s]; ok {
		return RGBA{R: named.R, G: named.G, B: named.B, A: named.A}
	}

	return Black
}

// parseHex parses the digits of a hex colour (without the leading #).
func parseHex(digits string) (RGBA, bool) {
	switch len(digits) {
	case 3, 4:
		// Short form: each digit doubles.
		vals := make([]uint8, len(digits))
		for i := 0; i < len(digits); i++ {
			v, err := strconv.ParseUint(string(digits[i]), 16, 8)
			if err != nil {
				return RGBA{}, false
			}
			vals[i] = uint8(v*16 + v)
		}
		c := RGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}
		if len(vals) == 4 {
			c.A = vals[3]
		}
		return c, true
	case 6, 8:
		vals := make([]uint8, len(digits)/2)
		for i := 0; i < len(digits); i += 2 {
			v, err := strconv.ParseUint(digits[i:i+2], 16, 8)
			if err != nil {
				return RGBA{}, false
			}
			vals[i/2] = uint8(v)
		}
		c := RGBA{R: vals[0], G: vals[1], B: vals[2], A: 255}
		if len(vals) == 4 {
			c.A = vals[3]
		}
		return c, true
	}
	return RGBA{}, false
}

// parseRGBFunc parses rgb(r, g, b) and rgba(r, g, b, a) notation.
// Components may be integers (0-255) or percentages; alpha may be a
// 0-1 float or a percentage.
func parseRGBFunc(s string) (RGBA, bool) {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return RGBA{}, false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, false
	}

	var chans [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := parseChannel(strings.TrimSpace(parts[i]))
		if !ok {
			return RGBA{}, false
		}
		chans[i] = v
	}

	c := RGBA{R: chans[0], G: chans[1], B: chans[2], A: 255}
	if len(parts) == 4 {
		a, ok := parseAlpha(strings.TrimSpace(parts[3]))
		if !ok {
			return RGBA{}, false
		}
		c.A = a
	}
	return c, true
}

// parseChannel parses a single rgb() component: "128" or "50%".
func parseChannel(s string) (uint8, bool) {
	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clampChannel(pct * 255.0 / 100.0), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clampChannel(v), true
}

// parseAlpha parses an alpha component: "0.5" or "50%".
func parseAlpha(s string) (uint8, bool) {
	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clampChannel(pct * 255.0 / 100.0), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return clampChannel(v * 255.0), true
}

// clampChannel rounds and clamps a float component to [0, 255].
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
