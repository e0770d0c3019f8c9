package colour

import "math"

// Lab is a colour in the CIE 1976 L*a*b* space under a D65 white point.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// D65 reference white tristimulus values.
const (
	refX = 95.047
	refY = 100.0
	refZ = 108.883
)

// RGBToLab converts an sRGB colour to CIE-Lab via linear RGB and XYZ.
// The constants follow the standard sRGB companding breakpoint (0.04045)
// and the CIE f(t) breakpoint (0.008856); downstream ΔE thresholds are
// tuned against this exact transform.
func RGBToLab(c RGBA) Lab {
	r := srgbToLinear(float64(c.R) / 255.0)
	g := srgbToLinear(float64(c.G) / 255.0)
	b := srgbToLinear(float64(c.B) / 255.0)

	// Linear RGB to XYZ, D65.
	x := (r*0.4124564 + g*0.3575761 + b*0.1804375) * 100.0
	y := (r*0.2126729 + g*0.7151522 + b*0.0721750) * 100.0
	z := (r*0.0193339 + g*0.1191920 + b*0.9503041) * 100.0

	fx := labF(x / refX)
	fy := labF(y / refY)
	fz := labF(z / refZ)

	return Lab{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// srgbToLinear removes sRGB gamma companding from one channel.
func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// labF is the CIE f(t) function used by the XYZ to Lab transform.
func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// DeltaE returns the CIE76 colour difference: Euclidean distance in
// Lab space. Symmetric, zero for identical colours.
func DeltaE(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Chroma returns the colourfulness sqrt(a² + b²) of a Lab colour.
func Chroma(l Lab) float64 {
	return math.Sqrt(l.A*l.A + l.B*l.B)
}

// IsWhiteLike reports whether a colour reads as white to the eye:
// lightness above 92 with chroma below 8. Near-whites such as #f5f5f5
// qualify; pale tints such as #e6f0ff do not.
func IsWhiteLike(c RGBA) bool {
	lab := RGBToLab(c)
	return lab.L > 92.0 && Chroma(lab) < 8.0
}
