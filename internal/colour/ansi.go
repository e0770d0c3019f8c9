package colour

import (
	"fmt"
	"math"
	"strings"
)

// ANSI escape codes for terminal colour previews.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Preview returns an ANSI truecolor swatch for a colour. Width is the
// block width in characters; zero or negative selects the default.
func Preview(c RGBA, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// PreviewWithText returns a swatch with a text overlay. The text colour
// is black or white, whichever contrasts better with the swatch.
func PreviewWithText(c RGBA, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg string
	if Luminance(c) > 0.5 {
		fg = fmt.Sprintf("%s0;0;0%s", ansiFgPrefix, ansiSuffix)
	} else {
		fg = fmt.Sprintf("%s255;255;255%s", ansiFgPrefix, ansiSuffix)
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)

	display := text
	if len(display) > width {
		display = display[:width]
	}
	if len(display) < width {
		display += strings.Repeat(" ", width-len(display))
	}

	return bg + fg + display + ansiReset
}

// Luminance calculates the relative luminance of a colour according to
// WCAG 2.0, between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGBA) float64 {
	rf := gammaCorrect(float64(c.R) / 255.0)
	gf := gammaCorrect(float64(c.G) / 255.0)
	bf := gammaCorrect(float64(c.B) / 255.0)
	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}
