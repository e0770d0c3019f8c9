package colour

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want RGBA
	}{
		{name: "long hex", raw: "#1a2b3c", want: RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{name: "short hex", raw: "#fff", want: RGBA{R: 255, G: 255, B: 255, A: 255}},
		{name: "short hex with alpha", raw: "#f008", want: RGBA{R: 255, A: 0x88}},
		{name: "long hex with alpha", raw: "#11223344", want: RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{name: "uppercase hex", raw: "#FF00AA", want: RGBA{R: 255, B: 0xaa, A: 255}},
		{name: "rgb integers", raw: "rgb(10, 20, 30)", want: RGBA{R: 10, G: 20, B: 30, A: 255}},
		{name: "rgb percentages", raw: "rgb(100%, 0%, 50%)", want: RGBA{R: 255, G: 0, B: 128, A: 255}},
		{name: "rgba fractional alpha", raw: "rgba(255, 0, 0, 0.5)", want: RGBA{R: 255, A: 128}},
		{name: "rgba percent alpha", raw: "rgba(0, 0, 255, 100%)", want: RGBA{B: 255, A: 255}},
		{name: "named colour", raw: "navy", want: RGBA{B: 0x80, A: 255}},
		{name: "named colour mixed case", raw: "RebeccaPurple", want: RGBA{R: 0x66, G: 0x33, B: 0x99, A: 255}},
		{name: "none", raw: "none", want: Transparent},
		{name: "transparent", raw: "transparent", want: Transparent},
		{name: "empty", raw: "", want: Transparent},
		{name: "whitespace padded", raw: "  #000000  ", want: Black},
		{name: "garbage falls back to black", raw: "definitely-not-a-colour", want: Black},
		{name: "bad hex falls back to black", raw: "#zzzzzz", want: Black},
		{name: "truncated rgb falls back to black", raw: "rgb(1, 2)", want: Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := Parse("#4a90d9")
	if got := c.Hex(); got != "#4a90d9" {
		t.Errorf("Hex() = %q, want %q", got, "#4a90d9")
	}
}
