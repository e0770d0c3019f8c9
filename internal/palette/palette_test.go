package palette

import (
	"math"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/classify"
	"github.com/jmylchreest/inkform/internal/colour"
	"github.com/jmylchreest/inkform/internal/geometry"
	"github.com/jmylchreest/inkform/internal/registry"
	"github.com/jmylchreest/inkform/internal/svg"
)

func buildRegistry(t *testing.T, markup string) *registry.Registry {
	t.Helper()
	doc, err := svg.ParseString(markup)
	if err != nil {
		t.Fatalf("parsing markup: %v", err)
	}
	norm := svg.Normalize(doc, hclog.NewNullLogger())
	return registry.Build(norm, geometry.NewPathProvider(), 0, hclog.NewNullLogger())
}

func inkFromHex(hex string, area float64) InkEntry {
	rgba := colour.Parse(hex)
	return InkEntry{
		Hex:  rgba.Hex(),
		RGBA: rgba,
		Lab:  colour.RGBToLab(rgba),
		Area: area,
	}
}

func TestInkProfileExclusionsAndOrder(t *testing.T) {
	reg := buildRegistry(t, `<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="100" height="95" fill="#ffffff"/>
		<rect x="70" y="10" width="20" height="20" fill="#ff4136"/>
		<rect x="10" y="10" width="50" height="50" fill="#001f3f"/>
		<rect x="10" y="70" width="10" height="10" fill="none"/>
	</svg>`)

	profile := BuildInkProfile(reg, nil, hclog.NewNullLogger())
	if len(profile) != 2 {
		t.Fatalf("got %d ink entries, want 2 (white and none excluded)", len(profile))
	}
	if profile[0].Hex != "#001f3f" || profile[0].Area != 2500 {
		t.Errorf("largest ink = %s/%g, want #001f3f/2500", profile[0].Hex, profile[0].Area)
	}
	if profile[1].Hex != "#ff4136" || profile[1].Area != 400 {
		t.Errorf("second ink = %s/%g, want #ff4136/400", profile[1].Hex, profile[1].Area)
	}
}

func TestInkProfileDropsFullyExcludedGroups(t *testing.T) {
	reg := buildRegistry(t, `<svg viewBox="0 0 100 100">
		<rect x="10" y="10" width="50" height="50" fill="#001f3f"/>
		<rect x="70" y="10" width="20" height="20" fill="#ff4136"/>
	</svg>`)

	var redPath string
	for _, e := range reg.Entries {
		if e.FillPaint != nil && e.FillPaint.Hex == "#ff4136" {
			redPath = e.ID
		}
	}
	decisions := []classify.Decision{
		{PathID: redPath, Classification: classify.CounterHole},
	}

	profile := BuildInkProfile(reg, decisions, hclog.NewNullLogger())
	if len(profile) != 1 {
		t.Fatalf("got %d ink entries, want 1", len(profile))
	}
	if profile[0].Hex != "#001f3f" {
		t.Errorf("surviving ink = %s, want #001f3f", profile[0].Hex)
	}
}

func TestReducePassthroughUnderLimit(t *testing.T) {
	profile := []InkEntry{
		inkFromHex("#ff0000", 100),
		inkFromHex("#0000ff", 50),
	}
	pal := Reduce(profile, 5, hclog.NewNullLogger())
	if len(pal) != 2 {
		t.Fatalf("got %d entries, want 2 untouched", len(pal))
	}
	if pal[0].Hex != "#ff0000" || pal[1].Hex != "#0000ff" {
		t.Errorf("palette reordered or recoloured: %s, %s", pal[0].Hex, pal[1].Hex)
	}
}

func TestReduceExactSizeAndAreaConservation(t *testing.T) {
	hexes := []string{
		"#ff0000", "#fa1505", "#00ff00", "#05fa15",
		"#0000ff", "#1505fa", "#ffee00", "#222222",
	}
	var profile []InkEntry
	total := 0.0
	for i, h := range hexes {
		area := float64((i + 1) * 37)
		total += area
		profile = append(profile, inkFromHex(h, area))
	}

	pal := Reduce(profile, 3, hclog.NewNullLogger())
	if len(pal) != 3 {
		t.Fatalf("got %d palette entries, want exactly 3", len(pal))
	}

	sum := 0.0
	for _, e := range pal {
		sum += e.Area
	}
	if math.Abs(sum-total) > 1e-6 {
		t.Errorf("area not conserved: got %g, want %g", sum, total)
	}
}

func TestReduceMergesClosestPairWeighted(t *testing.T) {
	// Red pair is far closer than either is to blue; the merge must
	// pick them and weight towards the larger area.
	profile := []InkEntry{
		inkFromHex("#ff0000", 300),
		inkFromHex("#fa0202", 100),
		inkFromHex("#0000ff", 200),
	}

	pal := Reduce(profile, 2, hclog.NewNullLogger())
	if len(pal) != 2 {
		t.Fatalf("got %d entries, want 2", len(pal))
	}
	merged := pal[0]
	if merged.Area != 400 {
		t.Errorf("merged area = %g, want 400", merged.Area)
	}
	// 0.75*255 + 0.25*250 = 253.75 -> 254
	if merged.RGBA.R != 254 {
		t.Errorf("merged R = %d, want 254", merged.RGBA.R)
	}
	if pal[1].Hex != "#0000ff" {
		t.Errorf("blue was disturbed: %s", pal[1].Hex)
	}
}

func TestMappingTotality(t *testing.T) {
	reg := buildRegistry(t, `<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="100" height="100" fill="#ffffff"/>
		<rect x="10" y="10" width="50" height="50" fill="#001f3f"/>
		<rect x="70" y="10" width="20" height="20" fill="#ff4136"/>
		<rect x="10" y="70" width="10" height="10" fill="none"/>
	</svg>`)

	profile := BuildInkProfile(reg, nil, hclog.NewNullLogger())
	pal := Reduce(profile, 1, hclog.NewNullLogger())
	mapping := MapPaints(reg, pal)

	if len(mapping) != len(reg.Groups) {
		t.Fatalf("mapping has %d entries for %d groups", len(mapping), len(reg.Groups))
	}
	for _, g := range reg.Groups {
		if _, ok := mapping[g.ID]; !ok {
			t.Errorf("group %s left unmapped", g.ID)
		}
	}
}

func TestMappingTargets(t *testing.T) {
	reg := buildRegistry(t, `<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="100" height="100" fill="#ffffff"/>
		<rect x="10" y="10" width="50" height="50" fill="#001f3f"/>
		<rect x="70" y="10" width="20" height="20" fill="#ff4136"/>
		<rect x="10" y="70" width="10" height="10" fill="none"/>
	</svg>`)

	pal := []Entry{
		{Hex: "#ff0000", RGBA: colour.Parse("#ff0000"), Lab: colour.RGBToLab(colour.Parse("#ff0000"))},
		{Hex: "#000080", RGBA: colour.Parse("#000080"), Lab: colour.RGBToLab(colour.Parse("#000080"))},
	}
	mapping := MapPaints(reg, pal)

	for _, g := range reg.Groups {
		rep := g.Representative
		got := mapping[g.ID]
		switch {
		case rep.Kind == registry.PaintNone:
			if got != "none" {
				t.Errorf("none group mapped to %q", got)
			}
		case rep.IsWhiteLike():
			if got != "#ffffff" {
				t.Errorf("white group mapped to %q", got)
			}
		case rep.Hex == "#001f3f":
			if got != "#000080" {
				t.Errorf("navy mapped to %q, want #000080", got)
			}
		case rep.Hex == "#ff4136":
			if got != "#ff0000" {
				t.Errorf("red mapped to %q, want #ff0000", got)
			}
		}
	}
}

func TestBuildVersionsFixedSet(t *testing.T) {
	markup := `<svg viewBox="0 0 100 100">
		<rect x="10" y="10" width="50" height="50" fill="#001f3f"/>
		<rect x="70" y="10" width="20" height="20" fill="#ff4136"/>
	</svg>`
	reg := buildRegistry(t, markup)

	versions := BuildVersions(reg, nil, markup, hclog.NewNullLogger())
	if len(versions) != 4 {
		t.Fatalf("got %d versions, want 4", len(versions))
	}

	full := versions[0]
	if full.Spec.Name != "Full Color" {
		t.Fatalf("first version is %q, want Full Color", full.Spec.Name)
	}
	if full.Markup != markup {
		t.Error("full-colour version must pass the original markup through")
	}
	if full.Mapping != nil {
		t.Error("full-colour version carries a mapping")
	}

	one := versions[3]
	if one.Spec.MaxColours != 1 {
		t.Fatalf("last version max colours = %d, want 1", one.Spec.MaxColours)
	}
	if len(one.Palette) != 1 {
		t.Errorf("one-colour palette has %d entries", len(one.Palette))
	}
	if len(one.Mapping) != len(reg.Groups) {
		t.Errorf("one-colour mapping has %d entries for %d groups",
			len(one.Mapping), len(reg.Groups))
	}
}
