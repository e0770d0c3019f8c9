package pipeline

import (
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/inkform/internal/classify"
	"github.com/jmylchreest/inkform/internal/registry"
	"github.com/jmylchreest/inkform/internal/shapes"
)

func analyse(t *testing.T, markup string) *Result {
	t.Helper()
	result, err := New(nil, nil, hclog.NewNullLogger()).Analyze(markup, nil)
	if err != nil {
		t.Fatalf("analyzing: %v", err)
	}
	return result
}

func TestAnalyzeRejectsUnparsableMarkup(t *testing.T) {
	_, err := New(nil, nil, hclog.NewNullLogger()).Analyze("<svg", nil)
	if err == nil {
		t.Fatal("expected an error for truncated markup")
	}
}

func TestWhiteBackgroundPlateEndToEnd(t *testing.T) {
	result := analyse(t, `<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="100" height="95" fill="#ffffff"/>
		<circle cx="50" cy="50" r="20" fill="#001f3f"/>
	</svg>`)

	if result.BackgroundPlate == nil {
		t.Fatal("no background plate detected")
	}
	if len(result.WhiteDecisions) != 1 {
		t.Fatalf("got %d white decisions, want 1", len(result.WhiteDecisions))
	}
	d := result.WhiteDecisions[0]
	if d.Classification != classify.BackgroundDelete || d.Confidence != 0.95 {
		t.Errorf("got %s/%g, want background_delete/0.95", d.Classification, d.Confidence)
	}

	// The deleted plate must not contribute ink.
	for _, ink := range result.InkProfile {
		if ink.Hex == "#ffffff" {
			t.Error("white plate leaked into the ink profile")
		}
	}
	if len(result.InkProfile) != 1 || result.InkProfile[0].Hex != "#001f3f" {
		t.Errorf("ink profile = %+v, want single navy entry", result.InkProfile)
	}
}

func TestNestedCounterEndToEnd(t *testing.T) {
	result := analyse(t, `<svg viewBox="0 0 100 100">
		<circle cx="50" cy="50" r="30" fill="#001f3f"/>
		<circle cx="50" cy="50" r="16" fill="#ffffff"/>
	</svg>`)

	if len(result.WhiteDecisions) != 1 {
		t.Fatalf("got %d white decisions, want 1", len(result.WhiteDecisions))
	}
	d := result.WhiteDecisions[0]
	if d.Classification != classify.CounterHole || d.Confidence != 0.8 {
		t.Errorf("got %s/%g, want counter_hole/0.8", d.Classification, d.Confidence)
	}
}

func TestWordmarkRowEndToEnd(t *testing.T) {
	result := analyse(t, `<svg viewBox="0 0 100 100">
		<rect x="10" y="45" width="12" height="10" fill="#001f3f"/>
		<rect x="30" y="45" width="12" height="10" fill="#001f3f"/>
		<rect x="50" y="45" width="12" height="10" fill="#001f3f"/>
		<rect x="70" y="45" width="12" height="10" fill="#001f3f"/>
	</svg>`)

	if len(result.ShapeClusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(result.ShapeClusters))
	}
	c := result.ShapeClusters[0]
	if c.Type != shapes.ClusterWordmark || c.MemberCount != 4 {
		t.Errorf("got %s with %d members, want wordmark with 4", c.Type, c.MemberCount)
	}
}

func TestLinearGradientClassifiedEndToEnd(t *testing.T) {
	result := analyse(t, `<svg viewBox="0 0 100 100">
		<defs>
			<linearGradient id="g">
				<stop offset="0%" stop-color="#ff0000"/>
				<stop offset="50%" stop-color="#00ff00"/>
				<stop offset="100%" stop-color="#0000ff"/>
			</linearGradient>
		</defs>
		<rect x="10" y="10" width="80" height="80" fill="url(#g)"/>
	</svg>`)

	if len(result.Gradients) != 1 {
		t.Fatalf("got %d gradient classifications, want 1", len(result.Gradients))
	}
	for _, gc := range result.Gradients {
		if gc.Class != registry.GradientSimpleLinear {
			t.Errorf("class = %s, want simple_linear", gc.Class)
		}
		if gc.Confidence != 0.95 || !gc.CanRecreateVector {
			t.Errorf("got confidence %g recreatable %v, want 0.95/true",
				gc.Confidence, gc.CanRecreateVector)
		}
		if gc.StopCount != 3 {
			t.Errorf("stop count = %d, want 3", gc.StopCount)
		}
	}
}

func TestVersionsCompleteAndTotal(t *testing.T) {
	markup := `<svg viewBox="0 0 100 100">
		<rect x="0" y="0" width="100" height="100" fill="#ffffff"/>
		<rect x="10" y="10" width="40" height="40" fill="#001f3f"/>
		<rect x="60" y="10" width="20" height="20" fill="#ff4136"/>
		<rect x="10" y="60" width="15" height="15" fill="#2ecc40"/>
	</svg>`
	result := analyse(t, markup)

	if len(result.Versions) != 4 {
		t.Fatalf("got %d versions, want 4", len(result.Versions))
	}
	if result.Versions[0].Markup != markup {
		t.Error("full-colour version does not pass the original markup through")
	}

	// Every reduced version maps every paint group.
	for _, v := range result.Versions[1:] {
		if v.Spec.MaxColours > 0 && len(v.Palette) > v.Spec.MaxColours {
			t.Errorf("%s palette has %d entries, limit %d",
				v.Spec.Name, len(v.Palette), v.Spec.MaxColours)
		}
		if len(v.Mapping) != len(result.PaintGroups) {
			t.Errorf("%s mapping covers %d of %d groups",
				v.Spec.Name, len(v.Mapping), len(result.PaintGroups))
		}
	}
}
