package svg

import (
	"math"
	"testing"
)

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name    string
		d       string
		wantOps string
	}{
		{name: "simple move line close", d: "M 0 0 L 10 0 L 10 10 Z", wantOps: "MLLZ"},
		{name: "compact separators", d: "M0,0L10,0 10,10z", wantOps: "MLLz"},
		{name: "implicit lineto after moveto", d: "M 0 0 10 0 10 10", wantOps: "MLL"},
		{name: "relative implicit lineto", d: "m 0 0 10 0 10 10", wantOps: "mll"},
		{name: "cubic and shorthand", d: "M0 0C1 1 2 2 3 3S4 4 5 5", wantOps: "MCS"},
		{name: "arc", d: "M0 0A5 5 0 1 0 10 0", wantOps: "MA"},
		{name: "negative and exponent numbers", d: "M-1e1 .5L-2-3", wantOps: "ML"},
		{name: "empty", d: "", wantOps: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := ParsePathData(tt.d)
			got := ""
			for _, c := range cmds {
				got += string(c.Op)
			}
			if got != tt.wantOps {
				t.Errorf("ops = %q, want %q", got, tt.wantOps)
			}
		})
	}
}

func TestParsePathDataCompactArcFlags(t *testing.T) {
	// Minified output runs the two single-digit arc flags into the
	// following coordinate without a separator.
	cmds := ParsePathData("M0 0A5 5 0 0110 10")
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	want := []float64{5, 5, 0, 0, 1, 10, 10}
	for i, v := range want {
		if cmds[1].Args[i] != v {
			t.Fatalf("A args = %v, want %v", cmds[1].Args, want)
		}
	}

	// Both flags compacted against each other and the x coordinate.
	cmds = ParsePathData("m0 0a1 1 0 00-2 0a1 1 0 002 0")
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3", len(cmds))
	}
	if cmds[1].Args[3] != 0 || cmds[1].Args[4] != 0 || cmds[1].Args[5] != -2 {
		t.Errorf("a args = %v, want flags 0 0 then x -2", cmds[1].Args)
	}

	// Separated flags still parse as before.
	cmds = ParsePathData("M0 0A5 5 0 1 0 10 0")
	if len(cmds) != 2 || len(cmds[1].Args) != 7 {
		t.Fatalf("separated arc parsed as %v", cmds)
	}
	if cmds[1].Args[3] != 1 || cmds[1].Args[4] != 0 {
		t.Errorf("arc flags = %v %v, want 1 0", cmds[1].Args[3], cmds[1].Args[4])
	}
}

func TestParsePathDataNegativeExponent(t *testing.T) {
	cmds := ParsePathData("M-1e1 .5L-2-3")
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	if cmds[0].Args[0] != -10 || cmds[0].Args[1] != 0.5 {
		t.Errorf("M args = %v, want [-10 0.5]", cmds[0].Args)
	}
	if cmds[1].Args[0] != -2 || cmds[1].Args[1] != -3 {
		t.Errorf("L args = %v, want [-2 -3]", cmds[1].Args)
	}
}

func TestToAbsolute(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want string
	}{
		{name: "relative lineto chain", d: "m 10 10 l 5 0 l 0 5", want: "M 10 10 L 15 10 L 15 15"},
		{name: "relative cubic", d: "m 0 0 c 1 1 2 2 3 3", want: "M 0 0 C 1 1 2 2 3 3"},
		{name: "relative horizontal vertical", d: "m 5 5 h 10 v 10", want: "M 5 5 H 15 V 15"},
		{name: "z resets current point", d: "m 10 10 l 5 0 z l 1 1", want: "M 10 10 L 15 10 Z L 11 11"},
		{name: "relative arc endpoint", d: "m 10 10 a 5 5 0 0 1 5 5", want: "M 10 10 A 5 5 0 0 1 15 15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WritePathData(ToAbsolute(ParsePathData(tt.d)))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitSubpaths(t *testing.T) {
	cmds := ToAbsolute(ParsePathData("M0 0L10 0L10 10Z M20 20L30 20L30 30Z"))
	subs := SplitSubpaths(cmds)
	if len(subs) != 2 {
		t.Fatalf("got %d subpaths, want 2", len(subs))
	}
	if CountSubpaths(cmds) != 2 {
		t.Errorf("CountSubpaths = %d, want 2", CountSubpaths(cmds))
	}
	if subs[0][0].Op != 'M' || subs[1][0].Op != 'M' {
		t.Error("each subpath must start with a moveto")
	}
	if subs[1][0].Args[0] != 20 {
		t.Errorf("second subpath starts at x=%v, want 20", subs[1][0].Args[0])
	}
}

func TestWritePathDataCompact(t *testing.T) {
	got := WritePathData([]PathCommand{
		{Op: 'M', Args: []float64{1.50000001, 2}},
		{Op: 'L', Args: []float64{3.25, -0.0}},
	})
	want := "M 1.5 2 L 3.25 0"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParsePathDataRoundTripGeometry(t *testing.T) {
	d := "M 1.5 2.5 C 3 4 5 6 7 8 A 2 3 45 1 0 9 10 Z"
	cmds := ToAbsolute(ParsePathData(d))
	again := ToAbsolute(ParsePathData(WritePathData(cmds)))
	if len(cmds) != len(again) {
		t.Fatalf("round trip changed command count: %d vs %d", len(cmds), len(again))
	}
	for i := range cmds {
		if cmds[i].Op != again[i].Op {
			t.Fatalf("command %d op changed: %c vs %c", i, cmds[i].Op, again[i].Op)
		}
		for j := range cmds[i].Args {
			if math.Abs(cmds[i].Args[j]-again[i].Args[j]) > 1e-4 {
				t.Errorf("command %d arg %d drifted: %v vs %v", i, j, cmds[i].Args[j], again[i].Args[j])
			}
		}
	}
}
