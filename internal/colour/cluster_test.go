package colour

import "testing"

func TestClusterByDistance(t *testing.T) {
	dist := func(a, b float64) float64 {
		if a > b {
			return a - b
		}
		return b - a
	}

	tests := []struct {
		name      string
		items     []float64
		threshold float64
		wantSizes []int
	}{
		{
			name:      "two tight groups",
			items:     []float64{0, 1, 2, 100, 101},
			threshold: 5,
			wantSizes: []int{3, 2},
		},
		{
			name:      "threshold merges everything",
			items:     []float64{0, 10, 20},
			threshold: 10,
			wantSizes: []int{3},
		},
		{
			name:      "threshold below all gaps keeps singletons",
			items:     []float64{0, 10, 20},
			threshold: 5,
			wantSizes: []int{1, 1, 1},
		},
		{
			name:      "single item",
			items:     []float64{42},
			threshold: 1,
			wantSizes: []int{1},
		},
		{
			name:      "empty input",
			items:     nil,
			threshold: 1,
			wantSizes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClusterByDistance(tt.items, tt.threshold, dist)
			if len(got) != len(tt.wantSizes) {
				t.Fatalf("got %d clusters, want %d", len(got), len(tt.wantSizes))
			}

			// Sizes compared as multisets; merge order is not part of
			// the contract.
			gotSizes := make(map[int]int)
			wantSizes := make(map[int]int)
			for _, c := range got {
				gotSizes[len(c)]++
			}
			for _, n := range tt.wantSizes {
				wantSizes[n]++
			}
			for size, count := range wantSizes {
				if gotSizes[size] != count {
					t.Errorf("cluster size %d appears %d times, want %d", size, gotSizes[size], count)
				}
			}
		})
	}
}

func TestClusterRepresentativeIsFirstInserted(t *testing.T) {
	labDist := func(a, b RGBA) float64 {
		return DeltaE(RGBToLab(a), RGBToLab(b))
	}

	items := []RGBA{
		{R: 200, G: 10, B: 10, A: 255},
		{R: 205, G: 12, B: 12, A: 255},
		{R: 10, G: 10, B: 200, A: 255},
	}
	clusters := ClusterByDistance(items, 12, labDist)

	for _, c := range clusters {
		if len(c) == 0 {
			t.Fatal("empty cluster")
		}
	}
	// The red pair must merge with the earlier red first.
	for _, c := range clusters {
		if len(c) == 2 && c[0] != items[0] {
			t.Errorf("representative = %+v, want first-inserted %+v", c[0], items[0])
		}
	}
}
