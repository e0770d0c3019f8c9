package colour

// ClusterByDistance groups items by single-linkage agglomerative
// clustering: the globally closest pair of clusters (measured by their
// closest members) is merged repeatedly until no pair lies within
// threshold. Member order within a cluster follows insertion order, so
// the first member is conventionally the representative.
//
// The scan is O(n²) per merge. Distinct paints per document number in
// the tens, so this never matters in practice. Equal-distance ties
// resolve to the first pair found in scan order; callers that need
// reproducible output should avoid tied inputs.
func ClusterByDistance[T any](items []T, threshold float64, dist func(a, b T) float64) [][]T {
	if len(items) == 0 {
		return nil
	}

	clusters := make([][]T, len(items))
	for i, item := range items {
		clusters[i] = []T{item}
	}

	for len(clusters) > 1 {
		bestI, bestJ := -1, -1
		bestDist := 0.0

		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				d := clusterDistance(clusters[i], clusters[j], dist)
				if bestI < 0 || d < bestDist {
					bestI, bestJ, bestDist = i, j, d
				}
			}
		}

		if bestDist > threshold {
			break
		}

		clusters[bestI] = append(clusters[bestI], clusters[bestJ]...)
		clusters = append(clusters[:bestJ], clusters[bestJ+1:]...)
	}

	return clusters
}

// clusterDistance is the single-linkage distance: the minimum pairwise
// distance between members of the two clusters.
func clusterDistance[T any](a, b []T, dist func(x, y T) float64) float64 {
	best := 0.0
	first := true
	for _, x := range a {
		for _, y := range b {
			d := dist(x, y)
			if first || d < best {
				best = d
				first = false
			}
		}
	}
	return best
}
