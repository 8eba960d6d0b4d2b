package graph

import "math"

const (
	eigenvectorMaxIterations = 100
	eigenvectorTolerance     = 1e-6
)

// EigenvectorCentrality computes the principal eigenvector of the weighted
// adjacency by power iteration, each node scored by its incoming edges. The
// start vector is uniform, so results are deterministic. On acyclic graphs
// the x+Ax iterate approaches the dominant vector only polynomially, so the
// tolerance may never be met within the iteration cap; the final normalized
// iterate is still a usable ranking and is returned rather than discarded.
func EigenvectorCentrality(g *Snapshot) map[string]float64 {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return map[string]float64{}
	}

	x := make(map[string]float64, len(nodes))
	for _, node := range nodes {
		x[node] = 1.0 / float64(len(nodes))
	}

	for i := 0; i < eigenvectorMaxIterations; i++ {
		next := make(map[string]float64, len(nodes))
		for _, node := range nodes {
			score := x[node]
			for source, w := range g.In(node) {
				score += x[source] * w
			}
			next[node] = score
		}

		norm := 0.0
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}

		delta := 0.0
		for _, node := range nodes {
			next[node] /= norm
			delta += math.Abs(next[node] - x[node])
		}
		x = next

		if delta < float64(len(nodes))*eigenvectorTolerance {
			break
		}
	}
	return x
}
