package graph

import (
	"math/rand"
	"sort"
)

const labelPropagationMaxIterations = 100

// Communities partitions the undirected projection of the graph by weighted
// label propagation. The node visit order is a seeded shuffle of the sorted
// node set, so the partition is reproducible for a fixed seed. Label ties are
// broken towards the smallest label.
func Communities(adj map[string]map[string]float64, seed int64) map[string]string {
	nodes := make([]string, 0, len(adj))
	for node := range adj {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	labels := make(map[string]string, len(nodes))
	for _, node := range nodes {
		labels[node] = node
	}

	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < labelPropagationMaxIterations; i++ {
		order := append([]string(nil), nodes...)
		rng.Shuffle(len(order), func(a, b int) {
			order[a], order[b] = order[b], order[a]
		})

		changed := false
		for _, node := range order {
			best := dominantLabel(adj[node], labels, labels[node])
			if best != labels[node] {
				labels[node] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return labels
}

func dominantLabel(neighbors map[string]float64, labels map[string]string, current string) string {
	if len(neighbors) == 0 {
		return current
	}

	weights := map[string]float64{}
	for neighbor, w := range neighbors {
		weights[labels[neighbor]] += w
	}

	best := current
	bestWeight := weights[current]
	for label, w := range weights {
		if w > bestWeight || (w == bestWeight && label < best) {
			best = label
			bestWeight = w
		}
	}
	return best
}

// Modularity scores a partition of the undirected weighted adjacency with the
// Newman modularity measure. Returns 0 for graphs without edges.
func Modularity(adj map[string]map[string]float64, labels map[string]string) float64 {
	totalWeight := 0.0 // 2m: every undirected edge counted from both ends
	degrees := make(map[string]float64, len(adj))
	for node, neighbors := range adj {
		for _, w := range neighbors {
			degrees[node] += w
		}
		totalWeight += degrees[node]
	}
	if totalWeight == 0 {
		return 0
	}

	internal := map[string]float64{}
	communityDegree := map[string]float64{}
	for node, neighbors := range adj {
		label := labels[node]
		communityDegree[label] += degrees[node]
		for neighbor, w := range neighbors {
			if labels[neighbor] == label {
				internal[label] += w
			}
		}
	}

	q := 0.0
	for label, within := range internal {
		q += within / totalWeight
		frac := communityDegree[label] / totalWeight
		q -= frac * frac
	}
	for label, degree := range communityDegree {
		if _, ok := internal[label]; ok {
			continue
		}
		frac := degree / totalWeight
		q -= frac * frac
	}
	return q
}
