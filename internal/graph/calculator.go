package graph

import (
	"fmt"
	"math"

	"xtrack/internal/core"
)

// Metric names of the fixed catalogue. The underscore spelling (in_degree,
// not in-degree) is what gets persisted and matched against requests, so it
// must not change even where prose spells the metrics with hyphens.
const (
	MetricNodeNumber            = "node_number"
	MetricEdgeNumber            = "edge_number"
	MetricInDegree              = "in_degree"
	MetricOutDegree             = "out_degree"
	MetricDensity               = "density"
	MetricEfficiency            = "efficiency"
	MetricModularity            = "modularity"
	MetricClusteringCoefficient = "clustering_coefficient"
	MetricDiameter              = "diameter"
	MetricEigenvectorCentrality = "eigenvector_centrality"
)

// Catalogue lists every supported metric in presentation order.
var Catalogue = []string{
	MetricNodeNumber,
	MetricEdgeNumber,
	MetricInDegree,
	MetricOutDegree,
	MetricDensity,
	MetricEfficiency,
	MetricModularity,
	MetricClusteringCoefficient,
	MetricDiameter,
	MetricEigenvectorCentrality,
}

func KnownMetric(name string) bool {
	for _, metric := range Catalogue {
		if metric == name {
			return true
		}
	}
	return false
}

// DefaultSeed drives the randomized passes (community detection) so repeated
// computations over the same snapshot agree bit for bit.
const DefaultSeed int64 = 42

// Calculator computes catalogue metrics over a snapshot. Every metric
// degrades to 0 on empty or otherwise degenerate graphs instead of failing.
type Calculator struct {
	Seed int64
}

// Compute evaluates the requested metrics. The only error is an unknown
// metric name, detected before any computation.
func (c Calculator) Compute(g *Snapshot, metrics []string) (map[string]float64, error) {
	for _, name := range metrics {
		if !KnownMetric(name) {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownMetric, name)
		}
	}

	results := make(map[string]float64, len(metrics))
	for _, name := range metrics {
		switch name {
		case MetricNodeNumber:
			results[name] = float64(g.NodeCount())
		case MetricEdgeNumber:
			results[name] = float64(g.EdgeCount())
		case MetricInDegree:
			results[name] = c.AverageInDegree(g)
		case MetricOutDegree:
			results[name] = c.AverageOutDegree(g)
		case MetricDensity:
			results[name] = c.Density(g)
		case MetricEfficiency:
			results[name] = c.Efficiency(g)
		case MetricModularity:
			results[name] = c.Modularity(g)
		case MetricClusteringCoefficient:
			results[name] = c.AverageClustering(g)
		case MetricDiameter:
			results[name] = float64(c.Diameter(g))
		case MetricEigenvectorCentrality:
			results[name] = c.AverageEigenvectorCentrality(g)
		}
	}
	return results, nil
}

// Density is edges / (nodes × (nodes−1)); 0 below 2 nodes.
func (c Calculator) Density(g *Snapshot) float64 {
	n := g.NodeCount()
	if n < 2 {
		return 0
	}
	return float64(g.EdgeCount()) / float64(n*(n-1))
}

// AverageInDegree is the mean weighted in-degree over all nodes.
func (c Calculator) AverageInDegree(g *Snapshot) float64 {
	if g.NodeCount() == 0 {
		return 0
	}
	total := 0.0
	for _, node := range g.Nodes() {
		total += g.InDegree(node)
	}
	return total / float64(g.NodeCount())
}

func (c Calculator) AverageOutDegree(g *Snapshot) float64 {
	if g.NodeCount() == 0 {
		return 0
	}
	total := 0.0
	for _, node := range g.Nodes() {
		total += g.OutDegree(node)
	}
	return total / float64(g.NodeCount())
}

// Efficiency is the mean of 1/d(u,v) over ordered node pairs, with distances
// taken over inverted weights (stronger ties are shorter). Unreachable pairs
// contribute 0.
func (c Calculator) Efficiency(g *Snapshot) float64 {
	n := g.NodeCount()
	if n < 2 {
		return 0
	}

	inverted := make(map[string]map[string]float64, n)
	for _, node := range g.Nodes() {
		inverted[node] = map[string]float64{}
		for target, w := range g.Out(node) {
			inverted[node][target] = 1 / w
		}
	}

	total := 0.0
	for _, source := range g.Nodes() {
		for target, d := range dijkstra(inverted, source) {
			if target == source || d == 0 {
				continue
			}
			total += 1 / d
		}
	}
	return total / float64(n*(n-1))
}

// Modularity runs seeded label propagation over the undirected projection and
// scores the found partition.
func (c Calculator) Modularity(g *Snapshot) float64 {
	if g.NodeCount() == 0 {
		return 0
	}
	adj := g.Undirected()
	return Modularity(adj, Communities(adj, c.seed()))
}

// Diameter is the longest shortest hop-path within the largest
// weakly-connected component; 0 when fewer than 2 nodes are connected.
func (c Calculator) Diameter(g *Snapshot) int {
	components := weaklyConnectedComponents(g)
	var largest []string
	for _, component := range components {
		if len(component) > len(largest) {
			largest = component
		}
	}
	if len(largest) < 2 {
		return 0
	}

	sub := g.Subgraph(largest)
	diameter := 0
	for _, source := range sub.Nodes() {
		for _, d := range hopDistances(sub, source) {
			if d > diameter {
				diameter = d
			}
		}
	}
	return diameter
}

// AverageClustering is the mean local clustering coefficient over the
// undirected projection, with the weighted (geometric mean) variant.
func (c Calculator) AverageClustering(g *Snapshot) float64 {
	n := g.NodeCount()
	if n == 0 {
		return 0
	}

	adj := g.Undirected()
	maxWeight := 0.0
	for _, neighbors := range adj {
		for _, w := range neighbors {
			if w > maxWeight {
				maxWeight = w
			}
		}
	}
	if maxWeight == 0 {
		return 0
	}

	total := 0.0
	for _, node := range g.Nodes() {
		total += localClustering(adj, node, maxWeight)
	}
	return total / float64(n)
}

func localClustering(adj map[string]map[string]float64, node string, maxWeight float64) float64 {
	neighbors := adj[node]
	k := len(neighbors)
	if k < 2 {
		return 0
	}

	sum := 0.0
	for v, wuv := range neighbors {
		for w, wuw := range neighbors {
			if v == w {
				continue
			}
			wvw, ok := adj[v][w]
			if !ok {
				continue
			}
			sum += math.Cbrt((wuv / maxWeight) * (wuw / maxWeight) * (wvw / maxWeight))
		}
	}
	return sum / float64(k*(k-1))
}

// AverageEigenvectorCentrality is the scalar the time-series mode persists.
func (c Calculator) AverageEigenvectorCentrality(g *Snapshot) float64 {
	scores := EigenvectorCentrality(g)
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, score := range scores {
		total += score
	}
	return total / float64(len(scores))
}

func (c Calculator) seed() int64 {
	if c.Seed == 0 {
		return DefaultSeed
	}
	return c.Seed
}
