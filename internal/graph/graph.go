package graph

import "sort"

// Snapshot is an in-memory directed weighted graph over user identifiers for
// one interaction kind and one selector. Parallel interactions between the
// same ordered pair collapse into the edge weight. Snapshots are built per
// request, consumed by the metric calculator and discarded; only derived
// results are persisted.
type Snapshot struct {
	out map[string]map[string]float64
	in  map[string]map[string]float64
}

func New() *Snapshot {
	return &Snapshot{
		out: map[string]map[string]float64{},
		in:  map[string]map[string]float64{},
	}
}

// AddEdge adds weight to the source→target edge, creating both nodes as
// needed. Non-positive weights are ignored.
func (g *Snapshot) AddEdge(source, target string, weight float64) {
	if weight <= 0 {
		return
	}
	if g.out[source] == nil {
		g.out[source] = map[string]float64{}
	}
	if g.in[source] == nil {
		g.in[source] = map[string]float64{}
	}
	if g.out[target] == nil {
		g.out[target] = map[string]float64{}
	}
	if g.in[target] == nil {
		g.in[target] = map[string]float64{}
	}
	g.out[source][target] += weight
	g.in[target][source] += weight
}

func (g *Snapshot) NodeCount() int {
	return len(g.out)
}

// EdgeCount is the number of distinct directed edges.
func (g *Snapshot) EdgeCount() int {
	count := 0
	for _, targets := range g.out {
		count += len(targets)
	}
	return count
}

// Nodes returns all node identifiers in sorted order.
func (g *Snapshot) Nodes() []string {
	nodes := make([]string, 0, len(g.out))
	for node := range g.out {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

func (g *Snapshot) HasNode(node string) bool {
	_, ok := g.out[node]
	return ok
}

func (g *Snapshot) Weight(source, target string) float64 {
	return g.out[source][target]
}

// Out returns the outgoing adjacency of a node. The returned map is shared
// with the snapshot and must not be mutated.
func (g *Snapshot) Out(node string) map[string]float64 {
	return g.out[node]
}

func (g *Snapshot) In(node string) map[string]float64 {
	return g.in[node]
}

// InDegree is the weighted in-degree of a node.
func (g *Snapshot) InDegree(node string) float64 {
	total := 0.0
	for _, w := range g.in[node] {
		total += w
	}
	return total
}

func (g *Snapshot) OutDegree(node string) float64 {
	total := 0.0
	for _, w := range g.out[node] {
		total += w
	}
	return total
}

// Undirected projects the snapshot onto a symmetric adjacency, summing the
// weights of antiparallel edges.
func (g *Snapshot) Undirected() map[string]map[string]float64 {
	adj := make(map[string]map[string]float64, len(g.out))
	for node := range g.out {
		adj[node] = map[string]float64{}
	}
	for source, targets := range g.out {
		for target, w := range targets {
			adj[source][target] += w
			adj[target][source] += w
		}
	}
	return adj
}

// Subgraph returns the induced subgraph over the given nodes.
func (g *Snapshot) Subgraph(nodes []string) *Snapshot {
	keep := make(map[string]bool, len(nodes))
	for _, node := range nodes {
		keep[node] = true
	}

	sub := New()
	for source, targets := range g.out {
		if !keep[source] {
			continue
		}
		for target, w := range targets {
			if keep[target] {
				sub.AddEdge(source, target, w)
			}
		}
	}
	return sub
}
