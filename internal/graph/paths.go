package graph

import "container/heap"

// dijkstra returns the shortest-path distance from source to every reachable
// node over the given adjacency. Edge weights must be positive.
func dijkstra(adj map[string]map[string]float64, source string) map[string]float64 {
	dist := map[string]float64{source: 0}
	visited := map[string]bool{}

	pq := &nodeQueue{{node: source, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(nodeItem)
		if visited[item.node] {
			continue
		}
		visited[item.node] = true

		for neighbor, w := range adj[item.node] {
			candidate := item.dist + w
			if current, ok := dist[neighbor]; !ok || candidate < current {
				dist[neighbor] = candidate
				heap.Push(pq, nodeItem{node: neighbor, dist: candidate})
			}
		}
	}
	return dist
}

// hopDistances returns BFS hop counts from source over the out-adjacency.
func hopDistances(g *Snapshot, source string) map[string]int {
	dist := map[string]int{source: 0}
	queue := []string{source}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for neighbor := range g.Out(node) {
			if _, seen := dist[neighbor]; seen {
				continue
			}
			dist[neighbor] = dist[node] + 1
			queue = append(queue, neighbor)
		}
	}
	return dist
}

// weaklyConnectedComponents partitions the nodes ignoring edge direction.
// Components come out in deterministic order (smallest member first).
func weaklyConnectedComponents(g *Snapshot) [][]string {
	seen := map[string]bool{}
	var components [][]string

	for _, start := range g.Nodes() {
		if seen[start] {
			continue
		}
		component := []string{}
		queue := []string{start}
		seen[start] = true

		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			component = append(component, node)

			for neighbor := range g.Out(node) {
				if !seen[neighbor] {
					seen[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
			for neighbor := range g.In(node) {
				if !seen[neighbor] {
					seen[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

type nodeItem struct {
	node string
	dist float64
}

type nodeQueue []nodeItem

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)        { *q = append(*q, x.(nodeItem)) }
func (q *nodeQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
