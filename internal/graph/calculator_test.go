package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xtrack/internal/core"
	"xtrack/internal/graph"
)

func chainGraph() *graph.Snapshot {
	g := graph.New()
	g.AddEdge("A", "B", 1)
	g.AddEdge("B", "C", 1)
	return g
}

func TestCalculator_Compute(t *testing.T) {
	t.Parallel()

	calc := graph.Calculator{}

	t.Run("chain graph", func(t *testing.T) {
		t.Parallel()

		values, err := calc.Compute(chainGraph(), []string{
			graph.MetricNodeNumber,
			graph.MetricEdgeNumber,
			graph.MetricDensity,
			graph.MetricDiameter,
			graph.MetricInDegree,
			graph.MetricOutDegree,
		})
		require.NoError(t, err)

		require.Equal(t, 3.0, values[graph.MetricNodeNumber])
		require.Equal(t, 2.0, values[graph.MetricEdgeNumber])
		require.InDelta(t, 1.0/3.0, values[graph.MetricDensity], 1e-9)
		require.Equal(t, 2.0, values[graph.MetricDiameter])
		require.InDelta(t, 2.0/3.0, values[graph.MetricInDegree], 1e-9)
		require.InDelta(t, 2.0/3.0, values[graph.MetricOutDegree], 1e-9)
	})

	t.Run("empty graph degrades to zero", func(t *testing.T) {
		t.Parallel()

		values, err := calc.Compute(graph.New(), graph.Catalogue)
		require.NoError(t, err)

		for _, metric := range graph.Catalogue {
			require.Zero(t, values[metric], metric)
		}
	})

	t.Run("unknown metric rejected before computing", func(t *testing.T) {
		t.Parallel()

		_, err := calc.Compute(chainGraph(), []string{graph.MetricDensity, "betweenness"})
		require.ErrorIs(t, err, core.ErrUnknownMetric)
	})
}

func TestCalculator_Efficiency(t *testing.T) {
	t.Parallel()

	calc := graph.Calculator{}

	// Distances run over inverted weights: A→B is 1/2, B→C is 1.
	g := graph.New()
	g.AddEdge("A", "B", 2)
	g.AddEdge("B", "C", 1)

	// Pairs: A→B 1/(1/2)=2, A→C 1/(3/2)=2/3, B→C 1/1=1, rest unreachable.
	require.InDelta(t, (2.0+2.0/3.0+1.0)/6.0, calc.Efficiency(g), 1e-9)
}

func TestCalculator_Diameter(t *testing.T) {
	t.Parallel()

	calc := graph.Calculator{}

	t.Run("largest weakly connected component", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("A", "B", 1)
		g.AddEdge("B", "C", 1)
		g.AddEdge("C", "D", 1)
		// Separate pair, smaller component.
		g.AddEdge("x", "y", 1)

		require.Equal(t, 3, calc.Diameter(g))
	})

	t.Run("single node", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, 0, calc.Diameter(graph.New()))
	})
}

func TestCalculator_Clustering(t *testing.T) {
	t.Parallel()

	calc := graph.Calculator{}

	t.Run("triangle is fully clustered", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("a", "b", 1)
		g.AddEdge("b", "c", 1)
		g.AddEdge("c", "a", 1)

		require.InDelta(t, 1.0, calc.AverageClustering(g), 1e-9)
	})

	t.Run("chain has no triangles", func(t *testing.T) {
		t.Parallel()

		require.Zero(t, calc.AverageClustering(chainGraph()))
	})
}

func TestCalculator_Modularity(t *testing.T) {
	t.Parallel()

	twoCliques := func() *graph.Snapshot {
		g := graph.New()
		g.AddEdge("a", "b", 1)
		g.AddEdge("b", "c", 1)
		g.AddEdge("c", "a", 1)
		g.AddEdge("x", "y", 1)
		g.AddEdge("y", "z", 1)
		g.AddEdge("z", "x", 1)
		g.AddEdge("a", "x", 0.1)
		return g
	}

	t.Run("separates weakly bridged cliques", func(t *testing.T) {
		t.Parallel()

		calc := graph.Calculator{}
		require.Greater(t, calc.Modularity(twoCliques()), 0.2)
	})

	t.Run("deterministic under a fixed seed", func(t *testing.T) {
		t.Parallel()

		calc := graph.Calculator{Seed: 7}
		first := calc.Modularity(twoCliques())
		second := calc.Modularity(twoCliques())
		require.Equal(t, first, second)
	})
}

func TestKnownMetric(t *testing.T) {
	t.Parallel()

	for _, metric := range graph.Catalogue {
		require.True(t, graph.KnownMetric(metric), metric)
	}
	require.False(t, graph.KnownMetric("pagerank"))

	// Hyphenated variants are not the persisted spelling.
	require.False(t, graph.KnownMetric("in-degree"))
	require.False(t, graph.KnownMetric("out-degree"))
}

func TestCatalogueSpelling(t *testing.T) {
	t.Parallel()

	// These strings are stored in result rows and matched against incoming
	// requests; renaming a constant must not silently rename the metric.
	require.Equal(t, []string{
		"node_number",
		"edge_number",
		"in_degree",
		"out_degree",
		"density",
		"efficiency",
		"modularity",
		"clustering_coefficient",
		"diameter",
		"eigenvector_centrality",
	}, graph.Catalogue)
}
