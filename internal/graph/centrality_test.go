package graph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"xtrack/internal/graph"
)

func TestEigenvectorCentrality(t *testing.T) {
	t.Parallel()

	t.Run("cycle scores uniformly", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("a", "b", 1)
		g.AddEdge("b", "c", 1)
		g.AddEdge("c", "a", 1)

		scores := graph.EigenvectorCentrality(g)
		require.Len(t, scores, 3)
		for node, score := range scores {
			require.InDelta(t, 1/math.Sqrt(3), score, 1e-6, node)
		}
	})

	t.Run("mutual pair scores equally", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("a", "b", 1)
		g.AddEdge("b", "a", 1)

		scores := graph.EigenvectorCentrality(g)
		require.InDelta(t, scores["a"], scores["b"], 1e-9)
	})

	t.Run("heavier inflow ranks higher", func(t *testing.T) {
		t.Parallel()

		// A two-way core with a heavier flow into b.
		g := graph.New()
		g.AddEdge("a", "b", 3)
		g.AddEdge("b", "a", 1)
		g.AddEdge("c", "b", 2)
		g.AddEdge("b", "c", 1)

		scores := graph.EigenvectorCentrality(g)
		require.NotNil(t, scores)
		require.Greater(t, scores["b"], scores["a"])
		require.Greater(t, scores["b"], scores["c"])
	})

	t.Run("empty graph", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, graph.EigenvectorCentrality(graph.New()))
	})

	// Retweet and reply graphs are usually acyclic, where the iteration only
	// approaches the dominant vector polynomially. The ranking must still
	// come out usable instead of collapsing to nothing.
	t.Run("acyclic star", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("alice", "hub", 1)
		g.AddEdge("bob", "hub", 1)

		scores := graph.EigenvectorCentrality(g)
		require.Len(t, scores, 3)
		require.Greater(t, scores["hub"], scores["alice"])
		require.Greater(t, scores["hub"], scores["bob"])
		require.InDelta(t, scores["alice"], scores["bob"], 1e-9)
		for node, score := range scores {
			require.Positive(t, score, node)
		}
	})

	t.Run("acyclic chain", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("a", "b", 1)
		g.AddEdge("b", "c", 1)

		scores := graph.EigenvectorCentrality(g)
		require.Len(t, scores, 3)
		require.Greater(t, scores["c"], scores["b"])
		require.Greater(t, scores["b"], scores["a"])
		require.Positive(t, scores["a"])
	})
}

func TestCalculator_AverageEigenvectorCentrality(t *testing.T) {
	t.Parallel()

	calc := graph.Calculator{}

	g := graph.New()
	g.AddEdge("alice", "hub", 1)
	g.AddEdge("bob", "hub", 1)

	require.Positive(t, calc.AverageEigenvectorCentrality(g))
	require.Zero(t, calc.AverageEigenvectorCentrality(graph.New()))
}
