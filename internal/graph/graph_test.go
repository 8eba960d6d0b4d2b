package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xtrack/internal/graph"
)

func TestSnapshot_AddEdge(t *testing.T) {
	t.Parallel()

	t.Run("aggregates parallel edges", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("a", "b", 1)
		g.AddEdge("a", "b", 2)

		require.Equal(t, 2, g.NodeCount())
		require.Equal(t, 1, g.EdgeCount())
		require.Equal(t, 3.0, g.Weight("a", "b"))
	})

	t.Run("ignores non-positive weights", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("a", "b", 0)
		g.AddEdge("a", "b", -1)

		require.Equal(t, 0, g.NodeCount())
		require.Equal(t, 0, g.EdgeCount())
	})

	t.Run("antiparallel edges stay distinct", func(t *testing.T) {
		t.Parallel()

		g := graph.New()
		g.AddEdge("a", "b", 1)
		g.AddEdge("b", "a", 2)

		require.Equal(t, 2, g.EdgeCount())
		require.Equal(t, 1.0, g.Weight("a", "b"))
		require.Equal(t, 2.0, g.Weight("b", "a"))
	})
}

func TestSnapshot_Degrees(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("a", "b", 2)
	g.AddEdge("c", "b", 1)
	g.AddEdge("b", "a", 0.5)

	require.Equal(t, 3.0, g.InDegree("b"))
	require.Equal(t, 0.5, g.OutDegree("b"))
	require.Equal(t, 0.5, g.InDegree("a"))
	require.Equal(t, 0.0, g.InDegree("c"))
}

func TestSnapshot_Nodes(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("c", "a", 1)
	g.AddEdge("b", "a", 1)

	require.Equal(t, []string{"a", "b", "c"}, g.Nodes())
	require.True(t, g.HasNode("a"))
	require.False(t, g.HasNode("z"))
}

func TestSnapshot_Undirected(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "a", 2)
	g.AddEdge("b", "c", 4)

	adj := g.Undirected()
	require.Equal(t, 3.0, adj["a"]["b"])
	require.Equal(t, 3.0, adj["b"]["a"])
	require.Equal(t, 4.0, adj["c"]["b"])
}

func TestSnapshot_Subgraph(t *testing.T) {
	t.Parallel()

	g := graph.New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 1)
	g.AddEdge("c", "d", 1)

	sub := g.Subgraph([]string{"a", "b", "c"})
	require.Equal(t, []string{"a", "b", "c"}, sub.Nodes())
	require.Equal(t, 2, sub.EdgeCount())
	require.Equal(t, 0.0, sub.Weight("c", "d"))
}
