package graph_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xtrack/internal/core"
	"xtrack/internal/graph"
)

type stubStore struct {
	core.InteractionStore

	edges func(window *core.TimeWindow) []core.InteractionEdge
}

func (s *stubStore) Edges(_ context.Context, _ core.Selector, _ core.InteractionKind, window *core.TimeWindow) ([]core.InteractionEdge, error) {
	return s.edges(window), nil
}

func newBuilder(edges func(window *core.TimeWindow) []core.InteractionEdge) *graph.Builder {
	return &graph.Builder{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:  &stubStore{edges: edges},
	}
}

func staticEdges(edges ...core.InteractionEdge) func(*core.TimeWindow) []core.InteractionEdge {
	return func(*core.TimeWindow) []core.InteractionEdge {
		return edges
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	sel := core.Selector{Campaign: "election"}

	t.Run("drops self loops", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(staticEdges(
			core.InteractionEdge{Source: "a", Target: "a", Weight: 5},
			core.InteractionEdge{Source: "a", Target: "b", Weight: 1},
		))

		g, err := b.Build(t.Context(), sel, core.KindRetweet, nil, graph.BuildOptions{})
		require.NoError(t, err)
		require.Equal(t, 1, g.EdgeCount())
		require.Zero(t, g.Weight("a", "a"))
	})

	t.Run("applies the weight threshold", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(staticEdges(
			core.InteractionEdge{Source: "a", Target: "b", Weight: 1},
			core.InteractionEdge{Source: "a", Target: "c", Weight: 3},
		))

		g, err := b.Build(t.Context(), sel, core.KindRetweet, nil, graph.BuildOptions{MinEdgeWeight: 2})
		require.NoError(t, err)
		require.Equal(t, 1, g.EdgeCount())
		require.Equal(t, 3.0, g.Weight("a", "c"))
	})

	t.Run("empty rows build an empty graph", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(staticEdges())

		g, err := b.Build(t.Context(), sel, core.KindReply, nil, graph.BuildOptions{})
		require.NoError(t, err)
		require.Zero(t, g.NodeCount())
	})

	t.Run("rejects invalid selectors", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(staticEdges())

		_, err := b.Build(t.Context(), core.Selector{}, core.KindRetweet, nil, graph.BuildOptions{})
		require.ErrorIs(t, err, core.ErrInvalidSelector)

		_, err = b.Build(t.Context(), sel, core.InteractionKind("follow"), nil, graph.BuildOptions{})
		require.ErrorIs(t, err, core.ErrUnknownKind)
	})
}

func TestBuilder_BuildSeries(t *testing.T) {
	t.Parallel()

	sel := core.Selector{Campaign: "election"}
	start := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	window := core.TimeWindow{Start: start, End: start.AddDate(0, 0, 5)}

	t.Run("contiguous daily buckets", func(t *testing.T) {
		t.Parallel()

		// Only the third day has interactions.
		activeDay := start.AddDate(0, 0, 2)
		b := newBuilder(func(w *core.TimeWindow) []core.InteractionEdge {
			if w != nil && w.Start.Equal(activeDay) {
				return []core.InteractionEdge{{Source: "a", Target: "b", Weight: 1}}
			}
			return nil
		})

		buckets, err := b.BuildSeries(t.Context(), sel, core.KindRetweet, window, 1, graph.BuildOptions{})
		require.NoError(t, err)
		require.Len(t, buckets, 5)

		for i, bucket := range buckets {
			require.Equal(t, start.AddDate(0, 0, i), bucket.Date)
			if bucket.Date.Equal(activeDay) {
				require.Equal(t, 1, bucket.Graph.EdgeCount())
			} else {
				require.Zero(t, bucket.Graph.EdgeCount())
			}
		}
	})

	t.Run("wider buckets", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(staticEdges())

		buckets, err := b.BuildSeries(t.Context(), sel, core.KindRetweet, window, 2, graph.BuildOptions{})
		require.NoError(t, err)
		require.Len(t, buckets, 3)
	})

	t.Run("rejects inverted windows", func(t *testing.T) {
		t.Parallel()

		b := newBuilder(staticEdges())

		_, err := b.BuildSeries(t.Context(), sel, core.KindRetweet,
			core.TimeWindow{Start: window.End, End: window.Start}, 1, graph.BuildOptions{})
		require.ErrorIs(t, err, core.ErrInvalidTimeWindow)
	})
}
