package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"xtrack/internal/core"
)

var (
	buildSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xtrack_graph_build_seconds",
		Help:    "Time spent building interaction graphs",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15},
	}, []string{"kind"})

	edgesLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xtrack_graph_edges_loaded_total",
		Help: "The total number of interaction edges loaded into graphs",
	}, []string{"kind"})
)

// BuildOptions tunes graph construction.
type BuildOptions struct {
	// MinEdgeWeight drops edges below the threshold after aggregation.
	MinEdgeWeight float64
}

// Bucket is one time slice of a metric series with its graph.
type Bucket struct {
	Date  time.Time
	Graph *Snapshot
}

// Builder turns Interaction Store rows into graph snapshots.
type Builder struct {
	Logger *slog.Logger
	Store  core.InteractionStore
}

func (b *Builder) Init(_ context.Context) error {
	b.Logger = b.Logger.With("component", "graph.Builder")
	return nil
}

// Build constructs the snapshot for one interaction kind under the selector,
// optionally restricted to a time window. Self-loops are dropped: a user
// retweeting or replying to themselves carries no relationship and distorts
// centrality. An empty row set yields an empty graph, not an error.
func (b *Builder) Build(ctx context.Context, sel core.Selector, kind core.InteractionKind, window *core.TimeWindow, opts BuildOptions) (*Snapshot, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if window != nil {
		if err := window.Validate(); err != nil {
			return nil, err
		}
	}

	started := time.Now()

	edges, err := b.Store.Edges(ctx, sel, kind, window)
	if err != nil {
		return nil, err
	}

	g := New()
	for _, edge := range edges {
		if edge.Source == edge.Target {
			continue
		}
		if opts.MinEdgeWeight > 0 && edge.Weight < opts.MinEdgeWeight {
			continue
		}
		g.AddEdge(edge.Source, edge.Target, edge.Weight)
	}

	buildSeconds.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())
	edgesLoaded.WithLabelValues(string(kind)).Add(float64(len(edges)))

	b.Logger.Debug("built graph",
		"campaign", sel.Campaign, "kind", kind,
		"nodes", g.NodeCount(), "edges", g.EdgeCount())

	return g, nil
}

// BuildSeries builds one snapshot per bucket of bucketDays over the window.
// The series is contiguous: buckets without interactions still appear, with
// an empty graph.
func (b *Builder) BuildSeries(ctx context.Context, sel core.Selector, kind core.InteractionKind, window core.TimeWindow, bucketDays int, opts BuildOptions) ([]Bucket, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if bucketDays <= 0 {
		bucketDays = 1
	}

	step := time.Duration(bucketDays) * 24 * time.Hour

	var buckets []Bucket
	for start := window.Start; start.Before(window.End); start = start.Add(step) {
		end := start.Add(step)
		if end.After(window.End) {
			end = window.End
		}

		g, err := b.Build(ctx, sel, kind, &core.TimeWindow{Start: start, End: end}, opts)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, Bucket{Date: start, Graph: g})
	}
	return buckets, nil
}
