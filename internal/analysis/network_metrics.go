package analysis

import (
	"context"
	"log/slog"

	"xtrack/internal/core"
	"xtrack/internal/graph"
)

// NetworkMetricsModule computes the metric time series of each requested
// network type and persists one record per metric per bucket.
type NetworkMetricsModule struct {
	Logger  *slog.Logger
	Builder *graph.Builder
	Store   core.InteractionStore
	Results core.ResultsRepository
}

func (m *NetworkMetricsModule) Init(_ context.Context) error {
	m.Logger = m.Logger.With("component", "analysis.NetworkMetricsModule")
	return nil
}

func (m *NetworkMetricsModule) Name() string {
	return "network_metrics"
}

func (m *NetworkMetricsModule) Compute(ctx context.Context, analysisID uint, req Request) error {
	calc := graph.Calculator{Seed: req.Seed}

	for _, networkType := range req.NetworkTypes {
		window, err := m.window(ctx, req)
		if err != nil {
			return err
		}

		buckets, err := m.Builder.BuildSeries(ctx, req.Selector, networkType.Kind(), window, req.BucketDays, req.buildOptions())
		if err != nil {
			return err
		}

		rows := make([]core.NetworkMetricResult, 0, len(buckets)*len(req.Metrics))
		for _, bucket := range buckets {
			values, err := calc.Compute(bucket.Graph, req.Metrics)
			if err != nil {
				return err
			}
			for _, metric := range req.Metrics {
				rows = append(rows, core.NetworkMetricResult{
					CampaignAnalysisID: analysisID,
					NetworkMetric:      metric,
					Value:              values[metric],
					Date:               bucket.Date,
					NetworkType:        networkType,
				})
			}
		}

		if err := m.Results.InsertMetrics(ctx, rows...); err != nil {
			return err
		}

		m.Logger.Debug("stored network metric series",
			"network_type", networkType, "buckets", len(buckets), "metrics", len(req.Metrics))
	}
	return nil
}

// window resolves the analysis interval: the selector's own window when
// given, otherwise the campaign's full activity span.
func (m *NetworkMetricsModule) window(ctx context.Context, req Request) (core.TimeWindow, error) {
	if req.Selector.Window != nil {
		return *req.Selector.Window, nil
	}
	return m.Store.CampaignWindow(ctx, req.Selector)
}
