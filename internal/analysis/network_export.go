package analysis

import (
	"context"
	"log/slog"

	"xtrack/internal/core"
	"xtrack/internal/graph"
	"xtrack/internal/influence"
)

// exportNodeLimit caps the exported network at the most central nodes, which
// is all a dashboard can usefully draw.
const exportNodeLimit = 50

const neutralSentiment = 0.5

// NetworkExportModule persists the visualization view of each network: the
// induced subgraph over the most central users, each node annotated with its
// scorer sentiment and activity.
type NetworkExportModule struct {
	Logger  *slog.Logger
	Builder *graph.Builder
	Store   core.InteractionStore
	Scorer  core.Scorer
	Results core.ResultsRepository
}

func (m *NetworkExportModule) Init(_ context.Context) error {
	m.Logger = m.Logger.With("component", "analysis.NetworkExportModule")
	return nil
}

func (m *NetworkExportModule) Name() string {
	return "network_export"
}

func (m *NetworkExportModule) Compute(ctx context.Context, analysisID uint, req Request) error {
	for _, networkType := range req.NetworkTypes {
		g, err := m.Builder.Build(ctx, req.Selector, networkType.Kind(), req.Selector.Window, req.buildOptions())
		if err != nil {
			return err
		}
		if g.NodeCount() == 0 {
			continue
		}

		central := influence.TopUsers(graph.EigenvectorCentrality(g), exportNodeLimit)
		sub := g.Subgraph(central)
		users := sub.Nodes()

		sentiment, activity := m.nodeAttributes(ctx, req.Selector, users)

		var rows []core.NetworkEdgeResult
		for _, source := range users {
			for _, target := range users {
				w := sub.Weight(source, target)
				if w == 0 {
					continue
				}
				rows = append(rows, core.NetworkEdgeResult{
					CampaignAnalysisID: analysisID,
					Source:             source,
					Target:             target,
					Weight:             w,
					SourceSentiment:    sentiment[source],
					SourceActivity:     activity[source],
					TargetSentiment:    sentiment[target],
					TargetActivity:     activity[target],
					NetworkType:        networkType,
				})
			}
		}

		if err := m.Results.InsertEdges(ctx, rows...); err != nil {
			return err
		}

		m.Logger.Debug("stored network export",
			"network_type", networkType, "nodes", len(users), "edges", len(rows))
	}
	return nil
}

// nodeAttributes fetches the scorer and activity lookups, degrading to
// neutral sentiment and zero activity when either source is unavailable.
func (m *NetworkExportModule) nodeAttributes(ctx context.Context, sel core.Selector, users []string) (map[string]float64, map[string]float64) {
	sentiment, err := m.Scorer.SentimentScores(ctx, users)
	if err != nil {
		m.Logger.Warn("scorer unavailable, defaulting to neutral sentiment", "error", err)
		sentiment = nil
	}
	if sentiment == nil {
		sentiment = map[string]float64{}
	}
	for _, user := range users {
		if _, ok := sentiment[user]; !ok {
			sentiment[user] = neutralSentiment
		}
	}

	activity, err := m.Store.ActivityScores(ctx, sel, users)
	if err != nil {
		m.Logger.Warn("activity lookup unavailable, defaulting to zero", "error", err)
		activity = map[string]float64{}
	}
	return sentiment, activity
}
