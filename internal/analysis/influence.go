package analysis

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"xtrack/internal/core"
	"xtrack/internal/graph"
	"xtrack/internal/influence"
)

// ConsensusNetworkType labels the multi-criteria consensus rows in the
// influence result table, next to the per-network centrality rankings.
const ConsensusNetworkType = "consensus"

// InfluenceModule ranks users by six criteria (centrality in both networks,
// posting and reply activity, amplification and conversation impact) and
// persists both the per-network rankings and the consensus.
type InfluenceModule struct {
	Logger  *slog.Logger
	Builder *graph.Builder
	Store   core.InteractionStore
	Results core.ResultsRepository
}

func (m *InfluenceModule) Init(_ context.Context) error {
	m.Logger = m.Logger.With("component", "analysis.InfluenceModule")
	return nil
}

func (m *InfluenceModule) Name() string {
	return "influence"
}

func (m *InfluenceModule) Compute(ctx context.Context, analysisID uint, req Request) error {
	criteria := make([]influence.Criterion, 0, 6)

	for _, networkType := range req.NetworkTypes {
		ranking, err := m.centralityRanking(ctx, analysisID, req, networkType)
		if err != nil {
			return err
		}
		criteria = append(criteria, influence.Criterion{
			Name:  "centrality:" + string(networkType),
			Users: ranking,
		})
	}

	activityCriteria := []struct {
		name  string
		fetch func(context.Context, core.Selector, int) ([]core.UserCount, error)
	}{
		{"tweet_activity", m.Store.TopPosters},
		{"reply_activity", m.Store.TopRepliers},
		{"amplification_impact", m.impactFetcher(core.ImpactAmplification)},
		{"conversation_impact", m.impactFetcher(core.ImpactConversation)},
	}

	for _, criterion := range activityCriteria {
		counts, err := criterion.fetch(ctx, req.Selector, req.TopK)
		if err != nil {
			return err
		}
		criteria = append(criteria, influence.Criterion{
			Name: criterion.name,
			Users: lo.Map(counts, func(count core.UserCount, _ int) string {
				return count.User
			}),
		})
	}

	placements := influence.Consensus(criteria, req.TopK)

	rows := lo.Map(placements, func(p influence.Placement, _ int) core.InfluenceResult {
		return core.InfluenceResult{
			CampaignAnalysisID: analysisID,
			User:               p.User,
			RankPosition:       p.Position,
			Appearances:        p.Appearances,
			NetworkType:        ConsensusNetworkType,
		}
	})
	if err := m.Results.InsertInfluence(ctx, rows...); err != nil {
		return err
	}

	m.Logger.Debug("stored influence consensus", "criteria", len(criteria), "placements", len(placements))
	return nil
}

// centralityRanking builds the network of one type, ranks its users by
// eigenvector centrality and persists that ranking before returning it as a
// consensus criterion.
func (m *InfluenceModule) centralityRanking(ctx context.Context, analysisID uint, req Request, networkType core.NetworkType) ([]string, error) {
	g, err := m.Builder.Build(ctx, req.Selector, networkType.Kind(), req.Selector.Window, req.buildOptions())
	if err != nil {
		return nil, err
	}

	ranking := influence.TopUsers(graph.EigenvectorCentrality(g), req.TopK)

	rows := lo.Map(ranking, func(user string, i int) core.InfluenceResult {
		return core.InfluenceResult{
			CampaignAnalysisID: analysisID,
			User:               user,
			RankPosition:       i + 1,
			Appearances:        1,
			NetworkType:        string(networkType),
		}
	})
	if err := m.Results.InsertInfluence(ctx, rows...); err != nil {
		return nil, err
	}
	return ranking, nil
}

func (m *InfluenceModule) impactFetcher(mode core.ImpactMode) func(context.Context, core.Selector, int) ([]core.UserCount, error) {
	return func(ctx context.Context, sel core.Selector, k int) ([]core.UserCount, error) {
		return m.Store.TopImpact(ctx, sel, mode, k)
	}
}
