package core

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type DB interface {
	Model(a any) *gorm.DB
	Raw(sql string, values ...any) *gorm.DB
	DB() (*sql.DB, error)
	EstimatedCount(tableName string) (int64, error)
}

// ImpactMode selects which engagement counters a user impact ranking sums.
type ImpactMode string

const (
	// ImpactAmplification ranks users by retweets + likes received.
	ImpactAmplification ImpactMode = "rt+like"
	// ImpactConversation ranks users by replies + quotes received.
	ImpactConversation ImpactMode = "reply+quote"
)

// InteractionStore is the read-only query surface over the ingested rows.
type InteractionStore interface {
	// Edges returns the aggregated source→target relationships of the given
	// kind under the selector, optionally restricted to a time window.
	Edges(ctx context.Context, sel Selector, kind InteractionKind, window *TimeWindow) ([]InteractionEdge, error)

	// CampaignWindow returns the [first post, last post + 1 day) interval of
	// the selector's universe.
	CampaignWindow(ctx context.Context, sel Selector) (TimeWindow, error)

	TopPosters(ctx context.Context, sel Selector, k int) ([]UserCount, error)
	TopRepliers(ctx context.Context, sel Selector, k int) ([]UserCount, error)
	TopImpact(ctx context.Context, sel Selector, mode ImpactMode, k int) ([]UserCount, error)

	// ActivityScores returns per-user activity normalized to [0, 1] over the
	// selector's universe.
	ActivityScores(ctx context.Context, sel Selector, users []string) (map[string]float64, error)
}

// Scorer produces sentiment scores in [0, 1]. Users unknown to the scorer
// default to neutral 0.5.
type Scorer interface {
	SentimentScores(ctx context.Context, users []string) (map[string]float64, error)
}

type AnalysisRepository interface {
	// FindByFingerprint returns ErrNotFound when no row exists.
	FindByFingerprint(ctx context.Context, campaign, hashtags string) (*CampaignAnalysis, error)
	// Create returns ErrDuplicateAnalysis when the fingerprint is taken.
	Create(ctx context.Context, analysis *CampaignAnalysis) error
	SetStatus(ctx context.Context, id uint, status AnalysisStatus) error
	Delete(ctx context.Context, id uint) error
	RecordModuleRun(ctx context.Context, run ModuleRun) error
	ModuleRuns(ctx context.Context, id uint) ([]ModuleRun, error)
}

type ResultsRepository interface {
	InsertMetrics(ctx context.Context, rows ...NetworkMetricResult) error
	InsertInfluence(ctx context.Context, rows ...InfluenceResult) error
	InsertEdges(ctx context.Context, rows ...NetworkEdgeResult) error

	MetricsByAnalysis(ctx context.Context, analysisID uint) ([]NetworkMetricResult, error)
	InfluenceByAnalysis(ctx context.Context, analysisID uint) ([]InfluenceResult, error)
	EdgesByAnalysis(ctx context.Context, analysisID uint) ([]NetworkEdgeResult, error)
}
