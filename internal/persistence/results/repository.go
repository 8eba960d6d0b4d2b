package results

import (
	"context"

	"xtrack/internal/core"
)

// Repository is the write-once sink for derived analysis rows and the read
// surface replaying them for cached requests.
type Repository struct {
	DB core.DB
}

func (r *Repository) InsertMetrics(ctx context.Context, rows ...core.NetworkMetricResult) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Model(&core.NetworkMetricResult{}).WithContext(ctx).Create(&rows).Error
}

func (r *Repository) InsertInfluence(ctx context.Context, rows ...core.InfluenceResult) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Model(&core.InfluenceResult{}).WithContext(ctx).Create(&rows).Error
}

func (r *Repository) InsertEdges(ctx context.Context, rows ...core.NetworkEdgeResult) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.Model(&core.NetworkEdgeResult{}).WithContext(ctx).Create(&rows).Error
}

func (r *Repository) MetricsByAnalysis(ctx context.Context, analysisID uint) ([]core.NetworkMetricResult, error) {
	var rows []core.NetworkMetricResult
	err := r.DB.Model(&core.NetworkMetricResult{}).
		WithContext(ctx).
		Where("campaign_analysis_id = ?", analysisID).
		Order("network_type, network_metric, date").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) InfluenceByAnalysis(ctx context.Context, analysisID uint) ([]core.InfluenceResult, error) {
	var rows []core.InfluenceResult
	err := r.DB.Model(&core.InfluenceResult{}).
		WithContext(ctx).
		Where("campaign_analysis_id = ?", analysisID).
		Order("network_type, rank_position").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) EdgesByAnalysis(ctx context.Context, analysisID uint) ([]core.NetworkEdgeResult, error) {
	var rows []core.NetworkEdgeResult
	err := r.DB.Model(&core.NetworkEdgeResult{}).
		WithContext(ctx).
		Where("campaign_analysis_id = ?", analysisID).
		Order("network_type, source, target").
		Find(&rows).Error
	return rows, err
}
