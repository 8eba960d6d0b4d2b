package analyses

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"xtrack/internal/core"
)

const uniqueViolationCode = "23505"

// Repository persists the campaign analysis fingerprint rows. The unique
// constraint on (campaign, hashtags) is the engine's only concurrency-control
// primitive: Create surfaces a conflicting insert as ErrDuplicateAnalysis.
type Repository struct {
	DB core.DB
}

func (r *Repository) FindByFingerprint(ctx context.Context, campaign, hashtags string) (*core.CampaignAnalysis, error) {
	var analysis core.CampaignAnalysis
	err := r.DB.Model(&core.CampaignAnalysis{}).
		WithContext(ctx).
		Where("campaign = ? AND hashtags = ?", campaign, hashtags).
		First(&analysis).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: analysis for campaign %q", core.ErrNotFound, campaign)
		}
		return nil, err
	}
	return &analysis, nil
}

func (r *Repository) Create(ctx context.Context, analysis *core.CampaignAnalysis) error {
	err := r.DB.Model(&core.CampaignAnalysis{}).WithContext(ctx).Create(analysis).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: campaign %q", core.ErrDuplicateAnalysis, analysis.Campaign)
		}
		return err
	}
	return nil
}

func (r *Repository) SetStatus(ctx context.Context, id uint, status core.AnalysisStatus) error {
	return r.DB.Model(&core.CampaignAnalysis{}).
		WithContext(ctx).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete removes the fingerprint row; derived result rows go with it through
// the ON DELETE CASCADE foreign keys.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.DB.Model(&core.CampaignAnalysis{}).
		WithContext(ctx).
		Delete(&core.CampaignAnalysis{}, id).Error
}

func (r *Repository) RecordModuleRun(ctx context.Context, run core.ModuleRun) error {
	return r.DB.Model(&core.ModuleRun{}).WithContext(ctx).Create(&run).Error
}

func (r *Repository) ModuleRuns(ctx context.Context, id uint) ([]core.ModuleRun, error) {
	var runs []core.ModuleRun
	err := r.DB.Model(&core.ModuleRun{}).
		WithContext(ctx).
		Where("campaign_analysis_id = ?", id).
		Order("module").
		Find(&runs).Error
	return runs, err
}
