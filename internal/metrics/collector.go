package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm/schema"

	"xtrack/internal/core"
)

var tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "xtrack_table_estimated_count",
	Help: "Estimated record count for a table.",
}, []string{"table"})

// Collector periodically gauges the size of the result tables.
type Collector struct {
	Logger *slog.Logger
	DB     core.DB
}

func (c *Collector) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "metrics.Collector")
	return nil
}

func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	tables := []schema.Tabler{
		core.CampaignAnalysis{},
		core.NetworkMetricResult{},
		core.InfluenceResult{},
		core.NetworkEdgeResult{},
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, table := range tables {
				if err := c.collectTableEstimatedCount(table); err != nil {
					c.Logger.Warn("failed to collect table size", "table", table.TableName(), "error", err)
				}
			}
		}
	}
}

func (c *Collector) collectTableEstimatedCount(tabler schema.Tabler) error {
	count, err := c.DB.EstimatedCount(tabler.TableName())
	if err != nil {
		return err
	}

	tableCount.WithLabelValues(tabler.TableName()).Set(float64(count))
	return nil
}
