package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"xtrack/internal/analysis"
	"xtrack/internal/cmd/flags"
	"xtrack/internal/core"
	"xtrack/internal/persistence"
	"xtrack/internal/queue"
	"xtrack/internal/scorer"
)

var analyzeCmd = &cli.Command{
	Name:  "analyze",
	Usage: "Run a campaign analysis, serving cached results when available",
	Flags: []cli.Flag{
		flags.Campaign,
		flags.Hashtags,
		flags.Language,
		flags.WindowStart,
		flags.WindowEnd,
		flags.Metrics,
		flags.NetworkTypes,
		flags.TopK,
		flags.BucketDays,
		flags.MinEdgeWeight,
		flags.Defaults,
		flags.Enqueue,
		flags.NATSUrl,
		flags.InitNATS,
		flags.NATSConsumer,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		req, err := requestFromFlags(c)
		if err != nil {
			return err
		}

		if c.Bool("enqueue") {
			return run(ctx, c,
				queue.Provide(),
				pal.Provide(&enqueuer{request: req}),
			)
		}

		return run(ctx, c,
			persistence.Provide(),
			analysis.Provide(),
			pal.Provide[core.Scorer](&scorer.Client{}),
			pal.Provide(&analyzer{request: req}),
		)
	},
}

func selectorFromFlags(c *cli.Command) core.Selector {
	sel := core.Selector{
		Campaign: c.String("campaign"),
		Hashtags: c.StringSlice("hashtag"),
		Language: c.String("language"),
	}

	from, to := c.Timestamp("from"), c.Timestamp("to")
	if !from.IsZero() || !to.IsZero() {
		sel.Window = &core.TimeWindow{Start: from, End: to}
	}

	return sel
}

func requestFromFlags(c *cli.Command) (analysis.Request, error) {
	defaults, err := analysis.LoadDefaults(c.String("defaults"))
	if err != nil {
		return analysis.Request{}, err
	}

	req := analysis.Request{
		Selector: selectorFromFlags(c),
		Metrics:  c.StringSlice("metric"),
		NetworkTypes: lo.Map(c.StringSlice("network"), func(name string, _ int) core.NetworkType {
			return core.NetworkType(name)
		}),
		TopK:          int(c.Int("top-k")),
		BucketDays:    int(c.Int("bucket-days")),
		MinEdgeWeight: c.Float("min-edge-weight"),
	}
	req.ApplyDefaults(defaults)

	return req, nil
}

// analyzer runs one analysis request inline and dumps the materialized
// results to stdout.
type analyzer struct {
	Logger       *slog.Logger
	Orchestrator *analysis.Orchestrator
	Analyses     core.AnalysisRepository
	Results      core.ResultsRepository

	request analysis.Request
}

func (a *analyzer) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (a *analyzer) Run(ctx context.Context) error {
	result, err := a.Orchestrator.Analyze(ctx, a.request)
	if err != nil {
		return err
	}

	report, err := a.report(ctx, result)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (a *analyzer) report(ctx context.Context, result *core.CampaignAnalysis) (map[string]any, error) {
	runs, err := a.Analyses.ModuleRuns(ctx, result.ID)
	if err != nil {
		return nil, err
	}

	metrics, err := a.Results.MetricsByAnalysis(ctx, result.ID)
	if err != nil {
		return nil, err
	}

	influence, err := a.Results.InfluenceByAnalysis(ctx, result.ID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"analysis":  result,
		"modules":   runs,
		"metrics":   metrics,
		"influence": influence,
	}, nil
}

// enqueuer publishes the request to the queue for a worker to pick up.
type enqueuer struct {
	Logger *slog.Logger
	NATS   *queue.NATS

	request analysis.Request
}

func (e *enqueuer) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (e *enqueuer) Run(ctx context.Context) error {
	data, err := json.Marshal(e.request)
	if err != nil {
		return err
	}

	campaign, hashtags := e.request.Selector.Fingerprint()
	msgID := campaign
	if hashtags != "" {
		msgID += "-" + hashtags
	}

	if err := e.NATS.Publish(ctx, queue.RequestSubject, data, msgID); err != nil {
		return err
	}

	e.Logger.Info("analysis request enqueued", "campaign", campaign, "id", msgID)
	return nil
}
