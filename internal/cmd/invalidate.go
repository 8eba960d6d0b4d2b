package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"xtrack/internal/analysis"
	"xtrack/internal/cmd/flags"
	"xtrack/internal/core"
	"xtrack/internal/persistence"
	"xtrack/internal/scorer"
)

var invalidateCmd = &cli.Command{
	Name:  "invalidate",
	Usage: "Drop a cached analysis so the next request recomputes it",
	Flags: []cli.Flag{
		flags.Campaign,
		flags.Hashtags,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			persistence.Provide(),
			analysis.Provide(),
			pal.Provide[core.Scorer](&scorer.Client{}),
			pal.Provide(&invalidator{selector: selectorFromFlags(c)}),
		)
	},
}

type invalidator struct {
	Logger       *slog.Logger
	Orchestrator *analysis.Orchestrator

	selector core.Selector
}

func (i *invalidator) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (i *invalidator) Run(ctx context.Context) error {
	return i.Orchestrator.Invalidate(ctx, i.selector)
}
