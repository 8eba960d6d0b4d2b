package cmd

import (
	"context"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"xtrack/internal/analysis"
	"xtrack/internal/cmd/flags"
	"xtrack/internal/core"
	"xtrack/internal/metrics"
	"xtrack/internal/persistence"
	"xtrack/internal/queue"
	"xtrack/internal/scorer"
)

var workerCmd = &cli.Command{
	Name:  "worker",
	Usage: "Consume analysis requests from NATS JetStream",
	Flags: []cli.Flag{
		flags.NATSUrl,
		flags.InitNATS,
		flags.NATSConsumer,
		flags.MetricsAddr,
		flags.Defaults,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			persistence.Provide(),
			analysis.Provide(),
			queue.Provide(),
			pal.Provide[core.Scorer](&scorer.Client{}),
			pal.Provide(&queue.Worker{}),
			pal.Provide(&metrics.Server{}),
			pal.Provide(&metrics.Collector{}),
		)
	},
}
