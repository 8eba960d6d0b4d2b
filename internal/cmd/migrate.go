package cmd

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"xtrack/internal/persistence"
)

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Apply database migrations",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "down",
			Usage: "Roll back the most recent migration instead of migrating up",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			persistence.Provide(),
			pal.Provide(&persistence.Migrator{}),
			pal.Provide(&migrationRunner{down: c.Bool("down")}),
		)
	},
}

type migrationRunner struct {
	Logger   *slog.Logger
	Migrator *persistence.Migrator

	down bool
}

func (m *migrationRunner) RunConfig() pal.RunConfig {
	return pal.RunConfig{
		Wait: false,
	}
}

func (m *migrationRunner) Run(ctx context.Context) error {
	if m.down {
		return m.Migrator.Down(ctx)
	}
	return m.Migrator.Up(ctx)
}
