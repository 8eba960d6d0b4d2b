package clicfg_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"xtrack/pkg/clicfg"
)

type testConfig struct {
	Name    string   `flag:"name"`
	Debug   bool     `flag:"debug"`
	Retries int      `flag:"retries"`
	Ratio   float64  `flag:"ratio"`
	Tags    []string `flag:"tag"`

	Ignored string
}

func parse(t *testing.T, cfg any, args ...string) error {
	t.Helper()

	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.BoolFlag{Name: "debug"},
			&cli.IntFlag{Name: "retries"},
			&cli.FloatFlag{Name: "ratio"},
			&cli.StringSliceFlag{Name: "tag"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return clicfg.ParseFlags(c, cfg)
		},
	}

	return cmd.Run(t.Context(), append([]string{"test"}, args...))
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig{Ignored: "untouched"}
		err := parse(t, &cfg,
			"--name", "xtrack",
			"--debug",
			"--retries", "3",
			"--ratio", "0.5",
			"--tag", "a", "--tag", "b",
		)
		require.NoError(t, err)

		require.Equal(t, "xtrack", cfg.Name)
		require.True(t, cfg.Debug)
		require.Equal(t, 3, cfg.Retries)
		require.Equal(t, 0.5, cfg.Ratio)
		require.Equal(t, []string{"a", "b"}, cfg.Tags)
		require.Equal(t, "untouched", cfg.Ignored)
	})

	t.Run("rejects non-pointers", func(t *testing.T) {
		t.Parallel()

		err := parse(t, testConfig{})
		require.ErrorIs(t, err, clicfg.ErrCannotParseFlags)
	})

	t.Run("rejects unsupported slice types", func(t *testing.T) {
		t.Parallel()

		var cfg struct {
			Counts []int `flag:"tag"`
		}
		err := parse(t, &cfg)
		require.ErrorIs(t, err, clicfg.ErrCannotParseFlags)
	})
}
