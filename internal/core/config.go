package core

import (
	"context"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Postgresql
	DATABASE_URL string `envconfig:"DATABASE_URL"`

	// External sentiment scorer. Empty means every score defaults to neutral.
	SCORER_URL string `envconfig:"SCORER_URL"`
}

func (c *Config) Init(_ context.Context) error {
	err := envconfig.Process("xtrack", c)
	return err
}

func (c *Config) PostgresDSN() string {
	return c.DATABASE_URL
}
