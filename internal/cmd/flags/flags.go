package flags

import (
	"fmt"
	"slices"

	libnats "github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}

var LogLevel = &cli.StringFlag{
	Name:    "log-level",
	Aliases: []string{"l"},
	Usage:   "The level of the logs",
	Value:   "info",
	Validator: func(value string) error {
		if !slices.Contains(validLogLevels, value) {
			return fmt.Errorf("invalid log level: %s, allowed values are: %s", value, validLogLevels)
		}
		return nil
	},
	Sources: cli.EnvVars("LOG_LEVEL"),
}

var NATSUrl = &cli.StringFlag{
	Name:    "nats-url",
	Aliases: []string{"n"},
	Usage:   "The URL of the NATS server",
	Value:   libnats.DefaultURL,
	Sources: cli.EnvVars("NATS_URL"),
}

var InitNATS = &cli.BoolFlag{
	Name:    "nats-init",
	Usage:   "Initialize the NATS server: create streams, consumers, etc.",
	Value:   false,
	Sources: cli.EnvVars("NATS_INIT"),
}

var NATSConsumer = &cli.StringFlag{
	Name:    "nats-consumer",
	Usage:   "The durable consumer for analysis requests",
	Value:   "analyzer",
	Sources: cli.EnvVars("NATS_CONSUMER"),
}

var MetricsAddr = &cli.StringFlag{
	Name:    "metrics-addr",
	Usage:   "The listen address of the metrics server",
	Value:   ":8080",
	Sources: cli.EnvVars("METRICS_ADDR"),
}

var Defaults = &cli.StringFlag{
	Name:    "defaults",
	Usage:   "Path to a YAML file with analysis defaults",
	Sources: cli.EnvVars("XTRACK_DEFAULTS"),
}

var Campaign = &cli.StringFlag{
	Name:     "campaign",
	Aliases:  []string{"c"},
	Usage:    "The campaign to analyze",
	Required: true,
}

var Hashtags = &cli.StringSliceFlag{
	Name:    "hashtag",
	Aliases: []string{"t"},
	Usage:   "Restrict the analysis to posts carrying any of these hashtags",
}

var Language = &cli.StringFlag{
	Name:  "language",
	Usage: "Restrict the analysis to posts in this language",
}

var WindowStart = &cli.TimestampFlag{
	Name:  "from",
	Usage: "Inclusive start of the analysis window",
	Config: cli.TimestampConfig{
		Layouts: []string{"2006-01-02", "2006-01-02T15:04:05Z07:00"},
	},
}

var WindowEnd = &cli.TimestampFlag{
	Name:  "to",
	Usage: "Exclusive end of the analysis window",
	Config: cli.TimestampConfig{
		Layouts: []string{"2006-01-02", "2006-01-02T15:04:05Z07:00"},
	},
}

var Metrics = &cli.StringSliceFlag{
	Name:    "metric",
	Aliases: []string{"m"},
	Usage:   "Network metrics to compute, defaults apply when empty",
}

var NetworkTypes = &cli.StringSliceFlag{
	Name:  "network",
	Usage: "Network types to analyze: retweet, reply",
}

var TopK = &cli.IntFlag{
	Name:  "top-k",
	Usage: "How many users each influence ranking keeps",
}

var BucketDays = &cli.IntFlag{
	Name:  "bucket-days",
	Usage: "Width of one metric time-series bucket in days",
}

var MinEdgeWeight = &cli.FloatFlag{
	Name:  "min-edge-weight",
	Usage: "Drop aggregated edges below this weight",
}

var Enqueue = &cli.BoolFlag{
	Name:  "enqueue",
	Usage: "Publish the request to the queue instead of computing inline",
}
