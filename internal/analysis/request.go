package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"xtrack/internal/core"
	"xtrack/internal/graph"
)

// Defaults fills request fields the caller left unset. Loaded from an
// optional YAML file, falling back to built-in values.
type Defaults struct {
	Metrics       []string           `yaml:"metrics"`
	NetworkTypes  []core.NetworkType `yaml:"networkTypes"`
	TopK          int                `yaml:"topK"`
	BucketDays    int                `yaml:"bucketDays"`
	MinEdgeWeight float64            `yaml:"minEdgeWeight"`
	Seed          int64              `yaml:"seed"`
}

func BuiltinDefaults() Defaults {
	return Defaults{
		Metrics:      []string{graph.MetricEfficiency, graph.MetricDensity, graph.MetricModularity},
		NetworkTypes: []core.NetworkType{core.NetworkRetweet, core.NetworkReply},
		TopK:         10,
		BucketDays:   1,
		Seed:         graph.DefaultSeed,
	}
}

// LoadDefaults reads defaults from a YAML file; an empty path returns the
// built-in defaults.
func LoadDefaults(path string) (Defaults, error) {
	defaults := BuiltinDefaults()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, err
	}
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return defaults, fmt.Errorf("parsing analysis defaults %s: %w", path, err)
	}
	return defaults, nil
}

// Request describes one orchestrated analysis run.
type Request struct {
	Selector      core.Selector
	Metrics       []string
	NetworkTypes  []core.NetworkType
	TopK          int
	BucketDays    int
	MinEdgeWeight float64
	Seed          int64
}

func (r *Request) ApplyDefaults(d Defaults) {
	if len(r.Metrics) == 0 {
		r.Metrics = d.Metrics
	}
	if len(r.NetworkTypes) == 0 {
		r.NetworkTypes = d.NetworkTypes
	}
	if r.TopK == 0 {
		r.TopK = d.TopK
	}
	if r.BucketDays == 0 {
		r.BucketDays = d.BucketDays
	}
	if r.MinEdgeWeight == 0 {
		r.MinEdgeWeight = d.MinEdgeWeight
	}
	if r.Seed == 0 {
		r.Seed = d.Seed
	}
}

// Validate rejects malformed requests before any computation. Unknown metric
// names are an error, not silently ignored.
func (r Request) Validate() error {
	if err := r.Selector.Validate(); err != nil {
		return err
	}
	for _, name := range r.Metrics {
		if !graph.KnownMetric(name) {
			return fmt.Errorf("%w: %s", core.ErrUnknownMetric, name)
		}
	}
	for _, networkType := range r.NetworkTypes {
		if err := networkType.Validate(); err != nil {
			return err
		}
	}
	if r.TopK < 1 {
		return fmt.Errorf("top-k must be positive, got %d", r.TopK)
	}
	if r.BucketDays < 1 {
		return fmt.Errorf("bucket size must be at least one day, got %d", r.BucketDays)
	}
	return nil
}

func (r Request) buildOptions() graph.BuildOptions {
	return graph.BuildOptions{MinEdgeWeight: r.MinEdgeWeight}
}
