package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"xtrack/internal/config"
	"xtrack/internal/core"
	"xtrack/pkg/async"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xtrack_analysis_cache_hits_total",
		Help: "Analysis requests answered from the cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "xtrack_analysis_cache_misses_total",
		Help: "Analysis requests that triggered a computation",
	})
	modulesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xtrack_analysis_modules_finished_total",
		Help: "Analyzer module completions by outcome",
	}, []string{"module", "outcome"})
	analysesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xtrack_analyses_finished_total",
		Help: "Completed analysis runs by terminal status",
	}, []string{"status"})
)

var ErrAnalysisTimeout = errors.New("timed out waiting for a concurrent analysis")

// Module is one independent analyzer. Modules read the shared interaction
// data and write disjoint result tables, so the orchestrator may run them
// concurrently.
type Module interface {
	Name() string
	Compute(ctx context.Context, analysisID uint, req Request) error
}

// Orchestrator drives an analysis request through the cache state machine:
// fingerprint lookup, at-most-once computation guarded by the unique
// constraint on (campaign, hashtags), and per-module result recording.
type Orchestrator struct {
	Logger   *slog.Logger
	Config   *config.Config
	Analyses core.AnalysisRepository

	Metrics   *NetworkMetricsModule
	Influence *InfluenceModule
	Export    *NetworkExportModule

	defaults     *Defaults
	pollInterval time.Duration
	waitTimeout  time.Duration
}

func (o *Orchestrator) Init(_ context.Context) error {
	o.Logger = o.Logger.With("component", "analysis.Orchestrator")
	o.pollInterval = 500 * time.Millisecond
	o.waitTimeout = 10 * time.Minute

	defaults, err := LoadDefaults(o.Config.DefaultsPath)
	if err != nil {
		return err
	}
	o.defaults = &defaults

	return nil
}

func (o *Orchestrator) requestDefaults() Defaults {
	if o.defaults == nil {
		return BuiltinDefaults()
	}
	return *o.defaults
}

func (o *Orchestrator) modules() []Module {
	return []Module{o.Metrics, o.Influence, o.Export}
}

// Analyze returns the materialized analysis for the request's fingerprint,
// computing it first when no cached run exists. Only validation errors fail
// the request; module failures are recorded per module and surface as a
// partial analysis.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*core.CampaignAnalysis, error) {
	req.ApplyDefaults(o.requestDefaults())
	if err := req.Validate(); err != nil {
		return nil, err
	}

	campaign, hashtags := req.Selector.Fingerprint()

	existing, err := o.Analyses.FindByFingerprint(ctx, campaign, hashtags)
	switch {
	case err == nil && existing.Status == core.StatusComputing:
		return o.awaitWinner(ctx, campaign, hashtags)
	case err == nil:
		cacheHits.Inc()
		o.Logger.Debug("served analysis from cache", "campaign", campaign, "id", existing.ID)
		return existing, nil
	case !errors.Is(err, core.ErrNotFound):
		return nil, err
	}

	analysis := &core.CampaignAnalysis{
		Campaign: campaign,
		Hashtags: hashtags,
		Status:   core.StatusComputing,
	}
	if err := o.Analyses.Create(ctx, analysis); err != nil {
		if errors.Is(err, core.ErrDuplicateAnalysis) {
			// Lost the race: some concurrent request committed the
			// fingerprint first, read its results instead.
			return o.awaitWinner(ctx, campaign, hashtags)
		}
		return nil, err
	}

	cacheMisses.Inc()
	return o.compute(ctx, analysis, req)
}

// compute runs every module and settles the terminal status. The work runs
// on a detached context: an abandoned caller must not stop cache population
// for future requests.
func (o *Orchestrator) compute(ctx context.Context, analysis *core.CampaignAnalysis, req Request) (*core.CampaignAnalysis, error) {
	handle := async.Job(func(jobCtx context.Context) (core.AnalysisStatus, error) {
		return o.runModules(jobCtx, analysis.ID, req), nil
	})

	status, _ := handle.Wait()

	if err := o.Analyses.SetStatus(context.WithoutCancel(ctx), analysis.ID, status); err != nil {
		return nil, err
	}
	analysis.Status = status

	analysesFinished.WithLabelValues(string(status)).Inc()
	o.Logger.Info("analysis finished", "campaign", analysis.Campaign, "id", analysis.ID, "status", status)

	return analysis, nil
}

func (o *Orchestrator) runModules(ctx context.Context, analysisID uint, req Request) core.AnalysisStatus {
	var mu sync.Mutex
	failed := 0

	modules := o.modules()
	_ = async.ForEach(ctx, modules, len(modules), func(ctx context.Context, module Module) error {
		err := module.Compute(ctx, analysisID, req)

		run := core.ModuleRun{
			CampaignAnalysisID: analysisID,
			Module:             module.Name(),
			Succeeded:          err == nil,
		}
		outcome := "ok"
		if err != nil {
			run.Error = err.Error()
			outcome = "failed"

			mu.Lock()
			failed++
			mu.Unlock()

			o.Logger.Error("analyzer module failed", "module", module.Name(), "error", err)
		}
		modulesFinished.WithLabelValues(module.Name(), outcome).Inc()

		if recordErr := o.Analyses.RecordModuleRun(ctx, run); recordErr != nil {
			o.Logger.Error("failed to record module run", "module", module.Name(), "error", recordErr)
		}
		return nil
	})

	if failed > 0 {
		return core.StatusPartial
	}
	return core.StatusDone
}

// awaitWinner polls the winner's row until its computation settles.
func (o *Orchestrator) awaitWinner(ctx context.Context, campaign, hashtags string) (*core.CampaignAnalysis, error) {
	interval := o.pollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	timeout := o.waitTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	deadline := time.Now().Add(timeout)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		analysis, err := o.Analyses.FindByFingerprint(ctx, campaign, hashtags)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		if err == nil && analysis.Status != core.StatusComputing {
			cacheHits.Inc()
			return analysis, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: campaign %s", ErrAnalysisTimeout, campaign)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Invalidate deletes the fingerprint row, cascading to every derived result
// table. The next request for the selector recomputes from scratch.
func (o *Orchestrator) Invalidate(ctx context.Context, sel core.Selector) error {
	if err := sel.Validate(); err != nil {
		return err
	}

	campaign, hashtags := sel.Fingerprint()
	analysis, err := o.Analyses.FindByFingerprint(ctx, campaign, hashtags)
	if err != nil {
		return err
	}

	if err := o.Analyses.Delete(ctx, analysis.ID); err != nil {
		return err
	}
	o.Logger.Info("invalidated analysis", "campaign", campaign, "id", analysis.ID)
	return nil
}
