package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"xtrack/internal/analysis"
	"xtrack/internal/config"
)

var requestsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "xtrack_queue_requests_processed_total",
	Help: "The total number of processed analysis requests",
}, []string{"outcome"})

// Worker consumes analysis requests from the request subject and runs them
// through the orchestrator. Malformed and failed requests are acked too:
// replaying them would fail the same way.
type Worker struct {
	Logger       *slog.Logger
	Config       *config.Config
	NATS         *NATS
	Orchestrator *analysis.Orchestrator
}

func (w *Worker) Init(_ context.Context) error {
	w.Logger = w.Logger.With("component", "queue.Worker")
	return nil
}

func (w *Worker) Run(ctx context.Context) error {
	return w.NATS.ConsumeToPipeline(ctx, w.Config.NATSConsumer,
		pips.New[jetstream.Msg, any]().
			Then(
				apply.Each(func(ctx context.Context, msg jetstream.Msg) error {
					w.process(ctx, msg)
					return nil
				}),
			).
			Then(
				apply.Each(func(_ context.Context, msg jetstream.Msg) error {
					msg.Ack() // nolint:errcheck
					return nil
				}),
			),
	)
}

func (w *Worker) process(ctx context.Context, msg jetstream.Msg) {
	var req analysis.Request

	if err := json.Unmarshal(msg.Data(), &req); err != nil {
		requestsProcessed.WithLabelValues("malformed").Inc()
		w.Logger.Error("failed to decode analysis request", "error", err)
		return
	}

	result, err := w.Orchestrator.Analyze(ctx, req)
	if err != nil {
		requestsProcessed.WithLabelValues("failed").Inc()
		w.Logger.Error("analysis request failed", "campaign", req.Selector.Campaign, "error", err)
		return
	}

	requestsProcessed.WithLabelValues(string(result.Status)).Inc()
	w.Logger.Info("analysis request processed",
		"campaign", result.Campaign, "id", result.ID, "status", result.Status)
}
