// Package metrics exposes the engine's prometheus metrics and health over HTTP.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zhulik/pal"

	"xtrack/internal/config"
)

type Server struct {
	Logger *slog.Logger
	Config *config.Config

	server *http.Server
}

func (s *Server) Init(ctx context.Context) error {
	s.Logger = s.Logger.With("component", "metrics.Server")

	p := pal.FromContext(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := p.HealthCheck(r.Context()); err != nil {
			s.Logger.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	s.server = &http.Server{
		Handler:           mux,
		Addr:              s.Config.MetricsAddr,
		ReadHeaderTimeout: time.Second,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting metrics server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()
		s.server.Shutdown(context.TODO()) //nolint:errcheck
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
