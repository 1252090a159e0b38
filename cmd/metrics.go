package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/0xPolygon/bridgeledger/common"
	"github.com/0xPolygon/bridgeledger/config"
	"github.com/0xPolygon/bridgeledger/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func newMetricsServer(cfg config.MetricsConfig) *http.Server {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok")
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
	}
}

func runMetricsServer(ctx context.Context, g *errgroup.Group, cfg config.MetricsConfig) {
	logger := log.WithFields("module", common.METRICS)
	srv := newMetricsServer(cfg)
	g.Go(func() error {
		logger.Infof("serving metrics on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})
}
