// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "cinematch",
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("data_path", cfg.Data.Path).
		Str("data_reader", cfg.Data.Reader).
		Msg("Starting Cinematch")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	metrics.SetAppInfo(version, runtime.Version(), startTime)

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The load runs to completion before the HTTP server starts. A failed
	// load leaves the engine Unloaded and the API serves degraded responses.
	loadCatalog(ctx, cfg, engine)
	recordCatalog(engine)

	if err := metrics.RegisterCacheCounters(prometheus.DefaultRegisterer,
		func() float64 { return float64(engine.GetMetrics().CacheHits) },
		func() float64 { return float64(engine.GetMetrics().CacheMisses) },
	); err != nil {
		logging.Warn().Err(err).Msg("Failed to register cache metrics")
	}

	mw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	handler := api.NewHandler(engine, api.HandlerConfig{
		Defaults: api.ParamDefaultsFor(engine.Config()),
		Version:  version,
	})
	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddBackgroundService(services.NewReporterService("metrics-reporter",
		func(context.Context) { metrics.UpdateUptime(startTime) },
		services.ReporterConfig{Interval: 15 * time.Second, ReportOnStart: true},
		logging.Logger(),
	))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logging.Logger()))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Cinematch stopped")
}

// loadCatalog reads the dataset and publishes the snapshot. Failures are
// logged and recorded on the engine; they never stop the process.
func loadCatalog(ctx context.Context, cfg *config.Config, engine *recommend.Engine) {
	src, err := dataset.New(cfg.Data.Reader, cfg.Data.Path)
	if err != nil {
		engine.MarkUnavailable(err)
		return
	}

	start := time.Now()
	rows, err := src.Load(ctx)
	if err != nil {
		engine.MarkUnavailable(err)
		return
	}
	metrics.RecordDatasetRead(cfg.Data.Reader, len(rows), time.Since(start))
	logging.Info().
		Int("rows", len(rows)).
		Dur("duration", time.Since(start)).
		Msg("Dataset read")

	// Load logs its own failure.
	_ = engine.Load(ctx, rows)
}

// recordCatalog exports the engine status as catalog gauges.
func recordCatalog(engine *recommend.Engine) {
	st := engine.Status()
	metrics.RecordCatalogLoad(metrics.CatalogLoad{
		Loaded:         st.State == recommend.StateReady,
		Items:          st.Items,
		MissingFields:  st.Prepare.MissingFields,
		BelowVoteFloor: st.Prepare.BelowVoteFloor,
		Duplicates:     st.Prepare.Duplicates,
		Truncated:      st.Prepare.Truncated,
		ScoreMean:      st.Params.C,
		ScoreMinVotes:  st.Params.M,
		Vocabulary:     st.Index.Vocabulary,
		EmptyDocuments: st.Index.EmptyDocuments,
		LoadDuration:   st.LoadDuration,
		IndexDuration:  st.Index.Duration,
	})
	if st.State != recommend.StateReady {
		logging.Warn().Str("reason", st.Reason).Msg("Serving without a catalog")
	}
}
