// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service wrappers for Cinematch components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server; ListenAndServe runs in a goroutine
  - Context cancellation calls Shutdown with a bounded drain timeout
  - http.ErrServerClosed is treated as a clean stop

Reporter (ReporterService):
  - Runs a ReportFunc on a fixed interval
  - Used to refresh uptime and engine gauges between scrapes

# Usage

	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router}
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))

	tree.AddBackgroundService(services.NewReporterService("metrics-reporter",
	    func(ctx context.Context) { metrics.UpdateUptime(start) },
	    services.ReporterConfig{Interval: 15 * time.Second}, logger))

Every service implements fmt.Stringer so suture event logs name it.
*/
package services
