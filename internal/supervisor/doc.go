// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor provides process supervision for Cinematch using suture v4.

The tree has two layers:

	RootSupervisor ("cinematch")
	├── BackgroundSupervisor ("background-layer")
	│   └── ReporterService (uptime and engine gauges)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

The catalog is loaded in main before the tree starts, so neither layer
depends on loading. A failing reporter is restarted with backoff and never
touches the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Logging

Supervisor events (service panics, restarts, backoff) are emitted through
log/slog via sutureslog. Pass logging.NewSlogLogger() so they share the
zerolog output of the rest of the process.

# Shutdown

Canceling the context passed to Serve stops every layer. Services that do
not return within TreeConfig.ShutdownTimeout are listed by
UnstoppedServiceReport.
*/
package supervisor
