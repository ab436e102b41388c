// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:   "info",
//	    Format:  "json",
//	    Service: "cinematch",
//	})
//
//	logging.Info().Int("items", n).Msg("catalog loaded")
//	logging.Ctx(ctx).Debug().Str("genre", g).Msg("discover")
//
// Components receive a zerolog.Logger by value and add a component field:
//
//	engine, err := recommend.NewEngine(cfg, logging.WithComponent("recommend"))
//
// # Request Tracing
//
// The request id middleware stores a request_id and a short correlation_id
// in the request context; Ctx adds both to every entry.
//
// # Supervisor Integration
//
// NewSlogLogger adapts the global logger to log/slog for sutureslog.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
