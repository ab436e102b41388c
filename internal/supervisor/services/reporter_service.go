// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultReportInterval is used when ReporterConfig.Interval is not positive.
const DefaultReportInterval = 15 * time.Second

// ReportFunc refreshes gauges that are not updated on the request path,
// such as uptime and engine counters.
type ReportFunc func(ctx context.Context)

// ReporterConfig configures a ReporterService.
type ReporterConfig struct {
	// Interval between reports.
	Interval time.Duration

	// ReportOnStart runs one report before the first tick.
	ReportOnStart bool
}

// ReporterService calls a ReportFunc on a fixed interval until its context
// is canceled. A panicking report is recovered by suture and the service is
// restarted with backoff.
type ReporterService struct {
	report ReportFunc
	config ReporterConfig
	logger zerolog.Logger
	name   string
}

// NewReporterService creates a reporter named name.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReporterService(name string, report ReportFunc, cfg ReporterConfig, logger zerolog.Logger) *ReporterService {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultReportInterval
	}
	return &ReporterService{
		report: report,
		config: cfg,
		logger: logger.With().Str("service", name).Logger(),
		name:   name,
	}
}

// Serve implements suture.Service.
func (s *ReporterService) Serve(ctx context.Context) error {
	s.logger.Debug().
		Dur("interval", s.config.Interval).
		Bool("report_on_start", s.config.ReportOnStart).
		Msg("reporter starting")

	if s.config.ReportOnStart {
		s.report(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("reporter stopping")
			return ctx.Err()

		case <-ticker.C:
			s.report(ctx)
		}
	}
}

// String returns the service name for logging.
func (s *ReporterService) String() string {
	return s.name
}
