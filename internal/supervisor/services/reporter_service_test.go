// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

func TestReporterService_Interface(t *testing.T) {
	t.Parallel()
	var _ suture.Service = (*ReporterService)(nil)
}

func TestNewReporterService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewReporterService("uptime-reporter", func(context.Context) {}, ReporterConfig{}, zerolog.Nop())
	if svc.config.Interval != DefaultReportInterval {
		t.Errorf("Interval = %v, want %v", svc.config.Interval, DefaultReportInterval)
	}
	if svc.String() != "uptime-reporter" {
		t.Errorf("String() = %q, want uptime-reporter", svc.String())
	}
}

func TestReporterService_Serve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		reportOnStart bool
		interval      time.Duration
		run           time.Duration
		minReports    int32
	}{
		{name: "report on start", reportOnStart: true, interval: time.Hour, run: 50 * time.Millisecond, minReports: 1},
		{name: "ticks", interval: 5 * time.Millisecond, run: 100 * time.Millisecond, minReports: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			svc := NewReporterService("test-reporter", func(context.Context) { calls.Add(1) },
				ReporterConfig{Interval: tt.interval, ReportOnStart: tt.reportOnStart}, zerolog.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), tt.run)
			defer cancel()

			err := svc.Serve(ctx)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
			}
			if got := calls.Load(); got < tt.minReports {
				t.Errorf("reports = %d, want at least %d", got, tt.minReports)
			}
		})
	}
}

func TestReporterService_NoReportWithoutTick(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	svc := NewReporterService("test-reporter", func(context.Context) { calls.Add(1) },
		ReporterConfig{Interval: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if got := calls.Load(); got != 0 {
		t.Errorf("reports = %d, want 0", got)
	}
}
