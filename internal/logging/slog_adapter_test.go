// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferedHandler(level zerolog.Level) (*SlogHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSlogHandlerWithLogger(zerolog.New(&buf).Level(level)), &buf
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		logger zerolog.Level
		level  slog.Level
		want   bool
	}{
		{"debug at info", zerolog.InfoLevel, slog.LevelDebug, false},
		{"info at info", zerolog.InfoLevel, slog.LevelInfo, true},
		{"warn at error", zerolog.ErrorLevel, slog.LevelWarn, false},
		{"error at error", zerolog.ErrorLevel, slog.LevelError, true},
		{"debug at trace", zerolog.TraceLevel, slog.LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newBufferedHandler(tt.logger)
			if got := h.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     slog.Level
		wantLevel string
	}{
		{"info", slog.LevelInfo, `"level":"info"`},
		{"warn", slog.LevelWarn, `"level":"warn"`},
		{"error", slog.LevelError, `"level":"error"`},
		{"between info and warn", slog.LevelInfo + 2, `"level":"info"`},
		{"above error", slog.LevelError + 4, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, buf := newBufferedHandler(zerolog.TraceLevel)
			record := slog.NewRecord(time.Now(), tt.level, "service restarted", 0)
			record.AddAttrs(slog.String("service", "http-server"), slog.Int("attempt", 2))

			if err := h.Handle(context.Background(), record); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			out := buf.String()
			for _, want := range []string{tt.wantLevel, `"service":"http-server"`, `"attempt":2`, "service restarted"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %s: %s", want, out)
				}
			}
		})
	}
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	t.Parallel()

	h, buf := newBufferedHandler(zerolog.TraceLevel)

	slogger := slog.New(h.WithAttrs([]slog.Attr{slog.String("supervisor", "cinematch")}).
		WithGroup("outer").
		WithGroup("inner"))
	slogger.Info("event", "key", "value")

	out := buf.String()
	if !strings.Contains(out, `supervisor":"cinematch"`) {
		t.Errorf("pre-configured attr missing: %s", out)
	}
	if !strings.Contains(out, `"outer.inner.key":"value"`) {
		t.Errorf("nested group prefix wrong: %s", out)
	}

	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestAddAttr_Kinds(t *testing.T) {
	t.Parallel()

	h, buf := newBufferedHandler(zerolog.TraceLevel)
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "kinds", 0)
	record.AddAttrs(
		slog.String("s", "x"),
		slog.Int64("i", -3),
		slog.Uint64("u", 7),
		slog.Float64("f", 1.5),
		slog.Bool("b", true),
		slog.Duration("d", time.Second),
		slog.Any("a", []int{1, 2}),
		slog.Group("req", slog.String("method", "GET"), slog.Group("inner", slog.Int("n", 1))),
	)
	_ = h.Handle(context.Background(), record)

	out := buf.String()
	for _, want := range []string{
		`"s":"x"`, `"i":-3`, `"u":7`, `"f":1.5`, `"b":true`, `"d":`, `"a":[1,2]`,
		`"req.method":"GET"`, `"req.inner.n":1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { SetLogger(prev) })

	NewSlogLogger().Warn("supervisor backoff", "service", "http-server")

	if !strings.Contains(buf.String(), `"service":"http-server"`) {
		t.Errorf("slog output not routed to zerolog: %s", buf.String())
	}
}
