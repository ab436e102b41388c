// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// Query kinds used as the "kind" label of recommend_queries_total.
const (
	kindHome      = "home"
	kindSearch    = "search"
	kindDiscover  = "discover"
	kindRecommend = "recommend"
)

// QueryEngine is the subset of *recommend.Engine the handlers need.
type QueryEngine interface {
	Home(ctx context.Context) ([]recommend.Section, error)
	Search(ctx context.Context, query string) ([]recommend.SearchResult, error)
	Discover(ctx context.Context, q recommend.DiscoverQuery) ([]catalog.DisplayItem, error)
	Recommend(ctx context.Context, q recommend.RecommendQuery) (*recommend.RecommendResult, error)
	Status() recommend.Status
	IsReady() bool
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	Defaults ParamDefaults
	Version  string
}

// Handler serves the movie endpoints.
//
// Handler methods are split across files:
//   - handlers.go: query endpoints (this file)
//   - handlers_health.go: health probes and catalog stats
type Handler struct {
	engine    QueryEngine
	defaults  ParamDefaults
	version   string
	startTime time.Time
}

// NewHandler creates a handler over engine.
//
//nolint:gocritic // hugeParam: cfg passed by value for immutability
func NewHandler(engine QueryEngine, cfg HandlerConfig) *Handler {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		engine:    engine,
		defaults:  cfg.Defaults,
		version:   cfg.Version,
		startTime: time.Now(),
	}
}

// Home returns every home section with its items shuffled.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := NewResponseWriter(w, r)

	sections, err := h.engine.Home(r.Context())
	if err != nil {
		h.degradedList(rw, r, kindHome, err, []recommend.Section{}, start)
		return
	}

	metrics.RecordQuery(kindHome, metrics.OutcomeOK, len(sections), time.Since(start))
	rw.List(sections, len(sections))
}

// Search returns title suggestions for the query parameter.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := NewResponseWriter(w, r)

	p, verr := h.parseSearchParams(r)
	if verr != nil {
		writeValidationError(rw, verr)
		return
	}

	results, err := h.engine.Search(r.Context(), p.Query)
	if err != nil {
		h.degradedList(rw, r, kindSearch, err, []recommend.SearchResult{}, start)
		return
	}

	metrics.RecordQuery(kindSearch, metrics.OutcomeOK, len(results), time.Since(start))
	rw.List(results, len(results))
}

// Discover filters the catalog by genre, year and rating.
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := NewResponseWriter(w, r)

	p, verr := h.parseDiscoverParams(r)
	if verr != nil {
		writeValidationError(rw, verr)
		return
	}

	items, err := h.engine.Discover(r.Context(), recommend.DiscoverQuery{
		Genre:     p.Genre,
		MinYear:   p.MinYear,
		MinRating: p.MinRating,
	})
	if err != nil {
		h.degradedList(rw, r, kindDiscover, err, []catalog.DisplayItem{}, start)
		return
	}

	metrics.RecordQuery(kindDiscover, metrics.OutcomeOK, len(items), time.Since(start))
	rw.List(items, len(items))
}

// Recommend returns movies similar to the title parameter.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := NewResponseWriter(w, r)

	p, verr := h.parseRecommendParams(r)
	if verr != nil {
		writeValidationError(rw, verr)
		return
	}

	res, err := h.engine.Recommend(r.Context(), recommend.RecommendQuery{
		Title:     p.Title,
		MinYear:   p.MinYear,
		MinRating: p.MinRating,
	})
	switch {
	case err == nil:
		metrics.RecordQuery(kindRecommend, metrics.OutcomeOK, len(res.Recommendations), time.Since(start))
		rw.Success(res)
	case recommend.IsNotFound(err):
		metrics.RecordQuery(kindRecommend, metrics.OutcomeNotFound, 0, time.Since(start))
		rw.NotFound("Movie not found")
	case recommend.IsUnavailable(err):
		metrics.RecordQuery(kindRecommend, metrics.OutcomeUnavailable, 0, time.Since(start))
		rw.ServiceUnavailable("Movie catalog is not loaded")
	default:
		metrics.RecordQuery(kindRecommend, metrics.OutcomeError, 0, time.Since(start))
		logging.Ctx(r.Context()).Error().Err(err).Str("title", p.Title).Msg("recommend failed")
		rw.InternalError("Failed to compute recommendations")
	}
}

// degradedList serves an empty list when the catalog is unavailable and a
// 500 for anything else.
func (h *Handler) degradedList(rw *ResponseWriter, r *http.Request, kind string, err error, empty interface{}, start time.Time) {
	if recommend.IsUnavailable(err) {
		metrics.RecordQuery(kind, metrics.OutcomeUnavailable, 0, time.Since(start))
		rw.Degraded(empty)
		return
	}

	metrics.RecordQuery(kind, metrics.OutcomeError, 0, time.Since(start))
	logging.Ctx(r.Context()).Error().Err(err).Str("kind", kind).Msg("query failed")
	rw.InternalError("Query failed")
}

func writeValidationError(rw *ResponseWriter, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}
