// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/validation"
)

// ParamDefaults are the values substituted for missing or out of range
// numeric filters.
type ParamDefaults struct {
	MinYear   int
	MinRating float64
}

// DefaultParamDefaults returns min_year 1900 and min_rating 0.
func DefaultParamDefaults() ParamDefaults {
	return ParamDefaults{MinYear: 1900, MinRating: 0}
}

// ParamDefaultsFor takes the year default from the engine filter config.
func ParamDefaultsFor(cfg *recommend.Config) ParamDefaults {
	d := DefaultParamDefaults()
	if cfg != nil && cfg.Filters.DefaultMinYear > 0 {
		d.MinYear = cfg.Filters.DefaultMinYear
	}
	return d
}

// parseIntParam reads an integer query parameter. Decimal input is
// truncated. ok is false when the parameter is present but unusable.
func parseIntParam(r *http.Request, name string, def int) (v int, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, true
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return def, false
	}
	return int(f), true
}

// parseFloatParam reads a float query parameter. ok is false when the
// parameter is present but unusable.
func parseFloatParam(r *http.Request, name string, def float64) (v float64, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def, false
	}
	return f, true
}

// filterParams carries the numeric filters shared by discover and recommend.
type filterParams struct {
	MinYear   int
	MinRating float64
}

// parseFilters reads min_year and min_rating leniently. Unparseable values
// fall back to the defaults and are logged at debug level.
func (h *Handler) parseFilters(r *http.Request) filterParams {
	year, ok := parseIntParam(r, validation.FieldMinYear, h.defaults.MinYear)
	if !ok {
		logClamp(r, validation.FieldMinYear, h.defaults.MinYear)
	}
	rating, ok := parseFloatParam(r, validation.FieldMinRating, h.defaults.MinRating)
	if !ok {
		logClamp(r, validation.FieldMinRating, h.defaults.MinRating)
	}
	return filterParams{MinYear: year, MinRating: rating}
}

// clampFilters resets every clampable field that failed validation to its
// default. It reports whether anything was reset.
func (h *Handler) clampFilters(r *http.Request, verr *validation.RequestValidationError, year *int, rating *float64) bool {
	if verr == nil {
		return false
	}
	clamped := false
	if verr.Has(validation.FieldMinYear) {
		logClamp(r, validation.FieldMinYear, h.defaults.MinYear)
		*year = h.defaults.MinYear
		clamped = true
	}
	if verr.Has(validation.FieldMinRating) {
		logClamp(r, validation.FieldMinRating, h.defaults.MinRating)
		*rating = h.defaults.MinRating
		clamped = true
	}
	return clamped
}

func logClamp(r *http.Request, field string, def interface{}) {
	logging.Ctx(r.Context()).Debug().
		Str("param", field).
		Str("raw", r.URL.Query().Get(field)).
		Interface("default", def).
		Msg("query parameter clamped to default")
}

// parseRecommendParams returns the validated recommend parameters. Only
// non-clampable failures are returned as errors.
func (h *Handler) parseRecommendParams(r *http.Request) (validation.RecommendParams, *validation.RequestValidationError) {
	f := h.parseFilters(r)
	p := validation.RecommendParams{
		Title:     r.URL.Query().Get(validation.FieldTitle),
		MinYear:   f.MinYear,
		MinRating: f.MinRating,
	}

	verr := validation.ValidateStruct(&p)
	if h.clampFilters(r, verr, &p.MinYear, &p.MinRating) {
		verr = validation.ValidateStruct(&p)
	}
	return p, verr
}

// parseDiscoverParams returns the validated discover parameters.
func (h *Handler) parseDiscoverParams(r *http.Request) (validation.DiscoverParams, *validation.RequestValidationError) {
	f := h.parseFilters(r)
	p := validation.DiscoverParams{
		Genre:     strings.TrimSpace(r.URL.Query().Get(validation.FieldGenre)),
		MinYear:   f.MinYear,
		MinRating: f.MinRating,
	}

	verr := validation.ValidateStruct(&p)
	if h.clampFilters(r, verr, &p.MinYear, &p.MinRating) {
		verr = validation.ValidateStruct(&p)
	}
	return p, verr
}

func (h *Handler) parseSearchParams(r *http.Request) (validation.SearchParams, *validation.RequestValidationError) {
	p := validation.SearchParams{Query: r.URL.Query().Get(validation.FieldQuery)}
	return p, validation.ValidateStruct(&p)
}
