// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/textindex"
)

// RecommendQuery asks for movies similar to a title.
type RecommendQuery struct {
	// Title is the free-text source title.
	Title string `json:"title" validate:"required"`

	// MinYear excludes candidates released earlier.
	MinYear int `json:"min_year"`

	// MinRating excludes candidates rated lower.
	MinRating float64 `json:"min_rating"`
}

// RecommendResult is the resolved source and its recommendations.
type RecommendResult struct {
	Source          catalog.DisplayItem   `json:"source"`
	Recommendations []catalog.DisplayItem `json:"recommendations"`
}

// DiscoverQuery filters the catalog.
type DiscoverQuery struct {
	// Genre is matched as a case-insensitive substring of the genre list.
	// Empty or the configured "all" value disables the filter.
	Genre string `json:"genre"`

	MinYear   int     `json:"min_year"`
	MinRating float64 `json:"min_rating"`
}

// SearchResult is one title suggestion.
type SearchResult struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// Section is one home feed row.
type Section struct {
	ID    string                `json:"id"`
	Title string                `json:"title"`
	Items []catalog.DisplayItem `json:"items"`
}

// Metrics contains engine counters.
type Metrics struct {
	// RequestCount is the total number of queries served.
	RequestCount int64 `json:"request_count"`

	// NotFoundCount is the number of recommend queries with no source match.
	NotFoundCount int64 `json:"not_found_count"`

	// UnavailableCount is the number of queries rejected while unloaded.
	UnavailableCount int64 `json:"unavailable_count"`

	// CacheHits is the number of cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache misses.
	CacheMisses int64 `json:"cache_misses"`
}

// Status describes the engine for health and stats endpoints.
type Status struct {
	// State is "ready" or "unloaded".
	State string `json:"state"`

	// Reason explains an unloaded state, empty before the first load.
	Reason string `json:"reason,omitempty"`

	Items        int                  `json:"items"`
	Params       catalog.ScoreParams  `json:"score_params"`
	Prepare      catalog.PrepareStats `json:"prepare"`
	Index        textindex.BuildStats `json:"index"`
	LoadedAt     time.Time            `json:"loaded_at,omitempty"`
	LoadDuration time.Duration        `json:"load_duration"`
	Sections     int                  `json:"sections"`
	Metrics      Metrics              `json:"metrics"`
}

// Status state names.
const (
	StateReady    = "ready"
	StateUnloaded = "unloaded"
)
