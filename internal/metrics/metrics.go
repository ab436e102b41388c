// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes used as the "outcome" label of QueriesTotal.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Reasons used as the "reason" label of CatalogRowsDropped.
const (
	DropMissingFields  = "missing_fields"
	DropBelowVoteFloor = "below_vote_floor"
	DropDuplicate      = "duplicate"
	DropTruncated      = "truncated"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Database Metrics (DuckDB dataset reader)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Dataset Metrics
	DatasetRowsRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_read_total",
			Help: "Total number of raw rows read from the dataset",
		},
		[]string{"reader"},
	)

	DatasetReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_read_duration_seconds",
			Help:    "Duration of dataset reads in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"reader"},
	)

	// Catalog Metrics
	CatalogLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_loaded",
			Help: "1 when a catalog snapshot is published, 0 otherwise",
		},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_items",
			Help: "Number of movies in the working set",
		},
	)

	CatalogRowsDropped = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_rows_dropped",
			Help: "Rows dropped while preparing the catalog, by reason",
		},
		[]string{"reason"},
	)

	CatalogLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_load_duration_seconds",
			Help: "Duration of the last catalog load in seconds",
		},
	)

	CatalogScoreMean = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_score_mean_vote",
			Help: "Mean vote average (C) used by the weighted rating",
		},
	)

	CatalogScoreMinVotes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_score_min_votes",
			Help: "Vote count percentile (m) used by the weighted rating",
		},
	)

	// Similarity Index Metrics
	IndexBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "index_build_duration_seconds",
			Help: "Duration of the last similarity index build in seconds",
		},
	)

	IndexVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "index_vocabulary_terms",
			Help: "Number of distinct terms in the overview vocabulary",
		},
	)

	IndexEmptyDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "index_empty_documents",
			Help: "Number of overviews with no indexable terms",
		},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_queries_total",
			Help: "Total number of engine queries by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_query_duration_seconds",
			Help:    "Engine query duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"kind"},
	)

	QueryResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_query_results",
			Help:    "Number of items returned per query",
			Buckets: []float64{0, 1, 3, 5, 10, 12, 21, 50},
		},
		[]string{"kind"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// CatalogLoad summarizes one catalog load for RecordCatalogLoad.
type CatalogLoad struct {
	Loaded bool
	Items  int

	MissingFields  int
	BelowVoteFloor int
	Duplicates     int
	Truncated      int

	ScoreMean     float64
	ScoreMinVotes float64

	Vocabulary     int
	EmptyDocuments int

	LoadDuration  time.Duration
	IndexDuration time.Duration
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordDatasetRead records a completed dataset read.
func RecordDatasetRead(reader string, rows int, duration time.Duration) {
	DatasetRowsRead.WithLabelValues(reader).Add(float64(rows))
	DatasetReadDuration.WithLabelValues(reader).Observe(duration.Seconds())
}

// RecordCatalogLoad publishes the catalog gauges. An unloaded catalog zeroes
// the size gauges and keeps the drop counts.
//
//nolint:gocritic // hugeParam: c passed by value for immutability
func RecordCatalogLoad(c CatalogLoad) {
	CatalogRowsDropped.WithLabelValues(DropMissingFields).Set(float64(c.MissingFields))
	CatalogRowsDropped.WithLabelValues(DropBelowVoteFloor).Set(float64(c.BelowVoteFloor))
	CatalogRowsDropped.WithLabelValues(DropDuplicate).Set(float64(c.Duplicates))
	CatalogRowsDropped.WithLabelValues(DropTruncated).Set(float64(c.Truncated))

	if !c.Loaded {
		CatalogLoaded.Set(0)
		CatalogItems.Set(0)
		return
	}

	CatalogLoaded.Set(1)
	CatalogItems.Set(float64(c.Items))
	CatalogLoadDuration.Set(c.LoadDuration.Seconds())
	CatalogScoreMean.Set(c.ScoreMean)
	CatalogScoreMinVotes.Set(c.ScoreMinVotes)
	IndexBuildDuration.Set(c.IndexDuration.Seconds())
	IndexVocabulary.Set(float64(c.Vocabulary))
	IndexEmptyDocuments.Set(float64(c.EmptyDocuments))
}

// RecordQuery records one engine query.
func RecordQuery(kind, outcome string, results int, duration time.Duration) {
	QueriesTotal.WithLabelValues(kind, outcome).Inc()
	QueryDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if outcome == OutcomeOK {
		QueryResults.WithLabelValues(kind).Observe(float64(results))
	}
}

// RegisterCacheCounters exposes engine cache counters read on each scrape.
// Registering twice is not an error; the first registration wins.
func RegisterCacheCounters(reg prometheus.Registerer, hits, misses func() float64) error {
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of engine result cache hits",
		}, hits),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of engine result cache misses",
		}, misses),
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// SetAppInfo records the build version and starts counting uptime from start.
func SetAppInfo(version, goVersion string, start time.Time) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
	AppUptime.Set(time.Since(start).Seconds())
}

// UpdateUptime refreshes the uptime gauge.
func UpdateUptime(start time.Time) {
	AppUptime.Set(time.Since(start).Seconds())
}
