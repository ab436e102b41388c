// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint (chi route pattern), status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Dataset Metrics:
  - dataset_rows_read_total: Raw rows read (counter)
    Labels: reader (csv, duckdb)
  - dataset_read_duration_seconds: Read duration (histogram)
    Labels: reader
  - duckdb_query_duration_seconds, duckdb_query_errors_total: DuckDB reader queries

Catalog Metrics (set once after load):
  - catalog_loaded: 1 when ready, 0 when unavailable (gauge)
  - catalog_items: Working set size (gauge)
  - catalog_rows_dropped: Rows removed during preparation (gauge)
    Labels: reason (missing_fields, below_vote_floor, duplicate, truncated)
  - catalog_load_duration_seconds: Full load duration (gauge)
  - catalog_score_mean_vote, catalog_score_min_votes: Weighted rating C and m
  - index_build_duration_seconds, index_vocabulary_terms, index_empty_documents

Query Metrics:
  - recommend_queries_total: Engine queries (counter)
    Labels: kind (home, search, discover, recommend), outcome
  - recommend_query_duration_seconds: Engine query latency (histogram)
  - recommend_query_results: Items returned per successful query (histogram)
  - recommend_cache_hits_total, recommend_cache_misses_total: Read from the
    engine on each scrape once RegisterCacheCounters is called

# Usage Example

	metrics.RecordCatalogLoad(metrics.CatalogLoad{Loaded: true, Items: len(items)})

	start := time.Now()
	res, err := engine.Recommend(ctx, q)
	metrics.RecordQuery("recommend", outcome(err), len(res.Recommendations), time.Since(start))

Example PromQL queries:

	# Recommend p95 latency
	histogram_quantile(0.95, rate(recommend_query_duration_seconds_bucket{kind="recommend"}[5m]))

	# Share of recommend queries that found no source title
	sum(rate(recommend_queries_total{kind="recommend",outcome="not_found"}[5m]))
	  / sum(rate(recommend_queries_total{kind="recommend"}[5m]))

# Cardinality Management

Endpoint labels use the chi route pattern rather than the raw path, and query
titles are never used as label values.

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
