// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the entry point for the Cinematch server.

Cinematch serves content-based movie recommendations from a TMDB style
metadata CSV. Movies are related by the TF-IDF cosine similarity of their
overviews plus title matches, then filtered and ranked by a Bayesian
weighted rating.

# Startup

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Catalog: the dataset is read (encoding/csv or DuckDB read_csv), cleaned,
    scored and indexed before any request is served
 4. Supervisor tree: suture v4 runs the HTTP server and gauge reporters

A failed catalog load does not stop the process. The engine stays
unloaded, list endpoints return empty degraded responses, recommend
returns 503 and /api/v1/health/ready reports not ready.

# Configuration

	Priority: Environment variables > Config file > Defaults

Common environment variables:

	HTTP_PORT=8000
	HTTP_HOST=0.0.0.0
	LOG_LEVEL=info                    # trace, debug, info, warn, error
	LOG_FORMAT=json                   # json or console
	DATA_PATH=data/movies_metadata.csv
	DATA_READER=csv                   # csv or duckdb
	INDEX_WORKERS=0                   # 0 uses runtime.NumCPU()
	CORS_ORIGINS=https://example.com
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m
	RECOMMEND_CACHE_ENABLED=true
	POSTER_BASE_URL=https://image.tmdb.org/t/p/w500

CONFIG_PATH points at a YAML file using the same keys as the config
struct tags.

# Endpoints

	GET /api/v1/home
	GET /api/v1/search?query=
	GET /api/v1/discover?genre=&min_year=&min_rating=
	GET /api/v1/recommend?title=&min_year=&min_rating=
	GET /api/v1/catalog/stats
	GET /api/v1/health, /api/v1/health/live, /api/v1/health/ready
	GET /metrics

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for up to ten seconds before the process exits.
*/
package main
