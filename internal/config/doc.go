// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for Cinematch.

Configuration is layered with Koanf v2:

 1. Defaults from defaultConfig()
 2. An optional YAML file: CONFIG_PATH, config.yaml, config.yml, then
    /etc/cinematch/config.yaml
 3. Environment variables from an explicit allowlist (envMappings)

# Sections

  - server: HTTP_PORT (8000), HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT
  - logging: LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - security: CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS,
    RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - data: DATA_PATH, DATA_READER (csv or duckdb), DATA_WORKING_SET_SIZE,
    DATA_MIN_VOTE_COUNT
  - index: INDEX_WORKERS
  - recommend: limits, home layout, filter thresholds, image URLs and the
    result cache (RECOMMEND_* variables)

# Example config.yaml

	server:
	  port: 8000
	data:
	  path: /data/movies_metadata.csv
	  reader: duckdb
	recommend:
	  cache_ttl: 15m

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)

Validate runs during Load and returns the first error with the offending
environment variable named. Config is immutable after Load and safe for
concurrent reads.
*/
package config
