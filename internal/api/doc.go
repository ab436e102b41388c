// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the HTTP surface of the recommendation service.

Routing uses Chi with production middleware from the Chi ecosystem:
go-chi/cors for CORS, go-chi/httprate for per-IP rate limiting, plus the
service's own request id, Prometheus and gzip middleware.

# Endpoints

	GET /api/v1/home                                    home sections
	GET /api/v1/search?query=                           title suggestions
	GET /api/v1/discover?genre=&min_year=&min_rating=   filtered catalog
	GET /api/v1/recommend?title=&min_year=&min_rating=  similar movies
	GET /api/v1/catalog/stats                           load statistics
	GET /api/v1/health[/live|/ready]                    probes
	GET /metrics                                        Prometheus

# Response Format

Every endpoint answers with the APIResponse envelope:

	{
	  "success": true,
	  "data": [...],
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 1, "count": 12}
	}

Errors carry a machine-readable code:

	{
	  "success": false,
	  "error": {"code": "NOT_FOUND", "message": "Movie not found"}
	}

# Degraded Mode

While the catalog is not loaded, home, search and discover return an empty
list with meta.degraded set, recommend returns 503 and /health/ready
returns 503. Liveness is unaffected.

# Parameters

min_year and min_rating are parsed leniently. Unparseable or out of range
values fall back to 1900 and 0. A missing or blank title on recommend is a
400 VALIDATION_FAILED.
*/
package api
