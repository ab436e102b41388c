// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend implements content-based movie recommendation over an
// in-memory catalog.
//
// # Architecture
//
// Loading runs once at startup:
//
//   - catalog.Prepare cleans raw rows into the working set
//   - catalog.ApplyWeightedScores assigns Bayesian weighted ratings
//   - textindex.Build computes overview cosine similarities
//   - home sections are ranked and the Resolver indexes titles
//
// The result is an immutable Snapshot published through an atomic pointer.
// Until then the engine is Unloaded and every query returns
// ErrCatalogUnavailable.
//
// # Queries
//
//   - Home: fixed sections, shuffled per request
//   - Search: title suggestions from the Resolver
//   - Discover: filter pipeline over the whole catalog
//   - Recommend: overview neighbors plus title-family matches, filtered
//     and ranked by weighted score
//
// Filters are expressed as a Pipeline of named Stages so each predicate can
// be tested on its own and drop counts can be logged per stage.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	if err := engine.Load(ctx, rows); err != nil {
//	    logger.Error().Err(err).Msg("serving degraded")
//	}
//
//	res, err := engine.Recommend(ctx, recommend.RecommendQuery{
//	    Title:   "toy story",
//	    MinYear: 1900,
//	})
//
// # Thread Safety
//
// All query methods are safe for concurrent use. Snapshot reads take no
// locks; only the home shuffle and the result caches serialize briefly.
package recommend
