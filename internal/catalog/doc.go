// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog turns raw dataset rows into the typed working set that the
// recommendation engine serves from.
//
// # Pipeline
//
// Prepare runs the cleaning steps in a fixed order so that the resulting row
// order is reproducible:
//
//  1. Drop rows missing id, title, overview or poster_path
//  2. Coerce vote_count and vote_average to numbers (invalid values become 0)
//  3. Keep rows above the vote-count floor
//  4. Normalize the genres field into an ordered list of names
//  5. Derive the release year (0 when unknown)
//  6. Sort by vote_count descending and truncate to the working-set size
//
// The output order is the canonical positional index: Items[i].Index == i, and
// the similarity matrix built from the same slice uses the same numbering.
//
// ApplyWeightedScores then computes the Bayesian weighted rating for every
// item in one pass, and ImageConfig.Display formats items for API responses.
//
// # Thread Safety
//
// Items are immutable once Prepare and ApplyWeightedScores have returned and
// may be shared across goroutines without locking.
package catalog
