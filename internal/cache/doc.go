// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiration.

The recommender keeps one cache per query kind (recommend, discover, search)
keyed by the normalized query. Results are computed from an immutable catalog
snapshot, so entries never need explicit invalidation; the TTL only bounds
memory held by cold keys.

# Usage

	c := cache.NewLRU[[]catalog.DisplayItem](1024, 10*time.Minute)
	if items, ok := c.Get(key); ok {
	    return items
	}
	items := compute()
	c.Add(key, items)

# Thread Safety

All methods take an internal mutex. Get mutates recency order, so reads are
serialized as well.
*/
package cache
