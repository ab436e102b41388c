// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "errors"

var (
	// ErrCatalogUnavailable is returned by every query while the engine is
	// unloaded, and wraps the cause of a failed load.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrNotFound is returned when no title matches a recommendation query.
	ErrNotFound = errors.New("movie not found")

	// ErrAlreadyLoaded is returned by a second successful Load.
	ErrAlreadyLoaded = errors.New("catalog already loaded")

	// ErrDimensionMismatch is returned when the similarity matrix does not
	// line up with the catalog.
	ErrDimensionMismatch = errors.New("similarity matrix does not match catalog")

	// ErrEmptyCatalog is returned when preparation leaves no items.
	ErrEmptyCatalog = errors.New("catalog is empty after preparation")
)
