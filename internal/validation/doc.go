// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use with
// WithRequiredStructEnabled, a json-tag field name function and the
// notblank rule.
//
// Request structs mirror the API query parameters:
//
//	p := validation.DiscoverParams{Genre: "Comedy", MinYear: 1900}
//	if verr := validation.ValidateStruct(&p); verr != nil {
//	    for _, f := range verr.Fields() {
//	        if validation.Clampable(f) {
//	            // fall back to the default for f
//	        }
//	    }
//	}
//
// Filter fields (min_year, min_rating) never fail a request: out of range
// values are replaced by their defaults. Other fields are rejected with a
// VALIDATION_FAILED error built by ToAPIError.
package validation
