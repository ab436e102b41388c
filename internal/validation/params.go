// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package validation

// Query parameter names shared by the request structs and the API layer.
const (
	FieldTitle     = "title"
	FieldQuery     = "query"
	FieldGenre     = "genre"
	FieldMinYear   = "min_year"
	FieldMinRating = "min_rating"
)

// RecommendParams are the recommend endpoint's query parameters.
type RecommendParams struct {
	Title     string  `json:"title" validate:"notblank,max=300"`
	MinYear   int     `json:"min_year" validate:"gte=0,lte=3000"`
	MinRating float64 `json:"min_rating" validate:"gte=0,lte=10"`
}

// DiscoverParams are the discover endpoint's query parameters.
type DiscoverParams struct {
	Genre     string  `json:"genre" validate:"max=64"`
	MinYear   int     `json:"min_year" validate:"gte=0,lte=3000"`
	MinRating float64 `json:"min_rating" validate:"gte=0,lte=10"`
}

// SearchParams are the search endpoint's query parameters. A blank query
// is valid and yields no suggestions.
type SearchParams struct {
	Query string `json:"query" validate:"max=300"`
}

// Clampable reports whether a failure on field is corrected by falling back
// to the field's default instead of rejecting the request.
func Clampable(field string) bool {
	return field == FieldMinYear || field == FieldMinRating
}
