// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import "strings"

// RawRow is one untyped record as read from the dataset. Every field holds
// the source text verbatim; Prepare is responsible for validation.
type RawRow struct {
	ID           string
	Title        string
	Overview     string
	PosterPath   string
	BackdropPath string
	Genres       string
	VoteCount    string
	VoteAverage  string
	ReleaseDate  string
	Popularity   string
}

// Item is a cleaned catalog entry in the working set.
type Item struct {
	// Index is the item's row position in the working set and in the similarity matrix.
	Index int `json:"index"`

	// ID is the unique movie identifier.
	ID int `json:"id"`

	// Title is the display title.
	Title string `json:"title"`

	// Year is the release year, 0 when unknown.
	Year int `json:"year"`

	// Overview is the plot synopsis used for text similarity.
	Overview string `json:"overview"`

	// Genres holds genre names in source order.
	Genres []string `json:"genres"`

	// VoteAverage is the mean user rating on a 0-10 scale.
	VoteAverage float64 `json:"vote_average"`

	// VoteCount is the number of ratings behind VoteAverage.
	VoteCount int `json:"vote_count"`

	// Popularity is the source popularity figure (0 when missing).
	Popularity float64 `json:"popularity"`

	// WeightedScore is the Bayesian weighted rating, the primary ranking key.
	WeightedScore float64 `json:"weighted_score"`

	// PosterPath is the raw poster path fragment.
	PosterPath string `json:"poster_path"`

	// BackdropPath is the raw backdrop path fragment (may be empty).
	BackdropPath string `json:"backdrop_path"`

	// genreText is the lowercased ", "-joined genre list used for substring matching.
	genreText string
}

// HasGenre reports whether the item lists exactly the given genre name.
func (it *Item) HasGenre(name string) bool {
	for _, g := range it.Genres {
		if g == name {
			return true
		}
	}
	return false
}

// SharesGenre reports whether the two items have at least one genre in common.
func (it *Item) SharesGenre(other *Item) bool {
	for _, g := range it.Genres {
		if other.HasGenre(g) {
			return true
		}
	}
	return false
}

// GenreContains reports whether any part of the joined genre list contains
// sub, ignoring case.
func (it *Item) GenreContains(sub string) bool {
	if sub == "" {
		return true
	}
	text := it.genreText
	if text == "" && len(it.Genres) > 0 {
		text = strings.ToLower(JoinGenres(it.Genres))
	}
	return strings.Contains(text, strings.ToLower(sub))
}

// GenreString returns the genres joined with ", ".
func (it *Item) GenreString() string {
	return JoinGenres(it.Genres)
}

// JoinGenres joins genre names with ", ".
func JoinGenres(genres []string) string {
	return strings.Join(genres, ", ")
}
