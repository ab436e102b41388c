// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"math"
	"strings"
)

// Display defaults.
const (
	DefaultPosterBaseURL   = "https://image.tmdb.org/t/p/w500"
	DefaultBackdropBaseURL = "https://image.tmdb.org/t/p/original"
	DefaultPlaceholderURL  = "https://via.placeholder.com/500x750?text=No+Image"
	DefaultDescription     = "No description available for this movie."

	// MaxDisplayGenres is the number of genres surfaced per item.
	MaxDisplayGenres = 3
)

// DisplayItem is the response shape for a single movie.
type DisplayItem struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Year        int      `json:"year"`
	Rating      float64  `json:"rating"`
	PosterURL   string   `json:"poster_url"`
	BackdropURL string   `json:"backdrop_url"`
	Genres      []string `json:"genres"`
	Description string   `json:"description"`
}

// ImageConfig controls how image path fragments become display URLs.
type ImageConfig struct {
	PosterBaseURL   string `json:"poster_base_url"`
	BackdropBaseURL string `json:"backdrop_base_url"`
	PlaceholderURL  string `json:"placeholder_url"`
}

// DefaultImageConfig returns the TMDB image endpoints.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		PosterBaseURL:   DefaultPosterBaseURL,
		BackdropBaseURL: DefaultBackdropBaseURL,
		PlaceholderURL:  DefaultPlaceholderURL,
	}
}

// Display formats an item for API responses.
//
//nolint:gocritic // hugeParam: value receiver keeps ImageConfig immutable
func (c ImageConfig) Display(it *Item) DisplayItem {
	poster := c.PlaceholderURL
	if p := cleanPath(it.PosterPath); p != "" {
		poster = joinImageURL(c.PosterBaseURL, p)
	}

	backdrop := poster
	if b := cleanPath(it.BackdropPath); b != "" {
		backdrop = joinImageURL(c.BackdropBaseURL, b)
	}

	description := strings.TrimSpace(it.Overview)
	if isMissing(description) {
		description = DefaultDescription
	}

	n := len(it.Genres)
	if n > MaxDisplayGenres {
		n = MaxDisplayGenres
	}
	genres := make([]string, n)
	copy(genres, it.Genres[:n])

	return DisplayItem{
		ID:          it.ID,
		Title:       it.Title,
		Year:        it.Year,
		Rating:      math.Round(it.VoteAverage*10) / 10,
		PosterURL:   poster,
		BackdropURL: backdrop,
		Genres:      genres,
		Description: description,
	}
}

// DisplayAll formats a list of items, always returning a non-nil slice.
//
//nolint:gocritic // hugeParam: value receiver keeps ImageConfig immutable
func (c ImageConfig) DisplayAll(items []*Item) []DisplayItem {
	out := make([]DisplayItem, 0, len(items))
	for _, it := range items {
		out = append(out, c.Display(it))
	}
	return out
}

// joinImageURL joins a base URL and a path fragment with exactly one slash.
func joinImageURL(base, path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + path
}
