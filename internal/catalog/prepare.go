// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PrepareOptions controls the cleaning pipeline.
type PrepareOptions struct {
	// MinVoteCount is the quality floor; rows need strictly more votes to be kept.
	MinVoteCount int `json:"min_vote_count"`

	// WorkingSetSize caps the number of items kept after sorting by vote count.
	// This bounds the similarity matrix, which grows quadratically.
	WorkingSetSize int `json:"working_set_size"`
}

// DefaultPrepareOptions returns the production cleaning defaults.
func DefaultPrepareOptions() PrepareOptions {
	return PrepareOptions{
		MinVoteCount:   50,
		WorkingSetSize: 20000,
	}
}

// PrepareStats summarizes what the cleaning pipeline kept and dropped.
type PrepareStats struct {
	Input          int `json:"input"`
	MissingFields  int `json:"missing_fields"`
	BelowVoteFloor int `json:"below_vote_floor"`
	Duplicates     int `json:"duplicates"`
	Truncated      int `json:"truncated"`
	Kept           int `json:"kept"`
}

// Prepare cleans raw rows into the working set. The returned slice order is
// the canonical positional index and Items[i].Index == i holds for every item.
// Malformed values are coerced to safe defaults instead of failing the row.
//
//nolint:gocritic // hugeParam: opts is small and read-only
func Prepare(rows []RawRow, opts PrepareOptions) ([]Item, PrepareStats) {
	if opts.WorkingSetSize <= 0 {
		opts.WorkingSetSize = DefaultPrepareOptions().WorkingSetSize
	}

	stats := PrepareStats{Input: len(rows)}
	items := make([]Item, 0, len(rows))

	for i := range rows {
		row := &rows[i]

		// Step 1: required fields
		id, ok := parseID(row.ID)
		if !ok || isMissing(row.Title) || isMissing(row.Overview) || isMissing(row.PosterPath) {
			stats.MissingFields++
			continue
		}

		// Step 2: numeric coercion
		votes := math.Max(coerceFloat(row.VoteCount), 0)
		voteAverage := clamp(coerceFloat(row.VoteAverage), 0, 10)

		// Step 3: quality floor, checked before truncating fractional counts
		if votes <= float64(opts.MinVoteCount) {
			stats.BelowVoteFloor++
			continue
		}
		// Rounding up keeps VoteCount above the floor for fractional counts.
		voteCount := int(math.Ceil(votes))

		// Steps 4 and 5: genres and year
		genres := NormalizeGenres(row.Genres)

		items = append(items, Item{
			ID:           id,
			Title:        strings.TrimSpace(row.Title),
			Year:         ParseYear(row.ReleaseDate),
			Overview:     strings.TrimSpace(row.Overview),
			Genres:       genres,
			VoteAverage:  voteAverage,
			VoteCount:    voteCount,
			Popularity:   math.Max(coerceFloat(row.Popularity), 0),
			PosterPath:   strings.TrimSpace(row.PosterPath),
			BackdropPath: cleanPath(row.BackdropPath),
			genreText:    strings.ToLower(JoinGenres(genres)),
		})
	}

	// Step 6: rank by vote count; stable so equal counts keep source order
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].VoteCount > items[j].VoteCount
	})

	seen := make(map[int]struct{}, len(items))
	kept := items[:0]
	for i := range items {
		if _, dup := seen[items[i].ID]; dup {
			stats.Duplicates++
			continue
		}
		seen[items[i].ID] = struct{}{}
		kept = append(kept, items[i])
	}

	if len(kept) > opts.WorkingSetSize {
		stats.Truncated = len(kept) - opts.WorkingSetSize
		kept = kept[:opts.WorkingSetSize]
	}

	for i := range kept {
		kept[i].Index = i
	}
	stats.Kept = len(kept)

	return kept, stats
}

// isMissing treats blank values and the literal "nan" as absent.
func isMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "nan")
}

// cleanPath returns an empty string for missing path fragments.
func cleanPath(s string) string {
	if isMissing(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

// parseID accepts integer ids and integral float ids such as "862.0".
func parseID(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return 0, false
	}
	if id, err := strconv.Atoi(s); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// coerceFloat parses a number, returning 0 for anything unparseable or non-finite.
func coerceFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// releaseDateLayouts are tried in order when deriving the release year.
var releaseDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"2006",
}

// ParseYear extracts the release year from a date string, returning 0 when
// the value cannot be parsed.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return 0
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year()
		}
	}
	return 0
}
