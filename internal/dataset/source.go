// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Column names read from the dataset header.
const (
	ColID           = "id"
	ColTitle        = "title"
	ColOverview     = "overview"
	ColPosterPath   = "poster_path"
	ColBackdropPath = "backdrop_path"
	ColGenres       = "genres"
	ColVoteCount    = "vote_count"
	ColVoteAverage  = "vote_average"
	ColReleaseDate  = "release_date"
	ColPopularity   = "popularity"
)

// RequiredColumns must be present in the header.
var RequiredColumns = []string{ColID, ColTitle, ColOverview, ColPosterPath}

// Reader names accepted by New.
const (
	ReaderCSV    = "csv"
	ReaderDuckDB = "duckdb"
)

var (
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnknownReader is returned by New for an unsupported reader name.
	ErrUnknownReader = errors.New("unknown dataset reader")
)

// Source loads every row of a dataset.
type Source interface {
	Load(ctx context.Context) ([]catalog.RawRow, error)
}

// New returns the Source for reader ("csv" or "duckdb") over path.
func New(reader, path string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(reader)) {
	case ReaderCSV, "":
		return &CSVSource{Path: path}, nil
	case ReaderDuckDB:
		return &DuckDBSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReader, reader)
	}
}

// headerIndex maps trimmed column names to their positions. A UTF-8 byte
// order mark on the first column is ignored.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		idx[strings.TrimSpace(col)] = i
	}
	return idx
}

func checkRequired(idx map[string]int, path string) error {
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return fmt.Errorf("%w %q in %s", ErrMissingColumn, col, path)
		}
	}
	return nil
}

// field returns the value of col in rec, or "" when absent.
func field(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func rowFromRecord(rec []string, idx map[string]int) catalog.RawRow {
	return catalog.RawRow{
		ID:           field(rec, idx, ColID),
		Title:        field(rec, idx, ColTitle),
		Overview:     field(rec, idx, ColOverview),
		PosterPath:   field(rec, idx, ColPosterPath),
		BackdropPath: field(rec, idx, ColBackdropPath),
		Genres:       field(rec, idx, ColGenres),
		VoteCount:    field(rec, idx, ColVoteCount),
		VoteAverage:  field(rec, idx, ColVoteAverage),
		ReleaseDate:  field(rec, idx, ColReleaseDate),
		Popularity:   field(rec, idx, ColPopularity),
	}
}
