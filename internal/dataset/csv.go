// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// ctxCheckInterval is how many rows are read between cancellation checks.
const ctxCheckInterval = 1024

// CSVSource reads a comma-separated file with a header row.
type CSVSource struct {
	Path string
}

// Load reads every record. Rows with the wrong number of fields are kept;
// missing trailing values read as empty.
func (s *CSVSource) Load(ctx context.Context) ([]catalog.RawRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readCSV(ctx, f, s.Path)
}

func readCSV(ctx context.Context, r io.Reader, name string) ([]catalog.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header of %s: empty file", name)
		}
		return nil, fmt.Errorf("read header of %s: %w", name, err)
	}
	idx := headerIndex(header)
	if err := checkRequired(idx, name); err != nil {
		return nil, err
	}

	var rows []catalog.RawRow
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		rows = append(rows, rowFromRecord(rec, idx))
	}
	return rows, nil
}
