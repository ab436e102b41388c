// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// duckDBDSN opens a throwaway in-memory database. read_csv is built in, so
// extension auto-loading stays off.
const duckDBDSN = ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false"

// DuckDBSource reads a CSV file through DuckDB's read_csv table function.
type DuckDBSource struct {
	Path string
}

// Load scans every row with all columns as VARCHAR.
func (s *DuckDBSource) Load(ctx context.Context) ([]catalog.RawRow, error) {
	// read_csv reports a missing file as a generic IO error; check first for
	// a clearer message.
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	db, err := sql.Open("duckdb", duckDBDSN)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf("SELECT * FROM read_csv(%s, header = true, all_varchar = true)", quoteLiteral(s.Path))
	start := time.Now()
	rs, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("read_csv", "movies_metadata", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("read_csv %s: %w", s.Path, err)
	}
	defer func() { _ = rs.Close() }()

	cols, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	idx := headerIndex(cols)
	if err := checkRequired(idx, s.Path); err != nil {
		return nil, err
	}

	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	rec := make([]string, len(cols))

	var rows []catalog.RawRow
	for rs.Next() {
		if err := rs.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(rows)+1, err)
		}
		for i, v := range values {
			rec[i] = v.String // NULL reads as ""
		}
		rows = append(rows, rowFromRecord(rec, idx))
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return rows, nil
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
