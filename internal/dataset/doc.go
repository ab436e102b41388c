// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package dataset reads the movie metadata table into raw catalog rows.

Two readers are available:

  - CSVSource streams the file with encoding/csv.
  - DuckDBSource runs read_csv inside an in-memory DuckDB with every column
    typed as VARCHAR, which copes with ragged quoting in large exports.

Both resolve columns by header name, so column order and extra columns do
not matter. The id, title, overview and poster_path columns are required;
the remaining columns default to empty strings. Values are passed through
verbatim; cleaning happens in catalog.Prepare.
*/
package dataset
