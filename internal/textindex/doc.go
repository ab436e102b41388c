// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package textindex builds a dense cosine-similarity matrix over a fixed set of
short documents (movie overviews).

# Pipeline

  - Tokenize: lowercase, split on anything that is not a letter, digit or
    underscore, keep tokens of two or more characters, drop English stop words.
  - Vectorize: raw term counts weighted by smoothed IDF, L2-normalized.
  - Build: for each row i, an inverted index accumulates dot products with
    every j > i; the value is mirrored into (j, i).

Because vectors are unit length, the dot product is the cosine similarity.
Entries are clamped to 1 so float rounding never exceeds the diagonal.

# Usage

	idx, err := textindex.Build(ctx, overviews, textindex.BuildOptions{Workers: 4})
	if err != nil {
	    return err
	}
	for _, nb := range idx.TopNeighbors(i, 30) {
	    fmt.Println(nb.Index, nb.Score)
	}

# Thread Safety

Build parallelizes across rows with an errgroup. The returned Index is
read-only and may be shared by any number of goroutines.
*/
package textindex
