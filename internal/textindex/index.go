// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package textindex

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// MaxDocuments bounds the dense matrix (MaxDocuments² float32 entries).
const MaxDocuments = 40000

// ErrTooManyDocuments is returned when the corpus exceeds MaxDocuments.
var ErrTooManyDocuments = errors.New("textindex: too many documents for a dense similarity matrix")

// BuildOptions configures Build.
type BuildOptions struct {
	// Workers is the number of goroutines computing matrix rows.
	// Zero means GOMAXPROCS.
	Workers int

	// StopWords overrides the stop-word set. Nil means English.
	StopWords StopWords
}

// BuildStats describes a finished build.
type BuildStats struct {
	Documents      int           `json:"documents"`
	Vocabulary     int           `json:"vocabulary"`
	EmptyDocuments int           `json:"empty_documents"`
	Workers        int           `json:"workers"`
	Duration       time.Duration `json:"duration"`
}

// Neighbor is one entry of a similarity row.
type Neighbor struct {
	Index int     `json:"index"`
	Score float32 `json:"score"`
}

// Index is a dense, symmetric cosine-similarity matrix over a fixed document
// set. Entry (i, j) is in [0, 1]; the diagonal is 1 for documents with at
// least one term and 0 for empty documents. An Index is immutable after Build
// and safe for concurrent reads.
type Index struct {
	n     int
	sim   []float32
	stats BuildStats
}

// posting is one (document, weight) entry of a term's inverted list.
type posting struct {
	doc    int32
	weight float32
}

// Build vectorizes docs and computes the full pairwise similarity matrix.
// Rows are distributed across workers; each unordered pair is computed once
// and written to both halves so the matrix is exactly symmetric. Canceling
// ctx aborts the build.
//
//nolint:gocritic // hugeParam: opts is read once
func Build(ctx context.Context, docs []string, opts BuildOptions) (*Index, error) {
	start := time.Now()

	if len(docs) > MaxDocuments {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyDocuments, len(docs), MaxDocuments)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.StopWords == nil {
		opts.StopWords = EnglishStopWords()
	}

	vocab, vectors := Vectorize(docs, opts.StopWords)
	n := len(vectors)
	workers := opts.Workers
	if workers > n && n > 0 {
		workers = n
	}

	idx := &Index{n: n, sim: make([]float32, n*n)}
	postings := invert(vectors, vocab.Size())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for w := 0; w < workers; w++ {
		first := w
		g.Go(func() error {
			acc := make([]float32, n)
			touched := make([]int32, 0, 256)
			// Interleaved rows balance the triangular workload.
			for i := first; i < n; i += workers {
				if err := gctx.Err(); err != nil {
					return err
				}
				touched = idx.fillRow(i, vectors[i], postings, acc, touched[:0])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build similarity matrix: %w", err)
	}

	empty := 0
	for i := range vectors {
		if vectors[i].IsZero() {
			empty++
			continue
		}
		idx.sim[i*n+i] = 1
	}

	idx.stats = BuildStats{
		Documents:      n,
		Vocabulary:     vocab.Size(),
		EmptyDocuments: empty,
		Workers:        workers,
		Duration:       time.Since(start),
	}
	return idx, nil
}

// invert builds per-term posting lists, each sorted by document.
func invert(vectors []Vector, vocabSize int) [][]posting {
	postings := make([][]posting, vocabSize)
	for d, v := range vectors {
		for k, term := range v.Terms {
			postings[term] = append(postings[term], posting{doc: int32(d), weight: v.Weights[k]})
		}
	}
	return postings
}

// fillRow computes similarities between document i and every document j > i,
// writing (i, j) and (j, i). acc must be all zeros on entry and is left all
// zeros on return.
func (x *Index) fillRow(i int, v Vector, postings [][]posting, acc []float32, touched []int32) []int32 {
	for k, term := range v.Terms {
		list := postings[term]
		from := sort.Search(len(list), func(p int) bool { return int(list[p].doc) > i })
		w := v.Weights[k]
		for _, p := range list[from:] {
			if acc[p.doc] == 0 {
				touched = append(touched, p.doc)
			}
			acc[p.doc] += w * p.weight
		}
	}

	for _, j := range touched {
		s := acc[j]
		if s > 1 {
			s = 1
		}
		x.sim[i*x.n+int(j)] = s
		x.sim[int(j)*x.n+i] = s
		acc[j] = 0
	}
	return touched
}

// Dim returns the matrix dimension (number of documents).
func (x *Index) Dim() int {
	return x.n
}

// Stats returns build statistics.
func (x *Index) Stats() BuildStats {
	return x.stats
}

// Similarity returns entry (i, j), or 0 when either index is out of range.
func (x *Index) Similarity(i, j int) float32 {
	if !x.inRange(i) || !x.inRange(j) {
		return 0
	}
	return x.sim[i*x.n+j]
}

// Row returns a read-only view of row i, or nil when i is out of range.
func (x *Index) Row(i int) []float32 {
	if !x.inRange(i) {
		return nil
	}
	return x.sim[i*x.n : (i+1)*x.n : (i+1)*x.n]
}

// SimilarityRow returns every other document ordered by score descending,
// ties broken by index ascending.
func (x *Index) SimilarityRow(i int) []Neighbor {
	row := x.Row(i)
	if row == nil {
		return nil
	}
	out := make([]Neighbor, 0, x.n-1)
	for j, s := range row {
		if j != i {
			out = append(out, Neighbor{Index: j, Score: s})
		}
	}
	sort.Slice(out, func(a, b int) bool { return ranksAbove(out[a], out[b]) })
	return out
}

// TopNeighbors returns the k best entries of SimilarityRow(i) without sorting
// the whole row.
func (x *Index) TopNeighbors(i, k int) []Neighbor {
	row := x.Row(i)
	if row == nil || k <= 0 {
		return nil
	}
	top := newTopK(k)
	for j, s := range row {
		if j != i {
			top.offer(Neighbor{Index: j, Score: s})
		}
	}
	return top.sorted()
}

func (x *Index) inRange(i int) bool {
	return i >= 0 && i < x.n
}

// ranksAbove is the neighbor order: higher score first, then lower index.
func ranksAbove(a, b Neighbor) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}
