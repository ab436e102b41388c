// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"math"
	"sort"
)

// ScoreQuantile is the vote-count percentile used as the prior weight m.
const ScoreQuantile = 0.8

// ScoreParams are the global constants of the weighted rating.
type ScoreParams struct {
	// C is the mean vote average across the working set.
	C float64 `json:"c"`

	// M is the 80th percentile of vote counts across the working set.
	M float64 `json:"m"`
}

// ApplyWeightedScores computes C and m over items and sets WeightedScore on
// every item. An empty slice yields zero parameters.
func ApplyWeightedScores(items []Item) ScoreParams {
	if len(items) == 0 {
		return ScoreParams{}
	}

	var sum float64
	counts := make([]float64, len(items))
	for i := range items {
		sum += items[i].VoteAverage
		counts[i] = float64(items[i].VoteCount)
	}

	params := ScoreParams{
		C: sum / float64(len(items)),
		M: Quantile(counts, ScoreQuantile),
	}

	for i := range items {
		items[i].WeightedScore = WeightedRating(items[i].VoteCount, items[i].VoteAverage, params.M, params.C)
	}
	return params
}

// WeightedRating is the Bayesian shrinkage estimator
//
//	v/(v+m)*R + m/(v+m)*C
//
// Items with few votes are pulled toward C. When v+m is zero the result is C.
func WeightedRating(v int, r, m, c float64) float64 {
	vf := float64(v)
	if vf+m == 0 {
		return c
	}
	return vf/(vf+m)*r + m/(vf+m)*c
}

// Quantile returns the q-th quantile of values using linear interpolation
// between closest ranks. values is not modified.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q = clamp(q, 0, 1)
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
