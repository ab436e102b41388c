// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package textindex

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// minTokenRunes is the shortest token kept by Tokenize.
const minTokenRunes = 2

// Tokenize lowercases text and splits it into runs of letters, digits and
// underscores at least two characters long, dropping stop words.
func Tokenize(text string, stop StopWords) []string {
	var tokens []string
	var b strings.Builder
	runes := 0

	flush := func() {
		if runes >= minTokenRunes {
			tok := b.String()
			if !stop.Contains(tok) {
				tokens = append(tokens, tok)
			}
		}
		b.Reset()
		runes = 0
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
			runes++
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// Vector is a sparse, L2-normalized TF-IDF vector. Terms are sorted ascending.
type Vector struct {
	Terms   []int32
	Weights []float32
}

// IsZero reports whether the vector has no terms.
func (v Vector) IsZero() bool {
	return len(v.Terms) == 0
}

// Dot returns the inner product of two sparse vectors.
func (v Vector) Dot(o Vector) float32 {
	var sum float32
	i, j := 0, 0
	for i < len(v.Terms) && j < len(o.Terms) {
		switch {
		case v.Terms[i] == o.Terms[j]:
			sum += v.Weights[i] * o.Weights[j]
			i++
			j++
		case v.Terms[i] < o.Terms[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Vocabulary maps terms to column ids and holds their IDF weights.
type Vocabulary struct {
	ids map[string]int32
	idf []float64
}

// Size returns the number of distinct terms.
func (v *Vocabulary) Size() int {
	return len(v.idf)
}

// IDF returns the inverse document frequency of term and whether it is known.
func (v *Vocabulary) IDF(term string) (float64, bool) {
	id, ok := v.ids[term]
	if !ok {
		return 0, false
	}
	return v.idf[id], true
}

// Vectorize fits a vocabulary over docs and returns one vector per document.
// Term weights are raw counts times the smoothed IDF
//
//	idf(t) = ln((1+n)/(1+df(t))) + 1
//
// and each vector is scaled to unit length. Documents with no terms after
// tokenization produce zero vectors.
func Vectorize(docs []string, stop StopWords) (*Vocabulary, []Vector) {
	vocab := &Vocabulary{ids: make(map[string]int32)}
	counts := make([]map[int32]int, len(docs))
	var df []int

	for d, doc := range docs {
		tf := make(map[int32]int)
		for _, tok := range Tokenize(doc, stop) {
			id, ok := vocab.ids[tok]
			if !ok {
				id = int32(len(df))
				vocab.ids[tok] = id
				df = append(df, 0)
			}
			if tf[id] == 0 {
				df[id]++
			}
			tf[id]++
		}
		counts[d] = tf
	}

	n := float64(len(docs))
	vocab.idf = make([]float64, len(df))
	for id, f := range df {
		vocab.idf[id] = math.Log((1+n)/(1+float64(f))) + 1
	}

	vectors := make([]Vector, len(docs))
	for d, tf := range counts {
		vectors[d] = weigh(tf, vocab.idf)
	}
	return vocab, vectors
}

// weigh builds the normalized sparse vector for one document's term counts.
func weigh(tf map[int32]int, idf []float64) Vector {
	if len(tf) == 0 {
		return Vector{}
	}

	terms := make([]int32, 0, len(tf))
	for id := range tf {
		terms = append(terms, id)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })

	raw := make([]float64, len(terms))
	var norm float64
	for i, id := range terms {
		w := float64(tf[id]) * idf[id]
		raw[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)

	weights := make([]float32, len(terms))
	for i, w := range raw {
		weights[i] = float32(w / norm)
	}
	return Vector{Terms: terms, Weights: weights}
}
