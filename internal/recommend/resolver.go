// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Match tiers, highest first.
const (
	scoreExact     = 3
	scorePrefix    = 2
	scoreSubstring = 1
)

// Resolver maps free-text queries to catalog positions by substring match
// over normalized titles. It is immutable and safe for concurrent use.
type Resolver struct {
	items      []catalog.Item
	normalized []string
	strict     bool
	exactTier  bool
}

// NewResolver precomputes normalized titles for items.
func NewResolver(items []catalog.Item, cfg ResolverConfig) *Resolver {
	r := &Resolver{
		items:      items,
		normalized: make([]string, len(items)),
		strict:     cfg.Strict,
		exactTier:  cfg.ExactMatchTier,
	}
	for i := range items {
		r.normalized[i] = r.Normalize(items[i].Title)
	}
	return r
}

// Normalize lowercases s. In strict mode every character other than an
// ASCII letter, digit or space is removed first.
func (r *Resolver) Normalize(s string) string {
	if !r.strict {
		return strings.ToLower(s)
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == ' ':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

type titleMatch struct {
	index int
	score int
}

// Resolve returns the positions of every title containing query, best first:
// tier descending, then vote count descending, then position ascending.
// A query that is blank after normalization matches nothing.
func (r *Resolver) Resolve(query string) []int {
	q := strings.TrimSpace(r.Normalize(query))
	if q == "" {
		return []int{}
	}

	matches := make([]titleMatch, 0, 16)
	for i, title := range r.normalized {
		if !strings.Contains(title, q) {
			continue
		}
		score := scoreSubstring
		switch {
		case r.exactTier && title == q:
			score = scoreExact
		case strings.HasPrefix(title, q):
			score = scorePrefix
		}
		matches = append(matches, titleMatch{index: i, score: score})
	}

	sort.Slice(matches, func(a, b int) bool {
		ma, mb := matches[a], matches[b]
		if ma.score != mb.score {
			return ma.score > mb.score
		}
		va, vb := r.items[ma.index].VoteCount, r.items[mb.index].VoteCount
		if va != vb {
			return va > vb
		}
		return ma.index < mb.index
	})

	out := make([]int, len(matches))
	for k, m := range matches {
		out[k] = m.index
	}
	return out
}

// Best returns the top match for query or ErrNotFound.
func (r *Resolver) Best(query string) (int, error) {
	matches := r.Resolve(query)
	if len(matches) == 0 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	return matches[0], nil
}
