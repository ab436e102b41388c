// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Home returns every configured section. Section contents are fixed at load
// time; each call returns a freshly shuffled copy.
func (e *Engine) Home(ctx context.Context) ([]Section, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	sections := make([]Section, len(snap.sections))
	for i, rs := range snap.sections {
		items := make([]catalog.DisplayItem, len(rs.items))
		copy(items, rs.items)
		e.shuffle(items)
		sections[i] = Section{ID: rs.id, Title: rs.title, Items: items}
	}
	return sections, nil
}

func (e *Engine) shuffle(items []catalog.DisplayItem) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Search returns up to SearchLimit title suggestions. A blank query yields
// an empty result.
func (e *Engine) Search(ctx context.Context, query string) ([]SearchResult, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	key := snap.Resolver.Normalize(strings.TrimSpace(query))
	if res, ok := cached(e, e.searchCache, key); ok {
		return res, nil
	}

	matches := snap.Resolver.Resolve(query)
	if len(matches) > e.config.Limits.SearchLimit {
		matches = matches[:e.config.Limits.SearchLimit]
	}
	results := make([]SearchResult, len(matches))
	for k, i := range matches {
		it := snap.Item(i)
		results[k] = SearchResult{Title: it.Title, Year: it.Year}
	}

	store(e.searchCache, key, results)
	return results, nil
}

// normalizeGenre maps the discover genre parameter to a catalog substring.
// Blank and the "all" value mean no filter; aliases match case-insensitively.
func (e *Engine) normalizeGenre(genre string) string {
	genre = strings.TrimSpace(genre)
	if genre == "" || strings.EqualFold(genre, e.config.Filters.AllGenres) {
		return ""
	}
	for alias, target := range e.config.Filters.GenreAliases {
		if strings.EqualFold(genre, alias) {
			return target
		}
	}
	return genre
}

// DiscoverPipeline returns the discover stages for q.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) DiscoverPipeline(q DiscoverQuery) Pipeline {
	f := e.config.Filters
	return Pipeline{
		MinYear(q.MinYear),
		MinRating(q.MinRating),
		PopularityFloor(q.MinRating, f.HighRatingThreshold, f.PopularityFloor),
		GenreMatch(e.normalizeGenre(q.Genre)),
	}
}

// Discover filters the catalog and returns up to DiscoverLimit items ranked
// by weighted score.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Discover(ctx context.Context, q DiscoverQuery) ([]catalog.DisplayItem, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%d|%g", strings.ToLower(e.normalizeGenre(q.Genre)), q.MinYear, q.MinRating)
	if res, ok := cached(e, e.discoverCache, key); ok {
		return res, nil
	}

	survivors, dropped := e.DiscoverPipeline(q).Apply(snap.all())
	ranked := rankItems(survivors, RankByWeightedScore, e.config.Limits.DiscoverLimit)

	e.logger.Debug().
		Str("genre", q.Genre).
		Int("min_year", q.MinYear).
		Float64("min_rating", q.MinRating).
		Interface("dropped", dropped).
		Int("matched", len(survivors)).
		Msg("discover")

	results := e.config.Display.DisplayAll(ranked)
	store(e.discoverCache, key, results)
	return results, nil
}

// RecommendPipeline returns the recommend stages for source and q.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) RecommendPipeline(source *catalog.Item, q RecommendQuery) Pipeline {
	return Pipeline{
		ExcludeID(source.ID),
		MinYear(q.MinYear),
		MinRating(q.MinRating),
		AnimationGate(source, e.config.Filters.AnimationGenre),
		GenreOverlap(source),
	}
}

// Recommend resolves q.Title and returns movies with similar overviews or
// titles that pass the recommend pipeline, ranked by weighted score. The
// result is shared with the cache and must not be modified.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, q RecommendQuery) (*RecommendResult, error) {
	snap, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s|%d|%g", strings.TrimSpace(snap.Resolver.Normalize(q.Title)), q.MinYear, q.MinRating)
	if res, ok := cached(e, e.recommendCache, key); ok {
		return res, nil
	}

	matches := snap.Resolver.Resolve(q.Title)
	if len(matches) == 0 {
		e.notFoundCount.Add(1)
		return nil, fmt.Errorf("%w: %q", ErrNotFound, q.Title)
	}
	source := snap.Item(matches[0])

	candidates := e.gatherCandidates(snap, source, matches[1:])
	survivors, dropped := e.RecommendPipeline(source, q).Apply(candidates)
	ranked := rankItems(survivors, RankByWeightedScore, e.config.Limits.RecommendLimit)

	e.logger.Debug().
		Str("title", q.Title).
		Int("source_id", source.ID).
		Int("candidates", len(candidates)).
		Interface("dropped", dropped).
		Int("returned", len(ranked)).
		Msg("recommend")

	result := &RecommendResult{
		Source:          e.config.Display.Display(source),
		Recommendations: e.config.Display.DisplayAll(ranked),
	}
	store(e.recommendCache, key, result)
	return result, nil
}

// gatherCandidates unions the nearest overview neighbors of source with the
// other title matches, deduplicated by id with the first occurrence kept.
func (e *Engine) gatherCandidates(snap *Snapshot, source *catalog.Item, family []int) []*catalog.Item {
	lim := e.config.Limits
	if len(family) > lim.TitleFamilyLimit {
		family = family[:lim.TitleFamilyLimit]
	}

	neighbors := snap.Index.TopNeighbors(source.Index, lim.SimilarCandidates)
	out := make([]*catalog.Item, 0, len(neighbors)+len(family))
	seen := make(map[int]struct{}, cap(out))

	add := func(i int) {
		it := snap.Item(i)
		if _, dup := seen[it.ID]; dup {
			return
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	for _, nb := range neighbors {
		add(nb.Index)
	}
	for _, i := range family {
		add(i)
	}
	return out
}
