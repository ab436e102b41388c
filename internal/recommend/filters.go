// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"sort"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Stage names reported in pipeline drop counts.
const (
	StageExcludeSource   = "exclude-source"
	StageMinYear         = "min-year"
	StageMinRating       = "min-rating"
	StageAnimationGate   = "animation-gate"
	StageGenreOverlap    = "genre-overlap"
	StagePopularityFloor = "popularity-floor"
	StageGenre           = "genre"
)

// Stage is a named predicate; items for which Keep returns false are dropped.
type Stage struct {
	Name string
	Keep func(it *catalog.Item) bool
}

// Pipeline is an ordered list of stages, AND-ed together.
type Pipeline []Stage

// Apply returns the items that pass every stage, in input order, and how
// many items each stage dropped.
func (p Pipeline) Apply(items []*catalog.Item) ([]*catalog.Item, map[string]int) {
	dropped := make(map[string]int, len(p))
	out := make([]*catalog.Item, 0, len(items))

next:
	for _, it := range items {
		for _, s := range p {
			if !s.Keep(it) {
				dropped[s.Name]++
				continue next
			}
		}
		out = append(out, it)
	}
	return out, dropped
}

// ExcludeID drops the item with the given id.
func ExcludeID(id int) Stage {
	return Stage{Name: StageExcludeSource, Keep: func(it *catalog.Item) bool {
		return it.ID != id
	}}
}

// MinYear keeps items released in or after year. Unknown years (0) pass
// only when year <= 0.
func MinYear(year int) Stage {
	return Stage{Name: StageMinYear, Keep: func(it *catalog.Item) bool {
		return it.Year >= year
	}}
}

// MinRating keeps items whose vote average is at least rating.
func MinRating(rating float64) Stage {
	return Stage{Name: StageMinRating, Keep: func(it *catalog.Item) bool {
		return it.VoteAverage >= rating
	}}
}

// AnimationGate drops animated candidates unless the source is animated.
func AnimationGate(source *catalog.Item, animation string) Stage {
	sourceAnimated := source.HasGenre(animation)
	return Stage{Name: StageAnimationGate, Keep: func(it *catalog.Item) bool {
		return sourceAnimated || !it.HasGenre(animation)
	}}
}

// GenreOverlap keeps candidates sharing at least one genre with source.
func GenreOverlap(source *catalog.Item) Stage {
	return Stage{Name: StageGenreOverlap, Keep: func(it *catalog.Item) bool {
		return it.SharesGenre(source)
	}}
}

// PopularityFloor requires more than floor votes when minRating exceeds
// threshold, and keeps everything otherwise.
func PopularityFloor(minRating, threshold float64, floor int) Stage {
	active := minRating > threshold
	return Stage{Name: StagePopularityFloor, Keep: func(it *catalog.Item) bool {
		return !active || it.VoteCount > floor
	}}
}

// GenreMatch keeps items whose joined genre list contains genre, ignoring
// case. An empty genre keeps everything.
func GenreMatch(genre string) Stage {
	return Stage{Name: StageGenre, Keep: func(it *catalog.Item) bool {
		return it.GenreContains(genre)
	}}
}

// rankValue returns the ranking field selected by key.
func rankValue(it *catalog.Item, key RankKey) float64 {
	if key == RankByPopularity {
		return it.Popularity
	}
	return it.WeightedScore
}

// rankItems sorts items by key descending, keeping input order among ties,
// and truncates to limit. A non-positive limit keeps everything.
func rankItems(items []*catalog.Item, key RankKey, limit int) []*catalog.Item {
	sort.SliceStable(items, func(i, j int) bool {
		return rankValue(items[i], key) > rankValue(items[j], key)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
