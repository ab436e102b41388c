// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Catalog controls dataset preparation.
	Catalog CatalogConfig `json:"catalog"`

	// Index controls the similarity matrix build.
	Index IndexConfig `json:"index"`

	// Resolver controls title matching.
	Resolver ResolverConfig `json:"resolver"`

	// Limits caps candidate and result set sizes.
	Limits LimitsConfig `json:"limits"`

	// Filters holds filter defaults and thresholds.
	Filters FiltersConfig `json:"filters"`

	// Home describes the home feed sections.
	Home HomeConfig `json:"home"`

	// Display controls image URL construction.
	Display catalog.ImageConfig `json:"display"`

	// Cache contains query result caching parameters.
	Cache CacheConfig `json:"cache"`

	// Seed drives the home feed shuffle.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// CatalogConfig mirrors catalog.PrepareOptions.
type CatalogConfig struct {
	// MinVoteCount is the exclusive vote-count floor.
	// Default: 50.
	MinVoteCount int `json:"min_vote_count"`

	// WorkingSetSize is the number of most-voted items kept.
	// Default: 20000.
	WorkingSetSize int `json:"working_set_size"`
}

// IndexConfig controls textindex.Build.
type IndexConfig struct {
	// Workers is the build parallelism. Zero means GOMAXPROCS.
	Workers int `json:"workers"`
}

// ResolverConfig controls title normalization and scoring.
type ResolverConfig struct {
	// Strict strips everything except ASCII letters, digits and spaces
	// before matching.
	// Default: true.
	Strict bool `json:"strict"`

	// ExactMatchTier ranks exact title matches above prefix matches.
	// Default: true.
	ExactMatchTier bool `json:"exact_match_tier"`
}

// LimitsConfig caps candidate and result set sizes.
type LimitsConfig struct {
	// SimilarCandidates is the number of nearest overview neighbors considered.
	// Default: 30.
	SimilarCandidates int `json:"similar_candidates"`

	// TitleFamilyLimit is the number of extra title matches considered.
	// Default: 10.
	TitleFamilyLimit int `json:"title_family_limit"`

	// RecommendLimit is the number of recommendations returned.
	// Default: 12.
	RecommendLimit int `json:"recommend_limit"`

	// DiscoverLimit is the number of discover results returned.
	// Default: 21.
	DiscoverLimit int `json:"discover_limit"`

	// SearchLimit is the number of search suggestions returned.
	// Default: 5.
	SearchLimit int `json:"search_limit"`
}

// FiltersConfig holds filter defaults and thresholds.
type FiltersConfig struct {
	// DefaultMinYear is used when a query leaves the year unset.
	// Default: 1900.
	DefaultMinYear int `json:"default_min_year"`

	// HighRatingThreshold enables the popularity floor for discover queries
	// whose minimum rating exceeds it.
	// Default: 6.0.
	HighRatingThreshold float64 `json:"high_rating_threshold"`

	// PopularityFloor is the exclusive vote-count floor applied above
	// HighRatingThreshold.
	// Default: 30.
	PopularityFloor int `json:"popularity_floor"`

	// AnimationGenre is the genre name gated by the animation filter.
	// Default: "Animation".
	AnimationGenre string `json:"animation_genre"`

	// AllGenres is the discover genre value meaning no genre filter.
	// Default: "All".
	AllGenres string `json:"all_genres"`

	// GenreAliases maps user-facing genre labels to catalog substrings.
	// Keys match case-insensitively.
	GenreAliases map[string]string `json:"genre_aliases"`
}

// RankKey selects the ranking field of a home section.
type RankKey string

const (
	// RankByWeightedScore ranks by the Bayesian weighted rating.
	RankByWeightedScore RankKey = "weighted_score"

	// RankByPopularity ranks by the raw popularity figure.
	RankByPopularity RankKey = "popularity"
)

// SectionSpec describes one home feed section.
type SectionSpec struct {
	// Title is the display title; the section id is derived from it.
	Title string `json:"title"`

	// Genre restricts the section to items whose genres contain it.
	// Empty means every item.
	Genre string `json:"genre"`

	// RankBy is the ranking key.
	RankBy RankKey `json:"rank_by"`
}

// HomeConfig describes the home feed.
type HomeConfig struct {
	// SectionSize is the total items per section, split evenly between
	// modern and classic halves.
	// Default: 20.
	SectionSize int `json:"section_size"`

	// ModernYear is the first year counted as modern.
	// Default: 2020.
	ModernYear int `json:"modern_year"`

	// Sections lists the sections in display order.
	Sections []SectionSpec `json:"sections"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled controls whether query results are cached.
	// Default: true.
	Enabled bool `json:"enabled"`

	// Size is the maximum entries per query kind.
	// Default: 1024.
	Size int `json:"size"`

	// TTL is the cache entry time-to-live.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`
}

// DefaultSections returns the standard home feed layout.
func DefaultSections() []SectionSpec {
	return []SectionSpec{
		{Title: "Top Rated Gems", RankBy: RankByWeightedScore},
		{Title: "Romance & Drama", Genre: "Romance", RankBy: RankByWeightedScore},
		{Title: "Action & Adventure", Genre: "Action", RankBy: RankByWeightedScore},
		{Title: "Sci-Fi & Fantasy", Genre: "Science", RankBy: RankByWeightedScore},
		{Title: "Comedy Hits", Genre: "Comedy", RankBy: RankByWeightedScore},
		{Title: "Trending Now", RankBy: RankByPopularity},
	}
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	prep := catalog.DefaultPrepareOptions()
	return &Config{
		Catalog: CatalogConfig{
			MinVoteCount:   prep.MinVoteCount,
			WorkingSetSize: prep.WorkingSetSize,
		},
		Resolver: ResolverConfig{
			Strict:         true,
			ExactMatchTier: true,
		},
		Limits: LimitsConfig{
			SimilarCandidates: 30,
			TitleFamilyLimit:  10,
			RecommendLimit:    12,
			DiscoverLimit:     21,
			SearchLimit:       5,
		},
		Filters: FiltersConfig{
			DefaultMinYear:      1900,
			HighRatingThreshold: 6.0,
			PopularityFloor:     30,
			AnimationGenre:      "Animation",
			AllGenres:           "All",
			GenreAliases:        map[string]string{"Sci-Fi": "Science"},
		},
		Home: HomeConfig{
			SectionSize: 20,
			ModernYear:  2020,
			Sections:    DefaultSections(),
		},
		Display: catalog.DefaultImageConfig(),
		Cache: CacheConfig{
			Enabled: true,
			Size:    1024,
			TTL:     10 * time.Minute,
		},
		Seed: 42,
	}
}

// PrepareOptions converts the catalog section for catalog.Prepare.
func (c *Config) PrepareOptions() catalog.PrepareOptions {
	return catalog.PrepareOptions{
		MinVoteCount:   c.Catalog.MinVoteCount,
		WorkingSetSize: c.Catalog.WorkingSetSize,
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.Catalog.MinVoteCount < 0 {
		return fmt.Errorf("catalog.min_vote_count must be non-negative, got %d", c.Catalog.MinVoteCount)
	}
	if c.Catalog.WorkingSetSize < 1 {
		return fmt.Errorf("catalog.working_set_size must be positive, got %d", c.Catalog.WorkingSetSize)
	}
	if c.Index.Workers < 0 {
		return fmt.Errorf("index.workers must be non-negative, got %d", c.Index.Workers)
	}

	limits := []struct {
		name  string
		value int
	}{
		{"limits.similar_candidates", c.Limits.SimilarCandidates},
		{"limits.recommend_limit", c.Limits.RecommendLimit},
		{"limits.discover_limit", c.Limits.DiscoverLimit},
		{"limits.search_limit", c.Limits.SearchLimit},
	}
	for _, l := range limits {
		if l.value < 1 {
			return fmt.Errorf("%s must be positive, got %d", l.name, l.value)
		}
	}
	if c.Limits.TitleFamilyLimit < 0 {
		return fmt.Errorf("limits.title_family_limit must be non-negative, got %d", c.Limits.TitleFamilyLimit)
	}

	if c.Filters.HighRatingThreshold < 0 || c.Filters.HighRatingThreshold > 10 {
		return fmt.Errorf("filters.high_rating_threshold must be in [0, 10], got %f", c.Filters.HighRatingThreshold)
	}
	if c.Filters.PopularityFloor < 0 {
		return fmt.Errorf("filters.popularity_floor must be non-negative, got %d", c.Filters.PopularityFloor)
	}

	if c.Home.SectionSize < 2 {
		return fmt.Errorf("home.section_size must be at least 2, got %d", c.Home.SectionSize)
	}
	seen := make(map[string]struct{}, len(c.Home.Sections))
	for i, s := range c.Home.Sections {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("home.sections[%d].title is required", i)
		}
		if s.RankBy != RankByWeightedScore && s.RankBy != RankByPopularity {
			return fmt.Errorf("home.sections[%d].rank_by must be %q or %q, got %q",
				i, RankByWeightedScore, RankByPopularity, s.RankBy)
		}
		id := sectionID(s.Title)
		if _, dup := seen[id]; dup {
			return fmt.Errorf("home.sections[%d] duplicates section id %q", i, id)
		}
		seen[id] = struct{}{}
	}

	if c.Display.PosterBaseURL == "" || c.Display.BackdropBaseURL == "" {
		return fmt.Errorf("display base URLs are required")
	}

	if c.Cache.Enabled && c.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be positive when caching is enabled, got %d", c.Cache.Size)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c

	if c.Filters.GenreAliases != nil {
		clone.Filters.GenreAliases = make(map[string]string, len(c.Filters.GenreAliases))
		for k, v := range c.Filters.GenreAliases {
			clone.Filters.GenreAliases[k] = v
		}
	}
	if c.Home.Sections != nil {
		clone.Home.Sections = append([]SectionSpec(nil), c.Home.Sections...)
	}
	return &clone
}

// sectionID derives a stable identifier from a section title.
func sectionID(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "_")
}
