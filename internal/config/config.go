// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
	Data      DataConfig      `koanf:"data"`
	Index     IndexConfig     `koanf:"index"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging" or "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level"`

	// Format is json or console. JSON is recommended for production.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// SecurityConfig holds CORS and rate limit settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DataConfig locates the movie dataset and controls catalog preparation.
//
// Environment Variables:
//   - DATA_PATH: path to the metadata CSV
//   - DATA_READER: csv or duckdb (default: csv)
//   - DATA_WORKING_SET_SIZE: rows kept after cleaning (default: 20000)
//   - DATA_MIN_VOTE_COUNT: vote floor, exclusive (default: 50)
type DataConfig struct {
	Path           string `koanf:"path"`
	Reader         string `koanf:"reader"`
	WorkingSetSize int    `koanf:"working_set_size"`
	MinVoteCount   int    `koanf:"min_vote_count"`
}

// IndexConfig controls the similarity index build.
type IndexConfig struct {
	// Workers is the build parallelism. 0 means runtime.NumCPU().
	Workers int `koanf:"workers"`
}

// RecommendConfig holds query limits, display and cache settings.
type RecommendConfig struct {
	SimilarCandidates int `koanf:"similar_candidates"`
	TitleFamilyLimit  int `koanf:"title_family_limit"`
	RecommendLimit    int `koanf:"recommend_limit"`
	DiscoverLimit     int `koanf:"discover_limit"`
	SearchLimit       int `koanf:"search_limit"`

	HomeSectionSize int `koanf:"home_section_size"`
	ModernYear      int `koanf:"modern_year"`

	HighRatingThreshold float64 `koanf:"high_rating_threshold"`
	PopularityFloor     int     `koanf:"popularity_floor"`

	PosterBaseURL   string `koanf:"poster_base_url"`
	BackdropBaseURL string `koanf:"backdrop_base_url"`
	PlaceholderURL  string `koanf:"placeholder_url"`

	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheSize    int           `koanf:"cache_size"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`

	// Seed drives the home shuffle. 0 means the engine default.
	Seed int64 `koanf:"seed"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// EngineConfig maps the data, index and recommend sections onto the engine
// configuration. Settings without a config key keep the engine defaults.
func (c *Config) EngineConfig() *recommend.Config {
	ec := recommend.DefaultConfig()

	ec.Catalog.MinVoteCount = c.Data.MinVoteCount
	ec.Catalog.WorkingSetSize = c.Data.WorkingSetSize
	ec.Index.Workers = c.Index.Workers

	r := c.Recommend
	ec.Limits = recommend.LimitsConfig{
		SimilarCandidates: r.SimilarCandidates,
		TitleFamilyLimit:  r.TitleFamilyLimit,
		RecommendLimit:    r.RecommendLimit,
		DiscoverLimit:     r.DiscoverLimit,
		SearchLimit:       r.SearchLimit,
	}
	ec.Home.SectionSize = r.HomeSectionSize
	ec.Home.ModernYear = r.ModernYear
	ec.Filters.HighRatingThreshold = r.HighRatingThreshold
	ec.Filters.PopularityFloor = r.PopularityFloor
	ec.Display = catalog.ImageConfig{
		PosterBaseURL:   r.PosterBaseURL,
		BackdropBaseURL: r.BackdropBaseURL,
		PlaceholderURL:  r.PlaceholderURL,
	}
	ec.Cache = recommend.CacheConfig{
		Enabled: r.CacheEnabled,
		Size:    r.CacheSize,
		TTL:     r.CacheTTL,
	}
	if r.Seed != 0 {
		ec.Seed = r.Seed
	}
	return ec
}

// String summarizes the configuration for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s env=%s data=%s(%s) working_set=%d min_votes=%d cache=%t",
		c.Server.Addr(), c.Server.Environment, c.Data.Path, c.Data.Reader,
		c.Data.WorkingSetSize, c.Data.MinVoteCount, c.Recommend.CacheEnabled)
}

// Load reads configuration with the following precedence (highest last):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
