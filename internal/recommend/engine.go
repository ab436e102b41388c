// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/catalog"
)

// State is the engine's load state: either Unloaded or Ready.
type State interface {
	isState()
}

// Unloaded means no snapshot is available. Reason is nil before the first
// load attempt.
type Unloaded struct {
	Reason error
}

// Ready carries the published snapshot.
type Ready struct {
	Snapshot *Snapshot
}

func (Unloaded) isState() {}
func (Ready) isState()    {}

// stateBox lets an interface value sit behind an atomic.Pointer.
type stateBox struct {
	state State
}

// Engine serves home, search, discover and recommend queries over a
// snapshot loaded once at startup. It is safe for concurrent use.
type Engine struct {
	// Configuration
	config *Config
	logger zerolog.Logger

	// Load state; loadMu serializes Load attempts only
	state  atomic.Pointer[stateBox]
	loadMu sync.Mutex

	// Per-query caches, nil when caching is disabled
	recommendCache *cache.LRU[*RecommendResult]
	discoverCache  *cache.LRU[[]catalog.DisplayItem]
	searchCache    *cache.LRU[[]SearchResult]

	// Metrics
	requestCount     atomic.Int64
	notFoundCount    atomic.Int64
	unavailableCount atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64

	// Random source for the home shuffle (protected by rngMu)
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine creates an unloaded engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	e := &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for display shuffling
	}
	e.state.Store(&stateBox{state: Unloaded{}})

	if cfg.Cache.Enabled {
		e.recommendCache = cache.NewLRU[*RecommendResult](cfg.Cache.Size, cfg.Cache.TTL)
		e.discoverCache = cache.NewLRU[[]catalog.DisplayItem](cfg.Cache.Size, cfg.Cache.TTL)
		e.searchCache = cache.NewLRU[[]SearchResult](cfg.Cache.Size, cfg.Cache.TTL)
	}

	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// State returns the current load state.
func (e *Engine) State() State {
	return e.state.Load().state
}

// IsReady reports whether a snapshot has been published.
func (e *Engine) IsReady() bool {
	_, ok := e.State().(Ready)
	return ok
}

// Load prepares rows, builds a snapshot and publishes it. Any failure leaves
// the engine Unloaded with the failure as reason and returns an error
// wrapping ErrCatalogUnavailable. Once a snapshot is published, further
// calls return ErrAlreadyLoaded.
func (e *Engine) Load(ctx context.Context, rows []catalog.RawRow) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	if e.IsReady() {
		return ErrAlreadyLoaded
	}

	start := time.Now()
	items, prepStats := catalog.Prepare(rows, e.config.PrepareOptions())
	e.logger.Info().
		Int("input", prepStats.Input).
		Int("missing_fields", prepStats.MissingFields).
		Int("below_vote_floor", prepStats.BelowVoteFloor).
		Int("duplicates", prepStats.Duplicates).
		Int("truncated", prepStats.Truncated).
		Int("kept", prepStats.Kept).
		Msg("dataset prepared")

	snap, err := BuildSnapshot(ctx, items, e.config)
	if err != nil {
		e.markUnavailable(err)
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	snap.Prepare = prepStats
	snap.BuildDuration = time.Since(start)

	e.publish(snap)
	return nil
}

// LoadSnapshot publishes an already built snapshot.
func (e *Engine) LoadSnapshot(snap *Snapshot) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	if e.IsReady() {
		return ErrAlreadyLoaded
	}
	if snap == nil || len(snap.Items) == 0 {
		e.markUnavailable(ErrEmptyCatalog)
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, ErrEmptyCatalog)
	}
	e.publish(snap)
	return nil
}

// MarkUnavailable records why the catalog could not be loaded, for example
// when the dataset source fails before Load is reached. It has no effect
// once a snapshot is published.
func (e *Engine) MarkUnavailable(reason error) {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	if e.IsReady() {
		return
	}
	e.markUnavailable(reason)
}

func (e *Engine) markUnavailable(reason error) {
	e.state.Store(&stateBox{state: Unloaded{Reason: reason}})
	e.logger.Error().Err(reason).Msg("catalog unavailable")
}

func (e *Engine) publish(snap *Snapshot) {
	e.state.Store(&stateBox{state: Ready{Snapshot: snap}})

	stats := snap.Index.Stats()
	e.logger.Info().
		Int("items", len(snap.Items)).
		Int("vocabulary", stats.Vocabulary).
		Int("empty_overviews", stats.EmptyDocuments).
		Int("workers", stats.Workers).
		Dur("index_duration", stats.Duration).
		Dur("load_duration", snap.BuildDuration).
		Float64("score_c", snap.Params.C).
		Float64("score_m", snap.Params.M).
		Msg("catalog loaded")
}

// snapshot returns the published snapshot or ErrCatalogUnavailable.
func (e *Engine) snapshot() (*Snapshot, error) {
	e.requestCount.Add(1)

	switch s := e.State().(type) {
	case Ready:
		return s.Snapshot, nil
	case Unloaded:
		e.unavailableCount.Add(1)
		if s.Reason != nil {
			return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, s.Reason)
		}
		return nil, ErrCatalogUnavailable
	default:
		return nil, ErrCatalogUnavailable
	}
}

// cached looks key up in c and records the outcome.
func cached[V any](e *Engine, c *cache.LRU[V], key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	v, ok := c.Get(key)
	if ok {
		e.cacheHits.Add(1)
	} else {
		e.cacheMisses.Add(1)
	}
	return v, ok
}

func store[V any](c *cache.LRU[V], key string, v V) {
	if c != nil {
		c.Add(key, v)
	}
}

// GetMetrics returns engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount:     e.requestCount.Load(),
		NotFoundCount:    e.notFoundCount.Load(),
		UnavailableCount: e.unavailableCount.Load(),
		CacheHits:        e.cacheHits.Load(),
		CacheMisses:      e.cacheMisses.Load(),
	}
}

// Status summarizes the engine state for operators.
func (e *Engine) Status() Status {
	st := Status{State: StateUnloaded, Metrics: e.GetMetrics()}

	switch s := e.State().(type) {
	case Ready:
		snap := s.Snapshot
		st.State = StateReady
		st.Items = len(snap.Items)
		st.Params = snap.Params
		st.Prepare = snap.Prepare
		st.Index = snap.Index.Stats()
		st.LoadedAt = snap.LoadedAt
		st.LoadDuration = snap.BuildDuration
		st.Sections = len(snap.sections)
	case Unloaded:
		if s.Reason != nil {
			st.Reason = s.Reason.Error()
		}
	}
	return st
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether err means the catalog is not loaded.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrCatalogUnavailable)
}
