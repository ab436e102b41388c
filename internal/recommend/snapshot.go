// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/textindex"
)

// Snapshot is the immutable, fully built catalog. Every query reads from a
// single Snapshot without locking.
type Snapshot struct {
	// Items is the working set; Items[i].Index == i.
	Items []catalog.Item

	// Index holds overview similarities; Index.Dim() == len(Items).
	Index *textindex.Index

	// Resolver matches titles against Items.
	Resolver *Resolver

	// Params are the weighted rating constants.
	Params catalog.ScoreParams

	// Prepare records dataset cleaning counts.
	Prepare catalog.PrepareStats

	LoadedAt      time.Time
	BuildDuration time.Duration

	// sections are ranked once; requests shuffle a copy.
	sections []rankedSection
}

type rankedSection struct {
	id    string
	title string
	items []catalog.DisplayItem
}

// BuildSnapshot scores items, builds the similarity index over their
// overviews and ranks the home sections. items must already be prepared:
// items[i].Index must equal i. The snapshot takes ownership of items.
func BuildSnapshot(ctx context.Context, items []catalog.Item, cfg *Config) (*Snapshot, error) {
	start := time.Now()

	if len(items) == 0 {
		return nil, ErrEmptyCatalog
	}
	for i := range items {
		if items[i].Index != i {
			return nil, fmt.Errorf("%w: item %d (id %d) has index %d", ErrDimensionMismatch, i, items[i].ID, items[i].Index)
		}
	}

	params := catalog.ApplyWeightedScores(items)

	docs := make([]string, len(items))
	for i := range items {
		docs[i] = items[i].Overview
	}
	idx, err := textindex.Build(ctx, docs, textindex.BuildOptions{Workers: cfg.Index.Workers})
	if err != nil {
		return nil, fmt.Errorf("build similarity index: %w", err)
	}
	if idx.Dim() != len(items) {
		return nil, fmt.Errorf("%w: matrix %d, catalog %d", ErrDimensionMismatch, idx.Dim(), len(items))
	}

	snap := &Snapshot{
		Items:    items,
		Index:    idx,
		Resolver: NewResolver(items, cfg.Resolver),
		Params:   params,
		LoadedAt: time.Now(),
	}
	snap.sections = snap.rankSections(cfg)
	snap.BuildDuration = time.Since(start)
	return snap, nil
}

// Item returns the item at position i.
func (s *Snapshot) Item(i int) *catalog.Item {
	return &s.Items[i]
}

// all returns pointers to every item in positional order.
func (s *Snapshot) all() []*catalog.Item {
	out := make([]*catalog.Item, len(s.Items))
	for i := range s.Items {
		out[i] = &s.Items[i]
	}
	return out
}

// rankSections computes each home section: the genre subset is split at
// ModernYear, each half ranked and cut to SectionSize/2, modern first.
func (s *Snapshot) rankSections(cfg *Config) []rankedSection {
	half := cfg.Home.SectionSize / 2
	sections := make([]rankedSection, 0, len(cfg.Home.Sections))

	for _, spec := range cfg.Home.Sections {
		var modern, classic []*catalog.Item
		for i := range s.Items {
			it := &s.Items[i]
			if !it.GenreContains(spec.Genre) {
				continue
			}
			if it.Year >= cfg.Home.ModernYear {
				modern = append(modern, it)
			} else {
				classic = append(classic, it)
			}
		}

		picked := append(rankItems(modern, spec.RankBy, half), rankItems(classic, spec.RankBy, half)...)
		sections = append(sections, rankedSection{
			id:    sectionID(spec.Title),
			title: spec.Title,
			items: cfg.Display.DisplayAll(picked),
		})
	}
	return sections
}
