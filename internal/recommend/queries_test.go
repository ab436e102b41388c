// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"reflect"
	"sort"
	"testing"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func TestEngine_Recommend(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   RecommendQuery
		include []int
		exclude []int
		verify  func(t *testing.T, recs []catalog.DisplayItem)
	}{
		{
			name:    "animated source keeps animated family",
			query:   RecommendQuery{Title: "Toy Story", MinYear: 1900},
			include: []int{idToyStory2, idToyStory3},
			exclude: []int{idToyStory, idInterstellar, idHereditary, idDune},
		},
		{
			name:    "live-action source drops animation",
			query:   RecommendQuery{Title: "small soldiers", MinYear: 1900},
			include: []int{idInterstellar},
			exclude: []int{idSmallSoldiers, idToyStory, idToyStory2, idToyStory3},
		},
		{
			name:  "no genre overlap yields empty list",
			query: RecommendQuery{Title: "hereditary", MinYear: 1900},
			verify: func(t *testing.T, recs []catalog.DisplayItem) {
				if recs == nil || len(recs) != 0 {
					t.Errorf("recommendations = %#v, want empty non-nil", recs)
				}
			},
		},
		{
			name:  "min year",
			query: RecommendQuery{Title: "toy story", MinYear: 2000},
			verify: func(t *testing.T, recs []catalog.DisplayItem) {
				for _, r := range recs {
					if r.Year < 2000 {
						t.Errorf("%s (%d) below min year", r.Title, r.Year)
					}
				}
				if !containsID(recs, idToyStory3) {
					t.Error("Toy Story 3 missing")
				}
			},
		},
		{
			name:    "min rating",
			query:   RecommendQuery{Title: "toy story", MinYear: 1900, MinRating: 7.6},
			include: []int{idToyStory3},
			exclude: []int{idToyStory2, idSmallSoldiers, idBarbie},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := e.Recommend(ctx, tt.query)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			for _, id := range tt.include {
				if !containsID(res.Recommendations, id) {
					t.Errorf("recommendations %v missing %d", ids(res.Recommendations), id)
				}
			}
			for _, id := range tt.exclude {
				if containsID(res.Recommendations, id) {
					t.Errorf("recommendations %v contain %d", ids(res.Recommendations), id)
				}
			}
			if containsID(res.Recommendations, res.Source.ID) {
				t.Error("recommendations contain the source")
			}
			if len(res.Recommendations) > 12 {
				t.Errorf("len(recommendations) = %d, want <= 12", len(res.Recommendations))
			}
			if tt.verify != nil {
				tt.verify(t, res.Recommendations)
			}
		})
	}
}

func TestEngine_RecommendSourceAndRanking(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	snap := e.State().(Ready).Snapshot
	scores := make(map[int]float64, len(snap.Items))
	for _, it := range snap.Items {
		scores[it.ID] = it.WeightedScore
	}

	res, err := e.Recommend(context.Background(), RecommendQuery{Title: "toy story", MinYear: 1900})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Source.ID != idToyStory {
		t.Errorf("source = %d, want exact title match %d", res.Source.ID, idToyStory)
	}
	for k := 1; k < len(res.Recommendations); k++ {
		prev, cur := res.Recommendations[k-1], res.Recommendations[k]
		if scores[prev.ID] < scores[cur.ID] {
			t.Errorf("recommendations not ranked by weighted score at %d: %v < %v", k, scores[prev.ID], scores[cur.ID])
		}
	}
}

func TestEngine_RecommendTitleFamily(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Limits.SimilarCandidates = 1
	e := newReadyEngine(t, cfg)

	res, err := e.Recommend(context.Background(), RecommendQuery{Title: "toy story", MinYear: 1900})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// Sequels arrive through the title family even with one neighbor.
	for _, id := range []int{idToyStory2, idToyStory3} {
		if !containsID(res.Recommendations, id) {
			t.Errorf("recommendations %v missing sequel %d", ids(res.Recommendations), id)
		}
	}
	if len(res.Recommendations) > 3 {
		t.Errorf("len = %d, want at most 1 neighbor + 2 family", len(res.Recommendations))
	}
}

func TestEngine_RecommendNotFound(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)

	for _, title := range []string{"Casablanca", "", "!!!"} {
		_, err := e.Recommend(context.Background(), RecommendQuery{Title: title})
		if !IsNotFound(err) {
			t.Errorf("Recommend(%q) error = %v, want ErrNotFound", title, err)
		}
	}
	if got := e.GetMetrics().NotFoundCount; got != 3 {
		t.Errorf("NotFoundCount = %d, want 3", got)
	}
}

func TestEngine_Discover(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   DiscoverQuery
		wantIDs []int // compared as a set when non-nil
		include []int
		exclude []int
	}{
		{
			name:    "high rating applies popularity floor",
			query:   DiscoverQuery{Genre: "Drama", MinYear: 1900, MinRating: 6.5},
			include: []int{idInterstellar, idNotebook},
			exclude: []int{idObscureGem},
		},
		{
			name:    "threshold rating does not apply floor",
			query:   DiscoverQuery{Genre: "Drama", MinYear: 1900, MinRating: 6.0},
			include: []int{idObscureGem},
		},
		{
			name:    "sci-fi alias",
			query:   DiscoverQuery{Genre: "Sci-Fi", MinYear: 1900},
			wantIDs: []int{idSmallSoldiers, idInterstellar, idDune},
		},
		{
			name:    "case-insensitive genre",
			query:   DiscoverQuery{Genre: "romance", MinYear: 1900},
			wantIDs: []int{idNotebook},
		},
		{
			name:    "all genres",
			query:   DiscoverQuery{Genre: "All", MinYear: 1900},
			wantIDs: ids(catalog.DefaultImageConfig().DisplayAll(itemPtrs(testItems()))),
		},
		{
			name:    "min year",
			query:   DiscoverQuery{MinYear: 2020},
			wantIDs: []int{idDune, idBarbie, idObscureGem},
		},
		{
			name:    "nothing matches",
			query:   DiscoverQuery{Genre: "Documentary"},
			wantIDs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := e.Discover(ctx, tt.query)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if got == nil {
				t.Fatal("Discover() returned nil slice")
			}
			if tt.wantIDs != nil {
				gotIDs := ids(got)
				want := make([]int, len(tt.wantIDs))
				copy(want, tt.wantIDs)
				sort.Ints(gotIDs)
				sort.Ints(want)
				if len(gotIDs) != len(want) || (len(want) > 0 && !reflect.DeepEqual(gotIDs, want)) {
					t.Errorf("ids = %v, want %v", gotIDs, want)
				}
			}
			for _, id := range tt.include {
				if !containsID(got, id) {
					t.Errorf("result %v missing %d", ids(got), id)
				}
			}
			for _, id := range tt.exclude {
				if containsID(got, id) {
					t.Errorf("result %v contains %d", ids(got), id)
				}
			}
		})
	}
}

func TestEngine_DiscoverLimitAndOrder(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Limits.DiscoverLimit = 3
	e := newReadyEngine(t, cfg)

	snap := e.State().(Ready).Snapshot
	all := snap.all()
	want := ids(cfg.Display.DisplayAll(rankItems(all, RankByWeightedScore, 3)))

	got, err := e.Discover(context.Background(), DiscoverQuery{})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("Discover() ids = %v, want top 3 by weighted score %v", ids(got), want)
	}
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		want  []SearchResult
	}{
		{"empty query", "", []SearchResult{}},
		{"blank query", "   ", []SearchResult{}},
		{"prefix family by votes", "toy", []SearchResult{
			{Title: "Toy Story", Year: 1995},
			{Title: "Toy Story 3", Year: 2010},
			{Title: "Toy Story 2", Year: 1999},
		}},
		{"exact first", "dune", []SearchResult{{Title: "Dune", Year: 2021}}},
		{"no match", "zzz", []SearchResult{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := e.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestEngine_SearchLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Limits.SearchLimit = 2
	e := newReadyEngine(t, cfg)

	got, err := e.Search(context.Background(), "t")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len(Search) = %d, want 2", len(got))
	}
}

func TestEngine_Home(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)

	sections, err := e.Home(context.Background())
	if err != nil {
		t.Fatalf("Home() error = %v", err)
	}

	wantIDs := []string{"top_rated_gems", "romance_&_drama", "action_&_adventure", "sci-fi_&_fantasy", "comedy_hits", "trending_now"}
	if len(sections) != len(wantIDs) {
		t.Fatalf("len(sections) = %d, want %d", len(sections), len(wantIDs))
	}
	for i, s := range sections {
		if s.ID != wantIDs[i] {
			t.Errorf("sections[%d].ID = %q, want %q", i, s.ID, wantIDs[i])
		}
		if len(s.Items) > 20 {
			t.Errorf("section %s has %d items", s.ID, len(s.Items))
		}
	}

	// 3 modern items plus 8 classic items, each half under the cap of 10.
	if n := len(sections[0].Items); n != len(testItems()) {
		t.Errorf("top rated has %d items, want %d", n, len(testItems()))
	}
	if got := ids(sections[1].Items); !reflect.DeepEqual(got, []int{idNotebook}) {
		t.Errorf("romance section = %v", got)
	}

	again, _ := e.Home(context.Background())
	for i := range sections {
		a, b := ids(sections[i].Items), ids(again[i].Items)
		sort.Ints(a)
		sort.Ints(b)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("section %s contents changed between calls", sections[i].ID)
		}
	}
}

func TestEngine_HomeHalves(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Home.SectionSize = 4
	e := newReadyEngine(t, cfg)

	sections, err := e.Home(context.Background())
	if err != nil {
		t.Fatalf("Home() error = %v", err)
	}

	top := sections[0].Items
	if len(top) != 4 {
		t.Fatalf("len(top) = %d, want 4", len(top))
	}
	modern := 0
	for _, it := range top {
		if it.Year >= cfg.Home.ModernYear {
			modern++
		}
	}
	if modern != 2 {
		t.Errorf("modern items = %d, want 2", modern)
	}

	trending := ids(sections[5].Items)
	sort.Ints(trending)
	// Most popular modern: Barbie, Dune. Most popular classic: Interstellar, Toy Story.
	want := []int{idToyStory, idInterstellar, idBarbie, idDune}
	sort.Ints(want)
	if !reflect.DeepEqual(trending, want) {
		t.Errorf("trending = %v, want %v", trending, want)
	}
}

func TestEngine_HomeShuffleIsSeeded(t *testing.T) {
	t.Parallel()

	a := newReadyEngine(t, nil)
	b := newReadyEngine(t, nil)

	ha, _ := a.Home(context.Background())
	hb, _ := b.Home(context.Background())
	for i := range ha {
		if !reflect.DeepEqual(ids(ha[i].Items), ids(hb[i].Items)) {
			t.Errorf("section %s differs between engines with the same seed", ha[i].ID)
		}
	}
}

func TestEngine_Cache(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	ctx := context.Background()
	q := DiscoverQuery{Genre: "Comedy", MinYear: 1900}

	first, _ := e.Discover(ctx, q)
	second, _ := e.Discover(ctx, q)
	if !reflect.DeepEqual(first, second) {
		t.Error("cached discover result differs")
	}

	m := e.GetMetrics()
	if m.CacheHits != 1 || m.CacheMisses != 1 {
		t.Errorf("cache hits/misses = %d/%d, want 1/1", m.CacheHits, m.CacheMisses)
	}

	cfg := testConfig()
	cfg.Cache.Enabled = false
	off := newReadyEngine(t, cfg)
	off.Discover(ctx, q)
	off.Discover(ctx, q)
	if m := off.GetMetrics(); m.CacheHits != 0 || m.CacheMisses != 0 {
		t.Errorf("disabled cache recorded %d/%d", m.CacheHits, m.CacheMisses)
	}
}

func itemPtrs(items []catalog.Item) []*catalog.Item {
	out := make([]*catalog.Item, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
