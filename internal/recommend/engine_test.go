// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		e, err := NewEngine(nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine(nil) error = %v", err)
		}
		if e.Config().Limits.RecommendLimit != 12 {
			t.Error("expected default config")
		}
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Limits.SearchLimit = 0
		if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
			t.Error("expected error for invalid config")
		}
	})

	t.Run("starts unloaded without reason", func(t *testing.T) {
		t.Parallel()
		e := newTestEngine(t, nil)
		st, ok := e.State().(Unloaded)
		if !ok || st.Reason != nil {
			t.Errorf("State() = %#v, want Unloaded{}", e.State())
		}
		if e.IsReady() {
			t.Error("IsReady() = true before load")
		}
	})
}

func TestEngine_QueriesWhileUnloaded(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["home"] = e.Home(ctx)
	_, checks["search"] = e.Search(ctx, "toy")
	_, checks["discover"] = e.Discover(ctx, DiscoverQuery{})
	_, checks["recommend"] = e.Recommend(ctx, RecommendQuery{Title: "toy story"})

	for name, err := range checks {
		if !errors.Is(err, ErrCatalogUnavailable) {
			t.Errorf("%s error = %v, want ErrCatalogUnavailable", name, err)
		}
	}
	if got := e.GetMetrics().UnavailableCount; got != 4 {
		t.Errorf("UnavailableCount = %d, want 4", got)
	}
}

func TestEngine_Load(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	if err := e.Load(context.Background(), testRows()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ready, ok := e.State().(Ready)
	if !ok {
		t.Fatalf("State() = %#v, want Ready", e.State())
	}
	snap := ready.Snapshot

	// Obscure Gem is below the vote floor.
	if len(snap.Items) != len(testItems())-1 {
		t.Errorf("len(Items) = %d, want %d", len(snap.Items), len(testItems())-1)
	}
	for i := range snap.Items {
		if snap.Items[i].Index != i {
			t.Errorf("Items[%d].Index = %d", i, snap.Items[i].Index)
		}
		if snap.Items[i].VoteCount <= 50 {
			t.Errorf("Items[%d].VoteCount = %d, want > 50", i, snap.Items[i].VoteCount)
		}
		if snap.Items[i].WeightedScore == 0 {
			t.Errorf("Items[%d] has no weighted score", i)
		}
	}
	if snap.Index.Dim() != len(snap.Items) {
		t.Errorf("Index.Dim() = %d, want %d", snap.Index.Dim(), len(snap.Items))
	}

	st := e.Status()
	if st.State != StateReady || st.Items != len(snap.Items) || st.Prepare.BelowVoteFloor != 1 || st.Sections != 6 {
		t.Errorf("Status() = %+v", st)
	}

	if err := e.Load(context.Background(), testRows()); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("second Load() error = %v, want ErrAlreadyLoaded", err)
	}
	if err := e.LoadSnapshot(snap); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("LoadSnapshot() after Load error = %v, want ErrAlreadyLoaded", err)
	}
}

func TestEngine_LoadFailureStaysUnloaded(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	rows := []catalog.RawRow{{ID: "nan", Title: "Ghost"}}

	err := e.Load(context.Background(), rows)
	if !errors.Is(err, ErrCatalogUnavailable) || !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("Load() error = %v, want ErrCatalogUnavailable wrapping ErrEmptyCatalog", err)
	}

	st, ok := e.State().(Unloaded)
	if !ok || !errors.Is(st.Reason, ErrEmptyCatalog) {
		t.Errorf("State() = %#v, want Unloaded with ErrEmptyCatalog", e.State())
	}
	if e.Status().Reason == "" {
		t.Error("Status().Reason is empty after a failed load")
	}

	if _, err := e.Search(context.Background(), "ghost"); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("Search() error = %v, want reason attached", err)
	}

	// A later successful load is still allowed.
	if err := e.Load(context.Background(), testRows()); err != nil {
		t.Errorf("Load() after failure error = %v", err)
	}
}

func TestEngine_LoadCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(t, nil)
	if err := e.Load(ctx, testRows()); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
	if e.IsReady() {
		t.Error("engine ready after cancelled load")
	}
}

func TestEngine_MarkUnavailable(t *testing.T) {
	t.Parallel()

	reason := errors.New("open movies.csv: no such file")

	e := newTestEngine(t, nil)
	e.MarkUnavailable(reason)
	if st, ok := e.State().(Unloaded); !ok || !errors.Is(st.Reason, reason) {
		t.Errorf("State() = %#v, want Unloaded with reason", e.State())
	}

	ready := newReadyEngine(t, nil)
	ready.MarkUnavailable(reason)
	if !ready.IsReady() {
		t.Error("MarkUnavailable must not unload a ready engine")
	}
}

func TestBuildSnapshot_Invariants(t *testing.T) {
	t.Parallel()

	cfg := testConfig()

	if _, err := BuildSnapshot(context.Background(), nil, cfg); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("BuildSnapshot(nil) error = %v, want ErrEmptyCatalog", err)
	}

	items := testItems()
	items[3].Index = 7
	if _, err := BuildSnapshot(context.Background(), items, cfg); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("BuildSnapshot(misindexed) error = %v, want ErrDimensionMismatch", err)
	}
}

func TestEngine_ConcurrentQueries(t *testing.T) {
	t.Parallel()

	e := newReadyEngine(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Home(ctx); err != nil {
				errs <- err
			}
			if _, err := e.Recommend(ctx, RecommendQuery{Title: "toy story", MinYear: 1900}); err != nil {
				errs <- err
			}
			if _, err := e.Discover(ctx, DiscoverQuery{Genre: "Comedy", MinYear: 1900}); err != nil {
				errs <- err
			}
			if _, err := e.Search(ctx, "the"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent query error = %v", err)
	}
	if got := e.GetMetrics().RequestCount; got != 64 {
		t.Errorf("RequestCount = %d, want 64", got)
	}
}
