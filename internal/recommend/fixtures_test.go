// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// Fixture ids.
const (
	idToyStory      = 862
	idToyStory2     = 863
	idToyStory3     = 10193
	idSmallSoldiers = 11551
	idCowboyWay     = 23
	idInterstellar  = 157336
	idDune          = 438631
	idNotebook      = 11036
	idHereditary    = 493922
	idBarbie        = 346698
	idObscureGem    = 99
)

func testItems() []catalog.Item {
	items := []catalog.Item{
		{ID: idToyStory, Title: "Toy Story", Year: 1995, VoteCount: 5000, VoteAverage: 7.9, Popularity: 50,
			Genres:   []string{"Animation", "Comedy", "Family"},
			Overview: "A cowboy doll is threatened when a new spaceman toy supplants him in a boy's bedroom."},
		{ID: idToyStory2, Title: "Toy Story 2", Year: 1999, VoteCount: 4000, VoteAverage: 7.5, Popularity: 40,
			Genres:   []string{"Animation", "Comedy", "Family"},
			Overview: "The cowboy doll is stolen by a toy collector and his toy friends set out to rescue him."},
		{ID: idToyStory3, Title: "Toy Story 3", Year: 2010, VoteCount: 4500, VoteAverage: 7.8, Popularity: 45,
			Genres:   []string{"Animation", "Family", "Comedy"},
			Overview: "The toys are mistakenly donated to a daycare when their boy leaves for college."},
		{ID: idSmallSoldiers, Title: "Small Soldiers", Year: 1998, VoteCount: 800, VoteAverage: 6.1, Popularity: 12,
			Genres:   []string{"Action", "Comedy", "Science Fiction"},
			Overview: "Military toy soldiers come to life and wage war on a boy's neighborhood toys."},
		{ID: idCowboyWay, Title: "The Cowboy Way", Year: 1994, VoteCount: 300, VoteAverage: 5.9, Popularity: 6,
			Genres:   []string{"Comedy", "Western"},
			Overview: "Two rodeo cowboy friends travel to the big city to find a missing friend."},
		{ID: idInterstellar, Title: "Interstellar", Year: 2014, VoteCount: 20000, VoteAverage: 8.3, Popularity: 120,
			Genres:   []string{"Adventure", "Drama", "Science Fiction"},
			Overview: "Explorers travel through a wormhole in space to save humanity."},
		{ID: idDune, Title: "Dune", Year: 2021, VoteCount: 9000, VoteAverage: 7.8, Popularity: 150,
			Genres:   []string{"Science Fiction", "Adventure"},
			Overview: "A noble family becomes embroiled in a war for control of a desert planet in space."},
		{ID: idNotebook, Title: "The Notebook", Year: 2004, VoteCount: 7000, VoteAverage: 7.9, Popularity: 30,
			Genres:   []string{"Romance", "Drama"},
			Overview: "A poor young man falls in love with a rich young woman."},
		{ID: idHereditary, Title: "Hereditary", Year: 2018, VoteCount: 5000, VoteAverage: 7.3, Popularity: 35,
			Genres:   []string{"Horror", "Mystery"},
			Overview: "A grieving family is haunted by tragic and disturbing occurrences after a death."},
		{ID: idBarbie, Title: "Barbie", Year: 2023, VoteCount: 8000, VoteAverage: 7.0, Popularity: 200,
			Genres:   []string{"Comedy", "Adventure", "Fantasy"},
			Overview: "Barbie and Ken leave the doll world of Barbieland for the real world."},
		{ID: idObscureGem, Title: "Obscure Gem", Year: 2022, VoteCount: 10, VoteAverage: 7.0, Popularity: 1,
			Genres:   []string{"Drama"},
			Overview: "A quiet drama about a lighthouse keeper."},
	}
	for i := range items {
		items[i].Index = i
		items[i].PosterPath = fmt.Sprintf("/p%d.jpg", items[i].ID)
	}
	return items
}

// testRows renders testItems as raw dataset rows.
func testRows() []catalog.RawRow {
	items := testItems()
	rows := make([]catalog.RawRow, len(items))
	for i, it := range items {
		rows[i] = catalog.RawRow{
			ID:          strconv.Itoa(it.ID),
			Title:       it.Title,
			Overview:    it.Overview,
			PosterPath:  it.PosterPath,
			Genres:      strings.Join(it.Genres, "|"),
			VoteCount:   strconv.Itoa(it.VoteCount),
			VoteAverage: strconv.FormatFloat(it.VoteAverage, 'f', 1, 64),
			ReleaseDate: fmt.Sprintf("%d-06-01", it.Year),
			Popularity:  strconv.FormatFloat(it.Popularity, 'f', 1, 64),
		}
	}
	return rows
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Index.Workers = 2
	return cfg
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// newReadyEngine publishes a snapshot of testItems, bypassing preparation
// so that low-vote fixtures survive.
func newReadyEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e := newTestEngine(t, cfg)
	snap, err := BuildSnapshot(context.Background(), testItems(), e.config)
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	if err := e.LoadSnapshot(snap); err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	return e
}

func ids(items []catalog.DisplayItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func containsID(items []catalog.DisplayItem, id int) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
