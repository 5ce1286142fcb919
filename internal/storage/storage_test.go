package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pable/go-nhl-features/internal/features"
	"github.com/pable/go-nhl-features/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func makeRecord(t *testing.T, gameID string, names []string, values []float64) features.Record {
	t.Helper()
	r, err := features.NewRecord(gameID, names, values)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	return r
}

func TestSaveGameAndExists(t *testing.T) {
	db := openMemDB(t)

	summary := model.GameSummary{GameID: "2023020001", SourceHash: "abc123", HomeTeamID: 10, AwayTeamID: 20, EventCount: 312}
	rec := makeRecord(t, "2023020001", []string{"home_goals", "away_goals"}, []float64{3, 2})
	if err := db.SaveGame(summary, rec); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	exists, err := db.GameExists("2023020001", "abc123", "")
	if err != nil {
		t.Fatalf("GameExists: %v", err)
	}
	if !exists {
		t.Error("expected game to exist after save")
	}

	changed, _ := db.GameExists("2023020001", "other", "")
	if changed {
		t.Error("a different source hash should not count as stored")
	}
}

func TestGameExists_Options(t *testing.T) {
	db := openMemDB(t)

	defaults := features.Options{}.Fingerprint()
	summary := model.GameSummary{GameID: "g1", SourceHash: "h1", Options: defaults}
	if err := db.SaveGame(summary, makeRecord(t, "g1", []string{"a"}, []float64{1})); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		options string
		want    bool
	}{
		{"same options", defaults, true},
		{"legacy score state", features.Options{LegacyScoreState: true}.Fingerprint(), false},
		{"skater strength", features.Options{SkaterStrength: true}.Fingerprint(), false},
		{"no fingerprint", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := db.GameExists("g1", "h1", tc.options)
			if err != nil {
				t.Fatalf("GameExists: %v", err)
			}
			if got != tc.want {
				t.Errorf("GameExists(%q) = %v, want %v", tc.options, got, tc.want)
			}
		})
	}

	g, err := db.GetGameByPrefix("g1")
	if err != nil || g == nil {
		t.Fatalf("GetGameByPrefix: %v %v", g, err)
	}
	if g.Options != defaults {
		t.Errorf("stored options = %q, want %q", g.Options, defaults)
	}
}

func TestOpen_AddsOptionsColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	old, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = old.Exec(`
		CREATE TABLE games (
			game_id TEXT PRIMARY KEY, source_hash TEXT NOT NULL,
			home_team_id INTEGER NOT NULL DEFAULT 0, away_team_id INTEGER NOT NULL DEFAULT 0,
			event_count INTEGER NOT NULL DEFAULT 0);
		INSERT INTO games(game_id, source_hash) VALUES ('g1', 'h1');`)
	old.Close()
	if err != nil {
		t.Fatalf("seed old schema: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	// Rows from before the column existed never match a real fingerprint.
	got, err := db.GameExists("g1", "h1", features.Options{}.Fingerprint())
	if err != nil {
		t.Fatalf("GameExists: %v", err)
	}
	if got {
		t.Error("a game stored without options should be recomputed")
	}
}

func TestSaveGameReplaces(t *testing.T) {
	db := openMemDB(t)

	s := model.GameSummary{GameID: "g1", SourceHash: "h1"}
	if err := db.SaveGame(s, makeRecord(t, "g1", []string{"a", "b", "c"}, []float64{1, 2, 3})); err != nil {
		t.Fatal(err)
	}
	s.SourceHash = "h2"
	if err := db.SaveGame(s, makeRecord(t, "g1", []string{"b", "a"}, []float64{20, 10})); err != nil {
		t.Fatal(err)
	}

	r, err := db.GetRecord("g1")
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Errorf("names = %v, want [b a]", names)
	}
	if r.Value("a") != 10 {
		t.Errorf("a = %v, want 10", r.Value("a"))
	}
	games, _ := db.ListGames()
	if len(games) != 1 || games[0].SourceHash != "h2" {
		t.Errorf("games = %+v", games)
	}
}

func TestListGamesAndPrefix(t *testing.T) {
	db := openMemDB(t)

	for _, id := range []string{"2023020002", "2023020001", "2023030001"} {
		if err := db.SaveGame(model.GameSummary{GameID: id, SourceHash: "h" + id}, makeRecord(t, id, nil, nil)); err != nil {
			t.Fatalf("SaveGame %s: %v", id, err)
		}
	}

	list, err := db.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(list) != 3 || list[0].GameID != "2023020001" {
		t.Errorf("list = %+v", list)
	}

	g, err := db.GetGameByPrefix("202303")
	if err != nil {
		t.Fatalf("GetGameByPrefix: %v", err)
	}
	if g == nil || g.GameID != "2023030001" {
		t.Errorf("prefix match = %+v", g)
	}
	none, err := db.GetGameByPrefix("1999")
	if err != nil {
		t.Fatalf("GetGameByPrefix no-match: %v", err)
	}
	if none != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestAllRecords(t *testing.T) {
	db := openMemDB(t)

	db.SaveGame(model.GameSummary{GameID: "b"}, makeRecord(t, "b", []string{"x", "y"}, []float64{1, 2}))
	db.SaveGame(model.GameSummary{GameID: "a"}, makeRecord(t, "a", []string{"x", "y"}, []float64{3, 4.5}))

	recs, err := db.AllRecords()
	if err != nil {
		t.Fatalf("AllRecords: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].GameID != "a" || recs[0].Value("y") != 4.5 {
		t.Errorf("first record = %s %v", recs[0].GameID, recs[0].Values())
	}
	if recs[1].GameID != "b" || recs[1].Value("x") != 1 {
		t.Errorf("second record = %s %v", recs[1].GameID, recs[1].Values())
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	db.SaveGame(model.GameSummary{GameID: "g1", SourceHash: "h", EventCount: 7},
		makeRecord(t, "g1", []string{"home_xg_proxy"}, []float64{0.27}))

	cols, rows, err := db.QueryRaw("SELECT g.game_id, g.event_count, f.value, NULL AS nothing FROM games g JOIN game_features f USING (game_id)")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 4 || cols[0] != "game_id" {
		t.Errorf("cols = %v", cols)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}
	want := []string{"g1", "7", "0.27", "NULL"}
	for i, v := range want {
		if rows[0][i] != v {
			t.Errorf("cell %d = %q, want %q", i, rows[0][i], v)
		}
	}

	if _, _, err := db.QueryRaw("SELECT * FROM nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}
