package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveScores(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for _, sc := range scores {
		if _, err := store.SaveScore(gameID, sc); err != nil {
			t.Fatalf("SaveScore(%q, %d) failed: %v", gameID, sc, err)
		}
	}
}

func scoresOf(entries []ScoreEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestStoreOpenCreatesDirectories(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	paths := map[string]string{
		"nested": filepath.Join(home, "a", "b", "scores.db"),
		"home":   "~/.t2048/scores.db",
	}
	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			store, err := Open(path)
			if err != nil {
				t.Fatalf("Open(%q) failed: %v", path, err)
			}
			defer store.Close()

			want := path
			if name == "home" {
				want = filepath.Join(home, ".t2048", "scores.db")
			}
			if _, err := os.Stat(want); err != nil {
				t.Errorf("database not created at %s: %v", want, err)
			}
		})
	}
}

func TestStoreRanking(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "2048", 100, 50, 200, 100, 0)
	saveScores(t, store, "2048_5x5", 500)

	tests := []struct {
		name  string
		query func() ([]ScoreEntry, error)
		want  []int
	}{
		{"top of one board", func() ([]ScoreEntry, error) { return store.TopScores("2048", 10) }, []int{200, 100, 100, 50, 0}},
		{"limit", func() ([]ScoreEntry, error) { return store.TopScores("2048", 2) }, []int{200, 100}},
		{"default limit", func() ([]ScoreEntry, error) { return store.TopScores("2048_5x5", 0) }, []int{500}},
		{"all", func() ([]ScoreEntry, error) { return store.AllScores("2048") }, []int{200, 100, 100, 50, 0}},
		{"unknown board", func() ([]ScoreEntry, error) { return store.TopScores("nope", 10) }, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := tt.query()
			if err != nil {
				t.Fatalf("query failed: %v", err)
			}
			if got := scoresOf(entries); !slices.Equal(got, tt.want) {
				t.Errorf("scores = %v, want %v", got, tt.want)
			}
		})
	}

	// Equal scores keep recording order.
	top, _ := store.TopScores("2048", 3)
	if top[1].ID > top[2].ID {
		t.Errorf("tied scores out of order: ids %d, %d", top[1].ID, top[2].ID)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	if high, err := store.HighScore("2048"); err != nil || high != 0 {
		t.Fatalf("HighScore() on empty board = %d, %v", high, err)
	}

	saveScores(t, store, "2048", 100, 300, 200)
	saveScores(t, store, "2048_5x5", 900)

	if high, _ := store.HighScore("2048"); high != 300 {
		t.Errorf("HighScore() = %d, want 300", high)
	}

	if err := store.ClearScores("2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if high, _ := store.HighScore("2048"); high != 0 {
		t.Errorf("HighScore() after clear = %d, want 0", high)
	}
	if high, _ := store.HighScore("2048_5x5"); high != 900 {
		t.Errorf("clearing one board touched another: %d", high)
	}
}

func TestStoreSaveResult(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(Result{GameID: "2048", Score: 2400, MaxTile: 256, Moves: 180}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, err := store.SaveResult(Result{GameID: "2048", Score: 21000, MaxTile: 2048, Moves: 950, Won: true}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	top := scores[0]
	if top.Score != 21000 || top.MaxTile != 2048 || top.Moves != 950 || !top.Won {
		t.Errorf("Top entry = %+v", top)
	}
	if scores[1].Won {
		t.Error("Second entry should not be a win")
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestStoreSaveResultRejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name string
		r    Result
	}{
		{"empty game id", Result{Score: 10}},
		{"negative score", Result{GameID: "2048", Score: -4}},
		{"negative moves", Result{GameID: "2048", Moves: -1}},
		{"max tile not a power of two", Result{GameID: "2048", Score: 8, MaxTile: 12}},
		{"max tile of one", Result{GameID: "2048", MaxTile: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.SaveResult(tt.r); !errors.Is(err, ErrInvalidResult) {
				t.Errorf("SaveResult(%+v) error = %v, want ErrInvalidResult", tt.r, err)
			}
		})
	}

	if scores, _ := store.AllScores("2048"); len(scores) != 0 {
		t.Errorf("invalid results were stored: %+v", scores)
	}
}

func TestStoreMigratesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	// A database that only ran the first migration, with one score in it.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	for _, stmt := range []string{
		migrations[0],
		"PRAGMA user_version = 1",
		"INSERT INTO scores (game_id, score) VALUES ('2048', 512)",
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup %q failed: %v", stmt, err)
		}
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if v, err := store.SchemaVersion(); err != nil || v != len(migrations) {
		t.Fatalf("SchemaVersion() = %d, %v, want %d", v, err, len(migrations))
	}
	if _, err := store.SaveResult(Result{GameID: "2048", Score: 1024, MaxTile: 128, Moves: 90}); err != nil {
		t.Fatalf("SaveResult() after migration failed: %v", err)
	}

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[1].Score != 512 || scores[1].MaxTile != 0 || scores[0].MaxTile != 128 {
		t.Errorf("scores after migration = %+v", scores)
	}
}

func TestStoreRejectsNewerSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "future.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	db.Close()

	if store, err := Open(dbPath); err == nil {
		store.Close()
		t.Error("Open() accepted a database from a newer version")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", empty)
	}

	store.SaveResult(Result{GameID: "2048", Score: 100, MaxTile: 64})
	store.SaveResult(Result{GameID: "2048", Score: 300, MaxTile: 2048, Won: true})
	store.SaveResult(Result{GameID: "2048_3x3", Score: 50, MaxTile: 32})

	stats, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.MaxTile != 2048 || stats.Wins != 1 {
		t.Errorf("MaxTile = %d, Wins = %d", stats.MaxTile, stats.Wins)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["2048_3x3"].HighScore != 50 || all["2048_3x3"].MaxTile != 32 {
		t.Errorf("3x3 stats = %+v", all["2048_3x3"])
	}
}
