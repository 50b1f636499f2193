package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
)

func TestRandomOpening(t *testing.T) {
	start := board.NewBoard()

	if got := randomOpening(start, 0, 1); got != start {
		t.Error("zero plies changed the position")
	}

	a := randomOpening(start, 6, 1)
	if again := randomOpening(start, 6, 1); again != a {
		t.Error("same seed gave different openings")
	}

	seen := map[string]bool{}
	for seed := int64(1); seed <= 8; seed++ {
		b := randomOpening(start, 6, seed)
		if b.Turn() != board.White {
			t.Errorf("seed %d: six plies left %v to move", seed, b.Turn())
		}
		seen[b.FEN()] = true
	}
	if len(seen) < 2 {
		t.Errorf("eight seeds gave %d distinct openings", len(seen))
	}

	mated, err := board.ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := randomOpening(mated, 4, 1); got != mated {
		t.Error("moved in a mated position")
	}
}

func TestRunClosesDatabase(t *testing.T) {
	t.Setenv(storage.EnvDataDir, t.TempDir())

	store, err := storage.NewStorage()
	if err != nil {
		t.Fatal(err)
	}
	fast := engine.DefaultParams()
	fast.Depth = 1
	if err := store.SaveParams("fast", fast); err != nil {
		t.Fatal(err)
	}
	store.Close()

	var out bytes.Buffer
	cfg := config{
		fen:         board.StartFEN,
		white:       "fast",
		black:       "fast",
		games:       2,
		randomPlies: 4,
		maxPlies:    4,
		hashMB:      1,
		save:        true,
	}
	if err := run(cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Played 2") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}

	// Badger holds a directory lock until Close.
	store, err = storage.NewStorage()
	if err != nil {
		t.Fatalf("database still locked after run: %v", err)
	}
	defer store.Close()

	games, err := store.Games(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 || games[0].StartFEN == games[1].StartFEN {
		t.Errorf("want two games from different openings, got %+v", games)
	}

	cfg.fen = "not a fen"
	if err := run(cfg, &out); err == nil {
		t.Error("bad FEN accepted")
	}
}
