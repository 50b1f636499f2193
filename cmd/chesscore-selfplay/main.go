// chesscore-selfplay plays the engine against itself and records the games.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/storage"
)

type config struct {
	fen          string
	white, black string
	games        int
	randomPlies  int
	maxPlies     int
	moveTime     time.Duration
	parallel     bool
	hashMB       int
	save         bool
	verbose      bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.fen, "fen", board.StartFEN, "starting position")
	flag.StringVar(&cfg.white, "white", "default", "params profile for White")
	flag.StringVar(&cfg.black, "black", "default", "params profile for Black")
	flag.IntVar(&cfg.games, "games", 1, "number of games to play")
	flag.IntVar(&cfg.randomPlies, "randomplies", 0,
		"random legal plies played before each game; the search is deterministic, so with 0 every game repeats the first")
	flag.IntVar(&cfg.maxPlies, "maxplies", 200, "adjourn a game after this many plies (0 = no limit)")
	flag.DurationVar(&cfg.moveTime, "movetime", 0, "time per move (0 = fixed depth)")
	flag.BoolVar(&cfg.parallel, "parallel", false, "search root moves in parallel")
	flag.IntVar(&cfg.hashMB, "hash", 64, "position cache size in MB")
	flag.BoolVar(&cfg.save, "save", true, "store finished games in the database")
	flag.BoolVar(&cfg.verbose, "v", false, "print the board after every move")
	flag.Parse()

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run plays the games. The database is closed before it returns.
func run(cfg config, out io.Writer) error {
	start, err := board.ParseFEN(cfg.fen)
	if err != nil {
		return err
	}

	store, err := storage.NewStorage()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	wp, err := store.LoadParams(cfg.white)
	if err != nil {
		return fmt.Errorf("white profile: %w", err)
	}
	bp, err := store.LoadParams(cfg.black)
	if err != nil {
		return fmt.Errorf("black profile: %w", err)
	}

	eng := engine.NewEngine(engine.CacheEntriesForMB(cfg.hashMB))
	for i := 0; i < cfg.games; i++ {
		opening := randomOpening(start, cfg.randomPlies, int64(i+1))
		g := engine.NewGameFrom(eng, opening, wp, bp)
		g.MaxPlies = cfg.maxPlies
		g.Limits = engine.SearchLimits{MoveTime: cfg.moveTime, Parallel: cfg.parallel}

		began := time.Now()
		for g.Step() {
			if cfg.verbose {
				fmt.Fprintln(out, g)
			}
		}

		rec := g.Record()
		fmt.Fprintf(out, "Game %d: [%s] %s %s (%v)\n",
			i+1, rec.StartFEN, rec.SAN, rec.Result, time.Since(began).Round(time.Millisecond))

		if cfg.save {
			id, err := store.SaveGame(rec)
			if err != nil {
				log.Printf("saving game: %v", err)
				continue
			}
			log.Printf("saved game %d", id)
		}
		eng.Clear()
	}

	stats, err := store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Played %d, White %d, Black %d, Draws %d, Unfinished %d, White score %.1f%%\n",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws, stats.Unfinished, stats.WhiteScore())
	return nil
}

// randomOpening plays up to plies uniformly random legal moves from start.
// The same seed always yields the same position. It stops early when the
// side to move has no legal move.
func randomOpening(start board.Board, plies int, seed int64) board.Board {
	rng := rand.New(rand.NewSource(seed))
	b := start
	for i := 0; i < plies; i++ {
		moves := b.LegalMoves()
		if moves.Len() == 0 {
			break
		}
		b.Apply(moves.Get(rng.Intn(moves.Len())))
	}
	return b
}
