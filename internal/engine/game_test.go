package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestGameSelfPlay(t *testing.T) {
	g := NewGame(NewEngine(1<<14), testParams(1), testParams(2))
	g.MaxPlies = 6

	steps := 0
	for g.Step() {
		steps++
	}
	if steps != 6 || len(g.History()) != 6 {
		t.Fatalf("played %d plies, history %d, want 6", steps, len(g.History()))
	}

	rec := g.Record()
	if rec.StartFEN != board.StartFEN || len(rec.Moves) != 6 || rec.Result != "*" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if !strings.HasPrefix(rec.SAN, "1. ") || !strings.Contains(rec.SAN, " 3. ") {
		t.Errorf("movetext %q", rec.SAN)
	}
	t.Log(rec.SAN)
	t.Log(g)
}

func TestGameEndsInMate(t *testing.T) {
	b := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	g := NewGameFrom(NewEngine(1<<12), b, testParams(2), testParams(2))

	if status := g.Run(); status != board.Checkmate {
		t.Fatalf("Run() = %v, want checkmate", status)
	}
	if got := g.Result(); got != "1-0" {
		t.Errorf("Result() = %q, want 1-0", got)
	}
	if rec := g.Record(); rec.SAN != "1. Ra8#" {
		t.Errorf("movetext %q, want 1. Ra8#", rec.SAN)
	}
}

func TestGameUserMove(t *testing.T) {
	g := NewGame(NewEngine(1<<12), testParams(1), testParams(1))

	if err := g.Move(board.NewMove(board.E2, board.E5)); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("e2e5: err = %v, want ErrIllegalMove", err)
	}
	if err := g.Move(board.NewMove(board.E7, board.E5)); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("black move with white to play: err = %v", err)
	}
	if err := g.Move(board.NewMove(board.E2, board.E4)); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if g.Params() != g.Black {
		t.Error("black params not selected after white's move")
	}
	if !g.Step() {
		t.Fatal("engine did not reply")
	}
	if b := g.Board(); b.Turn() != board.White {
		t.Error("turn did not pass back to white")
	}
}

func TestMovetextFromBlack(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/4P3/4K3 b - - 0 1")
	moves := []board.Move{
		board.NewMove(board.E8, board.D7),
		board.NewMove(board.E2, board.E4),
	}
	if got := Movetext(b, moves); got != "1... Kd7 2. e4" {
		t.Errorf("Movetext = %q", got)
	}
}
