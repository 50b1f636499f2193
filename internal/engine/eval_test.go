package engine

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestEvaluateStartIsBalanced(t *testing.T) {
	b := board.NewBoard()
	if got := Evaluate(&b, DefaultParams()); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	// Each pair is the same position with colors swapped.
	tests := []struct {
		name         string
		white, black string
	}{
		{"pawn", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "4k3/4p3/8/8/8/8/8/4K3 b - - 0 1"},
		{"castling", "r3k3/8/8/8/8/8/8/R3K2R w KQq - 0 1", "r3k2r/8/8/8/8/8/8/R3K3 b Qkq - 0 1"},
		{"attacks", "4k3/8/3r4/8/4N3/8/8/4K3 w - - 0 1", "4k3/8/8/4n3/8/3R4/8/4K3 b - - 0 1"},
	}

	p := DefaultParams()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, b := mustFEN(t, tc.white), mustFEN(t, tc.black)
			ew, eb := Evaluate(&w, p), Evaluate(&b, p)
			t.Logf("%d vs %d", ew, eb)
			if ew != -eb {
				t.Errorf("Evaluate = %d and %d, want negatives", ew, eb)
			}
		})
	}
}

func TestEvaluateTerms(t *testing.T) {
	b := mustFEN(t, "4k3/8/3r4/8/4N3/8/8/4K3 w - - 0 1")

	only := DefaultParams()
	only.MaterialOnly = true
	base := Evaluate(&b, only)

	// Knight on e4 forks nothing but attacks the rook on d6.
	attacked, _ := exchanges(&b, board.White)
	if attacked != RookValue-KnightValue {
		t.Errorf("white attacked gain = %d, want %d", attacked, RookValue-KnightValue)
	}

	p := DefaultParams()
	p.Mobility, p.Defended = 0, 0
	p.Attacked = 100
	withAttack := Evaluate(&b, p)
	_, blackDefended := exchanges(&b, board.Black)
	blackAttacked, _ := exchanges(&b, board.Black)
	want := base + (attacked - blackAttacked)
	if withAttack != want {
		t.Errorf("Evaluate with attack weight = %d, want %d (black defended %d)", withAttack, want, blackDefended)
	}

	noKing := DefaultParams()
	noKing.KingBonus = 0
	noKing.MaterialOnly = true
	if got := Evaluate(&b, noKing); got != base {
		t.Errorf("king bonus does not cancel out: %d vs %d", got, base)
	}
}

func TestEvaluateKingBonus(t *testing.T) {
	b := board.EmptyBoard()
	if err := b.Put(board.White, board.King, board.E1); err != nil {
		t.Fatal(err)
	}
	p := DefaultParams()
	p.MaterialOnly = true
	want := p.KingBonus + p.King[0][4]
	if got := Evaluate(&b, p); got != want {
		t.Errorf("lone white king = %d, want %d", got, want)
	}
}

func TestTablesMirrorForBlack(t *testing.T) {
	p := DefaultParams()
	p.MaterialOnly = true
	p.KingBonus = 0

	w := mustFEN(t, "8/8/8/8/8/8/P7/8 w - - 0 1")
	b := mustFEN(t, "8/p7/8/8/8/8/8/8 w - - 0 1")
	if Evaluate(&w, p) != p.Pawn[1][0] || Evaluate(&b, p) != -p.Pawn[1][0] {
		t.Errorf("a2 pawn %d, a7 pawn %d, table %d", Evaluate(&w, p), Evaluate(&b, p), p.Pawn[1][0])
	}
}
