package board

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func bitsAt(squares ...Square) Bitboard {
	var bb Bitboard
	for _, sq := range squares {
		bb = bb.Set(sq)
	}
	return bb
}

func TestEmptyBoardTargetCounts(t *testing.T) {
	tests := []struct {
		name string
		gen  func(Positions, Square) Bitboard
		sq   Square
		want int
	}{
		{"rook a1", RookTargets, A1, 14},
		{"rook h8", RookTargets, H8, 14},
		{"bishop a1", BishopTargets, A1, 7},
		{"bishop h1", BishopTargets, H1, 7},
		{"queen a8", QueenTargets, A8, 21},
		{"queen h1", QueenTargets, H1, 21},
		{"knight a1", KnightTargets, A1, 2},
		{"knight h8", KnightTargets, H8, 2},
		{"knight d4", KnightTargets, D4, 8},
		{"king d4", KingTargets, D4, 8},
		{"king a1", KingTargets, A1, 3},
		{"king h5", KingTargets, H5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := NewPositions(SquareBB(tc.sq), Empty)
			bb := tc.gen(pos, tc.sq)
			if got := bb.PopCount(); got != tc.want {
				t.Errorf("got %d targets, want %d\n%v", got, tc.want, bb)
			}
			if bb.IsSet(tc.sq) {
				t.Errorf("source square included")
			}
		})
	}
}

func TestSliderFixtures(t *testing.T) {
	tests := []struct {
		name      string
		gen       func(Positions, Square) Bitboard
		sq        Square
		mine, opp Bitboard
		want      Bitboard
	}{
		{
			name: "bishop",
			gen:  BishopTargets,
			sq:   NewSquare(2, 2),
			mine: bitsAt(55, 54, 4),
			opp:  bitsAt(8, 9),
			want: 35257554307584,
		},
		{
			name: "queen",
			gen:  QueenTargets,
			sq:   NewSquare(2, 2),
			mine: bitsAt(23, 24, 55, 54, 4),
			opp:  bitsAt(8, 9, 52),
			want: 0x40424150e7b0e04,
		},
		{
			name: "rook",
			gen:  RookTargets,
			sq:   NewSquare(4, 1),
			mine: bitsAt(15, 14),
			opp:  bitsAt(8, 9, 52),
			want: 4521260802387472,
		},
		{
			name: "knight",
			gen:  KnightTargets,
			sq:   NewSquare(6, 6),
			want: 0x100010a000000000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.gen(NewPositions(tc.mine, tc.opp), tc.sq)
			if got != tc.want {
				t.Errorf("got %#x, want %#x\n%v", uint64(got), uint64(tc.want), got)
			}
		})
	}
}

func TestSlidersMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		sq := Square(rng.Intn(64))
		occ := Bitboard(rng.Uint64()&rng.Uint64()) &^ SquareBB(sq)
		mine := occ & Bitboard(rng.Uint64())
		opp := occ &^ mine
		pos := NewPositions(mine, opp)

		wantRook := Bitboard(dragontoothmg.CalculateRookMoveBitboard(uint8(sq), uint64(occ))) &^ mine
		if got := RookTargets(pos, sq); got != wantRook {
			t.Fatalf("rook on %v, occ %#x: got %#x, want %#x", sq, uint64(occ), uint64(got), uint64(wantRook))
		}

		wantBishop := Bitboard(dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), uint64(occ))) &^ mine
		if got := BishopTargets(pos, sq); got != wantBishop {
			t.Fatalf("bishop on %v, occ %#x: got %#x, want %#x", sq, uint64(occ), uint64(got), uint64(wantBishop))
		}
	}
}

func TestLeapersStayOnBoard(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		for _, bb := range []Bitboard{KnightAttacks(sq), KingAttacks(sq)} {
			for rest := bb; rest != 0; {
				to := rest.PopLSB()
				df := to.File() - sq.File()
				dr := to.Rank() - sq.Rank()
				if df < -2 || df > 2 || dr < -2 || dr > 2 {
					t.Fatalf("%v reaches %v across the board edge", sq, to)
				}
			}
		}
	}
}
