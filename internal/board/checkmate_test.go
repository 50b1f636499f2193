package board

import "testing"

func TestCheckmatePositions(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want Status
	}{
		{"back rank", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", Checkmate},
		{"king takes rook", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", Ongoing},
		{"smothered", "6rk/5Npp/8/8/8/8/8/K7 b - - 0 1", Checkmate},
		{"cornered king", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustFEN(t, tc.fen)
			moves := b.LegalMoves()
			t.Logf("%s: %d legal moves", tc.name, moves.Len())
			if got := b.Status(); got != tc.want {
				t.Errorf("Status() = %v, want %v", got, tc.want)
			}
		})
	}
}
