package board

import "testing"

func playAll(t *testing.T, b Board, moves ...string) Board {
	t.Helper()
	for _, s := range moves {
		m, err := ParseMove(s, &b)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		b.Apply(m)
	}
	return b
}

func TestHashTranspositions(t *testing.T) {
	start := NewBoard()

	tests := []struct {
		name string
		a, b []string
	}{
		{"knights out and back", []string{"g1f3", "g8f6", "f3g1", "f6g8"}, nil},
		{"move order", []string{"e2e3", "d7d6", "d2d3"}, []string{"d2d3", "d7d6", "e2e3"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := playAll(t, start, tc.a...)
			b := playAll(t, start, tc.b...)
			if a.Hash() != b.Hash() {
				t.Errorf("same position hashes differ\n%v\n%v", &a, &b)
			}
		})
	}
}

func TestHashMetadata(t *testing.T) {
	start := NewBoard()
	developed := playAll(t, start, "g1f3", "g8f6", "e2e3", "b8c6", "f1e2", "c6b8")
	pushed := playAll(t, start, "e2e4")

	flipped := start
	flipped.Meta = flipped.Meta.WithTurn(Black)
	noEP := pushed
	noEP.Meta = noEP.Meta.WithoutEnPassant()

	tests := []struct {
		name string
		a, b Board
	}{
		{"side to move", start, flipped},
		{"castling right", developed, playAll(t, developed, "h1g1", "b8c6", "g1h1", "c6b8")},
		{"en passant file", pushed, noEP},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.a.Hash() == tc.b.Hash() {
				t.Errorf("hash ignores %s", tc.name)
			}
		})
	}
}

func TestHashIgnoresSlots(t *testing.T) {
	a, err := ParseFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	// Swap the two rook slots.
	b := a
	p := &b.Players[White]
	p[6], p[7] = p[7], p[6]
	if a == b {
		t.Fatal("swap had no effect")
	}
	if a.Hash() != b.Hash() {
		t.Error("hash depends on slot order")
	}
	if !a.SamePosition(&b) {
		t.Error("slot order makes positions differ")
	}
	c := b.Child(NewMove(H1, H2))
	if a.SamePosition(&c) {
		t.Error("different positions compare equal")
	}
}
