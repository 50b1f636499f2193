package engine

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestCacheProbe(t *testing.T) {
	c := NewCache(16)
	b := board.NewBoard()

	if _, found := c.Probe(&b, 3); found {
		t.Error("Expected cache miss on first probe")
	}

	c.Store(&b, 3, 42, Lower)
	e, found := c.Probe(&b, 3)
	if !found {
		t.Fatal("Expected cache hit after store")
	}
	if e.Score != 42 || e.Bound != Lower || e.Depth != 3 {
		t.Errorf("Wrong entry: %+v", e)
	}

	if _, found := c.Probe(&b, 2); found {
		t.Error("entry stored at depth 3 used at depth 2")
	}

	other := b.Child(board.NewMove(board.E2, board.E4))
	if _, found := c.Probe(&other, 3); found {
		t.Error("hit for a position never stored")
	}
	t.Logf("hit rate %.1f%%", c.HitRate())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2)
	start := board.NewBoard()
	a := start.Child(board.NewMove(board.E2, board.E4))
	b := start.Child(board.NewMove(board.D2, board.D4))
	d := start.Child(board.NewMove(board.G1, board.F3))

	c.Store(&a, 1, 1, Exact)
	c.Store(&b, 1, 2, Exact)
	if _, ok := c.Probe(&a, 1); !ok {
		t.Fatal("a missing before eviction")
	}
	c.Store(&d, 1, 3, Exact)

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if _, ok := c.Probe(&b, 1); ok {
		t.Error("b should have been evicted")
	}
	for _, x := range []*board.Board{&a, &d} {
		if _, ok := c.Probe(x, 1); !ok {
			t.Errorf("%s evicted", x.FEN())
		}
	}
	if c.HashFull() != 1000 {
		t.Errorf("HashFull = %d, want 1000", c.HashFull())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}

func TestCacheSharesSlotPermutations(t *testing.T) {
	c := NewCache(16)
	a := mustFEN(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	b := a
	p := &b.Players[board.White]
	p[6], p[7] = p[7], p[6]

	c.Store(&a, 2, 17, Exact)
	e, ok := c.Probe(&b, 2)
	if !ok || e.Score != 17 {
		t.Errorf("rooks in swapped slots missed the cache: %+v ok=%v", e, ok)
	}
}

func TestBoundFor(t *testing.T) {
	tests := []struct {
		score, alpha, beta int
		want               Bound
	}{
		{-10, -10, 10, Upper},
		{10, -10, 10, Lower},
		{0, -10, 10, Exact},
		{5, -Infinity, Infinity, Exact},
	}
	for _, tc := range tests {
		if got := boundFor(tc.score, tc.alpha, tc.beta); got != tc.want {
			t.Errorf("boundFor(%d, %d, %d) = %d, want %d", tc.score, tc.alpha, tc.beta, got, tc.want)
		}
	}
}
