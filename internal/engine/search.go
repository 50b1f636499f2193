package engine

import (
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesscore/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
)

var errStopped = errors.New("search stopped")

// Searcher runs a depth-limited search of one position with one Params.
type Searcher struct {
	params   *Params
	cache    *Cache
	nodes    atomic.Uint64
	stopFlag *atomic.Bool
	deadline time.Time
	workers  int
}

// NewSearcher creates a searcher. A zero deadline means no time limit.
func NewSearcher(p *Params, cache *Cache, stopFlag *atomic.Bool, deadline time.Time) *Searcher {
	return &Searcher{
		params:   p,
		cache:    cache,
		stopFlag: stopFlag,
		deadline: deadline,
	}
}

func (s *Searcher) newWorker() *Worker {
	s.workers++
	return NewWorker(s.workers, s.params, s.cache, &s.nodes, s.stopFlag, s.deadline)
}

// Nodes returns the number of nodes visited so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes.Load()
}

// Stop signals the search to stop.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// IsStopped returns true if the search has been stopped.
func (s *Searcher) IsStopped() bool {
	return s.stopFlag.Load()
}

// Search scores every root move of b at depth and returns the first best one
// in move order. ok is false when the side to move has no legal move; the
// score is then the mate or stalemate value. When parallel is set, root
// children are searched concurrently with full windows.
func (s *Searcher) Search(b *board.Board, depth int, parallel bool) (move board.Move, score int, ok bool) {
	w := s.newWorker()
	list := w.children(b, depth)

	roots := list[:0]
	for _, c := range list {
		if b.CastleSafe(c.move) {
			roots = append(roots, c)
		}
	}
	if len(roots) == 0 {
		return board.NoMove, terminalScore(b, depth), false
	}

	if parallel && len(roots) > 1 {
		return s.searchParallel(b, roots, depth)
	}

	maximizing := b.Turn() == board.White
	alpha, beta := -Infinity, Infinity
	best, bestIdx := Infinity, 0
	if maximizing {
		best = -Infinity
	}
	for i := range roots {
		v := w.minimax(&roots[i].board, depth-1, alpha, beta)
		if maximizing && v > best || !maximizing && v < best {
			best, bestIdx = v, i
		}
		if maximizing {
			alpha = max(alpha, v)
		} else {
			beta = min(beta, v)
		}
	}
	return roots[bestIdx].move, best, true
}

func (s *Searcher) searchParallel(b *board.Board, roots []child, depth int) (board.Move, int, bool) {
	scores := make([]int, len(roots))
	workers := make([]*Worker, len(roots))
	for i := range roots {
		workers[i] = s.newWorker()
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range roots {
		g.Go(func() error {
			w := workers[i]
			if w.stopped() {
				return errStopped
			}
			scores[i] = w.minimax(&roots[i].board, depth-1, -Infinity, Infinity)
			return nil
		})
	}
	// A stopped search is discarded by the caller.
	_ = g.Wait()

	maximizing := b.Turn() == board.White
	bestIdx := 0
	for i, v := range scores {
		if maximizing && v > scores[bestIdx] || !maximizing && v < scores[bestIdx] {
			bestIdx = i
		}
	}
	return roots[bestIdx].move, scores[bestIdx], true
}
