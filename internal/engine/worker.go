package engine

import (
	"sync/atomic"
	"time"

	"golang.org/x/exp/slices"

	"github.com/hailam/chesscore/internal/board"
)

// nodeCheckMask sets how often the clock is read: every 1024 nodes.
const nodeCheckMask = 1023

// child is a generated successor of a node.
type child struct {
	move  board.Move
	board board.Board
	key   int // presort score
}

// Worker runs minimax on one goroutine. Workers of the same search share
// the cache, node counter and stop flag.
type Worker struct {
	id     int
	params *Params

	// Children per remaining depth, reused across nodes.
	stack [MaxDepth + 1][]child

	// Shared resources
	cache    *Cache
	nodes    *atomic.Uint64
	stopFlag *atomic.Bool
	deadline time.Time
}

// NewWorker creates a worker for one search.
func NewWorker(id int, p *Params, cache *Cache, nodes *atomic.Uint64, stopFlag *atomic.Bool, deadline time.Time) *Worker {
	return &Worker{
		id:       id,
		params:   p,
		cache:    cache,
		nodes:    nodes,
		stopFlag: stopFlag,
		deadline: deadline,
	}
}

// ID returns the worker's ID.
func (w *Worker) ID() int {
	return w.id
}

// stopped returns true if search should stop.
func (w *Worker) stopped() bool {
	return w.stopFlag.Load()
}

// tick counts a node and reports whether the search must unwind.
func (w *Worker) tick() bool {
	n := w.nodes.Add(1)
	if n&nodeCheckMask == 0 && !w.deadline.IsZero() && time.Now().After(w.deadline) {
		w.stopFlag.Store(true)
	}
	return w.stopFlag.Load()
}

// children generates the legal successors of b, presorted best first for the
// side to move when depth reaches the presort depth. The returned slice is
// owned by the worker until the next call at the same depth.
func (w *Worker) children(b *board.Board, depth int) []child {
	moves := b.LegalMoves()
	list := w.stack[depth][:0]
	for _, m := range moves.Slice() {
		list = append(list, child{move: m, board: b.Child(m)})
	}
	w.stack[depth] = list

	if depth >= w.params.PresortDepth && len(list) > 1 {
		w.presort(list, depth, b.Turn())
	}
	return list
}

// presort orders list by a search two plies shallower than depth.
func (w *Worker) presort(list []child, depth int, turn board.Color) {
	shallow := max(depth-2, 0)
	for i := range list {
		list[i].key = w.minimax(&list[i].board, shallow, -Infinity, Infinity)
	}
	if turn == board.White {
		slices.SortStableFunc(list, func(a, b child) bool { return a.key > b.key })
	} else {
		slices.SortStableFunc(list, func(a, b child) bool { return a.key < b.key })
	}
}

// terminalScore scores a node without legal moves. Mates found with more
// depth remaining are closer to the root and score further from zero.
func terminalScore(b *board.Board, depth int) int {
	king, ok := b.Me().King()
	if !ok || !b.Attacked(king, b.Turn().Other()) {
		return 0
	}
	if b.Turn() == board.White {
		return -(MateScore + depth)
	}
	return MateScore + depth
}

// boundFor classifies a fail-soft result against the window it was searched in.
func boundFor(score, alpha, beta int) Bound {
	switch {
	case score <= alpha:
		return Upper
	case score >= beta:
		return Lower
	default:
		return Exact
	}
}

// minimax returns the value of b searched to depth. White maximizes and
// Black minimizes; a branch is cut as soon as beta <= alpha.
func (w *Worker) minimax(b *board.Board, depth, alpha, beta int) int {
	if w.tick() {
		return 0
	}
	if depth == 0 {
		return Evaluate(b, w.params)
	}

	if e, ok := w.cache.Probe(b, depth); ok {
		switch {
		case e.Bound == Exact,
			e.Bound == Lower && e.Score >= beta,
			e.Bound == Upper && e.Score <= alpha:
			return e.Score
		}
	}

	list := w.children(b, depth)
	if len(list) == 0 {
		return terminalScore(b, depth)
	}

	alpha0, beta0 := alpha, beta
	maximizing := b.Turn() == board.White
	best := Infinity
	if maximizing {
		best = -Infinity
	}

	for i := range list {
		score := w.minimax(&list[i].board, depth-1, alpha, beta)
		if maximizing {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}

	if !w.stopped() {
		w.cache.Store(b, depth, best, boundFor(best, alpha0, beta0))
	}
	return best
}
