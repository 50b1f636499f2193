package engine

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// SearchInfo contains information about a completed search depth.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	Move     board.Move
	HashFull int // Permille of cache used
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = Params.Depth)
	MoveTime time.Duration // Time for this move (0 = no limit)
	Parallel bool          // Score root moves concurrently
}

// Result is the outcome of a search. OK is false when the side to move has
// no legal move; telling checkmate from stalemate is left to the caller.
type Result struct {
	Move  board.Move
	Score int
	Depth int
	Nodes uint64
	OK    bool
}

// Engine searches positions with a cache shared across searches.
type Engine struct {
	cache    *Cache
	stopFlag atomic.Bool

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine whose cache holds cacheEntries positions.
func NewEngine(cacheEntries int) *Engine {
	return &Engine{cache: NewCache(cacheEntries)}
}

// Cache returns the engine's evaluation cache.
func (e *Engine) Cache() *Cache {
	return e.cache
}

// Search finds the best move for the side to move in b. It deepens
// iteratively up to the depth limit and keeps the move of the last depth
// that completed before the deadline or a Stop.
func (e *Engine) Search(b *board.Board, p *Params, limits SearchLimits) Result {
	e.stopFlag.Store(false)
	return e.search(b, p, limits)
}

// Start runs Search on a copy of b in a new goroutine. The stop flag is reset
// before Start returns, so a following Stop always reaches this search.
func (e *Engine) Start(b board.Board, p *Params, limits SearchLimits) <-chan Result {
	e.stopFlag.Store(false)
	done := make(chan Result, 1)
	go func() {
		done <- e.search(&b, p, limits)
	}()
	return done
}

func (e *Engine) search(b *board.Board, p *Params, limits SearchLimits) Result {
	startTime := time.Now()
	var deadline time.Time
	if limits.MoveTime > 0 {
		deadline = startTime.Add(limits.MoveTime)
	}
	s := NewSearcher(p, e.cache, &e.stopFlag, deadline)

	maxDepth := p.Depth
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}
	maxDepth = min(max(maxDepth, 1), MaxDepth)

	var res Result
	for depth := 1; depth <= maxDepth; depth++ {
		move, score, ok := s.Search(b, depth, limits.Parallel)
		if !ok {
			return Result{Score: score, Nodes: s.Nodes()}
		}

		if s.IsStopped() {
			// Every root candidate is legal, so an interrupted first
			// iteration still yields a playable move.
			if !res.OK {
				res = Result{Move: move, Score: score, OK: true}
			}
			break
		}

		res = Result{Move: move, Score: score, Depth: depth, OK: true}

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    s.Nodes(),
				Time:     time.Since(startTime),
				Move:     move,
				HashFull: e.cache.HashFull(),
			})
		}

		// Early termination: found mate
		if score >= MateScore || score <= -MateScore {
			break
		}

		// If we've used more than half the time, don't start another iteration
		if !deadline.IsZero() {
			elapsed := time.Since(startTime)
			if limits.MoveTime-elapsed < elapsed {
				break
			}
		}
	}

	res.Nodes = s.Nodes()
	return res
}

// Play searches b with p and applies the chosen move. It returns false,
// leaving b untouched, when there is no legal move.
func (e *Engine) Play(b *board.Board, p *Params) bool {
	res := e.Search(b, p, SearchLimits{})
	if !res.OK {
		return false
	}
	return b.Play(res.Move)
}

// Stop stops the current search.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
}

// Clear clears the cache.
func (e *Engine) Clear() {
	e.cache.Clear()
}

// Perft counts the leaf nodes of the legal move tree (for debugging move
// generation).
func (e *Engine) Perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		child := b.Child(m)
		nodes += e.Perft(&child, depth-1)
	}
	return nodes
}

// IsMate reports whether score is a forced mate for either side.
func IsMate(score int) bool {
	return score >= MateScore || score <= -MateScore
}

// MatePlies returns the number of plies from the root of a search of the
// given depth to the mate that score announces.
func MatePlies(score, depth int) int {
	if score < 0 {
		score = -score
	}
	return depth - (score - MateScore)
}

// ScoreToString converts a score from a search of the given depth to a
// human-readable string.
func ScoreToString(score, depth int) string {
	if IsMate(score) {
		mateIn := (MatePlies(score, depth) + 1) / 2
		if score > 0 {
			return "Mate in " + strconv.Itoa(mateIn)
		}
		return "Mated in " + strconv.Itoa(mateIn)
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return sign + strconv.Itoa(score/100) + "." + strconv.Itoa(score%100/10) + strconv.Itoa(score%10)
}
