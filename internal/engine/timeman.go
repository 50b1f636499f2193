package engine

import (
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// TimeLimits contains the clock arguments of a "go" command.
type TimeLimits struct {
	Time      [2]time.Duration // remaining time, indexed by color
	Inc       [2]time.Duration // increment per move, indexed by color
	MovesToGo int              // 0 = sudden death
	MoveTime  time.Duration    // overrides the clock when set
	Depth     int
	Infinite  bool
}

// TimeManager turns a clock into a budget for one move.
type TimeManager struct {
	optimum   time.Duration
	maximum   time.Duration
	unbounded bool
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init computes the budget for the side us at game ply ply.
func (tm *TimeManager) Init(limits TimeLimits, us board.Color, ply int) {
	tm.unbounded = false

	if limits.MoveTime > 0 {
		tm.optimum, tm.maximum = limits.MoveTime, limits.MoveTime
		return
	}

	left := limits.Time[us]
	if limits.Infinite || left == 0 {
		tm.optimum, tm.maximum = time.Hour, time.Hour
		tm.unbounded = true
		return
	}

	mtg := limits.MovesToGo
	if mtg == 0 {
		// Expect fewer remaining moves as the game goes on.
		mtg = min(max(50-ply/4, 10), 50)
	}

	tm.optimum = left/time.Duration(mtg) + limits.Inc[us]*9/10
	if ply < 8 {
		tm.optimum = tm.optimum * 85 / 100
	}
	tm.maximum = min(tm.optimum*5, left*8/10)

	tm.optimum = max(tm.optimum, 10*time.Millisecond)
	tm.maximum = max(tm.maximum, 50*time.Millisecond)
}

// OptimumTime returns the target time for the move.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimum
}

// MaximumTime returns the hard limit for the move.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximum
}

// Limits converts the budget into search limits. Searches without a clock
// are bounded by depth only.
func (tm *TimeManager) Limits(limits TimeLimits, parallel bool) SearchLimits {
	sl := SearchLimits{Depth: limits.Depth, Parallel: parallel}
	if !tm.unbounded {
		sl.MoveTime = tm.optimum
	}
	return sl
}
