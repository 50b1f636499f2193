package engine

import (
	"testing"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

func TestTimeManager(t *testing.T) {
	tests := []struct {
		name         string
		limits       TimeLimits
		ply          int
		wantOptimum  time.Duration
		wantMoveTime time.Duration
	}{
		{
			name:         "movetime",
			limits:       TimeLimits{MoveTime: 300 * time.Millisecond},
			wantOptimum:  300 * time.Millisecond,
			wantMoveTime: 300 * time.Millisecond,
		},
		{
			name:         "depth only",
			limits:       TimeLimits{Depth: 5},
			wantOptimum:  time.Hour,
			wantMoveTime: 0,
		},
		{
			name:         "clock",
			limits:       TimeLimits{Time: [2]time.Duration{90 * time.Second, time.Second}, MovesToGo: 30},
			ply:          20,
			wantOptimum:  3 * time.Second,
			wantMoveTime: 3 * time.Second,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tm := NewTimeManager()
			tm.Init(tc.limits, board.White, tc.ply)
			if tm.OptimumTime() != tc.wantOptimum {
				t.Errorf("optimum = %v, want %v", tm.OptimumTime(), tc.wantOptimum)
			}
			if tm.MaximumTime() < tm.OptimumTime() {
				t.Errorf("maximum %v below optimum %v", tm.MaximumTime(), tm.OptimumTime())
			}
			sl := tm.Limits(tc.limits, false)
			if sl.MoveTime != tc.wantMoveTime || sl.Depth != tc.limits.Depth {
				t.Errorf("limits = %+v", sl)
			}
		})
	}
}
