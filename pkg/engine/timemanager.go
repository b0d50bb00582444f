package engine

import (
	"context"
	"time"

	. "github.com/cosmoschess/cosmos/pkg/common"
)

type timeManager struct {
	ctx       context.Context
	clock     Clock
	limits    LimitsType
	hardLimit time.Duration
}

func newTimeManager(ctx context.Context, clock Clock, limits LimitsType,
	white bool, timeDivisor int) *timeManager {

	var tm = &timeManager{
		ctx:    ctx,
		clock:  clock,
		limits: limits,
	}
	if limits.MoveTime > 0 {
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
	} else if !limits.Infinite {
		var main = clock.Remaining()
		if main > 0 {
			var inc = limits.BlackIncrement
			if white {
				inc = limits.WhiteIncrement
			}
			tm.hardLimit = calcHardLimit(main,
				time.Duration(inc)*time.Millisecond, timeDivisor)
		}
	}
	return tm
}

func calcHardLimit(main, inc time.Duration, timeDivisor int) time.Duration {
	const MinTimeLimit = 1 * time.Millisecond
	if timeDivisor <= 0 {
		timeDivisor = 1
	}
	var hard = main/time.Duration(timeDivisor) + inc/2
	return limitDuration(hard, MinTimeLimit, maxDuration(main, MinTimeLimit))
}

// IsDone is polled inside the search after every move.
func (tm *timeManager) IsDone(nodes int64) bool {
	if tm.limits.Nodes > 0 && nodes >= int64(tm.limits.Nodes) {
		return true
	}
	select {
	case <-tm.ctx.Done():
		return true
	default:
	}
	return tm.hardLimit != 0 && tm.clock.Elapsed() > tm.hardLimit
}

// OnIterationComplete reports whether iterative deepening should stop
// after a depth completed with the given score.
func (tm *timeManager) OnIterationComplete(depth, score int) bool {
	if tm.limits.Depth != 0 && depth >= tm.limits.Depth {
		return true
	}
	if tm.limits.Infinite {
		return false
	}
	if score >= winIn(depth-5) || score <= lossIn(depth-5) {
		return true
	}
	return tm.hardLimit != 0 && 2*tm.clock.Elapsed() > tm.hardLimit
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxDuration(l, r time.Duration) time.Duration {
	if l > r {
		return l
	}
	return r
}
