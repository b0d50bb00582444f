package engine

import "time"

// Clock reports the time spent on the current move and the time left on the
// mover's clock. A zero Remaining means the search is not bound by a clock.
type Clock interface {
	Elapsed() time.Duration
	Remaining() time.Duration
}

type stopwatch struct {
	start     time.Time
	remaining time.Duration
}

// NewClock starts a clock for one move with the given time left.
func NewClock(remaining time.Duration) Clock {
	return &stopwatch{
		start:     time.Now(),
		remaining: remaining,
	}
}

func (sw *stopwatch) Elapsed() time.Duration {
	return time.Since(sw.start)
}

func (sw *stopwatch) Remaining() time.Duration {
	if sw.remaining == 0 {
		return 0
	}
	return limitDuration(sw.remaining-sw.Elapsed(), time.Nanosecond, sw.remaining)
}
