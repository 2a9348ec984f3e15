// Package pacing caps the frame rate of a render loop.
package pacing

import "time"

// Limiter sleeps between frames to hold a target rate.
type Limiter struct {
	limit int
	next  time.Time
}

// NewLimiter returns a limiter for limit frames per second; 0 is uncapped.
func NewLimiter(limit int) *Limiter {
	return &Limiter{limit: max(limit, 0)}
}

func (l *Limiter) Limit() int { return l.limit }

// SetLimit changes the target rate and restarts the schedule.
func (l *Limiter) SetLimit(limit int) {
	l.limit = max(limit, 0)
	l.next = time.Time{}
}

// Interval is the frame period, 0 when uncapped.
func (l *Limiter) Interval() time.Duration {
	if l.limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(l.limit)
}

// Wait blocks until the next frame is due. It sleeps for most of the
// remaining time and spins for the last 200µs.
func (l *Limiter) Wait() {
	target := l.Interval()
	if target == 0 {
		l.next = time.Time{}
		return
	}

	if l.next.IsZero() {
		l.next = time.Now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(l.next); late > target {
		l.next = time.Now().Add(target)
	}
}
