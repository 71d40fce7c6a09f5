package app

import "time"

const defaultClickTime = 400 * time.Millisecond

// cell is a terminal cell position.
type cell struct {
	X, Y int
}

func (c cell) distance(o cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// clickTracker counts rapid clicks at nearly the same cell. The count runs
// 1, 2, 3 and then starts again at 1.
type clickTracker struct {
	maxTime     time.Duration
	maxDistance int

	lastPos   cell
	lastTime  time.Time
	lastCount int
}

func newClickTracker(maxTime time.Duration, maxDistance int) *clickTracker {
	return &clickTracker{maxTime: maxTime, maxDistance: maxDistance}
}

// record registers a press and returns its click count. A zero time uses
// the current time.
func (t *clickTracker) record(pos cell, at time.Time) int {
	if at.IsZero() {
		at = time.Now()
	}
	if t.continues(pos, at) {
		t.lastCount++
		if t.lastCount > 3 {
			t.lastCount = 1
		}
	} else {
		t.lastCount = 1
	}
	t.lastPos = pos
	t.lastTime = at
	return t.lastCount
}

func (t *clickTracker) continues(pos cell, at time.Time) bool {
	if t.lastCount == 0 {
		return false
	}
	elapsed := at.Sub(t.lastTime)
	if elapsed < 0 || elapsed > t.maxTime {
		return false
	}
	return pos.distance(t.lastPos) <= t.maxDistance
}

func (t *clickTracker) reset() {
	*t = clickTracker{maxTime: t.maxTime, maxDistance: t.maxDistance}
}
