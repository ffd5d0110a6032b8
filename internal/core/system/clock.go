package system

import "time"

// FixedStep converts wall-clock time into a whole number of fixed ticks.
// Leftover time carries over to the next Advance. When the loop falls far
// behind, at most maxCatchUp ticks are reported and the backlog is dropped.
type FixedStep struct {
	step       time.Duration
	maxCatchUp int
	last       time.Time
	acc        time.Duration
}

func NewFixedStep(step time.Duration, maxCatchUp int, start time.Time) *FixedStep {
	if maxCatchUp < 1 {
		maxCatchUp = 1
	}
	return &FixedStep{step: step, maxCatchUp: maxCatchUp, last: start}
}

// Advance reports how many ticks are due at now.
func (f *FixedStep) Advance(now time.Time) int {
	if now.After(f.last) {
		f.acc += now.Sub(f.last)
	}
	f.last = now

	n := int(f.acc / f.step)
	if n > f.maxCatchUp {
		n = f.maxCatchUp
		f.acc = 0
		return n
	}
	f.acc -= time.Duration(n) * f.step
	return n
}
