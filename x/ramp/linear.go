// Package ramp implements caller-driven integer level ramps, used for
// fading PWM duty without floating point or goroutines.
package ramp

import (
	"time"

	"pca9685-go/x/mathx"
)

// Step applies the new level in [0..top].
type Step func(level uint16)

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear runs a synchronous linear ramp from cur to to over duration in the
// given number of steps, distributing rounding error so the endpoint is
// exact. steps==0 or duration<=0 snaps straight to 'to'.
func Linear(cur, to, top uint16, duration time.Duration, steps uint16, tick Tick, set Step) {
	if steps == 0 || duration <= 0 {
		set(mathx.Min(to, top))
		return
	}
	d := int32(to) - int32(cur)
	st := int32(steps)
	acc := int32(0)
	cur32 := int32(cur)
	stepDur := duration / time.Duration(steps)
	if stepDur <= 0 {
		stepDur = time.Millisecond
	}

	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return
		}
		acc += d
		inc := acc / st
		if inc != 0 {
			acc -= inc * st
			cur32 = mathx.Clamp(cur32+inc, 0, int32(top))
			set(uint16(cur32))
		}
	}
	if !tick(stepDur) {
		return
	}
	set(mathx.Min(to, top))
}
