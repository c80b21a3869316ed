// Package clock keeps simulation time: a seconds-since-anchor epoch
// counter advanced through a stepped time-warp ladder, and the calendar
// formatting of that epoch for display.
package clock

// Warp multipliers in simulated seconds per wall-clock second:
// realtime, then one minute/hour/day/week/month/year per second.
var warpLadder = []float64{1, 60, 3600, 86400, 604800, 2592000, 31536000}

// Clock advances the simulation epoch by scaled frame steps.
type Clock struct {
	epoch     float64
	warpIndex int
}

// New creates a clock starting at the given epoch with 1x warp.
func New(epoch float64) *Clock {
	return &Clock{epoch: epoch}
}

// Epoch returns seconds elapsed since the anchor instant.
func (c *Clock) Epoch() float64 {
	return c.epoch
}

// Warp returns the current multiplier.
func (c *Clock) Warp() float64 {
	return warpLadder[c.warpIndex]
}

// Advance adds one frame step of dt wall-clock seconds, scaled by the
// current warp.
func (c *Clock) Advance(dt float64) {
	c.epoch += warpLadder[c.warpIndex] * dt
}

// Faster steps the warp ladder up, saturating at the top.
func (c *Clock) Faster() {
	if c.warpIndex < len(warpLadder)-1 {
		c.warpIndex++
	}
}

// Slower steps the warp ladder down, saturating at realtime.
func (c *Clock) Slower() {
	if c.warpIndex > 0 {
		c.warpIndex--
	}
}

// ResetWarp drops back to realtime.
func (c *Clock) ResetWarp() {
	c.warpIndex = 0
}
