package sim

// Clock is the elapsed simulation time of one controller. It only moves
// forward. Time is kept as a tick count times the step so a step that
// divides an anchor time lands on it exactly.
type Clock struct {
	base  float64
	step  float64
	ticks int64
	total int64
}

// Now returns the elapsed time in seconds.
func (c *Clock) Now() float64 {
	return c.base + float64(c.ticks)*c.step
}

// Advance moves the clock forward by dt. Non-positive steps are ignored.
func (c *Clock) Advance(dt float64) {
	if !(dt > 0) {
		return
	}
	if dt != c.step {
		c.base = c.Now()
		c.step = dt
		c.ticks = 0
	}
	c.ticks++
	c.total++
}

// Ticks returns how many times the clock has advanced since the last Reset.
func (c *Clock) Ticks() int64 { return c.total }

// Reset returns the clock to zero.
func (c *Clock) Reset() {
	*c = Clock{}
}
