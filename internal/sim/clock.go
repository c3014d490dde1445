package sim

import "time"

// FrameClock reports time in whole frames from a fixed origin. Headless runs
// use it so the trigger cooldown is measured in simulated rather than wall
// time.
type FrameClock struct {
	Origin time.Time
	Step   time.Duration

	frame int
}

func NewFrameClock(step time.Duration) *FrameClock {
	return &FrameClock{Origin: time.Unix(0, 0).UTC(), Step: step}
}

func (c *FrameClock) BeginFrame(frame int) { c.frame = frame }

func (c *FrameClock) Now() time.Time {
	return c.Origin.Add(time.Duration(c.frame) * c.Step)
}
