package control

import "github.com/san-kum/raindrops/internal/dynamo"

// Periodic wraps an adapter and adds a trigger on frame 0 and then every
// Every frames. Triggers from the wrapped adapter pass through unchanged.
type Periodic struct {
	dynamo.InputAdapter
	Every int

	frame int
	last  int
}

func NewPeriodic(in dynamo.InputAdapter, every int) *Periodic {
	return &Periodic{InputAdapter: in, Every: every, last: -1}
}

func (p *Periodic) BeginFrame(frame int) {
	p.frame = frame
	if fa, ok := p.InputAdapter.(dynamo.FrameAware); ok {
		fa.BeginFrame(frame)
	}
}

func (p *Periodic) PollTrigger() bool {
	inner := p.InputAdapter.PollTrigger()
	if p.frame == p.last {
		return inner
	}
	if p.frame == 0 || (p.Every > 0 && p.frame%p.Every == 0) {
		p.last = p.frame
		return true
	}
	return inner
}
