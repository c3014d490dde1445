package metrics

import "github.com/san-kum/raindrops/internal/dynamo"

// PeakCount is the largest number of particles seen in one frame.
type PeakCount struct {
	name string
	peak int
}

func NewPeakCount() *PeakCount {
	return &PeakCount{name: "peak_count"}
}

func (p *PeakCount) Name() string { return p.name }

func (p *PeakCount) Observe(s *dynamo.Snapshot) {
	if n := s.Count(); n > p.peak {
		p.peak = n
	}
}

func (p *PeakCount) Value() float64 { return float64(p.peak) }

func (p *PeakCount) Reset() { p.peak = 0 }

// ExitDuration counts the frames between the first frame with an exiting
// particle and the first frame after it with an empty canvas. While an exit
// is still in progress the frames so far are reported.
type ExitDuration struct {
	name     string
	started  bool
	finished bool
	frames   int
}

func NewExitDuration() *ExitDuration {
	return &ExitDuration{name: "exit_frames"}
}

func (e *ExitDuration) Name() string { return e.name }

func (e *ExitDuration) Observe(s *dynamo.Snapshot) {
	if e.finished {
		return
	}
	if !e.started {
		if s.ExitingCount() == 0 {
			return
		}
		e.started = true
	}
	e.frames++
	if s.Count() == 0 {
		e.finished = true
	}
}

func (e *ExitDuration) Value() float64 { return float64(e.frames) }

// Done reports whether a complete exit has been observed.
func (e *ExitDuration) Done() bool { return e.finished }

func (e *ExitDuration) Reset() {
	e.started = false
	e.finished = false
	e.frames = 0
}
