package automation

import (
	"sort"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// Step changes the input at frame At. Unset fields keep their previous
// value.
type Step struct {
	At      int         `yaml:"at"`
	Gravity *[2]float64 `yaml:"gravity,omitempty"`
	Tilt    *bool       `yaml:"tilt,omitempty"`
	Trigger bool        `yaml:"trigger,omitempty"`
}

// Script replays a step timeline as an input adapter. It starts with zero
// gravity and tilt enabled.
type Script struct {
	steps   []Step
	next    int
	g       dynamo.Vec
	tilt    bool
	pending bool
}

func NewScript(steps []Step) *Script {
	sorted := append([]Step(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Script{steps: sorted, tilt: true}
}

func (s *Script) BeginFrame(frame int) {
	for s.next < len(s.steps) && s.steps[s.next].At <= frame {
		st := s.steps[s.next]
		if st.Gravity != nil {
			s.g = dynamo.Vec{st.Gravity[0], st.Gravity[1]}
		}
		if st.Tilt != nil {
			s.tilt = *st.Tilt
		}
		if st.Trigger {
			s.pending = true
		}
		s.next++
	}
}

func (s *Script) Gravity() dynamo.Vec { return s.g }
func (s *Script) TiltEnabled() bool   { return s.tilt }

func (s *Script) PollTrigger() bool {
	p := s.pending
	s.pending = false
	return p
}

// Done reports whether every step has been applied.
func (s *Script) Done() bool { return s.next >= len(s.steps) }
