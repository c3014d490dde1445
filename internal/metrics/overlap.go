package metrics

import "github.com/san-kum/raindrops/internal/dynamo"

// Overlap is the fraction of frames in which no pair of particles sat closer
// than the rest distance after relaxation. 1 means the separation constraint
// always held.
type Overlap struct {
	name       string
	rest       float64
	violations int
	samples    int
	worst      int
}

func NewOverlap(rest float64) *Overlap {
	return &Overlap{name: "separation", rest: rest}
}

func (o *Overlap) Name() string { return o.name }

func (o *Overlap) Observe(s *dynamo.Snapshot) {
	o.samples++
	n := s.Overlaps(o.rest)
	if n > 0 {
		o.violations++
	}
	if n > o.worst {
		o.worst = n
	}
}

func (o *Overlap) Value() float64 {
	if o.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(o.violations)/float64(o.samples)
}

// Worst is the largest number of overlapping pairs seen in one frame.
func (o *Overlap) Worst() int { return o.worst }

func (o *Overlap) Reset() {
	o.violations = 0
	o.samples = 0
	o.worst = 0
}
