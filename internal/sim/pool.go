package sim

import (
	"sync"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// SnapshotPool recycles snapshot buffers between frames.
type SnapshotPool struct {
	pool     sync.Pool
	capacity int
}

func NewSnapshotPool(capacity int) *SnapshotPool {
	p := &SnapshotPool{capacity: capacity}
	p.pool.New = func() interface{} {
		return &dynamo.Snapshot{Particles: make([]dynamo.ParticleView, 0, p.capacity)}
	}
	return p
}

func (p *SnapshotPool) Get() *dynamo.Snapshot {
	return p.pool.Get().(*dynamo.Snapshot)
}

// Put returns s to the pool. s must not be used afterwards.
func (p *SnapshotPool) Put(s *dynamo.Snapshot) {
	if s == nil {
		return
	}
	s.Frame = 0
	s.Canvas = dynamo.Size{}
	s.Gravity = dynamo.Vec{}
	s.Particles = s.Particles[:0]
	p.pool.Put(s)
}

// Clone copies s into a snapshot that does not share the particle buffer.
func Clone(s *dynamo.Snapshot) *dynamo.Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Particles = append([]dynamo.ParticleView(nil), s.Particles...)
	return &c
}
