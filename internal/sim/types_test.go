package sim

import (
	"testing"
	"time"

	"github.com/san-kum/raindrops/internal/dynamo"
)

func TestTriggerHandler(t *testing.T) {
	h := NewTriggerHandler(800 * time.Millisecond)
	t0 := time.Unix(0, 0)

	if !h.Accept(t0) {
		t.Fatal("first trigger must be accepted")
	}
	if h.Accept(t0.Add(799 * time.Millisecond)) {
		t.Error("trigger inside cooldown accepted")
	}
	if last, _ := h.Last(); !last.Equal(t0) {
		t.Errorf("dropped trigger moved the gate to %v", last)
	}
	if !h.Accept(t0.Add(800 * time.Millisecond)) {
		t.Error("trigger at cooldown rejected")
	}

	h.Reset()
	if _, ok := h.Last(); ok {
		t.Error("Reset did not clear the gate")
	}
	if !h.Accept(t0) {
		t.Error("first trigger after Reset must be accepted")
	}
}

func TestFrameClock(t *testing.T) {
	c := NewFrameClock(time.Second / 60)
	start := c.Now()

	c.BeginFrame(60)
	if got := c.Now().Sub(start); got != 60*(time.Second/60) {
		t.Errorf("60 frames elapsed %v", got)
	}
}

func TestSnapshotPool(t *testing.T) {
	pool := NewSnapshotPool(4)

	s1 := pool.Get()
	s1.Frame = 7
	s1.Particles = append(s1.Particles, dynamo.ParticleView{Pos: dynamo.Vec{1, 2}})
	pool.Put(s1)

	s2 := pool.Get()
	if s2.Frame != 0 || len(s2.Particles) != 0 {
		t.Error("pool did not reset snapshot")
	}
}

func TestClone(t *testing.T) {
	src := &dynamo.Snapshot{Frame: 3, Particles: []dynamo.ParticleView{{Pos: dynamo.Vec{1, 2}}}}
	c := Clone(src)

	c.Particles[0].Pos = dynamo.Vec{9, 9}
	if src.Particles[0].Pos != (dynamo.Vec{1, 2}) {
		t.Error("Clone shares the particle buffer")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestTransitionString(t *testing.T) {
	for tr, want := range map[Transition]string{
		TransitionNone:    "none",
		TransitionSpawned: "spawned",
		TransitionExited:  "exited",
	} {
		if got := tr.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", tr, got, want)
		}
	}
}
