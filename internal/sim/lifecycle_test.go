package sim_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/raindrops/internal/control"
	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/physics"
	"github.com/san-kum/raindrops/internal/sim"
)

type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time          { return c.t }
func (c *stepClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var _ = Describe("Raindrop lifecycle", func() {
	var (
		s      *sim.Simulator
		clock  *stepClock
		input  *control.Static
		canvas dynamo.Size
		params dynamo.Params
	)

	BeforeEach(func() {
		var err error
		canvas = dynamo.Size{W: 800, H: 600}
		params = dynamo.DefaultParams()
		clock = &stepClock{t: time.Unix(5000, 0)}
		input = control.NewStatic(dynamo.Vec{0, 0.6}, true)
		s, err = sim.New(params, canvas, sim.WithSeed(42), sim.WithClock(clock))
		Expect(err).NotTo(HaveOccurred())
		s.SetGravity(input.Gravity(), input.TiltEnabled())
	})

	Context("when the canvas is empty", func() {
		It("spawns every particle idle on the top edge for downward gravity", func() {
			Expect(s.Trigger()).To(Equal(sim.TransitionSpawned))
			Expect(s.Len()).To(Equal(params.ParticleCount))

			for _, p := range s.Particles() {
				Expect(p.IsExiting()).To(BeFalse())
				Expect(p.Pos.Y()).To(BeNumerically("~", params.Radius/2, 1e-9))
				Expect(p.Pos.X()).To(BeNumerically(">=", params.Radius))
				Expect(p.Pos.X()).To(BeNumerically("<=", canvas.W-params.Radius))
			}

			events := s.DrainEvents()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Edge).To(Equal(dynamo.EdgeTop))
			Expect(events[0].Kind).To(Equal(dynamo.HighlightSpawn))
			Expect(events[0].Start).To(Equal(clock.Now()))
		})
	})

	Context("when the canvas holds idle particles", func() {
		BeforeEach(func() {
			Expect(s.Trigger()).To(Equal(sim.TransitionSpawned))
			for i := 0; i < 30; i++ {
				snap, err := s.Tick(input, canvas)
				Expect(err).NotTo(HaveOccurred())
				s.Release(snap)
				clock.Advance(time.Second / 60)
			}
			s.DrainEvents()
		})

		It("drops a second trigger inside the cooldown", func() {
			clock.Advance(100 * time.Millisecond)
			Expect(s.Trigger()).To(Equal(sim.TransitionNone))
			for _, p := range s.Particles() {
				Expect(p.IsExiting()).To(BeFalse())
			}
			Expect(s.DrainEvents()).To(BeEmpty())
		})

		It("sends each particle out through its own nearest edge after the cooldown", func() {
			clock.Advance(params.TriggerCooldown)

			want := make([]dynamo.Edge, s.Len())
			var tally physics.EdgeTally
			for i, p := range s.Particles() {
				want[i] = physics.NearestEdge(p.Pos, canvas)
				tally[want[i]]++
			}

			Expect(s.Trigger()).To(Equal(sim.TransitionExited))

			for i, p := range s.Particles() {
				e, ok := p.Exit()
				Expect(ok).To(BeTrue())
				Expect(e.Edge).To(Equal(want[i]))
				Expect(e.Direction().Len()).To(BeNumerically("~", 1, 1e-12))
			}

			events := s.DrainEvents()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Kind).To(Equal(dynamo.HighlightExit))
			Expect(events[0].Edge).To(Equal(tally.Majority()))
		})

		It("ignores further triggers once everything is exiting", func() {
			clock.Advance(time.Second)
			Expect(s.Trigger()).To(Equal(sim.TransitionExited))

			before := append([]physics.Particle(nil), s.Particles()...)
			clock.Advance(time.Second)
			Expect(s.Trigger()).To(Equal(sim.TransitionNone))
			Expect(s.Particles()).To(Equal(before))
		})

		It("empties the canvas and accepts a fresh spawn afterwards", func() {
			clock.Advance(time.Second)
			input.Fire()

			for i := 0; i < 600 && (i == 0 || s.Len() > 0); i++ {
				snap, err := s.Tick(input, canvas)
				Expect(err).NotTo(HaveOccurred())
				s.Release(snap)
				clock.Advance(time.Second / 60)
			}
			Expect(s.Len()).To(BeZero())

			clock.Advance(time.Second)
			Expect(s.Trigger()).To(Equal(sim.TransitionSpawned))
			Expect(s.Len()).To(Equal(params.ParticleCount))
		})
	})

	Context("when an exiting particle crosses its edge", func() {
		It("is removed only once it is a full radius past the edge", func() {
			inside := physics.NewParticle(dynamo.Vec{100, canvas.H + params.Radius - 1})
			inside.BeginExit(dynamo.EdgeBottom)
			outside := physics.NewParticle(dynamo.Vec{300, canvas.H + params.Radius + 1})
			outside.BeginExit(dynamo.EdgeBottom)

			kept, removed := physics.ApplyBoundary([]physics.Particle{inside, outside}, params.Radius, canvas)
			Expect(removed).To(Equal(1))
			Expect(kept).To(HaveLen(1))
			Expect(kept[0].Pos).To(Equal(inside.Pos))
		})
	})

	Context("when two particles overlap", func() {
		It("relaxes them to the rest distance within three iterations", func() {
			ps := []physics.Particle{
				physics.NewParticle(dynamo.Vec{200, 200}),
				physics.NewParticle(dynamo.Vec{200, 200 + params.RestDistance/2}),
			}
			physics.Relax(ps, params.RestDistance, params.RelaxIterations)
			Expect(ps[0].Pos.Sub(ps[1].Pos).Len()).To(BeNumerically("~", params.RestDistance, 1e-6))
		})
	})
})
