package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/integrators"
	"github.com/san-kum/raindrops/internal/physics"
)

// Simulator owns the particle set and runs the per-frame pipeline. It is not
// safe for concurrent use; the front end that drives Tick owns it.
type Simulator struct {
	params dynamo.Params
	canvas dynamo.Size

	gravity dynamo.Vec
	tilt    bool

	set        physics.Set
	integrator Integrator
	relaxer    physics.Relaxer
	trigger    *TriggerHandler
	clock      dynamo.Clock
	rng        *rand.Rand
	pool       *SnapshotPool

	frame     int
	events    []dynamo.EdgeHighlightEvent
	highlight *dynamo.EdgeHighlightEvent

	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

type Option func(*Simulator)

func WithClock(c dynamo.Clock) Option { return func(s *Simulator) { s.clock = c } }

func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.rng = rand.New(rand.NewSource(seed)) }
}

func WithRand(rng *rand.Rand) Option { return func(s *Simulator) { s.rng = rng } }

func WithRelaxer(r physics.Relaxer) Option { return func(s *Simulator) { s.relaxer = r } }

func WithIntegrator(i Integrator) Option { return func(s *Simulator) { s.integrator = i } }

func WithMetric(m dynamo.Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

func WithObserver(o dynamo.Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

// New validates params and canvas and returns an empty simulation. Without
// options it uses the wall clock, brute-force relaxation and a time seeded
// random source.
func New(params dynamo.Params, canvas dynamo.Size, opts ...Option) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := dynamo.ValidateCanvas(canvas); err != nil {
		return nil, err
	}

	s := &Simulator{
		params:  params,
		canvas:  canvas,
		relaxer: physics.BruteForce{},
		trigger: NewTriggerHandler(params.TriggerCooldown),
		clock:   dynamo.SystemClock,
		pool:    NewSnapshotPool(params.ParticleCount),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.clock.Now().UnixNano()))
	}
	if s.integrator == nil {
		s.integrator = integrators.NewVerlet(params, s.rng)
	}
	return s, nil
}

// NewHeadless builds a simulator for an unattended run: seeded random
// source, frame clock and the configured broad-phase.
func NewHeadless(params dynamo.Params, canvas dynamo.Size, cfg Config, opts ...Option) (*Simulator, error) {
	relaxer, err := physics.NewRelaxer(cfg.Broadphase)
	if err != nil {
		return nil, err
	}
	step := cfg.FrameDuration
	if step <= 0 {
		step = DefaultConfig().FrameDuration
	}
	base := []Option{
		WithSeed(cfg.Seed),
		WithClock(NewFrameClock(step)),
		WithRelaxer(relaxer),
	}
	return New(params, canvas, append(base, opts...)...)
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Params() dynamo.Params { return s.params }
func (s *Simulator) Canvas() dynamo.Size   { return s.canvas }
func (s *Simulator) Frame() int            { return s.frame }
func (s *Simulator) Gravity() dynamo.Vec   { return s.gravity }
func (s *Simulator) Len() int              { return s.set.Len() }

// Particles exposes the live particle slice. Callers must not retain or
// modify it across ticks.
func (s *Simulator) Particles() []physics.Particle { return s.set.Particles }

// SetGravity writes the gravity field directly, for drivers that do not go
// through an InputAdapter. The last write before a tick wins.
func (s *Simulator) SetGravity(g dynamo.Vec, tiltEnabled bool) {
	s.gravity = g
	s.tilt = tiltEnabled
}

// Resize changes the canvas. Idle particles are pulled inside the new bounds
// on the next tick.
func (s *Simulator) Resize(canvas dynamo.Size) error {
	if err := dynamo.ValidateCanvas(canvas); err != nil {
		return err
	}
	s.canvas = canvas
	return nil
}

// Trigger runs the lifecycle dispatch if the cooldown allows it. Triggers
// are ignored entirely while tilt is required but disabled.
func (s *Simulator) Trigger() Transition {
	if s.params.RequireTilt && !s.tilt {
		return TransitionNone
	}
	if !s.trigger.Accept(s.clock.Now()) {
		return TransitionNone
	}
	return s.dispatch()
}

func (s *Simulator) dispatch() Transition {
	switch {
	case s.set.Empty():
		edge := physics.ChooseSpawnEdge(s.gravity, s.tilt, s.params.GravityNoiseFloor, s.rng)
		s.set.SpawnFromEdge(edge, s.params.ParticleCount, s.params.Radius, s.canvas, s.rng)
		s.emit(edge, dynamo.HighlightSpawn)
		return TransitionSpawned
	case s.set.AnyIdle():
		edge := s.set.ConvertAllToExiting(s.canvas)
		s.emit(edge, dynamo.HighlightExit)
		return TransitionExited
	default:
		return TransitionNone
	}
}

func (s *Simulator) emit(edge dynamo.Edge, kind dynamo.HighlightKind) {
	ev := dynamo.EdgeHighlightEvent{
		Edge:  edge,
		Kind:  kind,
		Frame: s.frame,
		Start: s.clock.Now(),
	}
	if len(s.events) >= MaxPendingEvents {
		n := copy(s.events, s.events[1:])
		s.events = s.events[:n]
	}
	s.events = append(s.events, ev)
	s.highlight = &ev
}

// MaxPendingEvents bounds the undrained event stream. Older events are
// dropped first; Highlight always reports the newest.
const MaxPendingEvents = 64

// DrainEvents returns the highlight events emitted since the last drain.
func (s *Simulator) DrainEvents() []dynamo.EdgeHighlightEvent {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}

// Highlight returns the most recent highlight event. Every transition
// replaces the previous one.
func (s *Simulator) Highlight() (dynamo.EdgeHighlightEvent, bool) {
	if s.highlight == nil {
		return dynamo.EdgeHighlightEvent{}, false
	}
	return *s.highlight, true
}

// Tick runs one frame: poll input, apply a pending trigger, then integrate,
// relax and apply the boundary. in may be nil to keep the current gravity.
// The returned snapshot is valid until Release or the next Tick.
func (s *Simulator) Tick(in dynamo.InputAdapter, canvas dynamo.Size) (*dynamo.Snapshot, error) {
	if canvas != s.canvas {
		if err := s.Resize(canvas); err != nil {
			return nil, &dynamo.FrameError{Frame: s.frame, Wrapped: err}
		}
	}

	if fa, ok := s.clock.(dynamo.FrameAware); ok {
		fa.BeginFrame(s.frame)
	}

	if in != nil {
		if fa, ok := in.(dynamo.FrameAware); ok {
			fa.BeginFrame(s.frame)
		}
		s.gravity = in.Gravity()
		s.tilt = in.TiltEnabled()
		if in.PollTrigger() {
			s.Trigger()
		}
	}

	if err := s.step(); err != nil {
		return nil, err
	}

	snap := s.snapshot()
	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, o := range s.observers {
		o.OnFrame(snap)
	}

	s.frame++
	return snap, nil
}

func (s *Simulator) step() error {
	ps := s.set.Particles
	s.integrator.StepAll(ps, s.gravity)
	s.relaxer.Relax(ps, s.params.RestDistance, s.params.RelaxIterations)
	s.set.Particles, _ = physics.ApplyBoundary(ps, s.params.Radius, s.canvas)

	for i := range s.set.Particles {
		if !s.set.Particles[i].Valid() {
			return &dynamo.FrameError{
				Frame:   s.frame,
				Wrapped: fmt.Errorf("%w: particle %d at %v", dynamo.ErrInvalidState, i, s.set.Particles[i].Pos),
			}
		}
	}
	return nil
}

func (s *Simulator) snapshot() *dynamo.Snapshot {
	snap := s.pool.Get()
	snap.Frame = s.frame
	snap.Canvas = s.canvas
	snap.Gravity = s.gravity
	for i := range s.set.Particles {
		p := &s.set.Particles[i]
		snap.Particles = append(snap.Particles, dynamo.ParticleView{
			Pos:      p.Pos,
			Velocity: p.Velocity(),
			Heading:  p.Heading(s.gravity),
			Exiting:  p.IsExiting(),
		})
	}
	return snap
}

// Release hands a snapshot returned by Tick back for reuse.
func (s *Simulator) Release(snap *dynamo.Snapshot) { s.pool.Put(snap) }

// Reset clears every particle, pending event and the trigger gate.
func (s *Simulator) Reset() {
	s.set.Clear()
	s.events = nil
	s.highlight = nil
	s.trigger.Reset()
	s.frame = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Run ticks the simulation frames times against in and records a FrameStat
// per frame. The run stops early with the context's error wrapped in
// ErrContextCanceled.
func (s *Simulator) Run(ctx context.Context, in dynamo.InputAdapter, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, frames)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Frames:  make([]FrameStat, 0, frames),
		Metrics: make(map[string]float64),
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		snap, err := s.Tick(in, s.canvas)
		if err != nil {
			return result, err
		}

		for _, ev := range s.DrainEvents() {
			result.Events = append(result.Events, ev)
			result.Transitions++
		}
		result.Frames = append(result.Frames, FrameStat{
			Frame:     snap.Frame,
			Count:     snap.Count(),
			Exiting:   snap.ExitingCount(),
			MeanSpeed: snap.MeanSpeed(),
			Overlaps:  snap.Overlaps(s.params.RestDistance),
		})
		result.FramesRun++

		if i == frames-1 {
			result.Final = Clone(snap)
		}
		s.Release(snap)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
