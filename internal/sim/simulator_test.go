package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/physics"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testInput struct {
	gravity  dynamo.Vec
	tilt     bool
	triggers map[int]bool
	frame    int
}

func (in *testInput) BeginFrame(frame int) { in.frame = frame }
func (in *testInput) Gravity() dynamo.Vec  { return in.gravity }
func (in *testInput) TiltEnabled() bool    { return in.tilt }
func (in *testInput) PollTrigger() bool    { return in.triggers[in.frame] }

type nanIntegrator struct{}

func (nanIntegrator) StepAll(ps []physics.Particle, g dynamo.Vec) {
	for i := range ps {
		ps[i].Pos = dynamo.Vec{math.NaN(), 0}
	}
}

var canvas = dynamo.Size{W: 800, H: 600}

func newTestSim(t *testing.T, opts ...Option) (*Simulator, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s, err := New(dynamo.DefaultParams(), canvas, append([]Option{WithSeed(1), WithClock(clock)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, clock
}

func TestNewValidation(t *testing.T) {
	bad := dynamo.DefaultParams()
	bad.ParticleCount = -1

	tests := []struct {
		name   string
		params dynamo.Params
		canvas dynamo.Size
		want   error
	}{
		{"zero width", dynamo.DefaultParams(), dynamo.Size{W: 0, H: 100}, dynamo.ErrInvalidCanvas},
		{"negative height", dynamo.DefaultParams(), dynamo.Size{W: 100, H: -1}, dynamo.ErrInvalidCanvas},
		{"negative count", bad, canvas, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params, tt.canvas)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTriggerDebounce(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		want int
	}{
		{"well inside cooldown", 100 * time.Millisecond, 1},
		{"just inside cooldown", 799 * time.Millisecond, 1},
		{"exactly cooldown", 800 * time.Millisecond, 2},
		{"after cooldown", 2 * time.Second, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, clock := newTestSim(t)
			s.SetGravity(dynamo.Vec{0, 0.6}, true)

			transitions := 0
			if s.Trigger() != TransitionNone {
				transitions++
			}
			clock.Advance(tt.gap)
			if s.Trigger() != TransitionNone {
				transitions++
			}

			if transitions != tt.want {
				t.Errorf("got %d transitions, want %d", transitions, tt.want)
			}
		})
	}
}

func TestTriggerDroppedEventLeavesGateUntouched(t *testing.T) {
	s, clock := newTestSim(t)
	s.SetGravity(dynamo.Vec{0, 0.6}, true)

	s.Trigger()
	clock.Advance(500 * time.Millisecond)
	s.Trigger()
	clock.Advance(400 * time.Millisecond)

	if got := s.Trigger(); got != TransitionExited {
		t.Errorf("trigger 900ms after the accepted one = %v, want exited", got)
	}
}

func TestTriggerNoOpWhenAllExiting(t *testing.T) {
	s, clock := newTestSim(t)
	s.SetGravity(dynamo.Vec{0, 0.6}, true)

	if got := s.Trigger(); got != TransitionSpawned {
		t.Fatalf("first trigger = %v", got)
	}
	clock.Advance(time.Second)
	if got := s.Trigger(); got != TransitionExited {
		t.Fatalf("second trigger = %v", got)
	}

	before := append([]physics.Particle(nil), s.Particles()...)
	s.DrainEvents()

	clock.Advance(time.Second)
	if got := s.Trigger(); got != TransitionNone {
		t.Errorf("trigger on an all-exiting set = %v, want none", got)
	}
	for i, p := range s.Particles() {
		if p != before[i] {
			t.Fatalf("particle %d changed: %+v -> %+v", i, before[i], p)
		}
	}
	if ev := s.DrainEvents(); len(ev) != 0 {
		t.Errorf("no-op trigger emitted %d events", len(ev))
	}
}

func TestUndrainedEventsAreBounded(t *testing.T) {
	s, clock := newTestSim(t)
	s.SetGravity(dynamo.Vec{0, 0.6}, true)

	for i := 0; i < 3*MaxPendingEvents; i++ {
		if s.Len() > 0 && !s.set.AnyIdle() {
			s.set.Clear()
		}
		s.Trigger()
		clock.Advance(time.Second)
	}

	events := s.DrainEvents()
	if len(events) != MaxPendingEvents {
		t.Fatalf("pending events = %d, want %d", len(events), MaxPendingEvents)
	}
	last, ok := s.Highlight()
	if !ok || events[len(events)-1] != last {
		t.Errorf("newest event %+v should match highlight %+v", events[len(events)-1], last)
	}
	if events[0].Start.After(events[1].Start) {
		t.Error("events should stay in emission order")
	}
}

func TestTriggerRequireTilt(t *testing.T) {
	params := dynamo.DefaultParams()
	params.RequireTilt = true
	s, err := New(params, canvas, WithSeed(1), WithClock(&fakeClock{t: time.Unix(0, 0)}))
	if err != nil {
		t.Fatal(err)
	}

	s.SetGravity(dynamo.Vec{0, 0.6}, false)
	if got := s.Trigger(); got != TransitionNone {
		t.Errorf("trigger without tilt = %v, want none", got)
	}
	s.SetGravity(dynamo.Vec{0, 0.6}, true)
	if got := s.Trigger(); got != TransitionSpawned {
		t.Errorf("first trigger with tilt = %v, want spawned", got)
	}
}

func TestTickClampsIdleParticles(t *testing.T) {
	s, clock := newTestSim(t)
	in := &testInput{gravity: dynamo.Vec{0.4, 0.9}, tilt: true, triggers: map[int]bool{0: true}}

	for i := 0; i < 240; i++ {
		snap, err := s.Tick(in, canvas)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		half := s.Params().Radius / 2
		for j, p := range snap.Particles {
			if p.Exiting {
				t.Fatalf("particle %d exiting without a second trigger", j)
			}
			if p.Pos.X() < half || p.Pos.X() > canvas.W-half || p.Pos.Y() < half || p.Pos.Y() > canvas.H-half {
				t.Fatalf("frame %d particle %d out of bounds: %v", i, j, p.Pos)
			}
		}
		s.Release(snap)
		clock.Advance(time.Second / 60)
	}

	if s.Len() != dynamo.DefaultParticleCount {
		t.Errorf("idle particles were removed: %d left", s.Len())
	}
}

func TestTickExitEmptiesCanvas(t *testing.T) {
	s, clock := newTestSim(t)
	in := &testInput{gravity: dynamo.Vec{0, 0.6}, tilt: true, triggers: map[int]bool{0: true, 60: true}}

	for i := 0; i < 400 && (i <= 60 || s.Len() > 0); i++ {
		snap, err := s.Tick(in, canvas)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		s.Release(snap)
		clock.Advance(time.Second / 60)
	}

	if s.Len() != 0 {
		t.Errorf("%d particles still on screen after exiting", s.Len())
	}
	events := s.DrainEvents()
	if len(events) != 2 || events[0].Kind != dynamo.HighlightSpawn || events[1].Kind != dynamo.HighlightExit {
		t.Errorf("unexpected events: %+v", events)
	}
	if events[0].Edge != dynamo.EdgeTop {
		t.Errorf("spawn edge = %v, want top", events[0].Edge)
	}
}

func TestTickResize(t *testing.T) {
	s, _ := newTestSim(t)

	smaller := dynamo.Size{W: 400, H: 300}
	snap, err := s.Tick(nil, smaller)
	if err != nil {
		t.Fatalf("resize tick: %v", err)
	}
	if snap.Canvas != smaller || s.Canvas() != smaller {
		t.Errorf("canvas not updated: %v", s.Canvas())
	}

	_, err = s.Tick(nil, dynamo.Size{W: -1, H: 300})
	var fe *dynamo.FrameError
	if !errors.As(err, &fe) || !errors.Is(err, dynamo.ErrInvalidCanvas) {
		t.Errorf("invalid resize error = %v", err)
	}
}

func TestTickDetectsInvalidState(t *testing.T) {
	s, _ := newTestSim(t, WithIntegrator(nanIntegrator{}))
	s.SetGravity(dynamo.Vec{0, 1}, true)
	s.Trigger()

	_, err := s.Tick(nil, canvas)
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	var fe *dynamo.FrameError
	if !errors.As(err, &fe) || fe.Frame != 0 {
		t.Errorf("expected FrameError at frame 0, got %v", err)
	}
}

func TestRun(t *testing.T) {
	s, err := NewHeadless(dynamo.DefaultParams(), canvas, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	in := &testInput{gravity: dynamo.Vec{-0.7, 0.1}, tilt: true, triggers: map[int]bool{0: true, 10: true, 200: true}}

	result, err := s.Run(context.Background(), in, 120)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.FramesRun != 120 || len(result.Frames) != 120 {
		t.Errorf("expected 120 frames, got %d/%d", result.FramesRun, len(result.Frames))
	}
	if result.Transitions != 1 {
		t.Errorf("trigger inside cooldown should be dropped, got %d transitions", result.Transitions)
	}
	if result.Events[0].Edge != dynamo.EdgeRight {
		t.Errorf("spawn edge = %v, want right", result.Events[0].Edge)
	}
	if result.Frames[0].Count != dynamo.DefaultParticleCount {
		t.Errorf("frame 0 count = %d", result.Frames[0].Count)
	}
	if result.Final == nil || result.Final.Count() != dynamo.DefaultParticleCount {
		t.Errorf("final snapshot missing or wrong size")
	}
}

func TestRunCanceled(t *testing.T) {
	s, _ := newTestSim(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, nil, 10)
	if !errors.Is(err, dynamo.ErrContextCanceled) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation error, got %v", err)
	}
}

func TestRunInvalidFrames(t *testing.T) {
	s, _ := newTestSim(t)
	if _, err := s.Run(context.Background(), nil, 0); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

type countMetric struct{ n int }

func (m *countMetric) Name() string               { return "ticks" }
func (m *countMetric) Observe(s *dynamo.Snapshot) { m.n++ }
func (m *countMetric) Value() float64             { return float64(m.n) }
func (m *countMetric) Reset()                     { m.n = 0 }

func TestRunMetrics(t *testing.T) {
	metric := &countMetric{n: 99}
	s, _ := newTestSim(t, WithMetric(metric))

	result, err := s.Run(context.Background(), nil, 15)
	if err != nil {
		t.Fatal(err)
	}
	if result.Metrics["ticks"] != 15 {
		t.Errorf("metric saw %v ticks, want 15", result.Metrics["ticks"])
	}
}

func TestHeadlessIsReproducible(t *testing.T) {
	run := func() *Result {
		s, err := NewHeadless(dynamo.DefaultParams(), canvas, DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		in := &testInput{gravity: dynamo.Vec{0, 0.6}, tilt: true, triggers: map[int]bool{0: true}}
		r, err := s.Run(context.Background(), in, 30)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}

	a, b := run(), run()
	for i := range a.Final.Particles {
		if a.Final.Particles[i].Pos != b.Final.Particles[i].Pos {
			t.Fatalf("same seed diverged at particle %d", i)
		}
	}
}

func TestEnsemble(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Frames = 20
	cfg.Seed = 10

	inputs := func(seed int64) dynamo.InputAdapter {
		return &testInput{gravity: dynamo.Vec{0, 0.6}, tilt: true, triggers: map[int]bool{0: true}}
	}
	metrics := func() []dynamo.Metric { return []dynamo.Metric{&countMetric{}} }

	results, err := NewEnsemble(dynamo.DefaultParams(), canvas, cfg, 4, inputs, metrics).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.FramesRun != 20 || r.Metrics["ticks"] != 20 {
			t.Errorf("member %d: frames=%d ticks=%v", i, r.FramesRun, r.Metrics["ticks"])
		}
	}
	if results[0].Final.Particles[0].Pos == results[1].Final.Particles[0].Pos {
		t.Error("members with different seeds produced identical particles")
	}
}
