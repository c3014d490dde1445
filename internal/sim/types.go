package sim

import (
	"time"

	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/physics"
)

// Integrator advances every particle by one frame under gravity.
type Integrator interface {
	StepAll(ps []physics.Particle, gravity dynamo.Vec)
}

// Transition is the outcome of an accepted or rejected trigger.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionSpawned
	TransitionExited
)

func (t Transition) String() string {
	switch t {
	case TransitionSpawned:
		return "spawned"
	case TransitionExited:
		return "exited"
	default:
		return "none"
	}
}

// Config drives a headless run.
type Config struct {
	Frames        int           `yaml:"frames" json:"frames"`
	Seed          int64         `yaml:"seed" json:"seed"`
	FrameDuration time.Duration `yaml:"frame_duration" json:"frame_duration"`
	Broadphase    string        `yaml:"broadphase" json:"broadphase"`
}

func DefaultConfig() Config {
	return Config{
		Frames:        600,
		Seed:          1,
		FrameDuration: time.Second / 60,
		Broadphase:    physics.BroadphaseBrute,
	}
}

// FrameStat is the per-frame summary recorded by Run.
type FrameStat struct {
	Frame     int     `json:"frame"`
	Count     int     `json:"count"`
	Exiting   int     `json:"exiting"`
	MeanSpeed float64 `json:"mean_speed"`
	Overlaps  int     `json:"overlaps"`
}

type Result struct {
	Frames      []FrameStat
	Events      []dynamo.EdgeHighlightEvent
	Metrics     map[string]float64
	FramesRun   int
	Final       *dynamo.Snapshot
	Transitions int
}
