package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/raindrops/internal/config"
	"github.com/san-kum/raindrops/internal/control"
	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/metrics"
	"github.com/san-kum/raindrops/internal/sim"
)

// Scenario is a scripted headless run: a base configuration plus a timeline
// of gravity changes and triggers.
type Scenario struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Preset      string               `yaml:"preset,omitempty"`
	Canvas      *config.CanvasConfig `yaml:"canvas,omitempty"`
	Frames      int                  `yaml:"frames"`
	Seed        int64                `yaml:"seed"`
	Params      map[string]float64   `yaml:"params,omitempty"`
	Steps       []Step               `yaml:"steps"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the scenario against its preset (or the defaults).
func (s *Scenario) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q", dynamo.ErrParameterBounds, s.Preset)
		}
	}
	if s.Name != "" {
		cfg.Name = s.Name
	}
	if s.Canvas != nil {
		cfg.Canvas = *s.Canvas
	}
	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := cfg.Params.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes the scenario timeline with the standard metrics and
// returns the run together with the resolved configuration.
func RunScenario(ctx context.Context, scenario *Scenario) (*sim.Result, *config.Config, error) {
	cfg, err := scenario.Config()
	if err != nil {
		return nil, nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	s, err := newSimulator(cfg)
	if err != nil {
		return nil, nil, err
	}

	log.Debug("running scenario", "name", scenario.Name, "frames", cfg.Frames, "steps", len(scenario.Steps))
	result, err := s.Run(ctx, NewScript(scenario.Steps), cfg.Frames)
	if err != nil {
		return result, cfg, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return result, cfg, nil
}

// NewInput builds the headless input adapter described by cfg. Interactive
// inputs fall back to their headless equivalent: pointer becomes a fixed
// gravity with tilt disabled, and tilt a granted Tilt holding one
// accelerometer sample that yields the configured gravity.
func NewInput(cfg *config.Config) dynamo.InputAdapter {
	var in dynamo.InputAdapter
	switch cfg.Input {
	case config.InputDrift:
		in = control.NewDrift(cfg.Seed)
	case config.InputPointer:
		in = control.NewStatic(cfg.GravityVec(), false)
	case config.InputTilt:
		tilt := control.NewTilt()
		tilt.Grant()
		g := cfg.GravityVec()
		tilt.Sample(g.X()/tilt.Scale, g.Y()/tilt.Scale, 0)
		in = tilt
	default:
		in = control.NewStatic(cfg.GravityVec(), true)
	}
	return control.NewPeriodic(in, cfg.TriggerEvery)
}

func newSimulator(cfg *config.Config) (*sim.Simulator, error) {
	s, err := sim.NewHeadless(cfg.Params, cfg.Size(), cfg.SimConfig())
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Defaults(cfg.Params) {
		s.AddMetric(m)
	}
	return s, nil
}

// Run executes cfg headless with the standard metrics.
func Run(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	s, err := newSimulator(cfg)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, NewInput(cfg), cfg.Frames)
}
