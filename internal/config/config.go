package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/physics"
	"github.com/san-kum/raindrops/internal/sim"
)

const (
	DefaultWidth        = 800.0
	DefaultHeight       = 600.0
	DefaultFrames       = 600
	DefaultFPS          = 60
	DefaultGravityY     = 0.6
	DefaultTriggerEvery = 240
)

// Input names accepted in Config.Input.
const (
	InputStatic  = "static"
	InputDrift   = "drift"
	InputPointer = "pointer"
	InputManual  = "manual"
	InputTilt    = "tilt"
)

type Config struct {
	Name       string        `yaml:"name,omitempty"`
	Input      string        `yaml:"input"`
	Canvas     CanvasConfig  `yaml:"canvas"`
	Gravity    GravityConfig `yaml:"gravity"`
	Frames     int           `yaml:"frames"`
	FPS        int           `yaml:"fps"`
	Seed       int64         `yaml:"seed"`
	Broadphase string        `yaml:"broadphase"`
	// TriggerEvery fires a trigger every n frames in headless runs. Zero
	// fires once at frame 0 only.
	TriggerEvery int           `yaml:"trigger_every"`
	Params       dynamo.Params `yaml:"params"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func DefaultConfig() *Config {
	return &Config{
		Input:        InputStatic,
		Canvas:       CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Gravity:      GravityConfig{Y: DefaultGravityY},
		Frames:       DefaultFrames,
		FPS:          DefaultFPS,
		Seed:         1,
		Broadphase:   physics.BroadphaseBrute,
		TriggerEvery: DefaultTriggerEvery,
		Params:       dynamo.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if err := dynamo.ValidateCanvas(c.Size()); err != nil {
		return err
	}
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, c.Frames)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrParameterBounds, c.FPS)
	}
	if c.TriggerEvery < 0 {
		return fmt.Errorf("%w: trigger_every must be >= 0, got %d", dynamo.ErrParameterBounds, c.TriggerEvery)
	}
	if _, err := physics.NewRelaxer(c.Broadphase); err != nil {
		return err
	}
	switch c.Input {
	case InputStatic, InputDrift, InputPointer, InputManual, InputTilt:
	default:
		return fmt.Errorf("%w: unknown input %q", dynamo.ErrParameterBounds, c.Input)
	}
	return nil
}

func (c *Config) Size() dynamo.Size {
	return dynamo.Size{W: c.Canvas.Width, H: c.Canvas.Height}
}

func (c *Config) GravityVec() dynamo.Vec {
	return dynamo.Vec{c.Gravity.X, c.Gravity.Y}
}

func (c *Config) FrameDuration() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}

// SimConfig converts the file settings into a headless run configuration.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Frames:        c.Frames,
		Seed:          c.Seed,
		FrameDuration: c.FrameDuration(),
		Broadphase:    c.Broadphase,
	}
}

// Clone returns a deep copy; presets are handed out as clones so callers
// can override fields freely.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
