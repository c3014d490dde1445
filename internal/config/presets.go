package config

import (
	"sort"
	"time"

	"github.com/san-kum/raindrops/internal/dynamo"
)

func withParams(f func(p *dynamo.Params)) dynamo.Params {
	p := dynamo.DefaultParams()
	f(&p)
	return p
}

var Presets = map[string]*Config{
	"drizzle": {
		Name: "drizzle", Input: InputStatic, Frames: 900, FPS: DefaultFPS, Seed: 1,
		Canvas:       CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Gravity:      GravityConfig{X: 0.05, Y: 0.3},
		Broadphase:   "brute",
		TriggerEvery: 300,
		Params: withParams(func(p *dynamo.Params) {
			p.ParticleCount = 80
			p.Jitter = 0.05
		}),
	},
	"downpour": {
		Name: "downpour", Input: InputStatic, Frames: 600, FPS: DefaultFPS, Seed: 1,
		Canvas:       CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Gravity:      GravityConfig{Y: 1.0},
		Broadphase:   "grid",
		TriggerEvery: 200,
		Params: withParams(func(p *dynamo.Params) {
			p.ParticleCount = 900
			p.ExitAccel = 8
		}),
	},
	"mist": {
		Name: "mist", Input: InputDrift, Frames: 1200, FPS: DefaultFPS, Seed: 7,
		Canvas:       CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Broadphase:   "brute",
		TriggerEvery: 360,
		Params: withParams(func(p *dynamo.Params) {
			p.ParticleCount = 200
			p.Radius = 8
			p.RestDistance = 6
			p.Damping = 0.9
			p.Jitter = 0.3
		}),
	},
	"storm": {
		Name: "storm", Input: InputDrift, Frames: 900, FPS: DefaultFPS, Seed: 13,
		Canvas:       CanvasConfig{Width: 1024, Height: 768},
		Broadphase:   "grid",
		TriggerEvery: 90,
		Params: withParams(func(p *dynamo.Params) {
			p.ParticleCount = 600
			p.ExitAccel = 10
			p.TriggerCooldown = 400 * time.Millisecond
			p.Jitter = 0.25
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
