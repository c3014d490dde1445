package dynamo

import (
	"fmt"
	"math"
	"time"
)

const (
	DefaultParticleCount     = 300
	DefaultRadius            = 16.0
	DefaultRestDistance      = 10.0
	DefaultRelaxIterations   = 3
	DefaultExitAccel         = 5.0
	DefaultTriggerCooldown   = 800 * time.Millisecond
	DefaultHighlightDuration = 3000 * time.Millisecond
	DefaultDamping           = 0.98
	DefaultGravityNoiseFloor = 0.2
	DefaultJitter            = 0.1
)

// Params holds the tunables of a simulation. The zero value is not usable;
// start from DefaultParams.
type Params struct {
	ParticleCount     int           `yaml:"particle_count" json:"particle_count"`
	Radius            float64       `yaml:"radius" json:"radius"`
	RestDistance      float64       `yaml:"rest_distance" json:"rest_distance"`
	RelaxIterations   int           `yaml:"relax_iterations" json:"relax_iterations"`
	ExitAccel         float64       `yaml:"exit_accel" json:"exit_accel"`
	TriggerCooldown   time.Duration `yaml:"trigger_cooldown" json:"trigger_cooldown"`
	HighlightDuration time.Duration `yaml:"highlight_duration" json:"highlight_duration"`
	Damping           float64       `yaml:"damping" json:"damping"`
	GravityNoiseFloor float64       `yaml:"gravity_noise_floor" json:"gravity_noise_floor"`
	Jitter            float64       `yaml:"jitter" json:"jitter"`
	// RequireTilt drops triggers while the input reports tilt as disabled.
	RequireTilt bool `yaml:"require_tilt" json:"require_tilt"`
}

func DefaultParams() Params {
	return Params{
		ParticleCount:     DefaultParticleCount,
		Radius:            DefaultRadius,
		RestDistance:      DefaultRestDistance,
		RelaxIterations:   DefaultRelaxIterations,
		ExitAccel:         DefaultExitAccel,
		TriggerCooldown:   DefaultTriggerCooldown,
		HighlightDuration: DefaultHighlightDuration,
		Damping:           DefaultDamping,
		GravityNoiseFloor: DefaultGravityNoiseFloor,
		Jitter:            DefaultJitter,
	}
}

func (p Params) Validate() error {
	switch {
	case p.ParticleCount < 0:
		return fmt.Errorf("%w: particle_count must be >= 0, got %d", ErrParameterBounds, p.ParticleCount)
	case !positive(p.Radius):
		return fmt.Errorf("%w: radius must be positive, got %g", ErrParameterBounds, p.Radius)
	case !positive(p.RestDistance):
		return fmt.Errorf("%w: rest_distance must be positive, got %g", ErrParameterBounds, p.RestDistance)
	case p.RelaxIterations < 0:
		return fmt.Errorf("%w: relax_iterations must be >= 0, got %d", ErrParameterBounds, p.RelaxIterations)
	case p.ExitAccel < 0 || math.IsNaN(p.ExitAccel):
		return fmt.Errorf("%w: exit_accel must be >= 0, got %g", ErrParameterBounds, p.ExitAccel)
	case p.TriggerCooldown < 0:
		return fmt.Errorf("%w: trigger_cooldown must be >= 0, got %v", ErrParameterBounds, p.TriggerCooldown)
	case p.HighlightDuration < 0:
		return fmt.Errorf("%w: highlight_duration must be >= 0, got %v", ErrParameterBounds, p.HighlightDuration)
	case !(p.Damping > 0 && p.Damping <= 1):
		return fmt.Errorf("%w: damping must be in (0, 1], got %g", ErrParameterBounds, p.Damping)
	case p.GravityNoiseFloor < 0 || math.IsNaN(p.GravityNoiseFloor):
		return fmt.Errorf("%w: gravity_noise_floor must be >= 0, got %g", ErrParameterBounds, p.GravityNoiseFloor)
	case p.Jitter < 0 || math.IsNaN(p.Jitter):
		return fmt.Errorf("%w: jitter must be >= 0, got %g", ErrParameterBounds, p.Jitter)
	}
	return nil
}

// ValidateCanvas rejects empty, negative or infinite canvases.
func ValidateCanvas(s Size) error {
	if !s.Valid() {
		return fmt.Errorf("%w: got %s", ErrInvalidCanvas, s)
	}
	return nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// ParamNames lists the names accepted by SetParam.
func ParamNames() []string {
	return []string{
		"particle_count", "radius", "rest_distance", "relax_iterations",
		"exit_accel", "trigger_cooldown_ms", "highlight_duration_ms",
		"damping", "gravity_noise_floor", "jitter",
	}
}

// GetParams returns the tunables by name, durations in milliseconds.
func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		"particle_count":        float64(p.ParticleCount),
		"radius":                p.Radius,
		"rest_distance":         p.RestDistance,
		"relax_iterations":      float64(p.RelaxIterations),
		"exit_accel":            p.ExitAccel,
		"trigger_cooldown_ms":   float64(p.TriggerCooldown.Milliseconds()),
		"highlight_duration_ms": float64(p.HighlightDuration.Milliseconds()),
		"damping":               p.Damping,
		"gravity_noise_floor":   p.GravityNoiseFloor,
		"jitter":                p.Jitter,
	}
}

// SetParam adjusts one tunable by name. Counts are rounded to the nearest
// integer. The result is not validated.
func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "particle_count":
		p.ParticleCount = int(math.Round(value))
	case "radius":
		p.Radius = value
	case "rest_distance":
		p.RestDistance = value
	case "relax_iterations":
		p.RelaxIterations = int(math.Round(value))
	case "exit_accel":
		p.ExitAccel = value
	case "trigger_cooldown_ms":
		p.TriggerCooldown = time.Duration(value * float64(time.Millisecond))
	case "highlight_duration_ms":
		p.HighlightDuration = time.Duration(value * float64(time.Millisecond))
	case "damping":
		p.Damping = value
	case "gravity_noise_floor":
		p.GravityNoiseFloor = value
	case "jitter":
		p.Jitter = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrParameterBounds, name)
	}
	return nil
}
