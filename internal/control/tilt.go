package control

import (
	"math"

	"github.com/san-kum/raindrops/internal/dynamo"
)

const (
	DefaultTiltScale      = 0.5
	DefaultShakeThreshold = 30.0
)

// Tilt turns accelerometer samples into gravity. Until Grant is called the
// adapter reports tilt as disabled and ignores samples, matching a device
// that has not yet given motion permission.
type Tilt struct {
	triggers
	Scale float64
	Shake *Shake

	g       dynamo.Vec
	granted bool
}

func NewTilt() *Tilt {
	return &Tilt{Scale: DefaultTiltScale, Shake: NewShake(DefaultShakeThreshold)}
}

func (t *Tilt) Grant() { t.granted = true }

// Sample feeds one accelerometer reading. A reading whose magnitude crosses
// the shake threshold also fires a trigger.
func (t *Tilt) Sample(ax, ay, az float64) {
	if !t.granted {
		return
	}
	t.g = dynamo.Vec{ax * t.Scale, ay * t.Scale}
	if t.Shake != nil && t.Shake.Sample(ax, ay, az) {
		t.Fire()
	}
}

func (t *Tilt) Gravity() dynamo.Vec { return t.g }
func (t *Tilt) TiltEnabled() bool   { return t.granted }

// Shake detects a hard shake as a rising crossing of the acceleration
// magnitude over Threshold. The detector re-arms once the magnitude drops
// back under the threshold.
type Shake struct {
	Threshold float64
	over      bool
}

func NewShake(threshold float64) *Shake { return &Shake{Threshold: threshold} }

func (s *Shake) Sample(ax, ay, az float64) bool {
	mag := math.Sqrt(ax*ax + ay*ay + az*az)
	if mag <= s.Threshold {
		s.over = false
		return false
	}
	if s.over {
		return false
	}
	s.over = true
	return true
}
