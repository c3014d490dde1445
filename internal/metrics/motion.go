package metrics

import "github.com/san-kum/raindrops/internal/dynamo"

// MeanSpeed averages the per-frame mean particle speed over every frame that
// had particles.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(s *dynamo.Snapshot) {
	if s.Count() == 0 {
		return
	}
	m.sum += s.MeanSpeed()
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// KineticEnergy is the mean over frames of the summed ½|v|² of every
// particle, all masses taken as one.
type KineticEnergy struct {
	name        string
	totalEnergy float64
	samples     int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(s *dynamo.Snapshot) {
	e := 0.0
	for i := range s.Particles {
		v := s.Particles[i].Velocity
		e += 0.5 * v.Dot(v)
	}
	k.totalEnergy += e
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.totalEnergy / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.totalEnergy = 0
	k.samples = 0
}

// TiltEffort is the mean gravity magnitude the input adapter applied.
type TiltEffort struct {
	name    string
	sum     float64
	samples int
}

func NewTiltEffort() *TiltEffort {
	return &TiltEffort{name: "tilt_effort"}
}

func (t *TiltEffort) Name() string { return t.name }

func (t *TiltEffort) Observe(s *dynamo.Snapshot) {
	t.sum += s.Gravity.Len()
	t.samples++
}

func (t *TiltEffort) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return t.sum / float64(t.samples)
}

func (t *TiltEffort) Reset() {
	t.sum = 0
	t.samples = 0
}
