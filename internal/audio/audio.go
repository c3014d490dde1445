// Package audio renders a rain ambience that follows the simulation: more
// drops mean denser patter, faster drops a brighter hiss.
package audio

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Processor plays a Synth through the default output device.
type Processor struct {
	Stream *portaudio.Stream
	Synth  *Synth

	mu     sync.Mutex
	Active bool
}

func NewProcessor(seed int64) *Processor {
	return &Processor{Synth: NewSynth(SampleRate, seed)}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}

	log.Debug("audio started", "rate", SampleRate, "buffer", BufferSize)

	a.mu.Lock()
	a.Stream = stream
	a.Active = true
	a.mu.Unlock()
	return nil
}

func (a *Processor) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

func (a *Processor) IsActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Active
}

// Update feeds the latest frame into the synth. Safe to call from the render
// loop while the stream runs.
func (a *Processor) Update(count int, meanSpeed float64) {
	a.Synth.SetTarget(count, meanSpeed)
}

func (a *Processor) process(out [][]float32) {
	a.Synth.Render(out[0], out[1])
}
