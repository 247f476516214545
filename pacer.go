package amino

import (
	"time"
)

const DefaultFPS = 120

// Pacer blocks for a fixed quantum on ticks that have nothing to draw. Each wait is the full
// quantum, measured from when Idle is called; nothing carries over between ticks.
type Pacer struct {
	Quantum time.Duration
	sleep   func(time.Duration)
}

// NewPacer returns a pacer for the target frame rate. Non-positive fps means DefaultFPS and a
// nil sleep means time.Sleep.
func NewPacer(fps float64, sleep func(time.Duration)) *Pacer {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Pacer{
		Quantum: time.Duration(float64(time.Second) / fps),
		sleep:   sleep,
	}
}

func (p *Pacer) Idle() {
	p.sleep(p.Quantum)
}
