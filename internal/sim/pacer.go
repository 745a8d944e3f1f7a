package sim

import "time"

// Pacer drives a Simulation from a frame loop that polls instead of sleeping.
// The deadline for the next tick is set after each step from the speed in
// effect at that moment.
type Pacer struct {
	sim  *Simulation
	next time.Time
}

func NewPacer(s *Simulation) *Pacer {
	return &Pacer{sim: s}
}

// Start begins running; the first Poll at or after now steps.
func (p *Pacer) Start(now time.Time) {
	if _, ok := p.sim.Start(); ok {
		p.next = now
	}
}

func (p *Pacer) Stop() { p.sim.Stop() }

func (p *Pacer) Toggle(now time.Time) {
	if p.sim.Running() {
		p.Stop()
		return
	}
	p.Start(now)
}

// Poll steps the simulation if it is running and the deadline has passed.
// It reports whether a generation was produced.
func (p *Pacer) Poll(now time.Time) bool {
	if !p.sim.Running() || now.Before(p.next) {
		return false
	}
	delay, ok := p.sim.Tick(p.sim.Epoch())
	if !ok {
		return false
	}
	p.next = now.Add(delay)
	return true
}

// Next returns the time of the next due tick.
func (p *Pacer) Next() time.Time { return p.next }
