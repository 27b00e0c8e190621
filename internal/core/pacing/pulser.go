package pacing

import "sync/atomic"

// Pulser raises a wants-update flag every pace. A consumer polls the flag
// with Take and redraws only when it was raised.
type Pulser struct {
	control *Controller
	wants   atomic.Bool
}

// NewPulser returns a stopped pulser with the given pace in milliseconds.
func NewPulser(paceMS int) *Pulser {
	p := &Pulser{control: New()}
	p.control.SetPace(paceMS)
	return p
}

// Start begins raising the flag.
func (p *Pulser) Start() {
	p.control.Start(func() {
		p.wants.Store(true)
	})
}

// Take reports whether the flag was raised since the last call and lowers it.
func (p *Pulser) Take() bool {
	return p.wants.Swap(false)
}

// Control exposes the underlying controller for pausing and repacing.
func (p *Pulser) Control() *Controller {
	return p.control
}

// Stop aborts the pulser goroutine.
func (p *Pulser) Stop() {
	p.control.Stop()
}
