// Package pacing runs a unit of work repeatedly on its own goroutine at a
// pace that can be changed, paused and stopped while it runs.
package pacing

import (
	"fmt"
	"sync"
	"time"
)

// Status is the state of a Controller.
type Status int32

const (
	// Aborted is terminal: the goroutine exits and the controller cannot be restarted.
	Aborted Status = iota
	// Paused keeps the goroutine alive, polling without doing work.
	Paused
	// Executing runs the work once per pace.
	Executing
)

func (s Status) String() string {
	switch s {
	case Aborted:
		return "aborted"
	case Paused:
		return "paused"
	case Executing:
		return "executing"
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// pollInterval is how long a paused controller sleeps between status checks.
const pollInterval = time.Millisecond

// Controller runs work at a configurable pace. The zero value is not usable;
// create one with New.
type Controller struct {
	mu      sync.RWMutex
	status  Status
	paceMS  int
	started bool
}

// New returns a paused controller with zero pace.
func New() *Controller {
	return &Controller{status: Paused}
}

// Start sets the status to Executing and runs work on a new goroutine until
// the controller is stopped. A controller runs one goroutine in its lifetime;
// starting it again panics. A panic inside work is not recovered.
func (c *Controller) Start(work func()) {
	c.mu.Lock()
	if c.status == Aborted {
		c.mu.Unlock()
		panic("pacing: start of an aborted controller")
	}
	if c.started {
		c.mu.Unlock()
		panic("pacing: start of a running controller")
	}
	c.started = true
	c.status = Executing
	c.mu.Unlock()

	go c.run(work)
}

func (c *Controller) run(work func()) {
	for {
		status, pace := c.read()
		switch status {
		case Aborted:
			return
		case Paused:
			time.Sleep(pollInterval)
		case Executing:
			work()
			if pace > 0 {
				time.Sleep(pace)
			}
		}
	}
}

func (c *Controller) read() (Status, time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status, time.Duration(c.paceMS) * time.Millisecond
}

// SetStatus changes the status. Once Aborted, the status no longer changes.
func (c *Controller) SetStatus(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == Aborted {
		return
	}
	c.status = s
}

// Status returns the current status.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// TogglePause swaps Paused and Executing and returns the new status.
func (c *Controller) TogglePause() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.status {
	case Paused:
		c.status = Executing
	case Executing:
		c.status = Paused
	}
	return c.status
}

// SetPace sets the sleep between runs in milliseconds. The running goroutine
// picks it up after its current sleep.
func (c *Controller) SetPace(ms int) {
	if ms < 0 {
		ms = 0
	}
	c.mu.Lock()
	c.paceMS = ms
	c.mu.Unlock()
}

// Pace returns the sleep between runs in milliseconds.
func (c *Controller) Pace() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paceMS
}

// Stop aborts the controller. It does not wait for the goroutine to exit.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.status = Aborted
	c.mu.Unlock()
}
