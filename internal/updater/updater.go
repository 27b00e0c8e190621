// Package updater produces the periodic AdvanceTime changes that drive the
// simulation and routes interaction changes through the same queue.
package updater

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/galaxy4x/engine/internal/access"
	"github.com/galaxy4x/engine/internal/change"
	"github.com/galaxy4x/engine/internal/core/pacing"
	"github.com/galaxy4x/engine/internal/world"
	"go.uber.org/zap"
)

// DefaultPace is the pace of a new updater in milliseconds.
const DefaultPace = 250

// ErrNotStarted is returned by Enqueue before Start.
var ErrNotStarted = errors.New("updater: not started")

// Updater ticks the world at the controller's pace. It cannot be restarted
// after Stop.
type Updater struct {
	access  *access.Access
	control *pacing.Controller
	log     *zap.Logger

	granularity atomic.Pointer[Granularity]

	mu     sync.Mutex
	sender *access.Sender
}

// New returns a paused updater over a with the given granularity.
func New(a *access.Access, g Granularity, log *zap.Logger) *Updater {
	if log == nil {
		log = zap.NewNop()
	}
	control := pacing.New()
	control.SetPace(DefaultPace)
	u := &Updater{
		access:  a,
		control: control,
		log:     log,
	}
	u.granularity.Store(&g)
	return u
}

// Start starts the access consumer and begins ticking.
func (u *Updater) Start() {
	u.mu.Lock()
	u.sender = u.access.Start()
	u.mu.Unlock()
	u.control.Start(u.tick)
	u.log.Info("updater started", zap.Int("pace_ms", u.control.Pace()))
}

func (u *Updater) tick() {
	g := *u.granularity.Load()
	// wait out a write in progress so a zero pace cannot outrun the consumer
	guard := u.access.ReadLock()
	guard.Release()

	if err := u.Enqueue(change.AdvanceTime{Increase: g(1)}); err != nil {
		u.log.Error("tick rejected, stopping updater", zap.Error(err))
		u.control.Stop()
	}
}

// Enqueue submits c through the same queue as the time ticks.
func (u *Updater) Enqueue(c change.Change) error {
	u.mu.Lock()
	s := u.sender
	u.mu.Unlock()
	if s == nil {
		return ErrNotStarted
	}
	return s.Send(c)
}

// SetGranularity replaces the granularity from the next tick on.
func (u *Updater) SetGranularity(g Granularity) {
	u.granularity.Store(&g)
}

// Granularity returns the current granularity.
func (u *Updater) Granularity() Granularity {
	return *u.granularity.Load()
}

// SetSpeed applies pace tier n of SpeedTiers.
func (u *Updater) SetSpeed(n int) error {
	pace, err := PaceForSpeed(n)
	if err != nil {
		return err
	}
	u.control.SetPace(pace)
	return nil
}

// Snapshot returns a copy of the world.
func (u *Updater) Snapshot() world.World {
	return u.access.Snapshot()
}

// Control exposes the pacing controller for pausing and repacing.
func (u *Updater) Control() *pacing.Controller {
	return u.control
}

// Stop ends ticking and the access consumer. It does not wait for either.
func (u *Updater) Stop() {
	u.control.Stop()
	u.access.Stop()
	u.mu.Lock()
	if u.sender != nil {
		u.sender.Close()
	}
	u.mu.Unlock()
	u.log.Info("updater stopped")
}
