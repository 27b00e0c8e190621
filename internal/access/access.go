// Package access owns the canonical World. Every mutation goes through one
// consumer goroutine that applies changes in FIFO order under the write lock;
// any number of readers take snapshots under the read lock.
package access

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/galaxy4x/engine/internal/change"
	"github.com/galaxy4x/engine/internal/world"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	// ErrStopped is returned when sending to a consumer that has ended.
	ErrStopped = errors.New("access: consumer stopped")

	// ErrPoisoned is reported after a change panicked while holding the write
	// lock. The world may be half-applied; the writer does not come back.
	ErrPoisoned = errors.New("access: world poisoned by a failed write")
)

// Applier mutates the world for one change. *change.Interpreter implements it.
type Applier interface {
	Apply(w *world.World, c change.Change) error
}

// Access is the single-writer gateway to a World.
type Access struct {
	mu      sync.RWMutex
	world   *world.World
	applier Applier
	log     *zap.Logger

	poisoned  atomic.Bool
	poisonLog rate.Sometimes

	runMu sync.Mutex
	run   *run
	err   error
}

// run is one consumer session, from Start to its exit.
type run struct {
	box     *mailbox
	senders atomic.Int64
	done    chan struct{}
}

func (r *run) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// New wraps w. With a nil applier changes go through a change.Interpreter
// without event subscribers.
func New(w *world.World, applier Applier, log *zap.Logger) *Access {
	if log == nil {
		log = zap.NewNop()
	}
	if applier == nil {
		applier = change.NewInterpreter(nil, log)
	}
	return &Access{
		world:     w,
		applier:   applier,
		log:       log,
		poisonLog: rate.Sometimes{First: 1, Interval: 10 * time.Second},
	}
}

// Start spawns the consumer and returns the first sender for it. Starting an
// access whose consumer still accepts changes panics. After Stop, a
// StopProcessing or the last Sender.Close the access may be started again,
// even while the old goroutine is still winding down.
func (a *Access) Start() *Sender {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	if a.run != nil && !a.run.finished() && !a.run.box.ended() {
		panic("access: start while the consumer is running")
	}

	prev := a.run
	r := &run{box: newMailbox(), done: make(chan struct{})}
	r.senders.Store(1)
	a.run = r
	a.err = nil

	if a.poisoned.Load() {
		r.box.abort()
		a.err = ErrPoisoned
		close(r.done)
		a.log.Error("consumer not started", zap.Error(ErrPoisoned))
		return &Sender{run: r}
	}

	go a.consume(r, prev)
	return &Sender{run: r}
}

// Stop discards pending changes and asks the consumer to exit. It does not
// wait; poll Running to observe the exit.
func (a *Access) Stop() {
	a.runMu.Lock()
	r := a.run
	a.runMu.Unlock()
	if r != nil {
		r.box.abort()
	}
}

// Running reports whether the current consumer goroutine is alive.
func (a *Access) Running() bool {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.run != nil && !a.run.finished()
}

// Err returns why the last consumer ended abnormally, or nil.
func (a *Access) Err() error {
	a.runMu.Lock()
	defer a.runMu.Unlock()
	return a.err
}

// Poisoned reports whether a write has ever panicked.
func (a *Access) Poisoned() bool {
	return a.poisoned.Load()
}

// Pending returns the number of queued changes not yet applied.
func (a *Access) Pending() int {
	a.runMu.Lock()
	r := a.run
	a.runMu.Unlock()
	if r == nil {
		return 0
	}
	return r.box.len()
}

// consume applies r's changes once prev, if any, has exited, so at most one
// consumer drains at a time and a closed run's leftovers precede the new ones.
func (a *Access) consume(r *run, prev *run) {
	defer close(r.done)
	if prev != nil {
		<-prev.done
	}
	a.log.Debug("consumer started")

	for {
		c, ok := r.box.pop()
		if !ok {
			a.log.Debug("consumer finished")
			return
		}
		if _, stop := c.(change.StopProcessing); stop {
			r.box.abort()
			a.log.Debug("consumer stopped by request")
			return
		}
		if a.poisoned.Load() {
			a.fail(r, ErrPoisoned)
			return
		}
		err := a.write(c)
		switch {
		case err == nil:
		case errors.Is(err, ErrPoisoned):
			a.fail(r, err)
			return
		default:
			a.log.Warn("change rejected", zap.Stringer("change", c), zap.Error(err))
		}
	}
}

// fail ends r after a poisoned write. A consumer started later keeps its own error.
func (a *Access) fail(r *run, err error) {
	r.box.abort()
	a.runMu.Lock()
	if a.run == r {
		a.err = err
	}
	a.runMu.Unlock()
	a.log.Error("writer terminated", zap.Error(err))
}

// write applies c under the write lock. A panic is reported as ErrPoisoned
// with the lock released.
func (a *Access) write(c change.Change) (err error) {
	a.mu.Lock()
	defer func() {
		if p := recover(); p != nil {
			a.poisoned.Store(true)
			err = fmt.Errorf("%w: %v panicked: %v", ErrPoisoned, c, p)
		}
		a.mu.Unlock()
	}()
	return a.applier.Apply(a.world, c)
}

func (a *Access) rlock() {
	a.mu.RLock()
	if a.poisoned.Load() {
		a.poisonLog.Do(func() {
			a.log.Warn("reading world after a failed write")
		})
	}
}

// Snapshot returns a deep copy of the world.
func (a *Access) Snapshot() world.World {
	a.rlock()
	defer a.mu.RUnlock()
	return a.world.Clone()
}

// View calls fn with the world under the read lock. fn must not keep
// references into the world after it returns.
func (a *Access) View(fn func(w *world.World)) {
	a.rlock()
	defer a.mu.RUnlock()
	fn(a.world)
}

// ReadLock holds the read lock until the guard is released. Writes wait for
// every guard; release it promptly.
func (a *Access) ReadLock() *ReadGuard {
	a.rlock()
	return &ReadGuard{a: a}
}

// ReadGuard is a held read lock.
type ReadGuard struct {
	a    *Access
	once sync.Once
}

// World returns the guarded world. Do not mutate it or use it after Release.
func (g *ReadGuard) World() *world.World {
	return g.a.world
}

// Release drops the read lock. Extra calls are ignored.
func (g *ReadGuard) Release() {
	g.once.Do(g.a.mu.RUnlock)
}
