package system

import (
	"sort"

	"github.com/galaxy4x/engine/internal/world"
)

// Runner executes systems in phase order each tick. Systems of the same
// phase run in registration order.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) Tick(w *world.World, dt world.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(w, dt)
	}
}

// TickPhase runs only the systems of one phase.
func (r *Runner) TickPhase(phase Phase, w *world.World, dt world.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(w, dt)
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
