package system

import "github.com/galaxy4x/engine/internal/world"

// Phase defines execution ordering within a single resource tick.
type Phase int

const (
	PhaseDispatch     Phase = iota // 0: deliver last tick's events
	PhaseClock                     // 1: advance world time
	PhaseColony                    // 2: growth and taxation
	PhaseConstruction              // 3: construction queues
	PhaseCompletion                // 4: completion effects
)

// System is one step of the resource tick.
type System interface {
	Phase() Phase
	Update(w *world.World, dt world.Duration)
}
