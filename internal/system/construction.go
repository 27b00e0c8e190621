package system

import (
	"github.com/galaxy4x/engine/internal/core/event"
	coresys "github.com/galaxy4x/engine/internal/core/system"
	"github.com/galaxy4x/engine/internal/world"
)

// Completion is a finished item waiting for its effect, with the colony that built it.
type Completion struct {
	Item   world.Constructable
	Origin world.BodyAddress
}

// Effects is the tick's list of finished items. Items move here from the
// colony queue and leave it when their effect runs.
type Effects struct {
	pending []Completion
}

func (e *Effects) push(c Completion) {
	e.pending = append(e.pending, c)
}

// take empties the list and returns what it held.
func (e *Effects) take() []Completion {
	out := e.pending
	e.pending = nil
	return out
}

// Len returns the number of effects waiting.
func (e *Effects) Len() int {
	return len(e.pending)
}

// ConstructionSystem spends the tick's work time on every colony queue.
// Phase 3 (Construction).
type ConstructionSystem struct {
	effects *Effects
	bus     *event.Bus
}

func NewConstructionSystem(effects *Effects, bus *event.Bus) *ConstructionSystem {
	return &ConstructionSystem{effects: effects, bus: bus}
}

func (s *ConstructionSystem) Phase() coresys.Phase { return coresys.PhaseConstruction }

func (s *ConstructionSystem) Update(w *world.World, dt world.Duration) {
	w.Galaxy.EachColony(func(at world.BodyAddress, c *world.Colony) {
		for _, item := range c.AdvanceConstruction(dt) {
			s.effects.push(Completion{Item: item, Origin: at})
			event.Emit(s.bus, event.ConstructionCompleted{At: at, Price: item.Price(), Time: w.Time})
		}
	})
}
