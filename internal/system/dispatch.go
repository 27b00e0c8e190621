package system

import (
	"github.com/galaxy4x/engine/internal/core/event"
	coresys "github.com/galaxy4x/engine/internal/core/system"
	"github.com/galaxy4x/engine/internal/world"
)

// DispatchSystem delivers the events of the previous tick.
// Phase 0 (Dispatch).
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ *world.World, _ world.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
