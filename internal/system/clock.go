package system

import (
	coresys "github.com/galaxy4x/engine/internal/core/system"
	"github.com/galaxy4x/engine/internal/world"
)

// ClockSystem advances world time by the tick's increase.
// Phase 1 (Clock).
type ClockSystem struct{}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhaseClock }

func (s *ClockSystem) Update(w *world.World, dt world.Duration) {
	w.Time = w.Time.Add(dt)
}
