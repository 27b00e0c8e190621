package system

import (
	coresys "github.com/galaxy4x/engine/internal/core/system"
	"github.com/galaxy4x/engine/internal/world"
)

// CompletionSystem runs the effect of every item finished this tick, in
// completion order, once every colony is committed. Phase 4 (Completion).
type CompletionSystem struct {
	effects *Effects
}

func NewCompletionSystem(effects *Effects) *CompletionSystem {
	return &CompletionSystem{effects: effects}
}

func (s *CompletionSystem) Phase() coresys.Phase { return coresys.PhaseCompletion }

func (s *CompletionSystem) Update(w *world.World, _ world.Duration) {
	for _, c := range s.effects.take() {
		c.Item.OnComplete(w, c.Origin)
	}
}
