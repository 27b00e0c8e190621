package system

import (
	"github.com/galaxy4x/engine/internal/core/event"
	coresys "github.com/galaxy4x/engine/internal/core/system"
	"github.com/galaxy4x/engine/internal/world"
	"go.uber.org/zap"
)

// ColonySystem grows populations and pays their tax to the colony owner.
// Phase 2 (Colony).
//
// Growth and tax are both computed from the population as it was before the
// tick; neither sees the other's result. Tax is paid in whole money, the
// fraction stays with the colony until it adds up. Colonies do not interact within a
// tick, so iteration order only matters for reproducible logs.
type ColonySystem struct {
	bus *event.Bus
	log *zap.Logger
}

func NewColonySystem(bus *event.Bus, log *zap.Logger) *ColonySystem {
	return &ColonySystem{bus: bus, log: log}
}

func (s *ColonySystem) Phase() coresys.Phase { return coresys.PhaseColony }

func (s *ColonySystem) Update(w *world.World, dt world.Duration) {
	w.Galaxy.EachColony(func(at world.BodyAddress, c *world.Colony) {
		if c.Population == nil {
			return
		}
		before := *c.Population
		growth := before.HeadIncrease(c.CarryingCapacity(), dt)
		tax := c.CollectTax(dt)

		s.payTax(w, c.Owner, tax)

		*c.Population = before.Grow(growth)
		if before.HeadCount > 0 && c.Population.HeadCount == 0 {
			event.Emit(s.bus, event.ColonyDepopulated{At: at, Owner: c.Owner})
		}
	})
}

func (s *ColonySystem) payTax(w *world.World, owner world.PlayerID, tax float64) {
	if owner == world.Nobody {
		return
	}
	p, ok := w.Player(owner)
	if !ok {
		s.log.Warn("colony owner missing", zap.Int("player", int(owner)))
		return
	}
	before := p.Money
	p.Money = world.AddMoney(p.Money, tax)
	if p.Money != before && (p.Money == world.MaxMoney || p.Money == -world.MaxMoney) {
		event.Emit(s.bus, event.TreasurySaturated{Player: p.ID, Money: p.Money})
	}
}
