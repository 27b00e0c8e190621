package change

import (
	"fmt"

	"github.com/galaxy4x/engine/internal/core/event"
	coresys "github.com/galaxy4x/engine/internal/core/system"
	"github.com/galaxy4x/engine/internal/system"
	"github.com/galaxy4x/engine/internal/world"
	"go.uber.org/zap"
)

// Interpreter applies changes to a world. It is not safe for concurrent use;
// the access layer calls it from its single consumer goroutine.
type Interpreter struct {
	tick *coresys.Runner
	log  *zap.Logger
}

// NewInterpreter creates an interpreter whose resource ticks report on bus.
func NewInterpreter(bus *event.Bus, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		tick: system.NewResourceTick(bus, log),
		log:  log,
	}
}

// Apply runs c against w. On error w is unchanged.
func (i *Interpreter) Apply(w *world.World, c Change) error {
	switch c := c.(type) {
	case SetBodyView:
		body, ok := w.Galaxy.Body(c.At)
		if !ok {
			return fmt.Errorf("body %v: %w", c.At, ErrUnknownTarget)
		}
		body.View = c.View

	case SetShipView:
		ship, ok := w.Ship(c.Ship)
		if !ok {
			return fmt.Errorf("ship %d: %w", c.Ship, ErrUnknownTarget)
		}
		ship.View = c.View

	case EnqueueConstruction:
		body, ok := w.Galaxy.Body(c.At)
		if !ok {
			return fmt.Errorf("body %v: %w", c.At, ErrUnknownTarget)
		}
		if body.Colony == nil {
			i.log.Debug("construction on body without colony",
				zap.Stringer("body", c.At),
				zap.Stringer("class", body.Class),
			)
			return nil
		}
		body.Colony.Enqueue(c.Item)

	case SetSelection:
		player, ok := w.Player(c.Player)
		if !ok {
			return fmt.Errorf("player %d: %w", c.Player, ErrUnknownTarget)
		}
		player.Selection = append([]world.ShipID(nil), c.Ships...)

	case AdvanceTime:
		if c.Increase < 0 {
			return fmt.Errorf("advance by %v: %w", c.Increase, ErrNegativeTime)
		}
		i.tick.Tick(w, c.Increase)

	case StopProcessing:
		// handled by the consumer

	default:
		return fmt.Errorf("change: unhandled %T", c)
	}
	return nil
}
