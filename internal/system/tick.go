package system

import (
	"github.com/galaxy4x/engine/internal/core/event"
	coresys "github.com/galaxy4x/engine/internal/core/system"
	"go.uber.org/zap"
)

// NewResourceTick registers the resource tick systems on a fresh runner.
func NewResourceTick(bus *event.Bus, log *zap.Logger) *coresys.Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	effects := &Effects{}
	runner := coresys.NewRunner()
	runner.Register(NewDispatchSystem(bus))
	runner.Register(NewClockSystem())
	runner.Register(NewColonySystem(bus, log))
	runner.Register(NewConstructionSystem(effects, bus))
	runner.Register(NewCompletionSystem(effects))
	return runner
}
