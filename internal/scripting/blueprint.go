package scripting

import (
	"github.com/galaxy4x/engine/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Blueprint is a scripted world.Constructable. Without an on_complete
// function it launches a ship for its owner like world.ShipBlueprint.
type Blueprint struct {
	engine     *Engine
	name       string
	price      int64
	work       world.Duration
	owner      world.PlayerID
	onComplete *lua.LFunction
}

func (b *Blueprint) Name() string               { return b.name }
func (b *Blueprint) Owner() world.PlayerID      { return b.owner }
func (b *Blueprint) Price() int64               { return b.price }
func (b *Blueprint) WorkNeeded() world.Duration { return b.work }

// OnComplete calls the script's on_complete(ctx). Lua errors are logged and
// leave whatever the script changed before failing.
func (b *Blueprint) OnComplete(w *world.World, origin world.BodyAddress) {
	if b.onComplete == nil {
		w.LaunchShip(b.owner, origin)
		return
	}

	e := b.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := b.newContext(w, origin)
	if err := e.vm.CallByParam(lua.P{
		Fn:      b.onComplete,
		NRet:    0,
		Protect: true,
	}, ctx); err != nil {
		e.log.Error("lua on_complete error",
			zap.String("blueprint", b.name),
			zap.Stringer("origin", origin),
			zap.Error(err),
		)
	}
}

// newContext builds the ctx table. Its functions close over w and are only
// valid during the callback.
func (b *Blueprint) newContext(w *world.World, origin world.BodyAddress) *lua.LTable {
	vm := b.engine.vm
	t := vm.NewTable()
	t.RawSetString("name", lua.LString(b.name))
	t.RawSetString("system", lua.LNumber(origin.System))
	t.RawSetString("body", lua.LNumber(origin.Body))
	t.RawSetString("owner", lua.LNumber(b.owner))
	t.RawSetString("time_ms", lua.LNumber(w.Time))

	t.RawSetString("add_money", vm.NewFunction(func(L *lua.LState) int {
		id := world.PlayerID(L.CheckInt(1))
		amount := float64(L.CheckNumber(2))
		p, ok := w.Player(id)
		if !ok {
			L.ArgError(1, "unknown player")
			return 0
		}
		p.Money = world.AddMoney(p.Money, amount)
		L.Push(lua.LNumber(p.Money))
		return 1
	}))

	t.RawSetString("spawn_ship", vm.NewFunction(func(L *lua.LState) int {
		owner := world.PlayerID(L.OptInt(1, int(b.owner)))
		L.Push(lua.LNumber(w.LaunchShip(owner, origin)))
		return 1
	}))

	t.RawSetString("set_tax", vm.NewFunction(func(L *lua.LState) int {
		rate := float64(L.CheckNumber(1))
		body, ok := w.Galaxy.Body(origin)
		if !ok || body.Colony == nil || body.Colony.Population == nil {
			L.Push(lua.LFalse)
			return 1
		}
		body.Colony.Population.Tax = rate
		L.Push(lua.LTrue)
		return 1
	}))
	return t
}
