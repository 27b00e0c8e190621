package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/galaxy4x/engine/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the scripted blueprints.
// The VM is guarded by mu; completion callbacks run on the world writer.
type Engine struct {
	mu         sync.Mutex
	vm         *lua.LState
	log        *zap.Logger
	blueprints map[string]*Blueprint
}

// NewEngine creates a Lua engine and loads every script under scriptsDir/blueprints.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, blueprints: make(map[string]*Blueprint)}
	vm.SetGlobal("register_blueprint", vm.NewFunction(e.registerBlueprint))

	if err := e.loadDir(filepath.Join(scriptsDir, "blueprints")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load blueprint scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// registerBlueprint implements register_blueprint{name=, price=, work_days=, on_complete=}.
func (e *Engine) registerBlueprint(L *lua.LState) int {
	t := L.CheckTable(1)

	name, ok := t.RawGetString("name").(lua.LString)
	if !ok || name == "" {
		L.ArgError(1, "blueprint needs a name")
		return 0
	}
	if _, dup := e.blueprints[string(name)]; dup {
		L.RaiseError("blueprint %s registered twice", name)
		return 0
	}
	price := lua.LVAsNumber(t.RawGetString("price"))
	days := lua.LVAsNumber(t.RawGetString("work_days"))
	if price < 0 || days < 0 {
		L.ArgError(1, "negative price or work_days")
		return 0
	}

	b := &Blueprint{
		engine: e,
		name:   string(name),
		price:  int64(price),
		work:   world.Duration(math.Round(float64(days) * float64(world.Day))),
		owner:  world.Nobody,
	}
	if fn, ok := t.RawGetString("on_complete").(*lua.LFunction); ok {
		b.onComplete = fn
	}
	e.blueprints[b.name] = b
	return 0
}

// Blueprint returns the scripted design name built for owner.
func (e *Engine) Blueprint(name string, owner world.PlayerID) (*Blueprint, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	tmpl, ok := e.blueprints[name]
	if !ok {
		return nil, false
	}
	b := *tmpl
	b.owner = owner
	return &b, true
}

// Names returns the registered blueprint names, sorted.
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.blueprints))
	for name := range e.blueprints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases the VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}
