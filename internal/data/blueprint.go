package data

import (
	"fmt"
	"math"
	"os"

	"github.com/galaxy4x/engine/internal/world"
	"gopkg.in/yaml.v3"
)

// BlueprintEntry defines a ship design from ship_list.yaml.
type BlueprintEntry struct {
	Name     string  `yaml:"name" json:"name"`
	Price    int64   `yaml:"price" json:"price"`
	WorkDays float64 `yaml:"work_days" json:"work_days"`
}

// Work is the construction time of the design.
func (e *BlueprintEntry) Work() world.Duration {
	return world.Duration(math.Round(e.WorkDays * float64(world.Day)))
}

// Ship returns a constructable of this design for owner.
func (e *BlueprintEntry) Ship(owner world.PlayerID) *world.ShipBlueprint {
	return &world.ShipBlueprint{
		Name:  e.Name,
		Owner: owner,
		Cost:  e.Price,
		Work:  e.Work(),
	}
}

// BlueprintTable looks up ship designs by name.
type BlueprintTable struct {
	byName map[string]*BlueprintEntry
	names  []string
}

// LoadBlueprintTable loads ship_list.yaml.
func LoadBlueprintTable(path string) (*BlueprintTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ship list: %w", err)
	}
	var entries []BlueprintEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse ship list: %w", err)
	}
	t := &BlueprintTable{
		byName: make(map[string]*BlueprintEntry, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		switch {
		case e.Name == "":
			return nil, fmt.Errorf("ship list entry %d: missing name", i)
		case e.Price < 0 || e.WorkDays < 0:
			return nil, fmt.Errorf("ship %s: negative price or work", e.Name)
		case t.byName[e.Name] != nil:
			return nil, fmt.Errorf("ship %s: defined twice", e.Name)
		}
		t.byName[e.Name] = e
		t.names = append(t.names, e.Name)
	}
	return t, nil
}

// Get returns the design with the given name, or nil if none.
func (t *BlueprintTable) Get(name string) *BlueprintEntry {
	return t.byName[name]
}

// Names returns the design names in file order.
func (t *BlueprintTable) Names() []string {
	return t.names
}

// Count returns the total number of designs loaded.
func (t *BlueprintTable) Count() int {
	return len(t.byName)
}
