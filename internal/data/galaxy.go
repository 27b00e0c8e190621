package data

import (
	"fmt"
	"math"
	"os"

	"github.com/galaxy4x/engine/internal/world"
	"gopkg.in/yaml.v3"
)

// SystemEntry defines one star system of galaxy_list.yaml.
type SystemEntry struct {
	Name   string      `yaml:"name" json:"name"`
	X      float64     `yaml:"x" json:"x"`
	Y      float64     `yaml:"y" json:"y"`
	Bodies []BodyEntry `yaml:"bodies" json:"bodies"`
}

// BodyEntry defines a body. Colony fields only apply to rocky bodies.
type BodyEntry struct {
	Name      string  `yaml:"name" json:"name"`
	Class     string  `yaml:"class" json:"class" jsonschema:"enum=star,enum=gas_giant,enum=rocky"`
	OrbitDays float64 `yaml:"orbit_days" json:"orbit_days,omitempty"`
	Distance  float64 `yaml:"distance" json:"distance,omitempty"` // au

	Size       float64 `yaml:"size" json:"size,omitempty"`   // earths, default 1
	Owner      *int    `yaml:"owner" json:"owner,omitempty"` // player id, unowned when absent
	Population int64   `yaml:"population" json:"population,omitempty"`
	Tax        float64 `yaml:"tax" json:"tax,omitempty"` // default world.DefaultTax
}

// LoadGalaxy loads galaxy_list.yaml into systems ready for world.NewWorld.
func LoadGalaxy(path string) ([]world.System, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read galaxy list: %w", err)
	}
	return ParseGalaxy(raw)
}

// ParseGalaxy decodes a galaxy list document.
func ParseGalaxy(raw []byte) ([]world.System, error) {
	var entries []SystemEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse galaxy list: %w", err)
	}
	systems := make([]world.System, 0, len(entries))
	for i := range entries {
		s, err := entries[i].build()
		if err != nil {
			return nil, fmt.Errorf("system %d (%s): %w", i, entries[i].Name, err)
		}
		systems = append(systems, s)
	}
	return systems, nil
}

func (e *SystemEntry) build() (world.System, error) {
	bodies := make([]world.Body, 0, len(e.Bodies))
	for i := range e.Bodies {
		b, err := e.Bodies[i].build()
		if err != nil {
			return world.System{}, fmt.Errorf("body %d (%s): %w", i, e.Bodies[i].Name, err)
		}
		bodies = append(bodies, b)
	}
	return world.NewSystem(e.Name, world.Position{X: e.X, Y: e.Y}, bodies), nil
}

func (e *BodyEntry) build() (world.Body, error) {
	class, err := parseClass(e.Class)
	if err != nil {
		return world.Body{}, err
	}
	if e.OrbitDays < 0 || e.Distance < 0 {
		return world.Body{}, fmt.Errorf("negative orbit")
	}
	orbit := world.Duration(math.Round(e.OrbitDays * float64(world.Day)))
	body := world.NewBody(class, e.Name, orbit, e.Distance)

	hasColony := e.Size != 0 || e.Owner != nil || e.Population != 0 || e.Tax != 0
	if class != world.Rocky {
		if hasColony {
			return world.Body{}, fmt.Errorf("colony fields on a %s", class)
		}
		return body, nil
	}

	size := e.Size
	switch {
	case size < 0:
		return world.Body{}, fmt.Errorf("negative size %v", size)
	case size == 0:
		size = 1.0
	}
	owner := world.Nobody
	if e.Owner != nil {
		if *e.Owner < int(world.Nobody) {
			return world.Body{}, fmt.Errorf("invalid owner %d", *e.Owner)
		}
		owner = world.PlayerID(*e.Owner)
	}
	if e.Population < 0 {
		return world.Body{}, fmt.Errorf("negative population %d", e.Population)
	}

	colony := world.NewEmptyColony(size)
	colony.Owner = owner
	if e.Population > 0 {
		pop := world.NewPopulation(e.Population)
		if e.Tax != 0 {
			pop.Tax = e.Tax
		}
		colony.Population = &pop
	}
	body.Colony = colony
	return body, nil
}

func parseClass(s string) (world.BodyClass, error) {
	for _, c := range []world.BodyClass{world.Star, world.GasGiant, world.Rocky} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown body class %q", s)
}
