package world

import (
	"fmt"
	"math"
)

// Au is an astronomical unit, the earth-sun distance. The milky way fits in
// a signed float64 of au with earth at 0.0.
type Au = float64

// Earths measures surface relative to earth.
type Earths = float64

// Position is a point on the galaxy plane in au.
type Position struct {
	X Au
	Y Au
}

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Center is the galaxy origin.
var Center = Position{}

// BodyClass is the kind of a stellar body.
type BodyClass int

const (
	Star BodyClass = iota
	GasGiant
	Rocky
)

func (c BodyClass) String() string {
	switch c {
	case Star:
		return "star"
	case GasGiant:
		return "gas_giant"
	case Rocky:
		return "rocky"
	}
	return fmt.Sprintf("BodyClass(%d)", int(c))
}

// BodyAddress identifies a body by index: system in the galaxy, body in the system.
type BodyAddress struct {
	System int
	Body   int
}

func (a BodyAddress) String() string {
	return fmt.Sprintf("%d/%d", a.System, a.Body)
}

// unknownAddress marks bodies that have not been placed in a World yet.
var unknownAddress = BodyAddress{System: -1, Body: -1}

// ViewID is a render-side token; the engine never interprets it.
type ViewID uint32

// ViewBinding is an optional ViewID.
type ViewBinding struct {
	ID    ViewID
	Bound bool
}

// BindView returns a binding holding id.
func BindView(id ViewID) ViewBinding {
	return ViewBinding{ID: id, Bound: true}
}

// Unbound clears a view binding.
var Unbound = ViewBinding{}

// Body is a star, gas giant or rocky planet. Only rocky bodies carry a Colony.
type Body struct {
	Class       BodyClass
	Name        string
	OrbitPeriod Duration
	Distance    Au
	Address     BodyAddress
	View        ViewBinding
	Colony      *Colony
}

// NewBody creates an unaddressed body. Rocky bodies get an empty colony of size 1.
func NewBody(class BodyClass, name string, orbit Duration, distance Au) Body {
	b := Body{
		Class:       class,
		Name:        name,
		OrbitPeriod: orbit,
		Distance:    distance,
		Address:     unknownAddress,
	}
	if class == Rocky {
		b.Colony = NewEmptyColony(1.0)
	}
	return b
}

// NewStar creates a star sitting at its system's center.
func NewStar(name string) Body {
	return NewBody(Star, name, 0, 0)
}

// NewEarthlike creates a rocky body with earth's orbit, inhabited by player owner.
func NewEarthlike(name string, owner PlayerID) Body {
	b := NewBody(Rocky, name, Days(365), 1.0)
	b.Colony = NewInhabitedColony(owner, 1.0, NewPopulation(7_456_000_000))
	return b
}

// Position returns where the body is at the given time since simulation start.
func (b *Body) Position(at Duration) Position {
	return CalcOrbit(b.OrbitPeriod, b.Distance, at)
}

// CalcOrbit places a point on a circular orbit of the given period and radius.
// A zero period is a body resting at the center.
func CalcOrbit(period Duration, distance Au, at Duration) Position {
	if period == 0 {
		return Center
	}
	progress := float64(at%period) / float64(period) * math.Pi * 2
	return Position{
		X: math.Sin(progress) * distance,
		Y: math.Cos(progress) * distance,
	}
}

// System is a named cell of the galaxy.
type System struct {
	Name     string
	Position Position
	Radius   Au // outermost body distance, used for culling
	Bodies   []Body
}

// NewSystem creates a system and derives its radius from its bodies.
func NewSystem(name string, position Position, bodies []Body) System {
	var radius Au
	for i := range bodies {
		if bodies[i].Distance > radius {
			radius = bodies[i].Distance
		}
	}
	return System{
		Name:     name,
		Position: position,
		Radius:   radius,
		Bodies:   bodies,
	}
}

// Galaxy is the ordered list of systems.
type Galaxy []System

// Body resolves an address. The returned pointer must not be kept past the
// current write or read section.
func (g Galaxy) Body(a BodyAddress) (*Body, bool) {
	if a.System < 0 || a.System >= len(g) {
		return nil, false
	}
	bodies := g[a.System].Bodies
	if a.Body < 0 || a.Body >= len(bodies) {
		return nil, false
	}
	return &bodies[a.Body], true
}

// EachBody visits bodies in (system, body) order.
func (g Galaxy) EachBody(fn func(*Body)) {
	for si := range g {
		for bi := range g[si].Bodies {
			fn(&g[si].Bodies[bi])
		}
	}
}

// EachColony visits every rocky colony in (system, body) order.
func (g Galaxy) EachColony(fn func(BodyAddress, *Colony)) {
	g.EachBody(func(b *Body) {
		if b.Colony != nil {
			fn(b.Address, b.Colony)
		}
	})
}

// BodyCount returns the number of bodies in all systems.
func (g Galaxy) BodyCount() int {
	n := 0
	for i := range g {
		n += len(g[i].Bodies)
	}
	return n
}

func (g Galaxy) clone() Galaxy {
	if g == nil {
		return nil
	}
	out := make(Galaxy, len(g))
	for si := range g {
		out[si] = g[si]
		out[si].Bodies = make([]Body, len(g[si].Bodies))
		for bi := range g[si].Bodies {
			b := g[si].Bodies[bi]
			b.Colony = b.Colony.clone()
			out[si].Bodies[bi] = b
		}
	}
	return out
}
