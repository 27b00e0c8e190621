package world

import "math"

// ShipID is a ship's index in World.Ships. Ids are never reused.
type ShipID int

// Ship is a player unit in space.
type Ship struct {
	ID       ShipID
	Owner    PlayerID
	Movement Movement
	View     ViewBinding
}

// Movement describes how a ship's position evolves.
type Movement interface {
	Position(at Duration, g Galaxy) Position
	isMovement()
}

// Velocity is a heading in radians and a speed in au per second.
type Velocity struct {
	Direction float64
	Speed     float64
}

func (v Velocity) displacement(d Duration) Position {
	secs := d.Fraction(Second)
	return Position{
		X: v.Speed * math.Cos(v.Direction) * secs,
		Y: v.Speed * math.Sin(v.Direction) * secs,
	}
}

// VectorMotion is straight-line travel from Origin starting at Since.
type VectorMotion struct {
	Since    Duration
	Origin   Position
	Velocity Velocity
}

func (m VectorMotion) Position(at Duration, _ Galaxy) Position {
	return m.Origin.Add(m.Velocity.displacement(at - m.Since))
}

func (VectorMotion) isMovement() {}

const (
	shipOrbitDistance Au = 0.000_000_000_668_449_198
	shipOrbitPeriod      = 5*Hour + 5*Minute + 5*Second + 5*Millisecond
)

// OrbitMotion circles the body at Around starting at Since.
type OrbitMotion struct {
	Since  Duration
	Around BodyAddress
}

func (m OrbitMotion) Position(at Duration, g Galaxy) Position {
	body, ok := g.Body(m.Around)
	if !ok {
		return Center
	}
	center := g[m.Around.System].Position.Add(body.Position(at))
	return center.Add(CalcOrbit(shipOrbitPeriod, shipOrbitDistance, at-m.Since))
}

func (OrbitMotion) isMovement() {}

// ShipBlueprint is a Constructable that launches a ship into orbit around
// the colony that built it.
type ShipBlueprint struct {
	Name  string
	Owner PlayerID
	Cost  int64
	Work  Duration
}

func (s *ShipBlueprint) Price() int64         { return s.Cost }
func (s *ShipBlueprint) WorkNeeded() Duration { return s.Work }

// OnComplete appends the ship with the next free id.
func (s *ShipBlueprint) OnComplete(w *World, origin BodyAddress) {
	w.LaunchShip(s.Owner, origin)
}
