package world

// PlayerID is a player's index in World.Players.
type PlayerID int

// Nobody owns unclaimed colonies.
const Nobody PlayerID = -1

// Human is the local player in this build.
const Human PlayerID = 0

// Player is one participant.
type Player struct {
	ID        PlayerID
	Money     int64
	Selection []ShipID
}

// World is the root of the game state. One World exists per game session and
// it is only ever mutated by the writer goroutine of an access.Access.
type World struct {
	Galaxy  Galaxy
	Players []Player
	Ships   []Ship
	Time    Duration
}

// NewWorld addresses every body of systems and returns the starting world.
// Without players a single human player is created. Players are added until
// every colony owner resolves, so tax always has someone to go to.
func NewWorld(systems []System, players ...Player) *World {
	galaxy := Galaxy(systems).clone()
	for si := range galaxy {
		for bi := range galaxy[si].Bodies {
			galaxy[si].Bodies[bi].Address = BodyAddress{System: si, Body: bi}
		}
	}
	if len(players) == 0 {
		players = []Player{{ID: Human}}
	}
	ps := make([]Player, len(players))
	for i, p := range players {
		p.ID = PlayerID(i)
		p.Selection = cloneShipIDs(p.Selection)
		ps[i] = p
	}
	galaxy.EachColony(func(_ BodyAddress, c *Colony) {
		for int(c.Owner) >= len(ps) {
			ps = append(ps, Player{ID: PlayerID(len(ps))})
		}
	})
	return &World{
		Galaxy:  galaxy,
		Players: ps,
	}
}

// Player resolves a player id.
func (w *World) Player(id PlayerID) (*Player, bool) {
	if id < 0 || int(id) >= len(w.Players) {
		return nil, false
	}
	return &w.Players[id], true
}

// Ship resolves a ship id.
func (w *World) Ship(id ShipID) (*Ship, bool) {
	if id < 0 || int(id) >= len(w.Ships) {
		return nil, false
	}
	return &w.Ships[id], true
}

// LaunchShip appends a ship for owner orbiting origin from now on.
func (w *World) LaunchShip(owner PlayerID, origin BodyAddress) ShipID {
	id := ShipID(len(w.Ships))
	w.Ships = append(w.Ships, Ship{
		ID:       id,
		Owner:    owner,
		Movement: OrbitMotion{Since: w.Time, Around: origin},
	})
	return id
}

// Clone returns a deep copy that shares nothing mutable with w. Constructable
// items in construction queues are shared; snapshots must treat them as read-only.
func (w *World) Clone() World {
	out := World{
		Galaxy: w.Galaxy.clone(),
		Time:   w.Time,
	}
	if w.Players != nil {
		out.Players = make([]Player, len(w.Players))
		for i, p := range w.Players {
			p.Selection = cloneShipIDs(p.Selection)
			out.Players[i] = p
		}
	}
	if w.Ships != nil {
		out.Ships = make([]Ship, len(w.Ships))
		copy(out.Ships, w.Ships)
	}
	return out
}

func cloneShipIDs(ids []ShipID) []ShipID {
	if ids == nil {
		return nil
	}
	out := make([]ShipID, len(ids))
	copy(out, ids)
	return out
}
