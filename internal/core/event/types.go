package event

import "github.com/galaxy4x/engine/internal/world"

// Resource tick events.

type ConstructionCompleted struct {
	At    world.BodyAddress
	Price int64
	Time  world.Duration
}

type ColonyDepopulated struct {
	At    world.BodyAddress
	Owner world.PlayerID
}

type TreasurySaturated struct {
	Player world.PlayerID
	Money  int64
}
