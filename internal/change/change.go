// Package change defines the closed set of mutations applied to a World and
// the interpreter that applies them one at a time.
package change

import (
	"errors"
	"fmt"

	"github.com/galaxy4x/engine/internal/world"
)

var (
	// ErrUnknownTarget is returned for addresses or ids that do not resolve.
	// The world is left untouched.
	ErrUnknownTarget = errors.New("change: unknown target")

	// ErrNegativeTime is returned for an AdvanceTime that would run the clock backwards.
	ErrNegativeTime = errors.New("change: negative time increase")
)

// Change is one message of the mutation protocol.
type Change interface {
	fmt.Stringer
	change()
}

// SetBodyView overwrites the view token of the body at At.
type SetBodyView struct {
	At   world.BodyAddress
	View world.ViewBinding
}

// SetShipView overwrites the view token of a ship.
type SetShipView struct {
	Ship world.ShipID
	View world.ViewBinding
}

// EnqueueConstruction pushes Item onto the queue of the colony at At.
// Bodies without a colony ignore it.
type EnqueueConstruction struct {
	Item world.Constructable
	At   world.BodyAddress
}

// SetSelection overwrites a player's ship selection.
type SetSelection struct {
	Player world.PlayerID
	Ships  []world.ShipID
}

// AdvanceTime runs one resource tick of Increase.
type AdvanceTime struct {
	Increase world.Duration
}

// StopProcessing ends the consumer. It is interpreted by the access layer,
// never applied to a world.
type StopProcessing struct{}

func (SetBodyView) change()         {}
func (SetShipView) change()         {}
func (EnqueueConstruction) change() {}
func (SetSelection) change()        {}
func (AdvanceTime) change()         {}
func (StopProcessing) change()      {}

func (c SetBodyView) String() string {
	return fmt.Sprintf("SetBodyView(%v)", c.At)
}

func (c SetShipView) String() string {
	return fmt.Sprintf("SetShipView(%d)", c.Ship)
}

func (c EnqueueConstruction) String() string {
	return fmt.Sprintf("EnqueueConstruction(%v)", c.At)
}

func (c SetSelection) String() string {
	return fmt.Sprintf("SetSelection(%d, %d ships)", c.Player, len(c.Ships))
}

func (c AdvanceTime) String() string {
	return fmt.Sprintf("AdvanceTime(%v)", c.Increase)
}

func (StopProcessing) String() string { return "StopProcessing" }
