package world

import (
	"reflect"
	"testing"
)

func testSystems() []System {
	return []System{
		NewSystem("sol", Position{}, []Body{
			NewStar("sun"),
			NewBody(Rocky, "mercury", Days(88), 0.387098),
			NewEarthlike("earth", Human),
			NewBody(GasGiant, "jupiter", Days(4333), 5.2),
		}),
		NewSystem("alpha centauri", Position{X: 268_000, Y: 12}, []Body{
			NewStar("rigil kentaurus"),
		}),
	}
}

func TestNewWorldAssignsAddresses(t *testing.T) {
	w := NewWorld(testSystems())

	for si, sys := range w.Galaxy {
		for bi, body := range sys.Bodies {
			want := BodyAddress{System: si, Body: bi}
			if body.Address != want {
				t.Errorf("%s: address %v, want %v", body.Name, body.Address, want)
			}
		}
	}
	if len(w.Players) != 1 || w.Players[0].ID != Human {
		t.Fatalf("expected a single human player, got %+v", w.Players)
	}
	if w.Galaxy[0].Radius != 5.2 {
		t.Fatalf("expected radius of outermost body, got %v", w.Galaxy[0].Radius)
	}
}

func TestNewWorldCoversColonyOwners(t *testing.T) {
	systems := testSystems()
	systems[0].Bodies[1].Colony = NewInhabitedColony(3, 1, NewPopulation(10))

	w := NewWorld(systems)
	if len(w.Players) != 4 {
		t.Fatalf("expected players 0..3, got %+v", w.Players)
	}
	for i, p := range w.Players {
		if p.ID != PlayerID(i) {
			t.Errorf("player %d has id %d", i, p.ID)
		}
	}
	if _, ok := w.Player(3); !ok {
		t.Fatalf("colony owner 3 does not resolve")
	}
}

func TestGalaxyBodyLookup(t *testing.T) {
	w := NewWorld(testSystems())

	body, ok := w.Galaxy.Body(BodyAddress{System: 0, Body: 2})
	if !ok || body.Name != "earth" {
		t.Fatalf("expected earth, got %+v %v", body, ok)
	}
	for _, a := range []BodyAddress{{-1, 0}, {0, 4}, {2, 0}, {1, -1}} {
		if _, ok := w.Galaxy.Body(a); ok {
			t.Errorf("address %v resolved", a)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	w := NewWorld(testSystems())
	w.Players[0].Selection = []ShipID{1, 2}
	earth, _ := w.Galaxy.Body(BodyAddress{System: 0, Body: 2})
	earth.Colony.Enqueue(&fixedWork{work: Days(1)})
	w.LaunchShip(Human, earth.Address)

	snap := w.Clone()
	if !reflect.DeepEqual(snap, *w) {
		t.Fatalf("clone differs from source")
	}

	earth.Colony.Population.HeadCount = 1
	earth.Colony.Queue[0].Progress = Hours(3)
	w.Players[0].Selection[0] = 9
	w.Ships[0].Owner = 4
	w.Galaxy[0].Bodies[1].Name = "vulcan"

	snapEarth, _ := snap.Galaxy.Body(BodyAddress{System: 0, Body: 2})
	if snapEarth.Colony.Population.HeadCount != 7_456_000_000 {
		t.Errorf("population shared with clone")
	}
	if snapEarth.Colony.Queue[0].Progress != 0 {
		t.Errorf("queue shared with clone")
	}
	if snap.Players[0].Selection[0] != 1 {
		t.Errorf("selection shared with clone")
	}
	if snap.Ships[0].Owner != Human {
		t.Errorf("ships shared with clone")
	}
	if snap.Galaxy[0].Bodies[1].Name != "mercury" {
		t.Errorf("bodies shared with clone")
	}
}

func TestLaunchShipAssignsSequentialIDs(t *testing.T) {
	w := NewWorld(testSystems())
	w.Time = Days(10)
	at := BodyAddress{System: 0, Body: 2}

	first := w.LaunchShip(Human, at)
	second := w.LaunchShip(Human, at)
	if first != 0 || second != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", first, second)
	}
	orbit, ok := w.Ships[1].Movement.(OrbitMotion)
	if !ok || orbit.Since != Days(10) || orbit.Around != at {
		t.Fatalf("unexpected movement %+v", w.Ships[1].Movement)
	}
}

func TestCalcOrbit(t *testing.T) {
	if got := CalcOrbit(0, 3, Days(4)); got != Center {
		t.Fatalf("zero period should rest at center, got %v", got)
	}
	quarter := CalcOrbit(Days(100), 1, Days(125))
	if quarter.X < 0.999 || quarter.Y > 1e-9 || quarter.Y < -1e-9 {
		t.Fatalf("expected (1, 0) a quarter orbit in, got %v", quarter)
	}
}

func TestDurationAddSaturates(t *testing.T) {
	limit := Duration(1<<63 - 1)
	if got := limit.Add(Days(1)); got != limit {
		t.Fatalf("expected saturation, got %v", got)
	}
	if got := Days(1).Add(Hours(2)); got != 26*Hour {
		t.Fatalf("expected 26h, got %v", got)
	}
}
