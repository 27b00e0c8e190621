package access_test

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/galaxy4x/engine/internal/access"
	"github.com/galaxy4x/engine/internal/change"
	"github.com/galaxy4x/engine/internal/world"
	"github.com/galaxy4x/engine/internal/world/mocks"
	"go.uber.org/mock/gomock"
)

var earth = world.BodyAddress{System: 0, Body: 1}

func waitStopped(t *testing.T, a *access.Access) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !a.Running() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("consumer still running")
}

func newWorld(rocks int) *world.World {
	bodies := []world.Body{
		world.NewStar("sun"),
		world.NewEarthlike("earth", world.Human),
	}
	for i := 0; i < rocks; i++ {
		bodies = append(bodies, world.NewBody(world.Rocky, "rock", world.Days(int64(100+i)), 2))
	}
	return world.NewWorld([]world.System{world.NewSystem("sol", world.Position{}, bodies)})
}

func TestConcurrentProducersLoseNothing(t *testing.T) {
	const n = 64
	w := newWorld(n - 2)
	w.Galaxy[0].Bodies[1].Colony.Population = nil
	a := access.New(w, nil, nil)
	root := a.Start()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		s := root.Clone()
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer s.Close()
			at := world.BodyAddress{System: 0, Body: i}
			if err := s.Send(change.SetBodyView{At: at, View: world.BindView(world.ViewID(100 + i))}); err != nil {
				t.Errorf("send %d: %v", i, err)
			}
			if i == n/2 {
				if err := s.Send(change.AdvanceTime{Increase: world.Hours(5)}); err != nil {
					t.Errorf("send time: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()
	root.Close()
	waitStopped(t, a)

	snap := a.Snapshot()
	if snap.Time != world.Hours(5) {
		t.Fatalf("time = %v, want exactly one advance of 5h", snap.Time)
	}
	for i, body := range snap.Galaxy[0].Bodies {
		if body.View != world.BindView(world.ViewID(100+i)) {
			t.Errorf("body %d view = %+v", i, body.View)
		}
	}
	if err := a.Err(); err != nil {
		t.Fatalf("normal shutdown reported %v", err)
	}
}

func TestSnapshotIsStable(t *testing.T) {
	a := access.New(newWorld(3), nil, nil)
	s := a.Start()
	defer a.Stop()
	if err := s.Send(change.AdvanceTime{Increase: world.Days(2)}); err != nil {
		t.Fatal(err)
	}
	s.Close()
	waitStopped(t, a)

	first := a.Snapshot()
	second := a.Snapshot()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("snapshots differ without intervening changes")
	}

	first.Players[0].Money = 0
	first.Galaxy[0].Bodies[1].Colony.Population.HeadCount = 1
	third := a.Snapshot()
	if !reflect.DeepEqual(second, third) {
		t.Fatalf("editing a snapshot leaked into the world")
	}
}

func TestSetSelectionVisibleInSnapshot(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	s := a.Start()
	if err := s.Send(change.SetSelection{Player: world.Human, Ships: []world.ShipID{2, 5}}); err != nil {
		t.Fatal(err)
	}
	s.Close()
	waitStopped(t, a)

	if got := a.Snapshot().Players[0].Selection; !reflect.DeepEqual(got, []world.ShipID{2, 5}) {
		t.Fatalf("selection = %v, want [2 5]", got)
	}
}

func TestLastSenderCloseDrainsQueue(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	s := a.Start()
	other := s.Clone()
	for i := 0; i < 100; i++ {
		if err := s.Send(change.AdvanceTime{Increase: world.Minutes(1)}); err != nil {
			t.Fatal(err)
		}
	}
	s.Close()
	s.Close()
	if err := s.Send(change.AdvanceTime{}); !errors.Is(err, access.ErrStopped) {
		t.Fatalf("closed sender accepted a change: %v", err)
	}
	if err := other.Send(change.AdvanceTime{Increase: world.Minutes(1)}); err != nil {
		t.Fatalf("remaining sender rejected: %v", err)
	}
	other.Close()
	waitStopped(t, a)

	if got := a.Snapshot().Time; got != world.Minutes(101) {
		t.Fatalf("time = %v, want every queued change applied", got)
	}
}

func TestStopRejectsLaterSends(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	s := a.Start()
	a.Stop()
	waitStopped(t, a)

	if err := s.Send(change.AdvanceTime{Increase: world.Days(1)}); !errors.Is(err, access.ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}

	// a stopped access can be started again
	s = a.Start()
	defer a.Stop()
	if err := s.Send(change.AdvanceTime{Increase: world.Days(1)}); err != nil {
		t.Fatal(err)
	}
	s.Close()
	waitStopped(t, a)
	if a.Snapshot().Time != world.Days(1) {
		t.Fatalf("restarted consumer did not apply the change")
	}
}

func TestRestartRightAfterStop(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	for i := 0; i < 50; i++ {
		a.Start()
		a.Stop()
		s := a.Start()
		if err := s.Send(change.AdvanceTime{Increase: world.Minutes(1)}); err != nil {
			t.Fatalf("round %d: restarted consumer rejected a change: %v", i, err)
		}
		s.Close()
	}
	waitStopped(t, a)

	if got := a.Snapshot().Time; got != world.Minutes(50) {
		t.Fatalf("time = %v, want one change per round", got)
	}
	if err := a.Err(); err != nil {
		t.Fatalf("restarts reported %v", err)
	}
}

func TestRestartAfterLastCloseKeepsOrder(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	g := a.ReadLock()
	s := a.Start()
	_ = s.Send(change.SetSelection{Player: world.Human, Ships: []world.ShipID{1}})
	s.Close()

	// the first consumer is still blocked on the guard while the second starts
	s = a.Start()
	_ = s.Send(change.SetSelection{Player: world.Human, Ships: []world.ShipID{2}})
	s.Close()
	g.Release()
	waitStopped(t, a)

	if got := a.Snapshot().Players[0].Selection; !reflect.DeepEqual(got, []world.ShipID{2}) {
		t.Fatalf("selection = %v, want the later change applied last", got)
	}
}

func TestStartTwicePanics(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	a.Start()
	defer a.Stop()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	a.Start()
}

func TestStopProcessingDiscardsTheRest(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	g := a.ReadLock()
	s := a.Start()
	for _, c := range []change.Change{
		change.AdvanceTime{Increase: world.Hours(1)},
		change.StopProcessing{},
		change.SetSelection{Player: world.Human, Ships: []world.ShipID{1}},
	} {
		_ = s.Send(c)
	}
	g.Release()
	waitStopped(t, a)

	snap := a.Snapshot()
	if snap.Time != world.Hours(1) {
		t.Fatalf("change before the stop was not applied")
	}
	if snap.Players[0].Selection != nil {
		t.Fatalf("change after the stop was applied")
	}
	if err := s.Send(change.AdvanceTime{}); !errors.Is(err, access.ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestRejectedChangeKeepsConsumerAlive(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	s := a.Start()
	_ = s.Send(change.SetShipView{Ship: 42, View: world.BindView(1)})
	_ = s.Send(change.SetSelection{Player: world.Human, Ships: []world.ShipID{3}})
	s.Close()
	waitStopped(t, a)

	if got := a.Snapshot().Players[0].Selection; len(got) != 1 || got[0] != 3 {
		t.Fatalf("change after a rejected one was lost: %v", got)
	}
	if a.Err() != nil {
		t.Fatalf("rejected change ended the consumer: %v", a.Err())
	}
}

func TestPanickingChangePoisonsWriterOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	item := mocks.NewMockConstructable(ctrl)
	item.EXPECT().WorkNeeded().Return(world.Hours(1)).AnyTimes()
	item.EXPECT().Price().Return(int64(1)).AnyTimes()
	item.EXPECT().OnComplete(gomock.Any(), earth).Do(func(*world.World, world.BodyAddress) {
		panic("broken blueprint")
	})

	a := access.New(newWorld(0), nil, nil)
	s := a.Start()
	_ = s.Send(change.EnqueueConstruction{Item: item, At: earth})
	_ = s.Send(change.AdvanceTime{Increase: world.Days(1)})
	waitStopped(t, a)

	if !errors.Is(a.Err(), access.ErrPoisoned) || !a.Poisoned() {
		t.Fatalf("expected poisoned writer, got %v", a.Err())
	}
	if err := s.Send(change.AdvanceTime{Increase: world.Days(1)}); !errors.Is(err, access.ErrStopped) {
		t.Fatalf("expected ErrStopped after poisoning, got %v", err)
	}

	// readers are not affected
	snap := a.Snapshot()
	if snap.Time != world.Days(1) {
		t.Fatalf("committed time lost: %v", snap.Time)
	}
	a.View(func(w *world.World) {
		if len(w.Players) != 1 {
			t.Errorf("unexpected players %+v", w.Players)
		}
	})

	// the writer stays down
	s = a.Start()
	if err := s.Send(change.AdvanceTime{}); !errors.Is(err, access.ErrStopped) {
		t.Fatalf("poisoned access accepted a change: %v", err)
	}
	if a.Running() {
		t.Fatalf("poisoned access started a consumer")
	}
}

func TestReadGuardBlocksWrites(t *testing.T) {
	a := access.New(newWorld(0), nil, nil)
	s := a.Start()
	defer a.Stop()

	g := a.ReadLock()
	if err := s.Send(change.AdvanceTime{Increase: world.Days(1)}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	if g.World().Time != 0 {
		t.Fatalf("write went through while a read guard was held")
	}
	g.Release()
	g.Release()

	s.Close()
	waitStopped(t, a)
	if a.Snapshot().Time != world.Days(1) {
		t.Fatalf("write lost after release")
	}
}
