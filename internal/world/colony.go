package world

import "math"

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=./mocks/constructable_mock.go -package=mocks . Constructable

// Constructable is anything a colony can build.
//
// OnComplete runs on the writer goroutine with the whole world writable, after
// every colony of the tick has been updated.
type Constructable interface {
	Price() int64
	WorkNeeded() Duration
	OnComplete(w *World, origin BodyAddress)
}

// Construction is a job in a colony queue.
type Construction struct {
	Item     Constructable
	Progress Duration
}

// NewConstruction wraps item with zero progress.
func NewConstruction(item Constructable) Construction {
	return Construction{Item: item}
}

// workOn adds time to the job. It reports the time left over once the job
// has all the work it needs.
func (c *Construction) workOn(d Duration) (Duration, bool) {
	c.Progress = c.Progress.Add(d)
	needed := c.Item.WorkNeeded()
	if c.Progress >= needed {
		return c.Progress - needed, true
	}
	return 0, false
}

// Colony is the claimable part of a rocky body.
type Colony struct {
	Size       Earths
	Owner      PlayerID
	Population *Population // nil when uninhabited
	Queue      []Construction

	taxCarry float64 // fractional money not yet paid out
}

// NewEmptyColony returns an unowned, uninhabited colony.
func NewEmptyColony(size Earths) *Colony {
	return &Colony{Size: size, Owner: Nobody}
}

// NewInhabitedColony returns a colony owned by owner with the given population.
func NewInhabitedColony(owner PlayerID, size Earths, pop Population) *Colony {
	c := NewEmptyColony(size)
	c.Owner = owner
	c.Population = &pop
	return c
}

// CarryingCapacity is the head count the colony surface sustains.
func (c *Colony) CarryingCapacity() int64 {
	return int64(c.Size * CarryingCapacityEarth)
}

// CollectTax returns the whole money the population yields over d. The
// fractional rest is kept for the next call, so the total does not depend on
// how time is split into ticks.
func (c *Colony) CollectTax(d Duration) float64 {
	if c.Population == nil {
		return 0
	}
	owed := c.Population.TaxOver(d) + c.taxCarry
	if math.IsNaN(owed) || math.IsInf(owed, 0) {
		c.taxCarry = 0
		return owed
	}
	whole := math.Trunc(owed)
	c.taxCarry = owed - whole
	return whole
}

// Enqueue appends a fresh job for item.
func (c *Colony) Enqueue(item Constructable) {
	c.Queue = append(c.Queue, NewConstruction(item))
}

// AdvanceConstruction spends d of work on the queue head. Finished jobs leave
// the queue and pass their leftover time to the next job. Finished items are
// returned in completion order.
func (c *Colony) AdvanceConstruction(d Duration) []Constructable {
	var done []Constructable
	for d >= 0 && len(c.Queue) > 0 {
		head := &c.Queue[0]
		left, finished := head.workOn(d)
		if !finished {
			break
		}
		done = append(done, head.Item)
		c.Queue[0] = Construction{}
		c.Queue = c.Queue[1:]
		d = left
	}
	if len(c.Queue) == 0 {
		c.Queue = nil
	}
	return done
}

func (c *Colony) clone() *Colony {
	if c == nil {
		return nil
	}
	out := *c
	if c.Population != nil {
		pop := *c.Population
		out.Population = &pop
	}
	if c.Queue != nil {
		out.Queue = make([]Construction, len(c.Queue))
		copy(out.Queue, c.Queue)
	}
	return &out
}
