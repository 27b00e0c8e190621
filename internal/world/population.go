package world

import "math"

const (
	// CarryingCapacityEarth is the head count one earth of surface sustains.
	CarryingCapacityEarth = 10_000_000_000.0

	// DefaultTax is the daily tax per head of a new population.
	DefaultTax = 0.1

	fertileFemaleFraction = 0.5 * 0.3
	growthBoost           = 1.0
	deathFractionPerWeek  = 0.1
)

// growthReference is the period over which a population at zero density
// would grow by its fertile fraction.
var growthReference = Weeks(52 * 30)

// Population of a colony.
type Population struct {
	HeadCount int64
	Tax       float64 // money per head per day
}

// NewPopulation returns a population with the default tax rate.
func NewPopulation(heads int64) Population {
	return Population{HeadCount: heads, Tax: DefaultTax}
}

// TaxOver is the money this population yields over d.
func (p Population) TaxOver(d Duration) float64 {
	return p.Tax * float64(p.HeadCount) * d.Fraction(Day)
}

// HeadIncrease is the change in head count over d for the given carrying
// capacity. It is negative once the population exceeds capacity.
//
// Small populations grow like large ones; there is no minimum viable size.
// The result is truncated to whole heads on every call, so a small colony
// advanced in short steps can round its growth to zero where one long step
// would not. Growth is not carried between calls.
func (p Population) HeadIncrease(capacity int64, d Duration) int64 {
	if capacity <= 0 {
		return -p.HeadCount
	}
	heads := float64(p.HeadCount)
	cc := heads / float64(capacity)
	if cc > 1 {
		// more than everyone cannot die; the cap keeps the conversion in range
		deaths := math.Min((cc-1)*deathFractionPerWeek*d.Fraction(Week), 1)
		return -int64(deaths * heads)
	}
	timeFraction := d.Fraction(growthReference)
	fertile := heads * fertileFemaleFraction
	return int64(timeFraction * fertile * (1 - cc) * growthBoost)
}

// Grow returns the population with delta applied, never below zero heads.
func (p Population) Grow(delta int64) Population {
	switch {
	case delta > 0 && p.HeadCount > math.MaxInt64-delta:
		p.HeadCount = math.MaxInt64
	default:
		p.HeadCount += delta
	}
	if p.HeadCount < 0 {
		p.HeadCount = 0
	}
	return p
}
