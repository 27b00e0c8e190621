package world

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestHeadIncreaseEarthDay(t *testing.T) {
	pop := NewPopulation(7_456_000_000)
	colony := NewInhabitedColony(Human, 1.0, pop)

	delta := pop.HeadIncrease(colony.CarryingCapacity(), Days(1))
	if delta <= 0 || delta > 1_000_000 {
		t.Fatalf("expected small positive growth, got %d", delta)
	}
}

func TestHeadIncreaseOverCapacityShrinks(t *testing.T) {
	pop := NewPopulation(20_000_000_000)
	delta := pop.HeadIncrease(10_000_000_000, Weeks(1))
	// (2-1) * 0.1 deaths per week
	if delta != -2_000_000_000 {
		t.Fatalf("expected -2e9, got %d", delta)
	}
}

func TestHeadIncreaseZeroCapacity(t *testing.T) {
	pop := NewPopulation(1000)
	if got := pop.HeadIncrease(0, Days(1)); got != -1000 {
		t.Fatalf("expected whole population to die, got %d", got)
	}
}

func TestGrowClampsAtZero(t *testing.T) {
	pop := NewPopulation(10).Grow(-25)
	if pop.HeadCount != 0 {
		t.Fatalf("expected head count clamped to 0, got %d", pop.HeadCount)
	}
	if pop.Tax != DefaultTax {
		t.Fatalf("tax rate changed: %v", pop.Tax)
	}
}

func TestTaxOverOneDay(t *testing.T) {
	pop := NewPopulation(7_456_000_000)
	got := pop.TaxOver(Days(1))
	if math.Abs(got-745_600_000) > 1e-3 {
		t.Fatalf("expected 745600000, got %f", got)
	}
}

func TestHeadIncreaseMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		heads := rapid.Int64Range(0, 40_000_000_000).Draw(t, "heads")
		capacity := rapid.Int64Range(1, 20_000_000_000).Draw(t, "capacity")
		d := Duration(rapid.Int64Range(0, int64(Weeks(520))).Draw(t, "duration"))

		pop := NewPopulation(heads)
		next := pop.Grow(pop.HeadIncrease(capacity, d))
		if next.HeadCount < 0 {
			t.Fatalf("negative head count %d", next.HeadCount)
		}
		if float64(heads)/float64(capacity) <= 1 {
			if next.HeadCount < heads {
				t.Fatalf("under capacity population shrank: %d -> %d", heads, next.HeadCount)
			}
		} else if next.HeadCount > heads {
			t.Fatalf("over capacity population grew: %d -> %d", heads, next.HeadCount)
		}
	})
}

func TestTaxOverLinear(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		heads := rapid.Int64Range(0, 40_000_000_000).Draw(t, "heads")
		rate := rapid.Float64Range(0, 10).Draw(t, "rate")
		d := Duration(rapid.Int64Range(0, int64(Weeks(520))).Draw(t, "duration"))

		pop := Population{HeadCount: heads, Tax: rate}
		once := pop.TaxOver(d)
		twice := pop.TaxOver(2 * d)
		if diff := math.Abs(twice - 2*once); diff > 1e-9*math.Max(1, math.Abs(twice)) {
			t.Fatalf("tax over 2d = %f, 2*tax over d = %f", twice, 2*once)
		}
	})
}
