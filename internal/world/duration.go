package world

import (
	"fmt"
	"math"
	"time"
)

// Duration is a span of game time in milliseconds.
//
// time.Duration counts nanoseconds and runs out after ~292 years, which a
// week-per-tick game at full speed reaches within minutes of wall clock.
type Duration int64

const (
	Millisecond Duration = 1
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
	Day                  = 24 * Hour
	Week                 = 7 * Day
)

func Weeks(n int64) Duration        { return Duration(n) * Week }
func Days(n int64) Duration         { return Duration(n) * Day }
func Hours(n int64) Duration        { return Duration(n) * Hour }
func Minutes(n int64) Duration      { return Duration(n) * Minute }
func Seconds(n int64) Duration      { return Duration(n) * Second }
func Milliseconds(n int64) Duration { return Duration(n) }

// Add returns d+e, pinned to the int64 range instead of wrapping.
func (d Duration) Add(e Duration) Duration {
	if e > 0 && d > math.MaxInt64-e {
		return math.MaxInt64
	}
	if e < 0 && d < math.MinInt64-e {
		return math.MinInt64
	}
	return d + e
}

// Fraction expresses d as a fraction of unit.
func (d Duration) Fraction(unit Duration) float64 {
	return float64(d) / float64(unit)
}

// Std converts to a time.Duration, saturating when out of range.
func (d Duration) Std() time.Duration {
	const limit = math.MaxInt64 / int64(time.Millisecond)
	switch {
	case int64(d) > limit:
		return math.MaxInt64
	case int64(d) < -limit:
		return math.MinInt64
	}
	return time.Duration(d) * time.Millisecond
}

// FromStd truncates a time.Duration to whole milliseconds.
func FromStd(d time.Duration) Duration {
	return Duration(d / time.Millisecond)
}

func (d Duration) String() string {
	if d == math.MinInt64 {
		return fmt.Sprintf("%dms", int64(d))
	}
	if d < 0 {
		return "-" + (-d).String()
	}
	days := d / Day
	rest := d % Day
	if days == 0 {
		return rest.Std().String()
	}
	return fmt.Sprintf("%dd%s", days, rest.Std())
}
