package updater

import (
	"fmt"
	"sort"

	"github.com/galaxy4x/engine/internal/world"
)

// Granularity maps a tick count to the game time it represents.
type Granularity func(ticks int64) world.Duration

var (
	Weeks        Granularity = world.Weeks
	Days         Granularity = world.Days
	Hours        Granularity = world.Hours
	Minutes      Granularity = world.Minutes
	Seconds      Granularity = world.Seconds
	Milliseconds Granularity = world.Milliseconds
)

var granularities = map[string]Granularity{
	"weeks":        Weeks,
	"days":         Days,
	"hours":        Hours,
	"minutes":      Minutes,
	"seconds":      Seconds,
	"milliseconds": Milliseconds,
}

// ParseGranularity resolves a preset by name ("weeks", "days", ...).
func ParseGranularity(name string) (Granularity, error) {
	g, ok := granularities[name]
	if !ok {
		return nil, fmt.Errorf("unknown granularity %q", name)
	}
	return g, nil
}

// GranularityNames lists the preset names in sorted order.
func GranularityNames() []string {
	names := make([]string, 0, len(granularities))
	for name := range granularities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SpeedTiers are the preset paces in milliseconds, slowest first.
var SpeedTiers = []int{2000, 500, 200, 50, 0}

// PaceForSpeed returns the pace of speed tier n, counted from 1.
func PaceForSpeed(n int) (int, error) {
	if n < 1 || n > len(SpeedTiers) {
		return 0, fmt.Errorf("speed %d out of range 1..%d", n, len(SpeedTiers))
	}
	return SpeedTiers[n-1], nil
}
