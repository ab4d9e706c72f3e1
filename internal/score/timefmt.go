// v0
// internal/score/timefmt.go
package score

import (
	"fmt"
	"math"
)

// TicksPerSecond is the simulation rate time scores are recorded at.
const TicksPerSecond = 30

// FormatTicksAsTime renders a frame-tick score as m:ss.cc. The sign is
// ignored since time scores are stored negated.
func FormatTicksAsTime(raw int64) string {
	return FormatSeconds(math.Abs(float64(raw)) / TicksPerSecond)
}

// FormatSeconds renders a duration in seconds as m:ss.cc. Centiseconds that
// round up to 100 carry into the seconds, and seconds into the minutes.
func FormatSeconds(total float64) string {
	if math.IsNaN(total) || math.IsInf(total, 0) {
		total = 0
	}
	total = math.Abs(total)
	whole := math.Floor(total)

	minutes := int64(whole / 60)
	seconds := int64(math.Mod(whole, 60))
	centis := int64(math.Round((total - whole) * 100))

	if centis >= 100 {
		centis -= 100
		seconds++
	}
	if seconds >= 60 {
		seconds -= 60
		minutes++
	}
	return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, centis)
}
