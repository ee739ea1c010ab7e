package utils

import (
	"fmt"
	"math"
	"time"
)

// FormatTime formats time.Duration output to a human readable value.
// Durations under a minute keep two decimals, longer ones are split into
// whole units.
func FormatTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm:%ds", int64(d.Minutes()), int64(math.Mod(d.Seconds(), 60)))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh:%dm:%ds",
			int64(d.Hours()), int64(math.Mod(d.Minutes(), 60)), int64(math.Mod(d.Seconds(), 60)))
	}
	return fmt.Sprintf("%dd:%dh:%dm:%ds",
		int64(d.Hours()/24), int64(math.Mod(d.Hours(), 24)),
		int64(math.Mod(d.Minutes(), 60)), int64(math.Mod(d.Seconds(), 60)))
}
