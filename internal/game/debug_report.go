package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
)

// starDebugReport renders a star's recent history for pasting into a bug
// report: the inspector lines, then its log entries over the last ticks.
func starDebugReport(v *galaxy.View, log *galaxy.SimLog, t *galaxy.Tuning, s *galaxy.Star, lastTicks int) string {
	if s == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := v.Tick
	fromTick := max(toTick-lastTicks+1, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "--- Pax debug report ---\n")
	fmt.Fprintf(&b, "seed=%s tick_range=[%d..%d] elapsed=%s\n", v.Seed, fromTick, toTick, galaxy.FormatClock(v.Elapsed))
	for _, l := range inspectLines(v, s, t, false) {
		fmt.Fprintf(&b, "%s\n", l)
	}
	for _, l := range inspectLines(v, s, t, true)[1:] {
		fmt.Fprintf(&b, "%s\n", l)
	}
	if v.MirrorFrom != 0 {
		fmt.Fprintf(&b, "mirror_lane=S%02d->S%02d\n", v.MirrorFrom, v.MirrorTo)
	}

	fmt.Fprintf(&b, "\n-- events --\n")
	n := 0
	if log != nil {
		for _, e := range log.FilterStar(s.Label()) {
			if e.Tick < fromTick || e.Tick > toTick {
				continue
			}
			fmt.Fprintf(&b, "%s\n", e.String())
			n++
		}
	}
	if n == 0 {
		fmt.Fprintf(&b, "(none)\n")
	}
	return b.String()
}

func sortedOwners(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
