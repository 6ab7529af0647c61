package galaxy

import (
	"fmt"
	"sort"
	"strings"
)

// SimLogEntry is one recorded simulation event.
type SimLogEntry struct {
	Tick     int
	Star     string  // label e.g. "S07", or "--" for global events
	Owner    string  // player id, "neutral", or "--"
	Category string  // econ, combat, packet, plan, mirror, scene, win, stats
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] S07  p1      combat   capture          neutral → p1
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-7s %-8s %-16s %s",
		e.Tick, e.Star, e.Owner, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. Unlike the front-end's EventFeed ring
// buffer it is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick ship counts and
// packet arrivals are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, star, owner, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Star:     star,
		Owner:    owner,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, star, owner, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, star, owner, category, key, value, numVal)
}

// Verbose reports whether per-tick entries are recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Len is the number of recorded entries.
func (sl *SimLog) Len() int { return len(sl.entries) }

// Since returns the entries recorded after the first n.
func (sl *SimLog) Since(n int) []SimLogEntry {
	if n >= len(sl.entries) {
		return nil
	}
	return sl.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterStar returns entries for a specific star label.
func (sl *SimLog) FilterStar(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Star == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterOwner returns entries attributed to one owner.
func (sl *SimLog) FilterOwner(owner string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FirstTick returns the tick of the first entry matching category+key whose
// value contains substr, or -1.
func (sl *SimLog) FirstTick(category, key, substr string) int {
	for _, e := range sl.entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if substr == "" || strings.Contains(e.Value, substr) {
			return e.Tick
		}
	}
	return -1
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of the galaxy.
func (sl *SimLog) Summary(st *State) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%.1fs) ---\n", st.Tick, st.Elapsed)

	type row struct {
		owner        string
		stars        int
		ships, prod  float64
		routed, hurt int
	}
	rows := map[string]*row{}
	for _, s := range st.Stars {
		r, ok := rows[s.Owner]
		if !ok {
			r = &row{owner: s.Owner}
			rows[s.Owner] = r
		}
		r.stars++
		r.ships += s.Ships
		r.prod += s.ProdRate()
		if s.RouteTo != 0 {
			r.routed++
		}
		if s.UnderAttack() {
			r.hurt++
		}
	}
	owners := make([]string, 0, len(rows))
	for o := range rows {
		owners = append(owners, o)
	}
	sort.Strings(owners)
	for _, o := range owners {
		r := rows[o]
		fmt.Fprintf(&sb, "%-8s stars=%-3d ships=%-8.1f prod=%-5.1f routed=%d besieged=%d\n",
			r.owner, r.stars, r.ships, r.prod, r.routed, r.hurt)
	}

	inflight := InFlight(st.Packets)
	keys := sortedKeys(inflight)
	if len(keys) == 0 {
		sb.WriteString("In flight: none\n")
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "In flight: %s %.1f\n", k, inflight[k])
	}
	if from, to := st.MirrorLane(); from != 0 {
		fmt.Fprintf(&sb, "Mirror lane: S%02d → S%02d\n", from, to)
	}
	return sb.String()
}
