package galaxy

import (
	"fmt"
	"sort"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-trend reports.
const reportWindowTicks = 30

// PlayerSample captures one player's standing at one tick.
type PlayerSample struct {
	ID       string
	Stars    int
	Ships    float64
	InFlight float64
	Prod     float64
	Routed   int // owned stars with an active route
	Besieged int // owned stars with foreign invaders
}

// Report is a snapshot of the galaxy at one economy tick.
type Report struct {
	Tick      int
	Elapsed   float64
	Players   []PlayerSample
	Packets   int
	Contested int
}

// Reporter collects periodic reports and summarizes sliding windows of them.
type Reporter struct {
	history     []Report
	windowTicks int
}

// NewReporter creates a reporter with the given window size in economy ticks.
func NewReporter(windowTicks int) *Reporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &Reporter{windowTicks: windowTicks}
}

// Collect samples the current state. The mirror pool counts once.
func (r *Reporter) Collect(st *State) {
	rpt := Report{Tick: st.Tick, Elapsed: st.Elapsed, Packets: len(st.Packets)}
	inflight := InFlight(st.Packets)
	byID := map[string]*PlayerSample{}
	for _, p := range st.Players {
		rpt.Players = append(rpt.Players, PlayerSample{ID: p.ID, InFlight: inflight[p.ID]})
	}
	for i := range rpt.Players {
		byID[rpt.Players[i].ID] = &rpt.Players[i]
	}
	canon := st.mirror.Canon
	for i, s := range st.Stars {
		if s.UnderAttack() {
			rpt.Contested++
		}
		if s.IsMirror() && i != canon {
			continue
		}
		ps, ok := byID[s.Owner]
		if !ok {
			continue
		}
		ps.Stars++
		ps.Ships += s.Ships
		ps.Prod += s.ProdRate()
		if s.RouteTo != 0 {
			ps.Routed++
		}
		if s.UnderAttack() {
			ps.Besieged++
		}
	}
	r.history = append(r.history, rpt)
}

// Latest returns the most recent report, or nil.
func (r *Reporter) Latest() *Report {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns all collected reports.
func (r *Reporter) History() []Report { return r.history }

// WindowReport averages the reports of one window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	AvgStars    map[string]float64
	AvgShips    map[string]float64
	AvgInFlight map[string]float64
	AvgProd     map[string]float64

	AvgPackets   float64
	AvgContested float64
}

// WindowSummary aggregates the reports inside the most recent window.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	cutoff := r.history[len(r.history)-1].Tick - r.windowTicks
	var window []Report
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
		AvgStars:    map[string]float64{},
		AvgShips:    map[string]float64{},
		AvgInFlight: map[string]float64{},
		AvgProd:     map[string]float64{},
	}
	for _, rpt := range window {
		wr.AvgPackets += float64(rpt.Packets)
		wr.AvgContested += float64(rpt.Contested)
		for _, ps := range rpt.Players {
			wr.AvgStars[ps.ID] += float64(ps.Stars)
			wr.AvgShips[ps.ID] += ps.Ships
			wr.AvgInFlight[ps.ID] += ps.InFlight
			wr.AvgProd[ps.ID] += ps.Prod
		}
	}
	wr.AvgPackets /= n
	wr.AvgContested /= n
	for _, m := range []map[string]float64{wr.AvgStars, wr.AvgShips, wr.AvgInFlight, wr.AvgProd} {
		for k := range m {
			m[k] /= n
		}
	}
	return wr
}

// Leader is the player with the largest average fleet in the window.
func (wr *WindowReport) Leader() string {
	best, bestShips := "", -1.0
	for _, id := range sortedKeys(wr.AvgShips) {
		total := wr.AvgShips[id] + wr.AvgInFlight[id]
		if total > bestShips {
			best, bestShips = id, total
		}
	}
	return best
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Trend Report (T=%d..%d, %d samples) ===\n", wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "  packets=%.1f  contested_stars=%.1f  leader=%s\n", wr.AvgPackets, wr.AvgContested, wr.Leader())

	ids := sortedKeys(wr.AvgShips)
	sort.SliceStable(ids, func(i, j int) bool { return wr.AvgShips[ids[i]] > wr.AvgShips[ids[j]] })
	for _, id := range ids {
		fmt.Fprintf(&sb, "  %-4s stars=%5.1f  ships=%8.1f  in_flight=%7.1f  prod=%5.2f\n",
			id, wr.AvgStars[id], wr.AvgShips[id], wr.AvgInFlight[id], wr.AvgProd[id])
	}
	return sb.String()
}

// FormatLatest returns a concise snapshot of the most recent report.
func (r *Reporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d (%s) ---\n", rpt.Tick, FormatClock(rpt.Elapsed))
	for _, ps := range rpt.Players {
		if ps.Stars == 0 && ps.InFlight == 0 {
			fmt.Fprintf(&sb, "%-4s eliminated\n", ps.ID)
			continue
		}
		fmt.Fprintf(&sb, "%-4s stars=%d ships=%.1f in_flight=%.1f prod=%.2f routed=%d besieged=%d\n",
			ps.ID, ps.Stars, ps.Ships, ps.InFlight, ps.Prod, ps.Routed, ps.Besieged)
	}
	return sb.String()
}
