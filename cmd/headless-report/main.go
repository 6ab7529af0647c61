package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
)

type runStats struct {
	runIndex int
	seed     string

	winner    string
	finished  bool
	ticks     int
	elapsed   float64
	stateHash string

	firstCaptureTick int
	firstRetreatTick int
	firstMirrorTick  int

	captures int
	repelled int
	retreats int
	bursts   int
	cancels  int
	locks    int

	capturedBy map[string]int
	peaks      map[string]galaxy.PlayerMetrics

	windowSummary *galaxy.WindowReport
}

type options struct {
	runs     int
	ticks    int
	seedBase int
	ais      int
	stars    int
	preset   string
	events   string
	tuning   string
	logLevel string
}

func main() {
	var opt options
	flag.IntVar(&opt.runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&opt.ticks, "ticks", 600, "economy ticks per run")
	flag.IntVar(&opt.seedBase, "seed-base", 42, "seed number of run 1 (PAX-NNNN)")
	flag.IntVar(&opt.ais, "ais", 2, "computer players")
	flag.IntVar(&opt.stars, "stars", 18, "stars per galaxy")
	flag.StringVar(&opt.preset, "preset", galaxy.PresetBalanced, "star-type distribution")
	flag.StringVar(&opt.events, "events", "", "directory for lz4 event logs, one per run")
	flag.StringVar(&opt.tuning, "tuning", "", "YAML tuning file")
	flag.StringVar(&opt.logLevel, "log-level", "warn", "debug, info, warn or error")
	flag.Parse()

	if opt.runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if opt.ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	logger := newLogger(os.Stderr, opt.logLevel)
	tuning := galaxy.DefaultTuning()
	if opt.tuning != "" {
		t, err := galaxy.LoadTuning(opt.tuning)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		tuning = t
	}
	if _, err := tuning.PresetWeights(opt.preset); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Galaxy Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d ais=%d stars=%d preset=%s\n\n",
		opt.runs, opt.ticks, opt.seedBase, opt.ais, opt.stars, opt.preset)

	all := make([]runStats, 0, opt.runs)
	for i := 0; i < opt.runs; i++ {
		seed := fmt.Sprintf("PAX-%04d", (opt.seedBase+i)%10000)
		ts := galaxy.NewTestSim(
			galaxy.WithSeed(seed),
			galaxy.WithAICount(opt.ais),
			galaxy.WithStars(opt.stars),
			galaxy.WithPreset(opt.preset),
			galaxy.WithTuning(tuning),
			galaxy.WithAutopilot(true),
			galaxy.WithLogger(logger),
		)
		ts.RunTicks(opt.ticks)
		stats := collectRun(i+1, seed, ts)
		all = append(all, stats)
		printRun(stats)

		if opt.events != "" {
			if err := writeEvents(opt.events, seed, ts.SimLog); err != nil {
				fmt.Printf("error: %v\n", err)
				return
			}
		}
	}

	printAggregate(all)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func collectRun(runIndex int, seed string, ts *galaxy.TestSim) runStats {
	entries := ts.SimLog.Entries()
	capturedBy := map[string]int{}
	for _, e := range entries {
		if e.Category == "combat" && e.Key == "capture" {
			capturedBy[e.Owner]++
		}
	}

	rs := runStats{
		runIndex:         runIndex,
		seed:             seed,
		ticks:            ts.State.Tick,
		elapsed:          ts.State.Elapsed,
		stateHash:        galaxy.Digest(ts.State),
		firstCaptureTick: firstTick(entries, "combat", "capture", ""),
		firstRetreatTick: firstTick(entries, "combat", "retreat", ""),
		firstMirrorTick:  firstTick(entries, "mirror", "lock", ""),
		captures:         ts.SimLog.CountCategory("combat", "capture"),
		repelled:         ts.SimLog.CountCategory("combat", "repelled"),
		retreats:         ts.SimLog.CountCategory("combat", "retreat"),
		bursts:           ts.SimLog.CountCategory("plan", "burst"),
		cancels:          ts.SimLog.CountCategory("plan", "cancel"),
		locks:            ts.SimLog.CountCategory("mirror", "lock"),
		capturedBy:       capturedBy,
		peaks:            ts.Engine.Metrics().Snapshot(),
		windowSummary:    ts.Reporter.WindowSummary(),
	}
	if o := ts.Engine.Outcome(); o != nil {
		rs.finished = true
		rs.winner = o.Winner
	}
	return rs
}

func firstTick(entries []galaxy.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func writeEvents(dir, seed string, log *galaxy.SimLog) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create event dir: %w", err)
	}
	path := filepath.Join(dir, seed+".events.lz4")
	f, err := os.Create(path) // #nosec G304 -- path is built from a flag and a generated seed
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := galaxy.WriteEventLog(f, log.Entries()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%s) ---\n", rs.runIndex, rs.seed)
	winner := "none"
	if rs.finished {
		winner = rs.winner
	}
	fmt.Printf("result: winner=%s ticks=%d elapsed=%s digest=%s\n",
		winner, rs.ticks, galaxy.FormatClock(rs.elapsed), shortHash(rs.stateHash))
	fmt.Printf("phase_markers: first_capture=%d first_retreat=%d first_mirror_lock=%d\n",
		rs.firstCaptureTick, rs.firstRetreatTick, rs.firstMirrorTick)
	fmt.Printf("event_totals: capture=%d repelled=%d retreat=%d burst=%d cancel=%d mirror_lock=%d\n",
		rs.captures, rs.repelled, rs.retreats, rs.bursts, rs.cancels, rs.locks)
	fmt.Printf("captures_by: %s\n", joinCounts(rs.capturedBy))
	for _, id := range sortedIDs(rs.peaks) {
		m := rs.peaks[id]
		fmt.Printf("  %-4s peak_army=%s peak_stars=%d peak_prod=%.2f\n", id, galaxy.FormatCount(m.MaxArmies), m.MaxStars, m.MaxProd)
	}
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	wins := map[string]int{}
	unfinished := 0
	totalTicks := 0
	totalCaptures := 0
	totalRepelled := 0
	totalRetreats := 0
	totalBursts := 0
	totalCancels := 0
	captureTicks := make([]int, 0, len(all))
	finishTicks := make([]int, 0, len(all))

	for _, rs := range all {
		if rs.finished {
			wins[rs.winner]++
			finishTicks = append(finishTicks, rs.ticks)
		} else {
			unfinished++
		}
		totalTicks += rs.ticks
		totalCaptures += rs.captures
		totalRepelled += rs.repelled
		totalRetreats += rs.retreats
		totalBursts += rs.bursts
		totalCancels += rs.cancels
		if rs.firstCaptureTick >= 0 {
			captureTicks = append(captureTicks, rs.firstCaptureTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d finished=%d unfinished=%d avg_ticks=%.1f\n", len(all), len(all)-unfinished, unfinished, avg(totalTicks, len(all)))
	fmt.Printf("win_rate: %s\n", winRates(wins, len(all)))
	fmt.Printf("avg_events_per_run: capture=%.1f repelled=%.1f retreat=%.1f burst=%.1f cancel=%.1f\n",
		avg(totalCaptures, len(all)), avg(totalRepelled, len(all)), avg(totalRetreats, len(all)), avg(totalBursts, len(all)), avg(totalCancels, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_capture=%s game_end=%s\n", avgTickString(captureTicks), avgTickString(finishTicks))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func winRates(wins map[string]int, runs int) string {
	if len(wins) == 0 {
		return "none"
	}
	ids := make([]string, 0, len(wins))
	for id := range wins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s=%.0f%%", id, avg(wins[id]*100, runs)))
	}
	return strings.Join(parts, " ")
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	ids := make([]string, 0, len(m))
	for k := range m {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s=%d", id, m[id]))
	}
	return strings.Join(parts, ",")
}

func sortedIDs(m map[string]galaxy.PlayerMetrics) []string {
	ids := make([]string, 0, len(m))
	for k := range m {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
