package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
)

func TestFirstTick(t *testing.T) {
	entries := []galaxy.SimLogEntry{
		{Tick: 3, Category: "combat", Key: "repelled"},
		{Tick: 5, Category: "combat", Key: "capture", Value: "neutral → p1"},
		{Tick: 9, Category: "combat", Key: "capture", Value: "p0 → p2"},
	}
	if got := firstTick(entries, "combat", "capture", ""); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := firstTick(entries, "combat", "capture", "p0"); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := firstTick(entries, "mirror", "lock", ""); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestWinRates(t *testing.T) {
	if got := winRates(nil, 4); got != "none" {
		t.Fatalf("expected none, got %s", got)
	}
	got := winRates(map[string]int{"p1": 1, "p0": 3}, 4)
	if got != "p0=75% p1=25%" {
		t.Fatalf("unexpected win rates %q", got)
	}
}

func TestCollectRun(t *testing.T) {
	ts := galaxy.NewTestSim(
		galaxy.WithSeed("PAX-0042"),
		galaxy.WithAutopilot(true),
	)
	ts.RunTicks(40)
	rs := collectRun(1, "PAX-0042", ts)

	if rs.ticks != ts.State.Tick {
		t.Fatalf("expected %d ticks, got %d", ts.State.Tick, rs.ticks)
	}
	if len(rs.stateHash) != 64 {
		t.Fatalf("expected a 64-char digest, got %q", rs.stateHash)
	}
	total := 0
	for _, n := range rs.capturedBy {
		total += n
	}
	if total != rs.captures {
		t.Fatalf("per-owner captures %d disagree with total %d", total, rs.captures)
	}
	if len(rs.peaks) != 3 {
		t.Fatalf("expected peaks for 3 players, got %d", len(rs.peaks))
	}
	if rs.windowSummary == nil {
		t.Fatal("expected a window summary")
	}
}

func TestWriteEvents(t *testing.T) {
	log := galaxy.NewSimLog(false)
	log.Add(1, "S01", "p0", "combat", "capture", "neutral → p0", 0)
	dir := filepath.Join(t.TempDir(), "events")
	if err := writeEvents(dir, "PAX-0001", log); err != nil {
		t.Fatalf("writeEvents: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "PAX-0001.events.lz4"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got, err := galaxy.ReadEventLog(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadEventLog: %v", err)
	}
	if len(got) != 1 || got[0].Key != "capture" {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestNewLogger_FallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "chatty")
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
