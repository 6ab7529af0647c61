package galaxy

import (
	"strings"
	"testing"
)

func TestReporter_CollectsEveryTick(t *testing.T) {
	ts := NewTestSim(WithSeed("PAX-0042"))
	ts.RunTicks(12)
	if n := len(ts.Reporter.History()); n != 12 {
		t.Fatalf("expected 12 samples, got %d", n)
	}
	latest := ts.Reporter.Latest()
	if latest.Tick != 12 || len(latest.Players) != 3 {
		t.Fatalf("expected tick 12 with 3 players, got %+v", latest)
	}
	if !strings.Contains(ts.Reporter.FormatLatest(), "T=12") {
		t.Fatalf("unexpected snapshot:\n%s", ts.Reporter.FormatLatest())
	}
}

func TestReporter_CountsMirrorOnce(t *testing.T) {
	ts := mirrorSim(t)
	r := NewReporter(5)
	r.Collect(ts.State)
	p0 := r.Latest().Players[0]
	if p0.ID != "p0" || p0.Stars != 1 || p0.Ships != 40 || p0.Routed != 1 {
		t.Fatalf("expected one routed pool of 40 ships, got %+v", p0)
	}
}

func TestReporter_WindowSummary(t *testing.T) {
	r := NewReporter(2)
	if r.WindowSummary() != nil {
		t.Fatal("expected no summary before any sample")
	}
	st := plainState("p0", "p1")
	for tick, ships := range []float64{100, 10, 20, 30} {
		st.Tick = tick + 1
		st.Star(1).Ships = ships
		r.Collect(st)
	}
	wr := r.WindowSummary()
	if wr.FromTick != 2 || wr.ToTick != 4 || wr.SampleCount != 3 {
		t.Fatalf("expected window T=2..4 with 3 samples, got %+v", wr)
	}
	if !near(wr.AvgShips["p0"], 20) || !near(wr.AvgStars["p1"], 1) {
		t.Fatalf("unexpected averages %v %v", wr.AvgShips, wr.AvgStars)
	}
	if wr.Leader() != "p0" {
		t.Fatalf("expected p0 to lead, got %s", wr.Leader())
	}
	if !strings.Contains(wr.Format(), "leader=p0") {
		t.Fatalf("unexpected format:\n%s", wr.Format())
	}
}
