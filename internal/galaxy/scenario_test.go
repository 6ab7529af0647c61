package galaxy

import "testing"

// checkInvariants asserts the rules every settled tick must satisfy.
func checkInvariants(t *testing.T, ts *TestSim) {
	t.Helper()
	st := ts.State
	for _, s := range st.Stars {
		if s.Ships < 0 {
			t.Fatalf("T=%d S%02d: negative garrison %v", st.Tick, s.ID, s.Ships)
		}
		if s.RouteTo != 0 && !s.HasNeighbor(s.RouteTo) {
			t.Fatalf("T=%d S%02d: route to non-neighbor %d", st.Tick, s.ID, s.RouteTo)
		}
		for k, v := range s.Invaders {
			if v < 0 {
				t.Fatalf("T=%d S%02d: negative invaders for %s", st.Tick, s.ID, k)
			}
		}
		if s.UnderAttackTicks < 0 || s.UnderAttackTicks > ts.Tuning.SiegeCap {
			t.Fatalf("T=%d S%02d: siege counter %d out of range", st.Tick, s.ID, s.UnderAttackTicks)
		}
	}
	for _, p := range st.Packets {
		if p.Amount <= 0 || p.T >= 1 {
			t.Fatalf("T=%d packet #%d: amount %v progress %v", st.Tick, p.ID, p.Amount, p.T)
		}
	}
	if g := st.Mirror(); len(g.Members) > 1 {
		first := st.Stars[g.Members[0]]
		for _, i := range g.Members[1:] {
			m := st.Stars[i]
			if m.Owner != first.Owner || m.Ships != first.Ships {
				t.Fatalf("T=%d mirror S%02d diverged from S%02d", st.Tick, m.ID, first.ID)
			}
		}
	}
}

func TestScenario_AutopilotInvariants(t *testing.T) {
	games := []struct {
		seed   string
		ais    int
		stars  int
		preset string
	}{
		{"PAX-0042", 2, 18, PresetBalanced},
		{"PAX-0003", 3, 30, PresetTele},
		{"PAX-0017", 4, 40, PresetCombat},
	}
	for _, g := range games {
		t.Run(g.seed, func(t *testing.T) {
			ts := NewTestSim(
				WithSeed(g.seed),
				WithAICount(g.ais),
				WithStars(g.stars),
				WithPreset(g.preset),
				WithAutopilot(true),
			)
			ts.RunUntil(func(ts *TestSim) bool {
				checkInvariants(t, ts)
				return false
			}, 400)
			if ts.State.Tick == 0 {
				t.Fatal("expected the game to advance")
			}
			if ts.SimLog.CountCategory("plan", "") == 0 {
				t.Fatal("expected the planner to issue orders")
			}
			t.Logf("%s: tick %d, captures %d\n%s", g.seed, ts.State.Tick,
				ts.SimLog.CountCategory("combat", "capture"), ts.SimLog.Summary(ts.State))
		})
	}
}

func TestScenario_Deterministic(t *testing.T) {
	run := func() (*TestSim, string) {
		ts := NewTestSim(WithSeed("PAX-0777"), WithAICount(3), WithStars(24), WithAutopilot(true))
		ts.RunTicks(150)
		return ts, Digest(ts.State)
	}
	a, da := run()
	b, db := run()
	if da != db {
		t.Fatalf("expected identical runs, digests %s vs %s", da, db)
	}
	if a.SimLog.Len() != b.SimLog.Len() {
		t.Fatalf("expected identical logs, got %d vs %d entries", a.SimLog.Len(), b.SimLog.Len())
	}
}

func TestScenario_ComputersExpand(t *testing.T) {
	ts := NewTestSim(WithSeed("PAX-0042"))
	ts.RunTicks(60)
	grown := false
	for _, p := range ts.State.Players {
		if p.Kind == KindComputer && ts.OwnedBy(p.ID) > 1 {
			grown = true
		}
	}
	if !grown {
		t.Log(ts.SimLog.Summary(ts.State))
		t.Fatal("expected at least one computer player to take a neutral star within 60 ticks")
	}
}
