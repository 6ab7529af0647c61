package galaxy

import "testing"

func mirrorSim(t *testing.T) *TestSim {
	t.Helper()
	return NewTestSim(
		WithoutPlanner(),
		WithStar(1, "p0", 40, TypeMirror, 100, 100),
		WithStar(2, "p0", 40, TypeMirror, 500, 100),
		WithStar(3, Neutral, 10, TypePlain, 100, 300),
		WithStar(4, Neutral, 10, TypePlain, 500, 300),
		WithStar(9, "p1", 10, TypePlain, 900, 500),
		WithLane(1, 3),
		WithLane(2, 4),
		WithRoute(1, 3),
		WithRoute(2, 4),
	)
}

func assertMirrorsInSync(t *testing.T, ts *TestSim) {
	t.Helper()
	g := ts.State.Mirror()
	first := ts.State.Stars[g.Members[0]]
	for _, i := range g.Members[1:] {
		s := ts.State.Stars[i]
		if s.Owner != first.Owner || s.Ships != first.Ships || s.UnderAttackTicks != first.UnderAttackTicks {
			t.Fatalf("mirror %d out of sync with %d: %s/%v/%d vs %s/%v/%d",
				s.ID, first.ID, s.Owner, s.Ships, s.UnderAttackTicks, first.Owner, first.Ships, first.UnderAttackTicks)
		}
	}
}

func TestMirrorGroup_Canon(t *testing.T) {
	ts := mirrorSim(t)
	g := ts.State.Mirror()
	if len(g.Members) != 2 || g.Canon != 0 {
		t.Fatalf("expected two members with canon index 0, got %+v", g)
	}
	if !g.Contains(1) || g.Contains(2) {
		t.Fatalf("membership wrong: %+v", g)
	}
}

func TestScenario_MirrorSingleLane(t *testing.T) {
	ts := mirrorSim(t)
	e := ts.Engine

	e.EconomyTick()
	if len(ts.State.Packets) != 1 || ts.State.Packets[0].From != 1 {
		t.Fatalf("expected one packet from the canonical mirror, got %d", len(ts.State.Packets))
	}
	if from, to := ts.State.MirrorLane(); from != 1 || to != 3 {
		t.Fatalf("expected mirror lane S01 → S03, got %d → %d", from, to)
	}
	assertMirrorsInSync(t, ts)
	if ts.Star(2).RouteTo != 4 {
		t.Fatalf("the idle member should keep its own lane, got route %d", ts.Star(2).RouteTo)
	}

	for i := 0; i < 3; i++ {
		e.EconomyTick()
		assertMirrorsInSync(t, ts)
	}
	for _, p := range ts.State.Packets {
		if p.From != 1 {
			t.Fatalf("packet #%d left from mirror %d while the lock was on S01", p.ID, p.From)
		}
	}

	// fleets still in flight: the lock holds even when its route is cleared.
	ts.State.SetRoute(1, 0)
	e.EconomyTick()
	if from, _ := ts.State.MirrorLane(); from != 1 {
		t.Fatalf("lock switched to S%02d with mirror fleets in flight", from)
	}
	if ts.Star(1).RouteTo != 3 {
		t.Fatalf("expected the locked member to keep dispatching on its lane, got route %d", ts.Star(1).RouteTo)
	}

	// once the sky is clear the lock moves to the only routed member.
	ts.State.Packets = nil
	ts.State.SetRoute(1, 0)
	e.EconomyTick()
	if from, to := ts.State.MirrorLane(); from != 2 || to != 4 {
		t.Fatalf("expected the lock to move to S02 → S04, got %d → %d", from, to)
	}
	if len(ts.State.Packets) != 1 || ts.State.Packets[0].From != 2 {
		t.Fatalf("expected one packet from S02, got %d packets", len(ts.State.Packets))
	}
	assertMirrorsInSync(t, ts)
	if !ts.SimLog.HasEntry("mirror", "lock", "S02 → S04") {
		t.Log(ts.SimLog.Format())
		t.Fatal("expected the lock change to be logged")
	}
}

func TestMirror_SiegeResolvesOnce(t *testing.T) {
	ts := NewTestSim(
		WithoutPlanner(),
		WithStar(1, "p0", 10, TypeMirror, 100, 100),
		WithStar(2, "p0", 10, TypeMirror, 600, 100),
		WithStar(5, "p1", 80, TypePlain, 100, 140),
		WithLane(1, 5),
	)
	ts.Engine.launch(ts.Star(5), ts.Star(1), "p1", 50, false)
	ts.RunFrames(10)
	for _, id := range []int{1, 2} {
		if !near(ts.Star(id).Invaders["p1"], 50) {
			t.Fatalf("mirror %d: expected the landing to reach the whole pool, got %v", id, ts.Star(id).Invaders["p1"])
		}
	}

	ts.Engine.EconomyTick()
	assertMirrorsInSync(t, ts)
	if ts.Star(1).Owner != "p1" {
		t.Fatalf("expected the pool to fall to p1, got %s", ts.Star(1).Owner)
	}
	if n := ts.SimLog.CountCategory("combat", "capture"); n != 1 {
		t.Log(ts.SimLog.Format())
		t.Fatalf("expected one capture for the pool, got %d", n)
	}
}

func TestMirror_ReinforcementOnIdleMemberReachesPool(t *testing.T) {
	ts := NewTestSim(
		WithoutPlanner(),
		WithStar(1, "p0", 10, TypeMirror, 100, 100),
		WithStar(2, "p0", 10, TypeMirror, 600, 100),
		WithStar(5, "p0", 40, TypePlain, 600, 140),
		WithStar(9, "p1", 10, TypePlain, 900, 500),
		WithLane(2, 5),
	)
	ts.Engine.launch(ts.Star(5), ts.Star(2), "p0", 20, false)
	ts.RunFrames(10)
	if len(ts.State.Packets) != 0 {
		t.Fatalf("expected the fleet to have landed, %d still in flight", len(ts.State.Packets))
	}
	for _, id := range []int{1, 2} {
		if !near(ts.Star(id).Ships, 30) {
			t.Fatalf("mirror %d: expected 30 ships after the landing, got %v", id, ts.Star(id).Ships)
		}
	}
	assertMirrorsInSync(t, ts)
}

func TestOwnerPower_MirrorCountsOnce(t *testing.T) {
	ts := mirrorSim(t)
	ships, prod := OwnerPower(ts.State.Stars, "p0")
	if ships != 40 || prod != 1 {
		t.Fatalf("expected one pool of 40 ships and prod 1, got %v and %v", ships, prod)
	}
	if got := DisplayShips(ts.State.Stars, ts.Star(2)); got != 40 {
		t.Fatalf("expected the pool size on every member, got %v", got)
	}
	if n := ts.OwnedBy("p0"); n != 1 {
		t.Fatalf("expected the pool to count as one star, got %d", n)
	}
}
