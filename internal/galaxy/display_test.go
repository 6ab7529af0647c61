package galaxy

import (
	"math"
	"testing"
)

func TestFormatCount(t *testing.T) {
	cases := []struct {
		n    float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1K"},
		{1500, "1.5K"},
		{12345, "12.3K"},
		{2e6, "2M"},
		{3.4e6, "3.4M"},
	}
	for _, c := range cases {
		if got := FormatCount(c.n); got != c.want {
			t.Fatalf("FormatCount(%v): expected %q, got %q", c.n, c.want, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[float64]string{0: "0:00", 9.99: "0:09", 65.9: "1:05", 600: "10:00"}
	for sec, want := range cases {
		if got := FormatClock(sec); got != want {
			t.Fatalf("FormatClock(%v): expected %q, got %q", sec, want, got)
		}
	}
}

func TestFontScale(t *testing.T) {
	cases := []struct {
		ships, want float64
	}{
		{0, 12}, {1, 12}, {100, 20}, {1e4, 28}, {1e9, 28},
	}
	for _, c := range cases {
		if got := FontScale(c.ships); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("FontScale(%v): expected %v, got %v", c.ships, c.want, got)
		}
	}
	if got := FontScaleLane(100); math.Abs(got-16) > 1e-9 {
		t.Fatalf("FontScaleLane(100): expected 16, got %v", got)
	}
	if got := FontScaleLane(1e9); got != 20 {
		t.Fatalf("FontScaleLane(1e9): expected the cap 20, got %v", got)
	}
}

func TestStarfield(t *testing.T) {
	a, b := Starfield("PAX-0042"), Starfield("PAX-0042")
	if len(a) != 160 {
		t.Fatalf("expected 160 specks, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("speck %d differs for the same seed", i)
		}
		sp := a[i]
		if sp.X < 0 || sp.X >= Width || sp.Y < 0 || sp.Y >= Height || sp.R < 0.4 || sp.R >= 1.4 {
			t.Fatalf("speck %d out of range: %+v", i, sp)
		}
	}
	if Starfield("PAX-0043")[0] == a[0] {
		t.Fatal("expected a different sky for a different seed")
	}
}

func TestBattleStats(t *testing.T) {
	s := newStar(4, 0, 0, "p0", 10, 1)
	s.Type = TypeDefense
	s.Invaders["p1"], s.InvadersEff["p1"] = 10, 20
	s.Invaders["p2"], s.InvadersEff["p2"] = 30, 30
	calm := newStar(5, 0, 0, "p0", 10, 1)

	tun := DefaultTuning()
	stats := tun.BattleStats([]*Star{s, calm})
	if len(stats) != 1 {
		t.Fatalf("expected one contested star, got %d", len(stats))
	}
	bs := stats[4]
	if !near(bs.DefenderEff, 24) || bs.AttackerShips != 40 || bs.AttackerEff != 50 {
		t.Fatalf("unexpected totals %+v", bs)
	}
	if bs.PrimaryAttack != "p2" || bs.Attackers[0].Owner != "p2" {
		t.Fatalf("expected p2 as the primary attacker, got %+v", bs)
	}
}
