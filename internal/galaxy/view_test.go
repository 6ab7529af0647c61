package galaxy

import "testing"

func TestView_IsDetached(t *testing.T) {
	s := newTestSession(t)
	startNow(t, s, "PAX-0042")
	v := s.View()

	if v.Scene != ScenePlaying || v.Seed != "PAX-0042" || len(v.Stars) != 18 {
		t.Fatalf("unexpected view header: %s %s %d", v.Scene, v.Seed, len(v.Stars))
	}
	live := s.Engine.State.Star(1)
	before := live.Ships
	v.Star(1).Ships = -5
	v.Star(1).Invaders["p1"] = 99
	if live.Ships != before || live.Invaders["p1"] != 0 {
		t.Fatal("mutating the view leaked into the game")
	}
	if v.Owned(HumanID) != 1 {
		t.Fatalf("expected the human to start with one star, got %d", v.Owned(HumanID))
	}
	if len(v.Lanes) == 0 || len(v.Starfield) != 160 {
		t.Fatal("expected lanes and a starfield in the view")
	}
}

func TestView_InFlightOn(t *testing.T) {
	v := View{Packets: []Packet{
		{From: 1, To: 2, Amount: 3},
		{From: 1, To: 2, Amount: 4},
		{From: 2, To: 1, Amount: 5},
	}}
	got := v.InFlightOn()
	if got[[2]int{1, 2}] != 7 || got[[2]int{2, 1}] != 5 {
		t.Fatalf("unexpected lane totals %v", got)
	}
}
