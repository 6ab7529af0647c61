package galaxy

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(DefaultTuning(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func startNow(t *testing.T, s *Session, seed string) {
	t.Helper()
	setup := DefaultSetup()
	setup.Seed = seed
	setup.Countdown = 0
	if err := s.Start(setup); err != nil {
		t.Fatalf("start: %v", err)
	}
}

func TestSession_CountdownToPlaying(t *testing.T) {
	s := newTestSession(t)
	if s.Scene != SceneMenu {
		t.Fatalf("expected menu, got %s", s.Scene)
	}
	setup := DefaultSetup()
	setup.Seed = "PAX-0042"
	if err := s.Start(setup); err != nil {
		t.Fatal(err)
	}
	if s.Scene != SceneCountdown || s.Countdown() != 3 {
		t.Fatalf("expected a 3s countdown, got %s with %d", s.Scene, s.Countdown())
	}
	s.Update(1)
	s.Update(1)
	if s.Countdown() != 1 {
		t.Fatalf("expected 1s left, got %d", s.Countdown())
	}
	if s.Engine.State.Elapsed != 0 {
		t.Fatal("the game clock must not run during the countdown")
	}
	s.Update(1)
	if s.Scene != ScenePlaying {
		t.Fatalf("expected playing, got %s", s.Scene)
	}
	s.Update(0.05)
	if s.Engine.State.Elapsed == 0 {
		t.Fatal("expected the clock to run once playing")
	}
	if !s.Log.HasEntry("scene", "change", "countdown → playing") {
		t.Log(s.Log.Format())
		t.Fatal("expected the scene change to be logged")
	}
}

func TestSession_UnknownPreset(t *testing.T) {
	s := newTestSession(t)
	setup := DefaultSetup()
	setup.Preset = "chaos"
	if err := s.Start(setup); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if s.Scene != SceneMenu || s.Engine != nil {
		t.Fatal("a failed start must leave the session in the menu")
	}
}

func TestSession_RejectsBadTuning(t *testing.T) {
	tun := DefaultTuning()
	tun.Doctrine = "MyShips +"
	if _, err := NewSession(tun, nil); err == nil {
		t.Fatal("expected a doctrine compile error")
	}
	tun = DefaultTuning()
	tun.EconInterval = 0
	if _, err := NewSession(tun, nil); !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("expected ErrInvalidTuning, got %v", err)
	}
}

func TestSession_RematchAndNewMap(t *testing.T) {
	s := newTestSession(t)
	startNow(t, s, "PAX-0042")
	firstID := s.ID
	firstDigest := Digest(s.Engine.State)
	s.Update(0.05)

	if err := s.Rematch(); err != nil {
		t.Fatal(err)
	}
	if s.Setup.Seed != "PAX-0042" {
		t.Fatalf("rematch must keep the seed, got %s", s.Setup.Seed)
	}
	if s.ID == firstID {
		t.Fatal("expected a fresh session id on rematch")
	}
	if Digest(s.Engine.State) != firstDigest {
		t.Fatal("expected the rematch to regenerate the same galaxy")
	}

	if err := s.NewMap(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(s.Setup.Seed, "PAX-") {
		t.Fatalf("expected a PAX- seed, got %q", s.Setup.Seed)
	}
}

func TestSession_ClickRouting(t *testing.T) {
	s := newTestSession(t)
	startNow(t, s, "PAX-0042")
	st := s.Engine.State

	s.Click(2)
	if s.Selected() != 0 {
		t.Fatal("a rival star must not be selectable")
	}

	s.Click(1)
	if s.Selected() != 1 {
		t.Fatalf("expected S01 selected, got %d", s.Selected())
	}
	s.Click(8)
	if st.Star(1).RouteTo != 8 || s.Selected() != 0 {
		t.Fatalf("expected route S01 → S08 and no selection, got %d / %d", st.Star(1).RouteTo, s.Selected())
	}

	s.Click(1)
	s.Click(3)
	if st.Star(1).RouteTo != 8 {
		t.Fatal("a click on a non-neighbor must only drop the selection")
	}

	s.Click(1)
	s.Click(1)
	if st.Star(1).RouteTo != 0 {
		t.Fatal("clicking the selected star again should clear its route")
	}
	if !s.Log.HasEntry("plan", "clear", "") {
		t.Fatal("expected the cleared route to be logged")
	}

	s.Click(1)
	s.ClearRoute()
	s.Deselect()
	if s.Selected() != 0 {
		t.Fatal("expected no selection after Deselect")
	}
}

func TestSession_RouteIntentNeedsOwnership(t *testing.T) {
	s := newTestSession(t)
	startNow(t, s, "PAX-0042")
	if s.RouteIntent(2, 1) {
		t.Fatal("expected a route on a rival star to be refused")
	}
	s.Engine.State.Star(1).Owner = "p1"
	if s.RouteIntent(1, 8) {
		t.Fatal("expected a route on a just-lost star to be refused")
	}
}

func TestSession_PauseFreezesClock(t *testing.T) {
	s := newTestSession(t)
	startNow(t, s, "PAX-0042")
	s.Update(0.05)
	s.TogglePause()
	elapsed := s.Engine.State.Elapsed
	for i := 0; i < 10; i++ {
		s.Update(0.05)
	}
	if s.Engine.State.Elapsed != elapsed {
		t.Fatalf("expected the clock frozen at %v, got %v", elapsed, s.Engine.State.Elapsed)
	}
	s.Click(1)
	s.Click(4)
	if s.Engine.State.Star(1).RouteTo != 4 {
		t.Fatal("expected routing to work while paused")
	}
	s.TogglePause()
	s.Update(0.05)
	if s.Engine.State.Elapsed <= elapsed {
		t.Fatal("expected the clock to resume")
	}
}

func TestSession_BackToMenu(t *testing.T) {
	s := newTestSession(t)
	startNow(t, s, "PAX-0042")
	s.Click(1)
	s.BackToMenu()
	if s.Scene != SceneMenu || s.Engine != nil || s.Selected() != 0 {
		t.Fatalf("expected a clean menu, got %s", s.Scene)
	}
	s.Update(1)
	s.Click(1)
	if v := s.View(); len(v.Stars) != 0 {
		t.Fatal("expected an empty view in the menu")
	}
}

func TestSession_SetWorldSpeed(t *testing.T) {
	s := newTestSession(t)
	startNow(t, s, "PAX-0042")
	s.SetWorldSpeed(1.6)
	if s.Engine.State.WorldSpeed != 1.5 || s.Setup.WorldSpeed != 1.5 {
		t.Fatalf("expected 1.6 to snap to 1.5, got %v", s.Engine.State.WorldSpeed)
	}
}

func TestSetup_Normalize(t *testing.T) {
	cases := []struct {
		in   Setup
		want Setup
	}{
		{Setup{AICount: 0, Stars: 5, WorldSpeed: 0, Countdown: -2},
			Setup{AICount: 1, Stars: 12, Preset: PresetBalanced, WorldSpeed: 0.5, Countdown: 0}},
		{Setup{AICount: 40, Stars: 500, Preset: PresetTele, WorldSpeed: 9, Countdown: 3},
			Setup{AICount: 12, Stars: 120, Preset: PresetTele, WorldSpeed: 2, Countdown: 3}},
		{Setup{AICount: 12, Stars: 12, WorldSpeed: 1.2},
			Setup{AICount: 12, Stars: 15, Preset: PresetBalanced, WorldSpeed: 1}},
	}
	for i, c := range cases {
		got := c.in
		got.Normalize()
		if got != c.want {
			t.Fatalf("case %d: expected %+v, got %+v", i, c.want, got)
		}
	}
}
