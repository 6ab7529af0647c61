package galaxy

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// Scene is the lifecycle phase of a Session.
type Scene int

const (
	SceneMenu Scene = iota
	SceneCountdown
	ScenePlaying
	SceneVictory
)

func (s Scene) String() string {
	switch s {
	case SceneMenu:
		return "menu"
	case SceneCountdown:
		return "countdown"
	case ScenePlaying:
		return "playing"
	case SceneVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// WorldSpeeds are the selectable world-speed multipliers.
var WorldSpeeds = []float64{0.5, 1, 1.5, 2}

// Setup is what the menu hands to a new game.
type Setup struct {
	AICount    int
	Stars      int
	Preset     string
	Seed       string // empty draws a fresh PAX-#### token
	WorldSpeed float64
	Countdown  int // logical seconds before play; 0 skips the countdown
	Autopilot  bool
}

// DefaultSetup is the menu's initial selection.
func DefaultSetup() Setup {
	return Setup{
		AICount:    2,
		Stars:      18,
		Preset:     PresetBalanced,
		WorldSpeed: 1,
		Countdown:  3,
	}
}

// Normalize clamps every field into its legal range.
func (s *Setup) Normalize() {
	s.AICount = min(max(s.AICount, 1), 12)
	s.Stars = min(max(s.Stars, 12), 120)
	s.Stars = max(s.Stars, s.AICount+1+2)
	if s.Preset == "" {
		s.Preset = PresetBalanced
	}
	best := WorldSpeeds[1]
	for _, ws := range WorldSpeeds {
		if math.Abs(ws-s.WorldSpeed) < math.Abs(best-s.WorldSpeed) {
			best = ws
		}
	}
	s.WorldSpeed = best
	s.Countdown = max(s.Countdown, 0)
}

// Session owns one game at a time and its scene machine. Every transition
// replaces the game wholesale.
type Session struct {
	ID     string // per-game uuid, renewed on every start
	Setup  Setup
	Scene  Scene
	Engine *Engine
	Log    *SimLog

	tuning   Tuning
	doctrine *Doctrine
	base     *slog.Logger
	logger   *slog.Logger
	verbose  bool

	countdown float64
	selected  int // star id, 0 for none
	starfield []Speck
}

// NewSession validates the tuning and compiles its doctrine.
func NewSession(tuning Tuning, logger *slog.Logger) (*Session, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	doctrine, err := CompileDoctrine(tuning.Doctrine)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		Setup:    DefaultSetup(),
		Scene:    SceneMenu,
		Log:      NewSimLog(false),
		tuning:   tuning,
		doctrine: doctrine,
		base:     logger,
		logger:   logger,
	}, nil
}

// SetVerbose makes future games record per-tick entries.
func (s *Session) SetVerbose(v bool) { s.verbose = v }

// Tuning returns the session's balance constants.
func (s *Session) Tuning() Tuning { return s.tuning }

// Start boots a new game from setup. A blank seed draws a fresh one.
func (s *Session) Start(setup Setup) error {
	setup.Normalize()
	weights, err := s.tuning.PresetWeights(setup.Preset)
	if err != nil {
		return err
	}
	if setup.Seed == "" {
		setup.Seed = RandomSeed()
	}

	rng := NewRNG(setup.Seed)
	players := MakePlayers(setup.AICount, rng)
	AssignLabels(players, setup.Seed)
	stars := GenerateGalaxy(players, setup.Stars, weights, rng)
	st := NewState(players, stars, setup.WorldSpeed)

	s.ID = uuid.New().String()
	s.Setup = setup
	s.Log = NewSimLog(s.verbose)
	s.logger = s.base.With("session", s.ID, "seed", setup.Seed)
	s.Engine = NewEngine(st, EngineConfig{
		Tuning:    &s.tuning,
		Doctrine:  s.doctrine,
		Log:       s.Log,
		Logger:    s.logger,
		Autopilot: setup.Autopilot,
	})
	s.selected = 0
	s.starfield = Starfield(setup.Seed)
	s.logger.Info("game started",
		"ais", setup.AICount, "stars", len(stars), "preset", setup.Preset, "world_speed", setup.WorldSpeed)

	if setup.Countdown > 0 {
		s.countdown = float64(setup.Countdown)
		s.enter(SceneCountdown)
	} else {
		s.countdown = 0
		s.enter(ScenePlaying)
	}
	return nil
}

// NewMap starts a fresh seed with the current settings.
func (s *Session) NewMap() error {
	setup := s.Setup
	setup.Seed = ""
	return s.Start(setup)
}

// Rematch replays the current seed.
func (s *Session) Rematch() error {
	return s.Start(s.Setup)
}

// BackToMenu drops the current game.
func (s *Session) BackToMenu() {
	s.Engine = nil
	s.selected = 0
	s.enter(SceneMenu)
}

func (s *Session) enter(scene Scene) {
	prev := s.Scene
	s.Scene = scene
	tick := 0
	if s.Engine != nil {
		tick = s.Engine.State.Tick
	}
	s.Log.Add(tick, "--", "--", "scene", "change", fmt.Sprintf("%s → %s", prev, scene), 0)
	s.logger.Info("scene change", "from", prev.String(), "to", scene.String())
}

// Update advances the session by dt seconds of wall time.
func (s *Session) Update(dt float64) {
	switch s.Scene {
	case SceneCountdown:
		s.countdown -= dt
		if s.countdown <= 0 {
			s.countdown = 0
			s.enter(ScenePlaying)
		}
	case ScenePlaying:
		s.Engine.Step(dt)
		if o := s.Engine.Outcome(); o != nil {
			s.Engine.State.Paused = true
			s.selected = 0
			s.enter(SceneVictory)
		}
	}
}

// TogglePause flips the pause flag while playing.
func (s *Session) TogglePause() {
	if s.Scene != ScenePlaying || s.Engine == nil {
		return
	}
	st := s.Engine.State
	st.Paused = !st.Paused
	s.logger.Debug("pause", "paused", st.Paused, "elapsed", st.Elapsed)
}

// SetWorldSpeed changes the speed of the running game.
func (s *Session) SetWorldSpeed(ws float64) {
	setup := Setup{AICount: 1, Stars: 12, WorldSpeed: ws}
	setup.Normalize()
	s.Setup.WorldSpeed = setup.WorldSpeed
	if s.Engine != nil {
		s.Engine.State.WorldSpeed = setup.WorldSpeed
	}
}

// Selected is the star the human has picked up, or 0.
func (s *Session) Selected() int { return s.selected }

// Click handles a star click: pick up an owned star, then click a neighbor
// to route it, the same star to clear its route, or anything else to drop it.
// Clicks work while paused.
func (s *Session) Click(id int) {
	if s.Scene != ScenePlaying || s.Engine == nil {
		return
	}
	st := s.Engine.State
	star := st.Star(id)
	if star == nil {
		s.selected = 0
		return
	}
	if s.selected == 0 {
		if star.Owner == HumanID {
			s.selected = id
		}
		return
	}
	from := s.selected
	s.selected = 0
	switch {
	case id == from:
		s.RouteIntent(from, 0)
	case st.Star(from).HasNeighbor(id):
		s.RouteIntent(from, id)
	}
}

// Deselect drops the current selection.
func (s *Session) Deselect() { s.selected = 0 }

// ClearRoute clears the route of the selected star, if any.
func (s *Session) ClearRoute() {
	if s.selected == 0 {
		return
	}
	s.RouteIntent(s.selected, 0)
}

// RouteIntent applies a human route command. It is accepted only for stars
// the human owns at the moment of application, and only toward a neighbor;
// to 0 clears the route.
func (s *Session) RouteIntent(from, to int) bool {
	if s.Engine == nil {
		return false
	}
	st := s.Engine.State
	star := st.Star(from)
	if star == nil || star.Owner != HumanID {
		return false
	}
	if !st.SetRoute(from, to) {
		return false
	}
	if to == 0 {
		s.Log.Add(st.Tick, star.Label(), HumanID, "plan", "clear", "route cleared", 0)
	} else {
		s.Log.Add(st.Tick, star.Label(), HumanID, "plan", "route", fmt.Sprintf("→ S%02d", to), float64(to))
	}
	return true
}

// Countdown is the whole seconds left before play starts.
func (s *Session) Countdown() int {
	return int(math.Ceil(s.countdown))
}
