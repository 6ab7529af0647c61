package galaxy

import (
	"io"
	"log/slog"
	"sort"
)

// TestSim is a headless game harness used by tests and the batch reporter.
// It drives an Engine with fixed frames of logical time and never touches a
// renderer.
type TestSim struct {
	Setup    Setup
	Tuning   Tuning
	State    *State
	Engine   *Engine
	SimLog   *SimLog
	Reporter *Reporter

	custom    []*Star
	lanes     [][2]int
	noPlanner bool
	logger    *slog.Logger
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, counts, tuning, verbose; applied first
	simOptGalaxy                      // hand-built stars
	simOptLane                        // lanes between hand-built stars
	simOptState                       // routes and sieges on the finished state
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the map seed.
func WithSeed(seed string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Setup.Seed = seed }}
}

// WithAICount sets the number of computer players.
func WithAICount(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Setup.AICount = n }}
}

// WithStars sets the total star count of a generated galaxy.
func WithStars(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Setup.Stars = n }}
}

// WithPreset picks the star-type distribution.
func WithPreset(name string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Setup.Preset = name }}
}

// WithWorldSpeed sets the world-speed multiplier.
func WithWorldSpeed(ws float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Setup.WorldSpeed = ws }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithAutopilot lets the planner drive the human seat too.
func WithAutopilot(on bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Setup.Autopilot = on }}
}

// WithTuning replaces the reference balance.
func WithTuning(t Tuning) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.Tuning = t }}
}

// WithoutPlanner freezes every route except those set by the test.
func WithoutPlanner() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.noPlanner = true }}
}

// WithLogger routes engine logging somewhere other than io.Discard.
func WithLogger(l *slog.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.logger = l }}
}

// WithStar adds a hand-built star. Owners other than p0 and neutral become
// computer players.
func WithStar(id int, owner string, ships float64, typ StarType, x, y float64) SimOption {
	return SimOption{simOptGalaxy, func(ts *TestSim) {
		s := newStar(id, x, y, owner, ships, neutralProd)
		s.Type = typ
		ts.custom = append(ts.custom, s)
	}}
}

// WithGalaxy uses prebuilt stars as-is, neighbors included.
func WithGalaxy(stars []*Star) SimOption {
	return SimOption{simOptGalaxy, func(ts *TestSim) {
		ts.custom = append(ts.custom, stars...)
	}}
}

// WithLane links two hand-built stars.
func WithLane(a, b int) SimOption {
	return SimOption{simOptLane, func(ts *TestSim) {
		ts.lanes = append(ts.lanes, [2]int{a, b})
	}}
}

// WithRoute sets a route on the finished state.
func WithRoute(from, to int) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		ts.State.SetRoute(from, to)
	}}
}

// WithInvaders seeds a siege: ships of owner already landed on star id.
func WithInvaders(id int, owner string, ships, eff float64) SimOption {
	return SimOption{simOptState, func(ts *TestSim) {
		s := ts.State.Star(id)
		s.Invaders[owner] += ships
		s.InvadersEff[owner] += eff
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, counts, tuning, verbose)
//  2. Hand-built stars, then their lanes; or a generated galaxy
//  3. Engine
//  4. State tweaks (routes, sieges)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Setup:    Setup{AICount: 2, Stars: 18, Preset: PresetBalanced, Seed: "PAX-0042", WorldSpeed: 1},
		Tuning:   DefaultTuning(),
		SimLog:   NewSimLog(false),
		Reporter: NewReporter(0),
	}
	apply := func(kind simOptionKind) {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	apply(simOptInfra)
	apply(simOptGalaxy)
	apply(simOptLane)

	if ts.logger == nil {
		ts.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(ts.custom) > 0 {
		ts.State = ts.customState()
	} else {
		ts.Setup.Normalize()
		weights, err := ts.Tuning.PresetWeights(ts.Setup.Preset)
		if err != nil {
			weights = DefaultPresets()[PresetBalanced]
		}
		rng := NewRNG(ts.Setup.Seed)
		players := MakePlayers(ts.Setup.AICount, rng)
		AssignLabels(players, ts.Setup.Seed)
		stars := GenerateGalaxy(players, ts.Setup.Stars, weights, rng)
		ts.State = NewState(players, stars, ts.Setup.WorldSpeed)
	}

	ts.Engine = NewEngine(ts.State, EngineConfig{
		Tuning:    &ts.Tuning,
		Log:       ts.SimLog,
		Logger:    ts.logger,
		Autopilot: ts.Setup.Autopilot,
		NoPlanner: ts.noPlanner,
	})
	apply(simOptState)
	return ts
}

func (ts *TestSim) customState() *State {
	byID := map[int]*Star{}
	for _, s := range ts.custom {
		byID[s.ID] = s
	}
	for _, l := range ts.lanes {
		a, b := byID[l[0]], byID[l[1]]
		if a == nil || b == nil {
			continue
		}
		if !a.HasNeighbor(b.ID) {
			a.Neighbors = append(a.Neighbors, b.ID)
		}
		if !b.HasNeighbor(a.ID) {
			b.Neighbors = append(b.Neighbors, a.ID)
		}
	}

	players := []Player{{ID: HumanID, Name: "Human", Label: "You", Color: OwnerColors[0], Kind: KindHuman}}
	seen := map[string]bool{HumanID: true, Neutral: true}
	var others []string
	for _, s := range ts.custom {
		if !seen[s.Owner] {
			seen[s.Owner] = true
			others = append(others, s.Owner)
		}
	}
	sort.Strings(others)
	for i, id := range others {
		players = append(players, Player{
			ID:    id,
			Name:  id,
			Label: id,
			Color: OwnerColors[(i+1)%len(OwnerColors)],
			Kind:  KindComputer,
		})
	}
	ws := ts.Setup.WorldSpeed
	if ws <= 0 {
		ws = 1
	}
	return NewState(players, ts.custom, ws)
}

// Frame is the logical time of one harness step.
func (ts *TestSim) Frame() float64 { return ts.Tuning.MaxFrameDt }

// step advances one frame and samples the reporter after every economy tick.
func (ts *TestSim) step() {
	tick := ts.State.Tick
	ts.Engine.Step(ts.Frame())
	if ts.State.Tick != tick {
		ts.Reporter.Collect(ts.State)
	}
}

// RunFrames advances n fixed frames.
func (ts *TestSim) RunFrames(n int) {
	for i := 0; i < n; i++ {
		ts.step()
	}
}

// RunTicks advances until n more economy ticks have been applied, or the
// game ends.
func (ts *TestSim) RunTicks(n int) {
	target := ts.State.Tick + n
	ts.runUntilTick(target)
}

func (ts *TestSim) runUntilTick(target int) {
	guard := int((float64(target-ts.State.Tick)+1)*ts.Tuning.EconInterval/ts.Frame()) + 4
	for ts.State.Tick < target && ts.Engine.Outcome() == nil && guard > 0 {
		ts.step()
		guard--
	}
}

// RunUntil advances up to maxTicks economy ticks, stopping early once
// predicate holds. Returns the tick at which it held, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	if predicate(ts) {
		return ts.State.Tick
	}
	for i := 0; i < maxTicks; i++ {
		ts.runUntilTick(ts.State.Tick + 1)
		if predicate(ts) {
			return ts.State.Tick
		}
		if ts.Engine.Outcome() != nil {
			return -1
		}
	}
	return -1
}

// Snapshot deep-copies the stars.
func (ts *TestSim) Snapshot() []*Star {
	out := make([]*Star, len(ts.State.Stars))
	for i, s := range ts.State.Stars {
		out[i] = s.Clone()
	}
	return out
}

// Star returns a live star by id.
func (ts *TestSim) Star(id int) *Star { return ts.State.Star(id) }

// OwnedBy counts stars held by owner, the mirror pool once.
func (ts *TestSim) OwnedBy(owner string) int {
	n := 0
	canon := ts.State.mirror.Canon
	for i, s := range ts.State.Stars {
		if s.IsMirror() && i != canon {
			continue
		}
		if s.Owner == owner {
			n++
		}
	}
	return n
}

// TotalShips sums every ship in the game: garrisons, damage ledgers,
// invaders and fleets in flight. The mirror pool counts once.
func (ts *TestSim) TotalShips() float64 {
	total := 0.0
	canon := ts.State.mirror.Canon
	for i, s := range ts.State.Stars {
		if s.IsMirror() && i != canon {
			continue
		}
		total += s.Ships
		for _, v := range s.Damaged {
			total += v
		}
		for _, v := range s.Invaders {
			total += v
		}
	}
	for _, p := range ts.State.Packets {
		total += p.Amount
	}
	return total
}
