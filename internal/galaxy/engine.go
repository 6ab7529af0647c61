package galaxy

import (
	"log/slog"
)

// EngineConfig wires an Engine's collaborators. Zero values fall back to the
// reference tuning, the default doctrine and a quiet log.
type EngineConfig struct {
	Tuning    *Tuning
	Doctrine  *Doctrine
	Log       *SimLog
	Logger    *slog.Logger
	Autopilot bool // the planner also drives the human seat
	NoPlanner bool // no seat is planned; routes change only through SetRoute
}

// Engine runs one game: the economy-combat tick and the planner on their own
// logical intervals, and packet transit every frame. All three run in strict
// sequence inside Step, so each pass sees a settled state.
type Engine struct {
	State *State
	Log   *SimLog

	tuning    Tuning
	planner   *Planner
	metrics   *Metrics
	outcome   *Outcome
	logger    *slog.Logger
	autopilot bool
	noPlanner bool

	econAcc float64
	planAcc float64
}

// NewEngine wraps a state for simulation.
func NewEngine(st *State, cfg EngineConfig) *Engine {
	tuning := DefaultTuning()
	if cfg.Tuning != nil {
		tuning = *cfg.Tuning
	}
	doctrine := cfg.Doctrine
	if doctrine == nil {
		doctrine = MustDoctrine(tuning.Doctrine)
	}
	log := cfg.Log
	if log == nil {
		log = NewSimLog(false)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		State:     st,
		Log:       log,
		tuning:    tuning,
		metrics:   NewMetrics(),
		logger:    logger,
		autopilot: cfg.Autopilot,
		noPlanner: cfg.NoPlanner,
	}
	e.planner = NewPlanner(&e.tuning, doctrine, logger)
	return e
}

// Tuning exposes the engine's balance constants.
func (e *Engine) Tuning() *Tuning { return &e.tuning }

// Planner exposes the computer-player planner.
func (e *Engine) Planner() *Planner { return e.planner }

// Metrics exposes the running peak metrics.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// Outcome is non-nil once a winner has been declared.
func (e *Engine) Outcome() *Outcome { return e.outcome }

// Step advances logical time by dt seconds, clamped to the per-frame maximum
// so a stalled caller cannot make packets jump.
func (e *Engine) Step(dt float64) {
	st := e.State
	if st.Paused || e.outcome != nil {
		return
	}
	dt = min(dt, e.tuning.MaxFrameDt)
	if dt <= 0 {
		return
	}
	st.Elapsed += dt

	// 1. TRANSIT: move fleets, land arrivals.
	e.advancePackets(dt)
	e.resolveArrivals()

	// 2. ECONOMY: production, dispatch, combat, repair, mirror sync.
	e.econAcc += dt
	if e.econAcc >= e.tuning.EconInterval-1e-9 {
		e.econAcc -= e.tuning.EconInterval
		e.EconomyTick()
	}

	// 3. PLAN: computer players retarget on the slower interval.
	e.planAcc += dt
	if e.planAcc >= e.tuning.PlanInterval-1e-9 {
		e.planAcc -= e.tuning.PlanInterval
		e.PlanTick()
	}

	// 4. OBSERVE: peak metrics, then the win check.
	e.metrics.Observe(st)
	if winner, ok := EvaluateWin(st); ok {
		e.outcome = DetermineOutcome(st, winner, e.metrics)
		e.Log.Add(st.Tick, "--", winner, "win", "victory", e.outcome.Description, st.Elapsed)
		e.logger.Info("victory", "winner", winner, "elapsed", st.Elapsed, "tick", st.Tick)
	}
}

// PlanTick runs one planner firing for every planned seat.
func (e *Engine) PlanTick() {
	if e.noPlanner {
		return
	}
	var seats []Player
	for _, p := range e.State.Players {
		if p.Kind == KindComputer || e.autopilot {
			seats = append(seats, p)
		}
	}
	e.planner.Plan(e.State, e.Log, seats)
}
