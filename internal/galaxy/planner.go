package galaxy

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// stickyRoute damps target churn. Entries are keyed by star id and outlive
// ownership changes; a missing entry never blocks a switch.
type stickyRoute struct {
	to            int
	untilTick     int // no switching away before this planner tick
	burstCooldown int // no new burst before this planner tick
}

// Planner routes computer-owned stars. It runs on its own interval; the tick
// counter below counts planner firings, not economy ticks.
type Planner struct {
	tuning   *Tuning
	doctrine *Doctrine
	logger   *slog.Logger

	tick   int
	sticky map[int]stickyRoute
}

// NewPlanner creates a planner bound to the engine's tuning.
func NewPlanner(t *Tuning, d *Doctrine, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{tuning: t, doctrine: d, logger: logger, sticky: map[int]stickyRoute{}}
}

// Tick is the number of planner firings so far.
func (pl *Planner) Tick() int { return pl.tick }

// planRun is the per-firing scratch space shared by all seats.
type planRun struct {
	st      *State
	log     *SimLog
	inbound map[int]float64 // star id -> ships already committed this firing
	opening bool
}

// per-seat context
type seat struct {
	me         string
	aggressive bool
	dist       map[int]int // hops to the nearest non-owned star
}

// Plan runs one firing for the given seats in order.
func (pl *Planner) Plan(st *State, log *SimLog, seats []Player) {
	pl.tick++
	run := &planRun{
		st:      st,
		log:     log,
		inbound: map[int]float64{},
		opening: int(math.Floor(st.Elapsed)) < pl.tuning.OpeningWindowSec,
	}
	for _, p := range seats {
		env := doctrineEnv(st, p.ID)
		if env.OwnedStars == 0 {
			continue
		}
		me := &seat{
			me:         p.ID,
			aggressive: pl.doctrine.Aggressive(env),
			dist:       frontline(st, p.ID),
		}
		pl.logger.Debug("plan seat", "seat", p.ID, "aggressive", me.aggressive, "tick", pl.tick)
		pl.defend(run, me)
		pl.route(run, me)
		pl.reinforce(run, me)
		pl.cancel(run, me)
	}
}

// frontline runs a multi-source BFS from every star the player does not own.
func frontline(st *State, me string) map[int]int {
	dist := map[int]int{}
	var queue []int
	for _, s := range st.Stars {
		if s.Owner != me {
			dist[s.ID] = 0
			queue = append(queue, s.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, nb := range st.Star(id).Neighbors {
			if _, seen := dist[nb]; seen {
				continue
			}
			dist[nb] = dist[id] + 1
			queue = append(queue, nb)
		}
	}
	return dist
}

// planetValue scores a star's intrinsic worth as a target.
func planetValue(s *Star) float64 {
	tr := s.Type.Traits()
	prod := s.Prod
	if prod == 0 {
		prod = 1
	}
	v := prod
	if tr.Prod > 0 {
		v += 0.8
	}
	if tr.Move > 0 {
		v += 0.5
	}
	if tr.Defense > 0 {
		v += 0.6
	}
	if tr.Attack > 0 {
		v += 0.6
	}
	return v + 0.15*float64(s.Degree())
}

func besieged(s *Star, me string) bool {
	for k, v := range s.Invaders {
		if k != me && v > 0 {
			return true
		}
	}
	return false
}

func (pl *Planner) ownedNeighborsByETA(st *State, t *Star, me string) []*Star {
	var out []*Star
	for _, id := range t.Neighbors {
		if nb := st.Star(id); nb != nil && nb.Owner == me {
			out = append(out, nb)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return pl.tuning.TravelSeconds(out[i], t, st.WorldSpeed) < pl.tuning.TravelSeconds(out[j], t, st.WorldSpeed)
	})
	return out
}

func (pl *Planner) assign(run *planRun, s *Star, to int, burst bool, key string) {
	if s.RouteTo != to {
		run.log.Add(run.st.Tick, s.Label(), s.Owner, "plan", key,
			fmt.Sprintf("→ S%02d", to), float64(to))
	}
	if burst && !run.st.Burst(s.ID) {
		run.log.Add(run.st.Tick, s.Label(), s.Owner, "plan", "burst",
			fmt.Sprintf("→ S%02d", to), s.Ships)
	}
	run.st.SetRoute(s.ID, to)
	run.st.SetBurst(s.ID, burst)
}

func (pl *Planner) commit(run *planRun, s *Star, to int, burst bool) {
	rate := pl.tuning.SendBase
	if burst {
		rate = pl.tuning.Burst
	}
	gar := run.st.minGarrison(pl.tuning, s)
	run.inbound[to] += max(0, s.Ships-gar) * rate * s.Type.MoveMul()
}

// defend (pass 1) pulls the nearest owned neighbors onto every besieged star.
func (pl *Planner) defend(run *planRun, me *seat) {
	st := run.st
	for _, t := range st.Stars {
		if t.Owner != me.me || !besieged(t, me.me) {
			continue
		}
		for _, d := range pl.ownedNeighborsByETA(st, t, me.me) {
			need := st.minGarrison(pl.tuning, d)
			if d.Ships-need <= t.Ships*0.1 {
				continue
			}
			sk, ok := pl.sticky[d.ID]
			if ok && sk.untilTick > pl.tick && sk.to != t.ID {
				continue
			}
			sk.to = t.ID
			sk.untilTick = pl.tick + pl.tuning.SwitchCooldown
			pl.sticky[d.ID] = sk
			pl.assign(run, d, t.ID, true, "defend")
			pl.commit(run, d, t.ID, true)
		}
	}
}

// route (pass 2) picks a target for every owned star with spare ships.
func (pl *Planner) route(run *planRun, me *seat) {
	st := run.st
	tun := pl.tuning
	canon := st.mirror.Canon
	canonMine := canon >= 0 && st.Stars[canon].Owner == me.me

	for i, s := range st.Stars {
		if s.Owner != me.me {
			continue
		}
		if s.IsMirror() && canonMine && i != canon {
			continue
		}
		var nbs []*Star
		for _, id := range s.Neighbors {
			if nb := st.Star(id); nb != nil {
				nbs = append(nbs, nb)
			}
		}
		sk, hasSticky := pl.sticky[s.ID]
		if len(nbs) == 0 {
			st.SetRoute(s.ID, 0)
			continue
		}
		gar := st.minGarrison(tun, s)
		if s.Ships <= gar {
			if !hasSticky || sk.untilTick <= pl.tick {
				st.SetRoute(s.ID, 0)
				st.SetBurst(s.ID, false)
			}
			continue
		}

		if run.opening && pl.openingMove(run, s, nbs) {
			continue
		}

		target := pl.bestTarget(run, me, s, nbs, gar)
		if target == nil {
			continue
		}
		if hasSticky && sk.untilTick > pl.tick && sk.to != target.ID {
			continue
		}

		attacking := target.Owner != me.me
		sendable := max(0, s.Ships-gar) * 0.6
		odds := 0.0
		if attacking {
			odds = tun.WinOdds(sendable, target.Ships, target.Type, target.UnderAttackTicks)
		}
		threshold := tun.OddsGoSafe
		if me.aggressive {
			threshold = tun.OddsGoAggr
		}
		cooling := hasSticky && sk.burstCooldown > pl.tick
		burst := attacking && !cooling && (target.Owner == Neutral || odds >= threshold)

		sk.to = target.ID
		sk.untilTick = pl.tick + tun.SwitchCooldown
		if burst {
			sk.burstCooldown = pl.tick + tun.BurstCooldownTicks
		}
		pl.sticky[s.ID] = sk
		pl.assign(run, s, target.ID, burst, "route")
		pl.commit(run, s, target.ID, burst)
	}
}

// openingMove grabs the juiciest neutral neighbor during the opening window.
func (pl *Planner) openingMove(run *planRun, s *Star, nbs []*Star) bool {
	var neutrals []*Star
	for _, nb := range nbs {
		if nb.Owner == Neutral {
			neutrals = append(neutrals, nb)
		}
	}
	if len(neutrals) == 0 {
		return false
	}
	sort.SliceStable(neutrals, func(i, j int) bool {
		vi := 8*planetValue(neutrals[i]) - 0.35*neutrals[i].Ships
		vj := 8*planetValue(neutrals[j]) - 0.35*neutrals[j].Ships
		return vi > vj
	})
	target := neutrals[0]
	pl.sticky[s.ID] = stickyRoute{
		to:            target.ID,
		untilTick:     pl.tick + pl.tuning.SwitchCooldown,
		burstCooldown: pl.tick + pl.tuning.BurstCooldownTicks,
	}
	pl.assign(run, s, target.ID, true, "opening")
	pl.commit(run, s, target.ID, true)
	return true
}

// bestTarget scores every neighbor and returns the highest positive one, or
// the softest non-friendly neighbor when nothing scores above zero.
func (pl *Planner) bestTarget(run *planRun, me *seat, s *Star, nbs []*Star, gar float64) *Star {
	st := run.st
	tun := pl.tuning
	hereD, hereOK := me.dist[s.ID]
	sk, hasSticky := pl.sticky[s.ID]

	var best *Star
	bestScore := 0.0
	for _, nb := range nbs {
		score := 0.0
		switch nb.Owner {
		case me.me:
			if besieged(nb, me.me) {
				score += 60
			}
			if st.isBorder(nb) {
				score += 15
			}
		case Neutral:
			score += 35 + 8*planetValue(nb) - 0.25*nb.Ships
			if run.opening {
				switch nb.Type {
				case TypeProduction:
					score += 22
				case TypeAttack:
					score += 12
				}
			}
		default:
			sendable := max(0, s.Ships-gar) * 0.6
			odds := tun.WinOdds(sendable, nb.Ships, nb.Type, nb.UnderAttackTicks)
			w := 12.0
			if me.aggressive {
				w = 28
			}
			score += w * odds
			if st.isBorder(nb) {
				score += 6
			}
			score += 3 * planetValue(nb)
			score += min(20, nb.Invaders[me.me]*0.2)
		}

		nbD, nbOK := me.dist[nb.ID]
		if hereOK && nbOK {
			score += 12 * float64(max(0, hereD-nbD))
		}
		score -= 0.015 * run.inbound[nb.ID]
		if hasSticky && sk.to == nb.ID && sk.untilTick > pl.tick {
			keep := 6.0
			if hereOK && nbOK && nbD >= hereD {
				keep = 1
			}
			score += keep
		}
		score -= 6 * tun.TravelSeconds(s, nb, st.WorldSpeed)

		if best == nil || score > bestScore {
			best, bestScore = nb, score
		}
	}
	if best != nil && bestScore > 0 {
		return best
	}

	sendable := max(0, s.Ships-gar)
	var soft []*Star
	for _, nb := range nbs {
		if nb.Owner != me.me && (nb.Owner == Neutral || nb.Ships < sendable*0.9) {
			soft = append(soft, nb)
		}
	}
	if len(soft) == 0 {
		return nil
	}
	sort.SliceStable(soft, func(i, j int) bool { return soft[i].Ships < soft[j].Ships })
	return soft[0]
}

// reinforce (pass 2.5) sends a second wave: up to two nearest owned
// neighbors of each besieged star, bursting unless on cooldown.
func (pl *Planner) reinforce(run *planRun, me *seat) {
	st := run.st
	for _, t := range st.Stars {
		if t.Owner != me.me || !besieged(t, me.me) {
			continue
		}
		for n, d := range pl.ownedNeighborsByETA(st, t, me.me) {
			if n >= 2 {
				break
			}
			sk := pl.sticky[d.ID]
			burst := sk.burstCooldown <= pl.tick
			sk.to = t.ID
			sk.untilTick = pl.tick + pl.tuning.SwitchCooldown
			pl.sticky[d.ID] = sk
			pl.assign(run, d, t.ID, burst, "wave")
			pl.commit(run, d, t.ID, burst)
		}
	}
}

// cancel (pass 3) drops attacks that no longer look winnable against the
// defense projected at arrival, once their sticky window has passed.
func (pl *Planner) cancel(run *planRun, me *seat) {
	st := run.st
	tun := pl.tuning
	limit := tun.OddsCancelSafe
	if me.aggressive {
		limit = tun.OddsCancelAggr
	}
	for _, s := range st.Stars {
		if s.Owner != me.me || s.RouteTo == 0 {
			continue
		}
		to := st.Star(s.RouteTo)
		if to == nil || to.Owner == me.me || to.Owner == Neutral {
			continue
		}
		gar := st.minGarrison(tun, s)
		sendable := max(0, s.Ships-gar) * 0.6
		eta := tun.TravelSeconds(s, to, st.WorldSpeed)
		projected := to.Ships + to.ProdRate()*eta
		odds := tun.WinOdds(sendable, projected, to.Type, to.UnderAttackTicks)
		if odds >= limit {
			continue
		}
		if sk, ok := pl.sticky[s.ID]; ok && sk.untilTick > pl.tick {
			continue
		}
		run.log.Add(st.Tick, s.Label(), s.Owner, "plan", "cancel",
			fmt.Sprintf("S%02d odds %.2f", to.ID, odds), odds)
		st.SetRoute(s.ID, 0)
		st.SetBurst(s.ID, false)
	}
}
