package galaxy

import "fmt"

// EconomyTick applies one economy-combat tick: production, dispatch, combat,
// repair and mirror sync, in that order. Step calls it once per economy
// interval; tests may call it directly.
func (e *Engine) EconomyTick() {
	st := e.State
	st.Tick++

	e.produce()

	prevFrom, prevTo := st.MirrorLane()
	active, to := st.chooseMirrorLane()
	if from, lockTo := st.MirrorLane(); from != prevFrom || lockTo != prevTo {
		if from == 0 {
			e.Log.Add(st.Tick, "--", st.lock.owner, "mirror", "lock_released", "no routed member", 0)
		} else {
			e.Log.Add(st.Tick, fmt.Sprintf("S%02d", from), st.lock.owner, "mirror", "lock",
				fmt.Sprintf("S%02d → S%02d", from, lockTo), 0)
		}
	}

	e.dispatch(active, to)
	e.combat()
	e.repair()
	st.syncMirrors()

	if e.Log.Verbose() {
		for _, p := range st.Players {
			ships, prod := OwnerPower(st.Stars, p.ID)
			e.Log.Add(st.Tick, "--", p.ID, "econ", "power",
				fmt.Sprintf("ships=%.1f prod=%.1f", ships, prod), ships)
		}
	}
}

func (e *Engine) produce() {
	st := e.State
	for _, s := range st.Stars {
		if s.Owner == Neutral {
			continue
		}
		s.Ships += s.ProdRate() * st.WorldSpeed
	}
}

// dispatch sends part of every routed star's fleet down its lane. Burst
// intents are consumed here whether or not they fired.
func (e *Engine) dispatch(active, mirrorTo int) {
	st := e.State
	for i, s := range st.Stars {
		if s.Owner == Neutral {
			continue
		}
		burst := st.burst[s.ID]
		if s.IsMirror() {
			if i != active || mirrorTo == 0 || !s.HasNeighbor(mirrorTo) {
				continue
			}
			s.RouteTo = mirrorTo
			e.send(s, st.Star(mirrorTo), burst, e.tuning.MirrorGarrison)
			continue
		}
		if s.RouteTo == 0 {
			continue
		}
		if !s.HasNeighbor(s.RouteTo) {
			s.RouteTo = 0
			continue
		}
		e.send(s, st.Star(s.RouteTo), burst, st.minGarrison(&e.tuning, s))
	}
	clear(st.burst)
}

func (e *Engine) send(s, to *Star, burst bool, garrison float64) {
	rate := e.tuning.SendBase
	if burst {
		rate = e.tuning.Burst
	}
	rate *= s.Type.MoveMul()
	amount := min(s.Ships*rate, max(0, s.Ships-garrison))
	if amount <= e.tuning.MinSend {
		return
	}
	s.Ships -= amount
	p := e.launch(s, to, s.Owner, amount, false)
	key := "dispatch"
	if burst {
		key = "burst"
	}
	e.Log.AddVerbose(e.State.Tick, s.Label(), s.Owner, "econ", key,
		fmt.Sprintf("#%d %.1f → %s", p.ID, amount, to.Label()), amount)
}

// skipPoolMember reports whether index i is a mirror member other than the
// anchor. Combat and repair run once for the pool; sync copies the result.
func (e *Engine) skipPoolMember(i int) bool {
	st := e.State
	return st.Stars[i].IsMirror() && st.mirror.Contains(i) && i != st.mirrorAnchor()
}

// combat resolves one round of attrition at every besieged star.
func (e *Engine) combat() {
	st := e.State
	t := &e.tuning
	for i, s := range st.Stars {
		if e.skipPoolMember(i) {
			continue
		}
		var attackers []string
		for _, k := range sortedKeys(s.Invaders) {
			if k != s.Owner && s.Invaders[k] > 0 {
				attackers = append(attackers, k)
			}
		}
		if len(attackers) == 0 {
			s.UnderAttackTicks = max(0, s.UnderAttackTicks-1)
			continue
		}
		s.UnderAttackTicks = min(s.UnderAttackTicks+1, t.SiegeCap)

		atkEff, atkTotal := 0.0, 0.0
		for _, k := range attackers {
			atkEff += s.InvadersEff[k]
			atkTotal += s.Invaders[k]
		}
		defEff := s.Ships * s.Type.DefenseMul() * t.DefenderBias

		defLoss := min(s.Ships, t.KAtk*atkEff)
		atkLoss := min(atkTotal, t.KDef*defEff)
		destroy := min(t.DestroyBase+t.DestroyPerTick*float64(s.UnderAttackTicks), t.DestroyMax)
		survive := 1 - destroy

		s.Ships -= defLoss
		s.Damaged[s.Owner] += defLoss * survive

		share := max(1e-6, atkEff)
		for _, k := range attackers {
			loss := atkLoss * s.InvadersEff[k] / share
			before := s.Invaders[k]
			s.Invaders[k] = max(0, before-loss)
			effBefore := s.InvadersEff[k]
			factor := effBefore / (before + loss + 1e-6)
			s.InvadersEff[k] = max(0, effBefore-loss*factor)
			s.Damaged[k] += loss * survive
		}

		remaining := 0.0
		for _, k := range attackers {
			remaining += s.Invaders[k]
		}

		switch {
		case s.Ships <= 0 && remaining > 0:
			e.capture(s, attackers, remaining)
		case remaining <= 0:
			for k := range s.Damaged {
				if k != s.Owner {
					delete(s.Damaged, k)
				}
			}
			e.Log.Add(st.Tick, s.Label(), s.Owner, "combat", "repelled",
				fmt.Sprintf("held with %.1f", s.Ships), s.Ships)
		}
	}
}

// capture hands a fallen star to the strongest surviving invader. The old
// owner's damaged ships retreat to friendly neighbors, or are half salvaged
// in place when there is nowhere to go.
func (e *Engine) capture(s *Star, attackers []string, remaining float64) {
	st := e.State
	t := &e.tuning

	winner := attackers[0]
	for _, k := range attackers[1:] {
		if s.Invaders[k] > s.Invaders[winner] {
			winner = k
		}
	}
	old := s.Owner

	if dam := s.Damaged[old]; dam > 0 {
		var friends []*Star
		for _, id := range s.Neighbors {
			if nb := st.Star(id); nb != nil && nb.Owner == old {
				friends = append(friends, nb)
			}
		}
		if len(friends) > 0 {
			per := dam * (1 - t.RetreatLossFrac) / float64(len(friends))
			for _, nb := range friends {
				e.launch(s, nb, old, per, true)
			}
			e.Log.Add(st.Tick, s.Label(), old, "combat", "retreat",
				fmt.Sprintf("%.1f to %d neighbors", dam*(1-t.RetreatLossFrac), len(friends)), dam)
		} else {
			s.Ships += dam * t.SalvageFrac
		}
		s.Damaged[old] = 0
	}

	s.Owner = winner
	s.RouteTo = 0
	s.Ships += remaining
	clear(s.Invaders)
	clear(s.InvadersEff)
	s.UnderAttackTicks = 0

	e.Log.Add(st.Tick, s.Label(), winner, "combat", "capture",
		fmt.Sprintf("%s → %s", old, winner), s.Ships)
	e.logger.Debug("star captured", "star", s.ID, "from", old, "to", winner, "ships", s.Ships)
}

// repair returns damaged ships to the owner's fleet. Repair stars double the
// rate while idle; everyone else repairs slowly while besieged. Attacker
// damage evaporates once a siege lifts.
func (e *Engine) repair() {
	st := e.State
	t := &e.tuning
	for i, s := range st.Stars {
		if e.skipPoolMember(i) {
			continue
		}
		under := s.UnderAttack()
		for _, k := range sortedKeys(s.Damaged) {
			d := s.Damaged[k]
			if k != s.Owner {
				if !under {
					delete(s.Damaged, k)
				}
				continue
			}
			if d <= 0 {
				continue
			}
			mult := 1.0
			switch {
			case s.Type == TypeRepair && !under:
				mult = s.Type.Traits().Repair
			case s.Type != TypeRepair && under:
				mult = t.RepairUnderAttack
			}
			rep := min(d, d*t.RepairRate*st.WorldSpeed*mult)
			s.Damaged[k] = d - rep
			s.Ships += rep
		}
	}
}
