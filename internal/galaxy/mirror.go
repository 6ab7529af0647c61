package galaxy

import "slices"

// MirrorGroup is the set of mirror stars that alias one shared pool. Members
// are star indices in id order; Canon is the member with the lowest id, or -1
// when the galaxy has no mirrors.
type MirrorGroup struct {
	Members []int
	Canon   int
}

func findMirrorGroup(stars []*Star) MirrorGroup {
	g := MirrorGroup{Canon: -1}
	for i, s := range stars {
		if !s.IsMirror() {
			continue
		}
		g.Members = append(g.Members, i)
		if g.Canon < 0 || s.ID < stars[g.Canon].ID {
			g.Canon = i
		}
	}
	return g
}

// Contains reports whether star index i is a mirror member.
func (g MirrorGroup) Contains(i int) bool {
	return slices.Contains(g.Members, i)
}

// mirrorLock keeps a single mirror lane active across ticks.
type mirrorLock struct {
	active int // member index, -1 for none
	to     int // route target id
	owner  string
}

type mirrorLane struct {
	i  int
	to int
}

// chooseMirrorLane returns the one mirror member allowed to dispatch this
// tick and its target. The lock resets when the pool changes hands, and is
// only re-picked once no mirror-launched fleet is still in flight.
func (st *State) chooseMirrorLane() (active, to int) {
	g := st.mirror
	if len(g.Members) == 0 {
		return -1, 0
	}
	owner := st.Stars[g.Canon].Owner

	inflight := false
	for _, p := range st.Packets {
		if p.Retreat || p.T >= 1 {
			continue
		}
		if from, ok := st.index[p.From]; ok && g.Contains(from) {
			inflight = true
			break
		}
	}

	var candidates []mirrorLane
	for _, i := range g.Members {
		s := st.Stars[i]
		if s.RouteTo != 0 && s.HasNeighbor(s.RouteTo) {
			candidates = append(candidates, mirrorLane{i, s.RouteTo})
		}
	}
	pick := func() {
		st.lock.active, st.lock.to = -1, 0
		chosen := -1
		for k, c := range candidates {
			if c.i == g.Canon {
				chosen = k
				break
			}
		}
		if chosen < 0 && len(candidates) > 0 {
			chosen = 0
		}
		if chosen >= 0 {
			st.lock.active, st.lock.to = candidates[chosen].i, candidates[chosen].to
		}
		st.lock.owner = owner
	}

	if st.lock.owner != owner {
		st.lock = mirrorLock{active: -1, owner: owner}
	}
	switch {
	case st.lock.active < 0:
		pick()
	case !inflight:
		if !slices.Contains(candidates, mirrorLane{st.lock.active, st.lock.to}) {
			pick()
		}
	}
	return st.lock.active, st.lock.to
}

// mirrorAnchor is the member whose state is authoritative for the pool: the
// active lane if one is locked, otherwise the canonical member.
func (st *State) mirrorAnchor() int {
	if st.lock.active >= 0 {
		return st.lock.active
	}
	return st.mirror.Canon
}

// syncMirrors copies the anchor's pool state onto every other member. Routes
// are copied only where the target is also a lane of that member.
func (st *State) syncMirrors() {
	g := st.mirror
	src := st.mirrorAnchor()
	if src < 0 || len(g.Members) < 2 {
		return
	}
	from := st.Stars[src]
	for _, i := range g.Members {
		if i == src {
			continue
		}
		s := st.Stars[i]
		s.Owner = from.Owner
		s.Ships = from.Ships
		s.Damaged = cloneLedger(from.Damaged)
		s.Invaders = cloneLedger(from.Invaders)
		s.InvadersEff = cloneLedger(from.InvadersEff)
		s.UnderAttackTicks = from.UnderAttackTicks
		switch {
		case from.RouteTo == 0 || s.HasNeighbor(from.RouteTo):
			s.RouteTo = from.RouteTo
		case !s.HasNeighbor(s.RouteTo):
			s.RouteTo = 0
		}
	}
}

// OwnerPower sums an owner's ships and base production, counting the mirror
// pool once through its canonical member.
func OwnerPower(stars []*Star, owner string) (ships, prod float64) {
	canonID := 0
	for _, s := range stars {
		if s.IsMirror() && (canonID == 0 || s.ID < canonID) {
			canonID = s.ID
		}
	}
	for _, s := range stars {
		if s.Owner != owner {
			continue
		}
		if s.IsMirror() && s.ID != canonID {
			continue
		}
		ships += s.Ships
		prod += s.Prod
	}
	return ships, prod
}

// DisplayShips is the ship count a renderer should show: the canonical pool
// for mirrors, the star's own count otherwise.
func DisplayShips(stars []*Star, s *Star) float64 {
	if !s.IsMirror() {
		return s.Ships
	}
	var canon *Star
	for _, c := range stars {
		if c.IsMirror() && (canon == nil || c.ID < canon.ID) {
			canon = c
		}
	}
	if canon == nil {
		return s.Ships
	}
	return canon.Ships
}
