package galaxy

// State is the mutable simulation: the star graph, fleets in transit and the
// logical clock. Only the engine mutates it; renderers read a View.
type State struct {
	Stars      []*Star
	Packets    []*Packet
	Players    []Player
	Elapsed    float64 // logical seconds of play, pauses excluded
	Paused     bool
	WorldSpeed float64
	Tick       int // economy ticks applied

	index        map[int]int // star id -> slice index
	mirror       MirrorGroup
	lock         mirrorLock
	burst        map[int]bool // dispatch intents for the next economy tick
	nextPacketID int
}

// NewState wraps generated stars. Star types must be final: the mirror group
// is computed once here.
func NewState(players []Player, stars []*Star, worldSpeed float64) *State {
	st := &State{
		Stars:        stars,
		Players:      players,
		WorldSpeed:   worldSpeed,
		index:        make(map[int]int, len(stars)),
		lock:         mirrorLock{active: -1},
		burst:        map[int]bool{},
		nextPacketID: 1,
	}
	for i, s := range stars {
		st.index[s.ID] = i
	}
	st.mirror = findMirrorGroup(stars)
	return st
}

// Star returns the star with the given id, or nil.
func (st *State) Star(id int) *Star {
	i, ok := st.index[id]
	if !ok {
		return nil
	}
	return st.Stars[i]
}

// Mirror exposes the mirror group.
func (st *State) Mirror() MirrorGroup { return st.mirror }

// MirrorLane reports the currently locked mirror lane as (star id, target id);
// zeros when no lane is active.
func (st *State) MirrorLane() (from, to int) {
	if st.lock.active < 0 {
		return 0, 0
	}
	return st.Stars[st.lock.active].ID, st.lock.to
}

// SetBurst records that a star should dispatch at the burst rate on the next
// economy tick.
func (st *State) SetBurst(id int, on bool) {
	if on {
		st.burst[id] = true
		return
	}
	delete(st.burst, id)
}

// Burst reports a pending burst intent.
func (st *State) Burst(id int) bool { return st.burst[id] }

// SetRoute points a star at a neighbor, or clears it with target 0. It
// returns false when the target is not a lane of the star.
func (st *State) SetRoute(id, target int) bool {
	s := st.Star(id)
	if s == nil {
		return false
	}
	if target == 0 {
		s.RouteTo = 0
		return true
	}
	if !s.HasNeighbor(target) {
		return false
	}
	s.RouteTo = target
	return true
}

// minGarrison is the floor a star keeps home: more lanes mean more to hold,
// and any foreign neighbor adds a border bonus.
func (st *State) minGarrison(t *Tuning, s *Star) float64 {
	base := t.GarrisonBase + min(t.GarrisonDegCap, float64(s.Degree())*t.GarrisonPerDeg)
	if st.isBorder(s) {
		return base + t.GarrisonBorder
	}
	return base
}

// isBorder reports whether any neighbor has a different owner, neutral included.
func (st *State) isBorder(s *Star) bool {
	for _, id := range s.Neighbors {
		if nb := st.Star(id); nb != nil && nb.Owner != s.Owner {
			return true
		}
	}
	return false
}

// Owners returns the distinct owners across all stars, in first-seen order.
func (st *State) Owners() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range st.Stars {
		if s.Owner == "" || seen[s.Owner] {
			continue
		}
		seen[s.Owner] = true
		out = append(out, s.Owner)
	}
	return out
}
