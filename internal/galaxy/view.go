package galaxy

// View is a read-only projection of a session for renderers. Stars and
// packets are deep copies; mutating them has no effect on the game.
type View struct {
	Scene      Scene
	Seed       string
	Players    []Player
	Stars      []*Star
	Packets    []Packet
	Lanes      [][2]int
	Starfield  []Speck
	Elapsed    float64
	Paused     bool
	WorldSpeed float64
	Tick       int
	Selected   int
	Countdown  int
	MirrorFrom int
	MirrorTo   int
	Battles    map[int]BattleStat
	Outcome    *Outcome
}

// Star finds a star in the view by id.
func (v *View) Star(id int) *Star {
	for _, s := range v.Stars {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Owned counts the stars an owner holds, with the mirror pool once.
func (v *View) Owned(owner string) int {
	n := 0
	seenMirror := false
	for _, s := range v.Stars {
		if s.Owner != owner {
			continue
		}
		if s.IsMirror() {
			if seenMirror {
				continue
			}
			seenMirror = true
		}
		n++
	}
	return n
}

// View builds the current projection.
func (s *Session) View() View {
	v := View{
		Scene:      s.Scene,
		Seed:       s.Setup.Seed,
		Starfield:  s.starfield,
		WorldSpeed: s.Setup.WorldSpeed,
		Selected:   s.selected,
		Countdown:  s.Countdown(),
	}
	if s.Engine == nil {
		return v
	}
	st := s.Engine.State
	v.Players = append([]Player(nil), st.Players...)
	v.Stars = make([]*Star, len(st.Stars))
	for i, star := range st.Stars {
		v.Stars[i] = star.Clone()
	}
	v.Packets = make([]Packet, len(st.Packets))
	for i, p := range st.Packets {
		v.Packets[i] = *p
	}
	v.Lanes = Lanes(st.Stars)
	v.Elapsed = st.Elapsed
	v.Paused = st.Paused
	v.WorldSpeed = st.WorldSpeed
	v.Tick = st.Tick
	v.MirrorFrom, v.MirrorTo = st.MirrorLane()
	v.Battles = s.tuning.BattleStats(st.Stars)
	v.Outcome = s.Engine.Outcome()
	return v
}

// InFlightOn sums in-flight ships per lane direction, keyed by (from, to).
func (v *View) InFlightOn() map[[2]int]float64 {
	out := map[[2]int]float64{}
	for _, p := range v.Packets {
		out[[2]int{p.From, p.To}] += p.Amount
	}
	return out
}
