package galaxy

import (
	"fmt"
	"sort"
)

type GameResult int

const (
	ResultInProgress GameResult = iota
	ResultHumanVictory
	ResultComputerVictory
)

func (r GameResult) String() string {
	switch r {
	case ResultInProgress:
		return "in_progress"
	case ResultHumanVictory:
		return "human_victory"
	case ResultComputerVictory:
		return "computer_victory"
	default:
		return "unknown"
	}
}

// PlayerMetrics are the per-player peaks shown on the victory screen.
type PlayerMetrics struct {
	MaxArmies float64 // ships on stars plus ships in flight
	MaxStars  int
	MaxProd   float64 // effective production per tick
}

// Metrics tracks running peaks, observed after every Step.
type Metrics struct {
	peak map[string]PlayerMetrics
}

func NewMetrics() *Metrics {
	return &Metrics{peak: map[string]PlayerMetrics{}}
}

// Observe folds the current state into the peaks. The mirror pool counts once.
func (m *Metrics) Observe(st *State) {
	inflight := InFlight(st.Packets)
	type cur struct {
		ships, prod float64
		stars       int
	}
	now := map[string]*cur{}
	for _, p := range st.Players {
		now[p.ID] = &cur{}
	}
	canon := st.mirror.Canon
	for i, s := range st.Stars {
		if s.IsMirror() && i != canon {
			continue
		}
		c, ok := now[s.Owner]
		if !ok {
			continue
		}
		c.ships += s.Ships
		c.prod += s.ProdRate()
		c.stars++
	}
	for id, c := range now {
		pm := m.peak[id]
		pm.MaxArmies = max(pm.MaxArmies, c.ships+inflight[id])
		pm.MaxStars = max(pm.MaxStars, c.stars)
		pm.MaxProd = max(pm.MaxProd, c.prod)
		m.peak[id] = pm
	}
}

// Get returns the peaks for one player.
func (m *Metrics) Get(id string) PlayerMetrics { return m.peak[id] }

// Snapshot copies all peaks.
func (m *Metrics) Snapshot() map[string]PlayerMetrics {
	out := make(map[string]PlayerMetrics, len(m.peak))
	for k, v := range m.peak {
		out[k] = v
	}
	return out
}

// EvaluateWin reports a winner once a single faction owns every star,
// neutral ones included, nobody else has ships in flight, and no foreign
// invaders remain.
func EvaluateWin(st *State) (string, bool) {
	owners := st.Owners()
	if len(owners) != 1 || owners[0] == Neutral {
		return "", false
	}
	winner := owners[0]
	for _, p := range st.Packets {
		if p.Owner != winner {
			return "", false
		}
	}
	for _, s := range st.Stars {
		for k, v := range s.Invaders {
			if k != winner && v > 0 {
				return "", false
			}
		}
	}
	return winner, true
}

// Outcome is the final verdict of a finished game.
type Outcome struct {
	Result      GameResult
	Winner      string
	Elapsed     float64
	Tick        int
	Metrics     map[string]PlayerMetrics
	Description string
}

// DetermineOutcome builds the verdict for a declared winner.
func DetermineOutcome(st *State, winner string, m *Metrics) *Outcome {
	o := &Outcome{
		Result:  ResultComputerVictory,
		Winner:  winner,
		Elapsed: st.Elapsed,
		Tick:    st.Tick,
		Metrics: m.Snapshot(),
	}
	p, ok := PlayerByID(st.Players, winner)
	if ok && p.Kind == KindHuman {
		o.Result = ResultHumanVictory
	}
	name := winner
	if ok {
		name = p.Name
	}
	o.Description = fmt.Sprintf("%s wins after %s (%d ticks)", name, FormatClock(st.Elapsed), st.Tick)
	return o
}

// Ranked returns player ids ordered by peak armies, the winner first.
func (o *Outcome) Ranked() []string {
	ids := make([]string, 0, len(o.Metrics))
	for id := range o.Metrics {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i] == o.Winner || ids[j] == o.Winner {
			return ids[i] == o.Winner
		}
		ai, aj := o.Metrics[ids[i]].MaxArmies, o.Metrics[ids[j]].MaxArmies
		if ai != aj {
			return ai > aj
		}
		return ids[i] < ids[j]
	})
	return ids
}
