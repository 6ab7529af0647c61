package galaxy

import (
	"fmt"
	"slices"
	"sort"
)

// Star is one node of the galaxy graph.
type Star struct {
	ID        int
	X, Y      float64
	Owner     string
	Ships     float64
	Prod      float64
	Type      StarType
	Neighbors []int // star ids, symmetric
	RouteTo   int   // neighbor id, 0 for none

	Damaged          map[string]float64 // owner -> battle-damaged ships awaiting repair
	Invaders         map[string]float64 // owner -> live invading ships
	InvadersEff      map[string]float64 // owner -> invaders weighted by attack multiplier
	UnderAttackTicks int
}

func newStar(id int, x, y float64, owner string, ships, prod float64) *Star {
	return &Star{
		ID:          id,
		X:           x,
		Y:           y,
		Owner:       owner,
		Ships:       ships,
		Prod:        prod,
		Type:        TypePlain,
		Damaged:     map[string]float64{},
		Invaders:    map[string]float64{},
		InvadersEff: map[string]float64{},
	}
}

// Label is the short log name of a star, e.g. "S07".
func (s *Star) Label() string {
	return fmt.Sprintf("S%02d", s.ID)
}

// IsMirror reports whether the star belongs to the mirror group.
func (s *Star) IsMirror() bool { return s.Type == TypeMirror }

// HasNeighbor reports whether id is adjacent.
func (s *Star) HasNeighbor(id int) bool {
	return slices.Contains(s.Neighbors, id)
}

// Degree is the lane count.
func (s *Star) Degree() int { return len(s.Neighbors) }

// UnderAttack reports whether any faction other than the owner has live invaders.
func (s *Star) UnderAttack() bool {
	for k, v := range s.Invaders {
		if k != s.Owner && v > 0 {
			return true
		}
	}
	return false
}

// ProdRate is the effective per-tick production before world speed.
func (s *Star) ProdRate() float64 {
	return s.Prod * s.Type.ProdMul()
}

// Clone deep-copies the star.
func (s *Star) Clone() *Star {
	c := *s
	c.Neighbors = slices.Clone(s.Neighbors)
	c.Damaged = cloneLedger(s.Damaged)
	c.Invaders = cloneLedger(s.Invaders)
	c.InvadersEff = cloneLedger(s.InvadersEff)
	return &c
}

func cloneLedger(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// sortedKeys gives a stable iteration order over per-owner ledgers so that
// float sums and tie-breaks do not depend on map order.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
