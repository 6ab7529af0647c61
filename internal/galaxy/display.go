package galaxy

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FontScale maps a ship count to a label size between 12 and 28.
func FontScale(ships float64) float64 {
	v := math.Max(1, ships)
	return math.Max(12, math.Min(28, 12+4*math.Log10(v)))
}

// FontScaleLane is FontScale for in-flight lane totals, between 11 and 20.
func FontScaleLane(ships float64) float64 {
	v := math.Max(1, ships)
	return math.Max(11, math.Min(20, 11+2.5*math.Log10(v)))
}

// FormatCount renders a count with K/M suffixes: 999, 1.2K, 3M.
func FormatCount(n float64) string {
	switch {
	case n >= 1e6:
		return trimZero(strconv.FormatFloat(n/1e6, 'f', 1, 64)) + "M"
	case n >= 1e3:
		return trimZero(strconv.FormatFloat(n/1e3, 'f', 1, 64)) + "K"
	default:
		return strconv.Itoa(int(n))
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// FormatClock renders whole seconds as m:ss.
func FormatClock(sec float64) string {
	total := int(math.Floor(sec))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Speck is one decorative background star.
type Speck struct {
	X, Y    float64
	R       float64
	Opacity float64
}

// Starfield draws 160 background specks from the seed's "stars" sub-stream,
// so a shared seed also shares its sky.
func Starfield(seed string) []Speck {
	r := Derive(seed, "stars")
	out := make([]Speck, 160)
	for i := range out {
		out[i] = Speck{
			X:       r.Range(0, Width),
			Y:       r.Range(0, Height),
			R:       r.Range(0.4, 1.4),
			Opacity: r.Range(0.25, 0.9),
		}
	}
	return out
}

// Attacker is one faction besieging a star.
type Attacker struct {
	Owner string
	Ships float64
	Eff   float64
}

// BattleStat summarizes one contested star for the HUD.
type BattleStat struct {
	DefenderShips float64
	DefenderEff   float64
	AttackerShips float64
	AttackerEff   float64
	PrimaryAttack string
	Attackers     []Attacker // strongest first
}

// BattleStats projects every besieged star, keyed by star id.
func (t *Tuning) BattleStats(stars []*Star) map[int]BattleStat {
	out := map[int]BattleStat{}
	for _, s := range stars {
		var atk []Attacker
		for _, k := range sortedKeys(s.Invaders) {
			if k != s.Owner && s.Invaders[k] > 0 {
				atk = append(atk, Attacker{Owner: k, Ships: s.Invaders[k], Eff: s.InvadersEff[k]})
			}
		}
		if len(atk) == 0 {
			continue
		}
		bs := BattleStat{
			DefenderShips: s.Ships,
			DefenderEff:   s.Ships * s.Type.DefenseMul() * t.DefenderBias,
		}
		primary := atk[0]
		for _, a := range atk {
			bs.AttackerShips += a.Ships
			bs.AttackerEff += a.Eff
			if a.Ships > primary.Ships {
				primary = a
			}
		}
		bs.PrimaryAttack = primary.Owner
		sort.SliceStable(atk, func(i, j int) bool { return atk[i].Ships > atk[j].Ships })
		bs.Attackers = atk
		out[s.ID] = bs
	}
	return out
}
