package galaxy

import (
	"math"
	"sort"
)

// GenerateMap places one homeworld per player and fills the rest of the
// galaxy with neutral stars, then wires planar, connected hyperlanes. Star
// types are not assigned here; see GenerateGalaxy.
func GenerateMap(players []Player, totalStars int, rng *RNG) []*Star {
	var stars []*Star
	tooClose := func(x, y, limit float64) bool {
		for _, s := range stars {
			if math.Hypot(s.X-x, s.Y-y) < limit {
				return true
			}
		}
		return false
	}

	// Once the attempt budget is spent the spacing relaxes, and stays relaxed
	// for the remaining homeworlds.
	limit := minStarDist
	for _, p := range players {
		var x, y float64
		for attempts := 0; ; {
			x = rng.Range(marginX, Width-marginX)
			y = rng.Range(marginY, Height-marginY)
			attempts++
			if !tooClose(x, y, limit) {
				break
			}
			if attempts >= homeworldAttempts && attempts%relaxEvery == 0 {
				if limit < 1 {
					break
				}
				limit *= relaxFactor
			}
		}
		stars = append(stars, newStar(len(stars)+1, x, y, p.ID, homeworldShips, homeworldProd))
	}

	for tries, guard := 0, 0; len(stars) < totalStars && tries < neutralTries; {
		tries++
		guard++
		x := rng.Range(marginX, Width-marginX)
		y := rng.Range(marginY, Height-marginY)
		ok := !tooClose(x, y, minStarDist)
		if !ok && guard%relaxEvery == 0 {
			ok = !tooClose(x, y, minStarDist*relaxFactor)
		}
		if !ok {
			continue
		}
		ships := math.Floor(rng.Range(8, 24))
		stars = append(stars, newStar(len(stars)+1, x, y, Neutral, ships, neutralProd))
	}

	adj := buildLanes(stars, rng)
	connect(stars, adj)
	for i, s := range stars {
		s.Neighbors = make([]int, 0, len(adj[i]))
		for _, j := range adj[i] {
			s.Neighbors = append(s.Neighbors, stars[j].ID)
		}
	}
	return stars
}

// GenerateGalaxy builds a full map: positions and lanes, then star types for
// neutral stars drawn from the preset weights. Homeworlds are always plain
// with a slightly higher production rate.
func GenerateGalaxy(players []Player, totalStars int, weights Weights, rng *RNG) []*Star {
	stars := GenerateMap(players, totalStars, rng)
	for _, s := range stars {
		if s.Owner == Neutral {
			s.Type = weightedPick(rng, weights)
		} else {
			s.Type = TypePlain
			s.Prod = homeworldProd
		}
	}
	ensureTwoMirrors(stars)
	return stars
}

func weightedPick(rng *RNG, w Weights) StarType {
	total := 0.0
	for _, t := range typeOrder {
		total += w[t]
	}
	r := rng.Float64() * total
	for _, t := range typeOrder {
		if r -= w[t]; r <= 0 {
			return t
		}
	}
	return TypePlain
}

// ensureTwoMirrors turns a lone mirror into a pair by re-typing the star
// farthest from it, preferring neutral candidates.
func ensureTwoMirrors(stars []*Star) {
	var mirrors []*Star
	for _, s := range stars {
		if s.IsMirror() {
			mirrors = append(mirrors, s)
		}
	}
	if len(mirrors) != 1 {
		return
	}

	type cand struct {
		star    *Star
		score   float64
		neutral bool
	}
	var neutral, all []cand
	for _, s := range stars {
		if s.IsMirror() {
			continue
		}
		d := math.Inf(1)
		for _, m := range mirrors {
			d = math.Min(d, Distance(s, m))
		}
		c := cand{star: s, score: d, neutral: s.Owner == Neutral}
		if c.neutral {
			neutral = append(neutral, c)
		}
		all = append(all, c)
	}
	pick := neutral
	if len(pick) == 0 {
		pick = all
	}
	if len(pick) == 0 {
		return
	}
	sort.SliceStable(pick, func(i, j int) bool { return pick[i].score > pick[j].score })
	pick[0].star.Type = TypeMirror
}
