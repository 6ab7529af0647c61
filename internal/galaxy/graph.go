package galaxy

import (
	"math"
	"slices"
	"sort"
)

// adjacency is an index-based lane list used during generation.
type adjacency [][]int

func (adj adjacency) add(i, j int) {
	if i == j {
		return
	}
	if !slices.Contains(adj[i], j) {
		adj[i] = append(adj[i], j)
	}
	if !slices.Contains(adj[j], i) {
		adj[j] = append(adj[j], i)
	}
}

func (adj adjacency) remove(i, j int) {
	adj[i] = slices.DeleteFunc(adj[i], func(n int) bool { return n == j })
	adj[j] = slices.DeleteFunc(adj[j], func(n int) bool { return n == i })
}

// edges lists every lane once as (i<j).
func (adj adjacency) edges() [][2]int {
	var out [][2]int
	for i, ns := range adj {
		for _, j := range ns {
			if i < j {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// buildLanes seeds each star with its nearest neighbor, tops every star up to
// a random target degree from its nearest candidates, then prunes crossings by
// dropping the longer lane of each crossing pair until none remain or the pass
// cap is hit.
func buildLanes(stars []*Star, rng *RNG) adjacency {
	n := len(stars)
	adj := make(adjacency, n)

	for i := 0; i < n; i++ {
		best, bestD := -1, math.Inf(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if d := Distance(stars[i], stars[j]); d < bestD {
				best, bestD = j, d
			}
		}
		if best >= 0 {
			adj.add(i, best)
		}
	}

	targets := make([]int, n)
	for i := range targets {
		targets[i] = int(math.Floor(rng.Range(minDegree, maxDegree+1)))
	}
	type cand struct {
		j int
		d float64
	}
	for i := 0; i < n; i++ {
		order := make([]cand, n)
		for j := range stars {
			d := math.Inf(1)
			if j != i {
				d = Distance(stars[i], stars[j])
			}
			order[j] = cand{j, d}
		}
		sort.SliceStable(order, func(a, b int) bool { return order[a].d < order[b].d })
		for idx := 0; len(adj[i]) < targets[i] && idx < len(order); idx++ {
			adj.add(i, order[idx].j)
		}
	}

	pts := segmentCrosser(stars)
	changed := true
	for pass := 0; changed && pass < crossingPasses; pass++ {
		changed = false
		es := adj.edges()
		for a := 0; a < len(es); a++ {
			for b := a + 1; b < len(es); b++ {
				i, j := es[a][0], es[a][1]
				u, v := es[b][0], es[b][1]
				if !pts.cross(i, j, u, v) {
					continue
				}
				if Distance(stars[i], stars[j]) > Distance(stars[u], stars[v]) {
					adj.remove(i, j)
				} else {
					adj.remove(u, v)
				}
				changed = true
			}
		}
	}
	return adj
}

// connect joins components by repeatedly adding the globally shortest lane
// between two different components that crosses no existing lane. It gives up
// when no such lane exists or the run cap is hit.
func connect(stars []*Star, adj adjacency) {
	n := len(stars)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	unite := func(a, b int) {
		a, b = find(a), find(b)
		if a != b {
			parent[b] = a
		}
	}
	for _, e := range adj.edges() {
		unite(e[0], e[1])
	}

	pts := segmentCrosser(stars)
	for run := 0; run < connectivityRuns; run++ {
		var comps [][]int
		slot := map[int]int{}
		for i := 0; i < n; i++ {
			r := find(i)
			k, ok := slot[r]
			if !ok {
				k = len(comps)
				slot[r] = k
				comps = append(comps, nil)
			}
			comps[k] = append(comps[k], i)
		}
		if len(comps) <= 1 {
			return
		}

		es := adj.edges()
		bi, bj, bd := -1, -1, math.Inf(1)
		for a := 0; a < len(comps); a++ {
			for b := a + 1; b < len(comps); b++ {
				for _, i := range comps[a] {
					for _, j := range comps[b] {
						d := Distance(stars[i], stars[j])
						if bi >= 0 && d >= bd {
							continue
						}
						crosses := false
						for _, e := range es {
							if pts.cross(i, j, e[0], e[1]) {
								crosses = true
								break
							}
						}
						if !crosses {
							bi, bj, bd = i, j, d
						}
					}
				}
			}
		}
		if bi < 0 {
			return
		}
		adj.add(bi, bj)
		unite(bi, bj)
	}
}

// Lanes lists every hyperlane once, by star id, for renderers.
func Lanes(stars []*Star) [][2]int {
	var out [][2]int
	for _, s := range stars {
		for _, nb := range s.Neighbors {
			if s.ID < nb {
				out = append(out, [2]int{s.ID, nb})
			}
		}
	}
	return out
}
