package galaxy

import "math"

// Point is a position on the playfield.
type Point struct {
	X, Y float64
}

// Distance is the Euclidean distance between two stars.
func Distance(a, b *Star) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Lerp interpolates between two stars' positions.
func Lerp(a, b *Star, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// EdgeSpeed is the progress-per-second of a packet on a lane of length dist.
// Short lanes are faster; the floor stops near-zero lanes from running away.
func (t *Tuning) EdgeSpeed(dist float64) float64 {
	return t.EdgeSpeedBase / math.Max(t.EdgeSpeedFloor, dist/t.EdgeSpeedRef)
}

// TravelSeconds estimates the transit time between two stars.
func (t *Tuning) TravelSeconds(a, b *Star, worldSpeed float64) float64 {
	return 1 / (t.EdgeSpeed(Distance(a, b)) * math.Max(0.25, worldSpeed))
}

// WinOdds is the attacker/defender power ratio, softened for defenders that
// have been under siege for a while.
func (t *Tuning) WinOdds(attacker, defenderShips float64, defenderType StarType, underAttackTicks int) float64 {
	defEff := defenderShips * defenderType.DefenseMul() * t.DefenderBias
	odds := attacker / (defEff + 1e-6)
	under := min(underAttackTicks, t.SiegeCap)
	soft := 1 - 0.01*float64(under)
	return odds * (1 / math.Max(0.6, soft))
}

// segmentCrosser tests lane intersections over a fixed set of positions.
type segmentCrosser []*Star

func (pts segmentCrosser) orient(a, b, c int) float64 {
	return (pts[b].X-pts[a].X)*(pts[c].Y-pts[a].Y) - (pts[b].Y-pts[a].Y)*(pts[c].X-pts[a].X)
}

func (pts segmentCrosser) onSeg(a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	return math.Min(pa.X, pb.X) <= pc.X && pc.X <= math.Max(pa.X, pb.X) &&
		math.Min(pa.Y, pb.Y) <= pc.Y && pc.Y <= math.Max(pa.Y, pb.Y)
}

// cross reports whether segment a-b properly crosses c-d. Segments sharing an
// endpoint never cross, and collinear touching is not a crossing.
func (pts segmentCrosser) cross(a, b, c, d int) bool {
	if a == c || a == d || b == c || b == d {
		return false
	}
	o1 := pts.orient(a, b, c)
	o2 := pts.orient(a, b, d)
	o3 := pts.orient(c, d, a)
	o4 := pts.orient(c, d, b)
	if o1 == 0 && pts.onSeg(a, b, c) {
		return false
	}
	if o2 == 0 && pts.onSeg(a, b, d) {
		return false
	}
	if o3 == 0 && pts.onSeg(c, d, a) {
		return false
	}
	if o4 == 0 && pts.onSeg(c, d, b) {
		return false
	}
	return (o1 > 0) != (o2 > 0) && (o3 > 0) != (o4 > 0)
}
