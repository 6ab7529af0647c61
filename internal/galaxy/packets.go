package galaxy

import "fmt"

// Packet is a fleet in transit along one lane.
type Packet struct {
	ID      int
	From    int
	To      int
	Owner   string
	Amount  float64
	T       float64 // progress, 0 at launch, >=1 on arrival
	Speed   float64
	AtkMult float64
	SrcType StarType
	Retreat bool // damaged defenders falling back after a capture
}

// Position interpolates the packet along its lane.
func (p *Packet) Position(st *State) (Point, bool) {
	a, b := st.Star(p.From), st.Star(p.To)
	if a == nil || b == nil {
		return Point{}, false
	}
	return Lerp(a, b, min(p.T, 1)), true
}

func (e *Engine) launch(a, b *Star, owner string, amount float64, retreat bool) *Packet {
	st := e.State
	p := &Packet{
		ID:      st.nextPacketID,
		From:    a.ID,
		To:      b.ID,
		Owner:   owner,
		Amount:  amount,
		Speed:   e.tuning.EdgeSpeed(Distance(a, b)),
		AtkMult: a.Type.AttackMul(),
		SrcType: a.Type,
		Retreat: retreat,
	}
	if retreat {
		p.AtkMult = 1
	}
	st.nextPacketID++
	st.Packets = append(st.Packets, p)
	return p
}

// advancePackets moves every packet along its lane. dt is already clamped.
func (e *Engine) advancePackets(dt float64) {
	ws := e.State.WorldSpeed
	for _, p := range e.State.Packets {
		p.T += p.Speed * ws * dt
	}
}

// resolveArrivals applies every packet with t>=1 exactly once and drops it.
// A packet landing on a mirror lands on the whole pool.
func (e *Engine) resolveArrivals() {
	st := e.State
	inflight := st.Packets[:0]
	var arriving []*Packet
	for _, p := range st.Packets {
		if p.T >= 1 {
			arriving = append(arriving, p)
		} else {
			inflight = append(inflight, p)
		}
	}
	if len(arriving) == 0 {
		return
	}
	for i := len(inflight); i < len(st.Packets); i++ {
		st.Packets[i] = nil
	}
	st.Packets = inflight

	for _, p := range arriving {
		target := st.Star(p.To)
		if target == nil {
			continue
		}
		targets := []*Star{target}
		// Mirror members share one garrison, so a fleet lands on all of them
		// and the next pool sync leaves them equal.
		if target.IsMirror() && len(st.mirror.Members) > 0 {
			targets = targets[:0]
			for _, i := range st.mirror.Members {
				targets = append(targets, st.Stars[i])
			}
		}
		for _, t := range targets {
			e.land(p, t)
		}
		e.Log.AddVerbose(st.Tick, target.Label(), p.Owner, "packet", "arrive",
			fmt.Sprintf("#%d %.1f from S%02d", p.ID, p.Amount, p.From), p.Amount)
	}
}

func (e *Engine) land(p *Packet, t *Star) {
	if t.Owner == p.Owner {
		if p.Retreat {
			repaired := p.Amount * e.tuning.RetreatRepairFrac
			t.Ships += repaired
			t.Damaged[p.Owner] += p.Amount - repaired
			return
		}
		t.Ships += p.Amount
		return
	}
	t.Invaders[p.Owner] += p.Amount
	t.InvadersEff[p.Owner] += p.Amount * p.AtkMult
}

// InFlight sums ships in transit per owner.
func InFlight(packets []*Packet) map[string]float64 {
	out := map[string]float64{}
	for _, p := range packets {
		out[p.Owner] += p.Amount
	}
	return out
}
