package galaxy

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"math"

	"lukechampine.com/blake3"
)

// Digest hashes a canonical encoding of the state with BLAKE3-256. Two runs
// from the same seed and inputs produce the same digest tick for tick.
func Digest(st *State) string {
	sum := blake3.Sum256(encodeState(st))
	return hex.EncodeToString(sum[:])
}

// encodeState writes every simulation field in a fixed order. Ledgers are
// written in sorted key order; floats by their IEEE bits.
func encodeState(st *State) []byte {
	var buf bytes.Buffer
	w := stateWriter{&buf}

	w.f64(st.Elapsed)
	w.i64(int64(st.Tick))
	w.f64(st.WorldSpeed)
	w.i64(int64(len(st.Stars)))
	for _, s := range st.Stars {
		w.i64(int64(s.ID))
		w.f64(s.X)
		w.f64(s.Y)
		w.str(s.Owner)
		w.f64(s.Ships)
		w.f64(s.Prod)
		w.str(string(s.Type))
		w.i64(int64(len(s.Neighbors)))
		for _, nb := range s.Neighbors {
			w.i64(int64(nb))
		}
		w.i64(int64(s.RouteTo))
		w.ledger(s.Damaged)
		w.ledger(s.Invaders)
		w.ledger(s.InvadersEff)
		w.i64(int64(s.UnderAttackTicks))
	}
	w.i64(int64(len(st.Packets)))
	for _, p := range st.Packets {
		w.i64(int64(p.ID))
		w.i64(int64(p.From))
		w.i64(int64(p.To))
		w.str(p.Owner)
		w.f64(p.Amount)
		w.f64(p.T)
		w.f64(p.Speed)
		w.f64(p.AtkMult)
		if p.Retreat {
			w.i64(1)
		} else {
			w.i64(0)
		}
	}
	return buf.Bytes()
}

type stateWriter struct{ buf *bytes.Buffer }

func (w stateWriter) i64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

func (w stateWriter) f64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

func (w stateWriter) str(s string) {
	w.i64(int64(len(s)))
	w.buf.WriteString(s)
}

func (w stateWriter) ledger(m map[string]float64) {
	keys := sortedKeys(m)
	w.i64(int64(len(keys)))
	for _, k := range keys {
		w.str(k)
		w.f64(m[k])
	}
}
