package galaxy

import "testing"

func TestDigest_SameSeedSameState(t *testing.T) {
	a := NewTestSim(WithSeed("PAX-0101"))
	b := NewTestSim(WithSeed("PAX-0101"))
	if Digest(a.State) != Digest(b.State) {
		t.Fatal("expected equal digests for the same seed")
	}
	a.RunTicks(10)
	b.RunTicks(10)
	if Digest(a.State) != Digest(b.State) {
		t.Fatal("expected equal digests after the same ticks")
	}
}

func TestDigest_Differs(t *testing.T) {
	a := NewTestSim(WithSeed("PAX-0101"))
	b := NewTestSim(WithSeed("PAX-0102"))
	if Digest(a.State) == Digest(b.State) {
		t.Fatal("expected different digests for different seeds")
	}
	before := Digest(a.State)
	a.RunFrames(1)
	if Digest(a.State) == before {
		t.Fatal("expected the digest to change with the clock")
	}
	if len(before) != 64 {
		t.Fatalf("expected a 256-bit hex digest, got %d chars", len(before))
	}
}
