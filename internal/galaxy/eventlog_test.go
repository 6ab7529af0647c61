package galaxy

import (
	"bytes"
	"testing"
)

func TestEventLog_RoundTrip(t *testing.T) {
	in := []SimLogEntry{
		{Tick: 3, Star: "S07", Owner: "p1", Category: "combat", Key: "capture", Value: "neutral → p1", NumVal: 96.4},
		{Tick: 4, Star: "--", Owner: "--", Category: "scene", Key: "change", Value: "a\tb\nc", NumVal: 0},
	}
	var buf bytes.Buffer
	if err := WriteEventLog(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ReadEventLog(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0] != in[0] {
		t.Fatalf("expected %+v, got %+v", in[0], out[0])
	}
	if out[1].Value != "a b c" {
		t.Fatalf("expected separators flattened to spaces, got %q", out[1].Value)
	}
}

func TestEventLog_FromGame(t *testing.T) {
	ts := NewTestSim(WithVerbose(true))
	ts.RunTicks(5)
	var buf bytes.Buffer
	if err := WriteEventLog(&buf, ts.SimLog.Entries()); err != nil {
		t.Fatal(err)
	}
	out, err := ReadEventLog(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != ts.SimLog.Len() {
		t.Fatalf("expected %d entries, got %d", ts.SimLog.Len(), len(out))
	}
}
