package galaxy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuning_Valid(t *testing.T) {
	tun := DefaultTuning()
	if err := tun.Validate(); err != nil {
		t.Fatalf("reference tuning rejected: %v", err)
	}
	for _, name := range Presets {
		if _, err := tun.PresetWeights(name); err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
	}
}

func TestParseTuning_Overrides(t *testing.T) {
	tun, err := ParseTuning([]byte("send_base: 0.2\nburst: 0.5\ndoctrine: OwnedStars > 2\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tun.SendBase != 0.2 || tun.Burst != 0.5 {
		t.Fatalf("expected overrides 0.2/0.5, got %v/%v", tun.SendBase, tun.Burst)
	}
	if tun.KAtk != 0.22 || tun.EconInterval != 1 {
		t.Fatalf("expected untouched defaults, got k_atk %v econ %v", tun.KAtk, tun.EconInterval)
	}
	if tun.Doctrine != "OwnedStars > 2" {
		t.Fatalf("expected doctrine override, got %q", tun.Doctrine)
	}
}

func TestParseTuning_PresetMerge(t *testing.T) {
	tun, err := ParseTuning([]byte("presets:\n  tele:\n    M: 30\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tele, err := tun.PresetWeights(PresetTele)
	if err != nil {
		t.Fatal(err)
	}
	if tele[TypeMirror] != 30 {
		t.Fatalf("expected tele mirror weight 30, got %v", tele[TypeMirror])
	}
	bal, _ := tun.PresetWeights(PresetBalanced)
	if bal[TypePlain] != 28 {
		t.Fatalf("expected balanced to survive the merge, got %v", bal)
	}
}

func TestParseTuning_Invalid(t *testing.T) {
	_, err := ParseTuning([]byte("econ_interval: 0\n"))
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("expected ErrInvalidTuning, got %v", err)
	}
	_, err = ParseTuning([]byte("presets:\n  econ:\n    O: -1\n"))
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("expected ErrInvalidTuning for a negative weight, got %v", err)
	}
	if _, err := ParseTuning([]byte("send_base: [1\n")); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestPresetWeights_Unknown(t *testing.T) {
	tun := DefaultTuning()
	if _, err := tun.PresetWeights("chaos"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoadTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("k_def: 0.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tun, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tun.KDef != 0.4 {
		t.Fatalf("expected k_def 0.4, got %v", tun.KDef)
	}
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
