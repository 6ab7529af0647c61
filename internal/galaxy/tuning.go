package galaxy

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownPreset is returned when a preset name has no weight table.
	ErrUnknownPreset = errors.New("unknown distribution preset")
	// ErrInvalidTuning is returned when a tuning file carries unusable values.
	ErrInvalidTuning = errors.New("invalid tuning")
)

// Weights maps a star type to its relative draw weight.
type Weights map[StarType]float64

// Tuning holds every empirical balance constant of the engine. The values in
// DefaultTuning are the reference balance; a YAML file can override any subset.
type Tuning struct {
	// Dispatch.
	SendBase       float64 `yaml:"send_base"`       // steady trickle rate
	Burst          float64 `yaml:"burst"`           // burst rate when favorable
	MirrorGarrison float64 `yaml:"mirror_garrison"` // fixed floor for the active mirror
	GarrisonBase   float64 `yaml:"garrison_base"`
	GarrisonPerDeg float64 `yaml:"garrison_per_degree"`
	GarrisonDegCap float64 `yaml:"garrison_degree_cap"`
	GarrisonBorder float64 `yaml:"garrison_border_bonus"`
	MinSend        float64 `yaml:"min_send"`

	// Transit.
	EdgeSpeedBase  float64 `yaml:"edge_speed_base"`
	EdgeSpeedRef   float64 `yaml:"edge_speed_ref"`
	EdgeSpeedFloor float64 `yaml:"edge_speed_floor"`
	MaxFrameDt     float64 `yaml:"max_frame_dt"`

	// Combat.
	KAtk              float64 `yaml:"k_atk"`
	KDef              float64 `yaml:"k_def"`
	DefenderBias      float64 `yaml:"defender_bias"`
	DestroyBase       float64 `yaml:"destroy_base"`
	DestroyPerTick    float64 `yaml:"destroy_per_tick"`
	DestroyMax        float64 `yaml:"destroy_max"`
	SiegeCap          int     `yaml:"siege_cap"`
	RetreatLossFrac   float64 `yaml:"retreat_loss_frac"`
	SalvageFrac       float64 `yaml:"salvage_frac"`
	RetreatRepairFrac float64 `yaml:"retreat_repair_frac"`

	// Repair.
	RepairRate        float64 `yaml:"repair_rate"`
	RepairUnderAttack float64 `yaml:"repair_under_attack"`

	// Clocks, in logical seconds.
	EconInterval float64 `yaml:"econ_interval"`
	PlanInterval float64 `yaml:"plan_interval"`

	// Planner.
	BurstCooldownTicks int     `yaml:"burst_cooldown_ticks"`
	SwitchCooldown     int     `yaml:"switch_cooldown"`
	OpeningWindowSec   int     `yaml:"opening_window_sec"`
	OddsGoAggr         float64 `yaml:"odds_go_aggr"`
	OddsGoSafe         float64 `yaml:"odds_go_safe"`
	OddsCancelAggr     float64 `yaml:"odds_cancel_aggr"`
	OddsCancelSafe     float64 `yaml:"odds_cancel_safe"`
	DangerGarrisonBias float64 `yaml:"danger_garrison_bonus"` // kept for older tuning files, unused
	Doctrine           string  `yaml:"doctrine"`

	Presets map[string]Weights `yaml:"presets"`
}

// DefaultTuning returns the reference balance.
func DefaultTuning() Tuning {
	return Tuning{
		SendBase:       0.12,
		Burst:          0.45,
		MirrorGarrison: 1,
		GarrisonBase:   6,
		GarrisonPerDeg: 1.5,
		GarrisonDegCap: 10,
		GarrisonBorder: 4,
		MinSend:        0.01,

		EdgeSpeedBase:  0.55,
		EdgeSpeedRef:   420,
		EdgeSpeedFloor: 0.2,
		MaxFrameDt:     0.05,

		KAtk:              0.22,
		KDef:              0.30,
		DefenderBias:      1.2,
		DestroyBase:       0.30,
		DestroyPerTick:    0.04,
		DestroyMax:        0.80,
		SiegeCap:          20,
		RetreatLossFrac:   0.25,
		SalvageFrac:       0.5,
		RetreatRepairFrac: 0.5,

		RepairRate:        0.05,
		RepairUnderAttack: 0.2,

		EconInterval: 1.0,
		PlanInterval: 2.2,

		BurstCooldownTicks: 6,
		SwitchCooldown:     2,
		OpeningWindowSec:   50,
		OddsGoAggr:         0.45,
		OddsGoSafe:         0.60,
		OddsCancelAggr:     0.50,
		OddsCancelSafe:     0.72,
		DangerGarrisonBias: 15,
		Doctrine:           DefaultDoctrine,

		Presets: DefaultPresets(),
	}
}

// DefaultPresets returns the four star-type distributions.
func DefaultPresets() map[string]Weights {
	return map[string]Weights{
		PresetBalanced: {TypePlain: 28, TypeProduction: 18, TypeSpeed: 14, TypeRepair: 10, TypeDefense: 10, TypeAttack: 12, TypeMirror: 1},
		PresetEcon:     {TypePlain: 20, TypeProduction: 26, TypeSpeed: 20, TypeRepair: 8, TypeDefense: 8, TypeAttack: 12, TypeMirror: 1},
		PresetCombat:   {TypePlain: 20, TypeProduction: 12, TypeSpeed: 12, TypeRepair: 8, TypeDefense: 20, TypeAttack: 20, TypeMirror: 1},
		PresetTele:     {TypePlain: 22, TypeProduction: 14, TypeSpeed: 12, TypeRepair: 8, TypeDefense: 10, TypeAttack: 12, TypeMirror: 15},
	}
}

// PresetWeights looks up a distribution by name.
func (t *Tuning) PresetWeights(name string) (Weights, error) {
	w, ok := t.Presets[name]
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, ErrUnknownPreset)
	}
	return w, nil
}

// Validate rejects values the engine cannot run with.
func (t *Tuning) Validate() error {
	if t.EconInterval <= 0 || t.PlanInterval <= 0 {
		return fmt.Errorf("intervals must be positive: %w", ErrInvalidTuning)
	}
	if t.MaxFrameDt <= 0 {
		return fmt.Errorf("max_frame_dt must be positive: %w", ErrInvalidTuning)
	}
	if t.SendBase < 0 || t.Burst < 0 {
		return fmt.Errorf("send rates must be >= 0: %w", ErrInvalidTuning)
	}
	if t.DestroyMax > 1 || t.DestroyBase < 0 {
		return fmt.Errorf("destroy fractions must lie in [0,1]: %w", ErrInvalidTuning)
	}
	if t.EdgeSpeedFloor <= 0 || t.EdgeSpeedRef <= 0 {
		return fmt.Errorf("edge speed constants must be positive: %w", ErrInvalidTuning)
	}
	for name, w := range t.Presets {
		total := 0.0
		for _, v := range w {
			if v < 0 {
				return fmt.Errorf("preset %q has a negative weight: %w", name, ErrInvalidTuning)
			}
			total += v
		}
		if total <= 0 {
			return fmt.Errorf("preset %q has no weight: %w", name, ErrInvalidTuning)
		}
	}
	return nil
}

// LoadTuning reads a YAML tuning file on top of DefaultTuning. Preset tables in
// the file are merged by name so a file may override just one of them.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning %s: %w", path, err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes YAML tuning bytes on top of DefaultTuning.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	presets := t.Presets
	t.Presets = nil
	if err := yaml.Unmarshal(data, &t); err != nil {
		return DefaultTuning(), fmt.Errorf("decode tuning: %w", err)
	}
	for name, w := range t.Presets {
		presets[name] = w
	}
	t.Presets = presets
	if err := t.Validate(); err != nil {
		return DefaultTuning(), err
	}
	return t, nil
}
