package galaxy

// Playfield geometry.
const (
	Width  = 980
	Height = 600
	Radius = 10

	marginX = 90
	marginY = 80

	homeworldAttempts = 8000
	neutralTries      = 12000
	relaxEvery        = 4000
	relaxFactor       = 0.9

	homeworldShips = 36
	homeworldProd  = 1.1
	neutralProd    = 1.0

	minDegree = 1
	maxDegree = 4

	crossingPasses   = 100
	connectivityRuns = 500
)

// minStarDist is the rejection-sampling spacing between stars.
var minStarDist = max(60, Radius*3.2)

// Neutral is the owner id of unclaimed stars.
const Neutral = "neutral"

// Distribution presets.
const (
	PresetBalanced = "balanced"
	PresetEcon     = "econ"
	PresetCombat   = "combat"
	PresetTele     = "tele"
)

// Presets lists the preset names in menu order.
var Presets = []string{PresetBalanced, PresetEcon, PresetCombat, PresetTele}

// OwnerColors is the player palette; p0 takes the first entry.
var OwnerColors = []string{
	"#63a6ff", "#ff6b6b", "#35d072", "#ffd166", "#b892ff",
	"#ff8c42", "#22d3ee", "#f472b6", "#a3e635", "#f59e0b",
	"#8b5cf6", "#14b8a6", "#ef4444", "#10b981", "#eab308", "#3b82f6",
}

// NeutralColor is used for unowned stars.
const NeutralColor = "#9aa1ac"

// StarType tags the bonus a star grants.
type StarType string

const (
	TypePlain      StarType = "O"
	TypeProduction StarType = "Y"
	TypeSpeed      StarType = "B"
	TypeRepair     StarType = "V"
	TypeDefense    StarType = "R"
	TypeAttack     StarType = "G"
	TypeMirror     StarType = "M"
)

// typeOrder is the draw order for weighted picks.
var typeOrder = []StarType{TypePlain, TypeProduction, TypeSpeed, TypeRepair, TypeDefense, TypeAttack, TypeMirror}

// StarTraits describes one star type. Zero multipliers mean "no bonus".
type StarTraits struct {
	Name    string
	Color   string
	Prod    float64
	Move    float64
	Repair  float64
	Defense float64
	Attack  float64
}

var starTraits = map[StarType]StarTraits{
	TypeProduction: {Name: "Yellow – Production×2", Color: "#ffd34a", Prod: 2},
	TypeSpeed:      {Name: "Blue – Move×2 per tick", Color: "#45b3ff", Move: 2},
	TypeRepair:     {Name: "Violet – Repair×2 (idle)", Color: "#c084fc", Repair: 2},
	TypeDefense:    {Name: "Red – Defense×2", Color: "#ff6b6b", Defense: 2},
	TypeAttack:     {Name: "Green – Attack×2 on launch", Color: "#35d072", Attack: 2},
	TypePlain:      {Name: "Orange – No bonus", Color: "#ff9c42"},
	TypeMirror:     {Name: "Mirror (shared pool)", Color: "#ffffff"},
}

// Traits returns the bonus table for t.
func (t StarType) Traits() StarTraits { return starTraits[t] }

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// ProdMul is the production multiplier (1 when the type has no bonus).
func (t StarType) ProdMul() float64 { return orOne(starTraits[t].Prod) }

// MoveMul scales the dispatch rate.
func (t StarType) MoveMul() float64 { return orOne(starTraits[t].Move) }

// DefenseMul scales defender effective power.
func (t StarType) DefenseMul() float64 { return orOne(starTraits[t].Defense) }

// AttackMul is stamped onto packets launched from this type.
func (t StarType) AttackMul() float64 { return orOne(starTraits[t].Attack) }

// Legend returns the star types in display order with their traits.
func Legend() []StarType {
	return []StarType{TypeProduction, TypeSpeed, TypeRepair, TypeDefense, TypeAttack, TypePlain, TypeMirror}
}
