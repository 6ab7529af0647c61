package galaxy

import "fmt"

// PlayerKind distinguishes the human seat from computer opponents.
type PlayerKind int

const (
	KindHuman PlayerKind = iota
	KindComputer
)

func (k PlayerKind) String() string {
	switch k {
	case KindHuman:
		return "human"
	case KindComputer:
		return "ai"
	default:
		return "unknown"
	}
}

// Player is fixed for the life of a game once the map is generated.
type Player struct {
	ID    string // "p0" is always the human seat
	Name  string // commander name
	Label string // short scoreboard label
	Color string
	Kind  PlayerKind
}

// HumanID is the id of the human seat.
const HumanID = "p0"

var commanderNames = []string{
	"Captain Vega",
	"Commander Lyra",
	"Admiral Corvus",
	"Strategist Nyx",
	"Marshal Orion",
	"Commodore Atria",
	"Overseer Kael",
	"Director Solin",
	"Navigator Rhea",
	"Legate Arden",
	"Warlord Cassian",
	"Baroness Elara",
	"Vizier Thorne",
	"High Captain Mirel",
	"Archon Selene",
	"Executor Varek",
	"Consul Idrin",
	"Magister Lio",
	"Praetor Kalix",
	"Seer Isra",
}

var labelNames = []string{
	"Orion", "Lyra", "Vega", "Draco", "Andromeda", "Phoenix", "Hydra", "Cygnus", "Sirius",
	"Altair", "Deneb", "Antares", "Rigel", "Polaris", "Aquila", "Carina", "Cassiopeia",
}

// namePicker draws commander names without replacement, then falls back to
// numbered commanders once the pool is exhausted.
func namePicker(rng *RNG) func() string {
	available := append([]string(nil), commanderNames...)
	counter := 0
	return func() string {
		if len(available) > 0 {
			idx := int(rng.Float64()*float64(len(available))) % len(available)
			name := available[idx]
			available = append(available[:idx], available[idx+1:]...)
			return name
		}
		counter++
		return fmt.Sprintf("Commander %d", counter)
	}
}

// MakePlayers builds the human seat plus aiCount computer players, drawing
// names from rng.
func MakePlayers(aiCount int, rng *RNG) []Player {
	pick := namePicker(rng)
	players := []Player{{ID: HumanID, Name: pick(), Label: "You", Color: OwnerColors[0], Kind: KindHuman}}
	for i := 0; i < aiCount; i++ {
		players = append(players, Player{
			ID:    fmt.Sprintf("p%d", i+1),
			Name:  pick(),
			Color: OwnerColors[(i+1)%len(OwnerColors)],
			Kind:  KindComputer,
		})
	}
	return players
}

// AssignLabels gives every computer player a short star-name label drawn from
// the seed's "names" sub-stream. Labels repeat only when the pool runs dry.
func AssignLabels(players []Player, seed string) {
	r := Derive(seed, "names")
	used := map[string]bool{}
	for i := range players {
		if players[i].Kind == KindHuman {
			players[i].Label = "You"
			continue
		}
		var pick string
		for tries := 0; tries < 50; tries++ {
			pick = labelNames[int(r.Range(0, float64(len(labelNames))))]
			if !used[pick] {
				break
			}
		}
		used[pick] = true
		players[i].Label = pick
	}
}

// PlayerByID finds a player; ok is false for neutral or unknown ids.
func PlayerByID(players []Player, id string) (Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// OwnerColor returns the display color of an owner id.
func OwnerColor(players []Player, owner string) string {
	if owner == Neutral {
		return NeutralColor
	}
	if p, ok := PlayerByID(players, owner); ok {
		return p.Color
	}
	return "#ffffff"
}
