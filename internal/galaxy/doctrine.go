package galaxy

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultDoctrine turns a computer player aggressive once it out-ships its
// rivals combined by a small margin.
const DefaultDoctrine = "MyShips > RivalShips * 0.9"

// DoctrineEnv is the variable set a doctrine expression is evaluated against.
type DoctrineEnv struct {
	MyShips    float64
	MyProd     float64
	RivalShips float64
	RivalProd  float64
	OwnedStars int
	RivalStars int
	Elapsed    float64
}

// Doctrine is a compiled boolean expression deciding a player's stance.
type Doctrine struct {
	Source  string
	program *vm.Program
}

// CompileDoctrine type-checks src against DoctrineEnv. An empty source
// compiles the default.
func CompileDoctrine(src string) (*Doctrine, error) {
	if src == "" {
		src = DefaultDoctrine
	}
	prog, err := expr.Compile(src, expr.Env(DoctrineEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile doctrine %q: %w", src, err)
	}
	return &Doctrine{Source: src, program: prog}, nil
}

// MustDoctrine compiles src, falling back to the default on error.
func MustDoctrine(src string) *Doctrine {
	d, err := CompileDoctrine(src)
	if err == nil {
		return d
	}
	slog.Warn("doctrine rejected, using default", "error", err)
	d, err = CompileDoctrine(DefaultDoctrine)
	if err != nil {
		panic(err)
	}
	return d
}

// Aggressive evaluates the doctrine. A runtime failure falls back to the
// default rule.
func (d *Doctrine) Aggressive(env DoctrineEnv) bool {
	out, err := expr.Run(d.program, env)
	if err != nil {
		slog.Debug("doctrine eval failed", "source", d.Source, "error", err)
		return env.MyShips > env.RivalShips*0.9
	}
	b, _ := out.(bool)
	return b
}

// doctrineEnv gathers the stance inputs for one player. Mirror pools count once.
func doctrineEnv(st *State, me string) DoctrineEnv {
	env := DoctrineEnv{Elapsed: st.Elapsed}
	env.MyShips, env.MyProd = OwnerPower(st.Stars, me)
	for _, p := range st.Players {
		if p.ID == me {
			continue
		}
		ships, prod := OwnerPower(st.Stars, p.ID)
		env.RivalShips += ships
		env.RivalProd += prod
	}
	canon := st.mirror.Canon
	for i, s := range st.Stars {
		if s.IsMirror() && i != canon {
			continue
		}
		switch s.Owner {
		case me:
			env.OwnedStars++
		case Neutral:
		default:
			env.RivalStars++
		}
	}
	return env
}
