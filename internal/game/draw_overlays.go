package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
)

var (
	colPanel      = color.RGBA{R: 12, G: 14, B: 24, A: 255}
	colPanelEdge  = color.RGBA{R: 50, G: 60, B: 90, A: 200}
	colShade      = color.RGBA{R: 0, G: 0, B: 0, A: 170}
	colMenuCursor = color.RGBA{R: 40, G: 60, B: 110, A: 200}
)

// drawHUD renders the status bar above the playfield.
func (g *Game) drawHUD(screen *ebiten.Image) {
	v := &g.view
	vector.FillRect(screen, 0, 0, float32(g.width), hudBarHeight, colPanel, false)
	vector.StrokeLine(screen, 0, hudBarHeight, float32(g.width), hudBarHeight, 1, colPanelEdge, false)

	state := "RUN"
	if v.Paused {
		state = "PAUSED"
	}
	line := fmt.Sprintf("%s  %s  x%.1f  seed %s  T=%d", state, galaxy.FormatClock(v.Elapsed), v.WorldSpeed, v.Seed, v.Tick)
	if v.Selected != 0 {
		line += fmt.Sprintf("  [S%02d selected]", v.Selected)
	}
	ebitenutil.DebugPrintAt(screen, line, borderWidth, 7)
	ebitenutil.DebugPrintAt(screen, "Space:pause  X:clear  R:new  M:menu  C:copy seed  1-4:speed", g.offX+galaxy.Width-370, 7)
}

// drawPanel renders the standings and the event feed on the right.
func (g *Game) drawPanel(screen *ebiten.Image) {
	v := &g.view
	px := g.offX + galaxy.Width + borderWidth
	py := g.offY
	vector.FillRect(screen, float32(px), float32(py), panelWidth-borderWidth/2, galaxy.Height, colPanel, false)
	vector.StrokeRect(screen, float32(px), float32(py), panelWidth-borderWidth/2, galaxy.Height, 1, colPanelEdge, false)

	colors := ownerColors(v)
	y := py + 4
	ebitenutil.DebugPrintAt(screen, "STANDINGS", px+8, y)
	y += 18
	inflight := map[string]float64{}
	for _, p := range v.Packets {
		inflight[p.Owner] += p.Amount
	}
	for _, p := range v.Players {
		stars := v.Owned(p.ID)
		var ships float64
		seenMirror := false
		for _, s := range v.Stars {
			if s.Owner != p.ID {
				continue
			}
			if s.IsMirror() {
				if seenMirror {
					continue
				}
				seenMirror = true
			}
			ships += s.Ships
		}
		vector.FillRect(screen, float32(px+8), float32(y+3), 8, 8, colors[p.ID], false)
		status := fmt.Sprintf("%-4s %-12s %3d* %6s", p.Label, p.Name, stars, galaxy.FormatCount(ships+inflight[p.ID]))
		if stars == 0 && inflight[p.ID] == 0 {
			status = fmt.Sprintf("%-4s %-12s  out", p.Label, p.Name)
		}
		ebitenutil.DebugPrintAt(screen, status, px+22, y)
		y += 15
	}

	y += 8
	ebitenutil.DebugPrintAt(screen, "LEGEND", px+8, y)
	y += 16
	for _, t := range galaxy.Legend() {
		vector.FillCircle(screen, float32(px+13), float32(y+7), 4, hexColor(t.Traits().Color), true)
		ebitenutil.DebugPrintAt(screen, t.Traits().Name, px+22, y)
		y += 14
	}

	y += 8
	g.feed.Draw(screen, px, y, panelWidth-borderWidth/2, py+galaxy.Height-y, colors)
}

// menuLines renders each menu row as text.
func menuLines(s galaxy.Setup) []string {
	seed := s.Seed
	if seed == "" {
		seed = "(random)"
	}
	lines := make([]string, rowCount)
	lines[rowOpponents] = fmt.Sprintf("Opponents   < %d >", s.AICount)
	lines[rowStars] = fmt.Sprintf("Stars       < %d >", s.Stars)
	lines[rowPreset] = fmt.Sprintf("Preset      < %s >", s.Preset)
	lines[rowSpeed] = fmt.Sprintf("World speed < x%.1f >", s.WorldSpeed)
	lines[rowSeed] = fmt.Sprintf("Seed        < %s >", seed)
	return lines
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	cx, cy := g.offX+galaxy.Width/2, g.offY+galaxy.Height/2
	g.drawLabel(screen, "PAX GALAXIA", float64(cx), float64(cy-140), 36, colLabel)

	x := cx - 110
	y := cy - 70
	for i, line := range menuLines(g.setup) {
		if i == g.menuRow {
			vector.FillRect(screen, float32(x-8), float32(y-2), 240, 18, colMenuCursor, false)
		}
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += 24
	}
	y += 16
	ebitenutil.DebugPrintAt(screen, "Up/Down: choose  Left/Right: change", x, y)
	ebitenutil.DebugPrintAt(screen, "V: paste seed  Backspace: clear seed", x, y+16)
	ebitenutil.DebugPrintAt(screen, "Enter: launch", x, y+32)
}

func (g *Game) drawCountdown(screen *ebiten.Image) {
	vector.FillRect(screen, float32(g.offX), float32(g.offY), galaxy.Width, galaxy.Height, withAlpha(colShade, 90), false)
	cx, cy := g.offX+galaxy.Width/2, g.offY+galaxy.Height/2
	g.drawLabel(screen, fmt.Sprintf("%d", g.view.Countdown), float64(cx), float64(cy), 72, colLabel)
}

// drawVictory renders the outcome table over the frozen map.
func (g *Game) drawVictory(screen *ebiten.Image) {
	o := g.view.Outcome
	if o == nil {
		return
	}
	vector.FillRect(screen, float32(g.offX), float32(g.offY), galaxy.Width, galaxy.Height, colShade, false)
	cx, cy := g.offX+galaxy.Width/2, g.offY+galaxy.Height/2

	title := "DEFEAT"
	if o.Result == galaxy.ResultHumanVictory {
		title = "VICTORY"
	}
	g.drawLabel(screen, title, float64(cx), float64(cy-150), 40, colLabel)
	g.drawLabel(screen, o.Description, float64(cx), float64(cy-110), 14, colLaneLabel)

	x := cx - 200
	y := cy - 80
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-16s %10s %10s %10s", "Commander", "Peak army", "Peak stars", "Peak prod"), x, y)
	y += 18
	colors := ownerColors(&g.view)
	for _, id := range o.Ranked() {
		name := id
		if p, ok := galaxy.PlayerByID(g.view.Players, id); ok {
			name = p.Name
		}
		m := o.Metrics[id]
		vector.FillRect(screen, float32(x-12), float32(y+3), 8, 8, colors[id], false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-16s %10s %10d %10.2f", name, galaxy.FormatCount(m.MaxArmies), m.MaxStars, m.MaxProd), x, y)
		y += 16
	}
	y += 16
	ebitenutil.DebugPrintAt(screen, "Enter: rematch  N: new map  M: menu  C: copy seed", x, y)
}
