package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 190 // buffer width in pixels (~31 chars at debug font)
	inspBufH  = 130 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
)

// Inspector shows the star under the cursor, or the selected star.
type Inspector struct {
	rawView bool // false = curated, true = raw ledgers
	buf     *ebiten.Image
}

// inspected picks the star to show: hover wins over selection.
func (g *Game) inspected() *galaxy.Star {
	if g.hover != 0 {
		return g.view.Star(g.hover)
	}
	if g.view.Selected != 0 {
		return g.view.Star(g.view.Selected)
	}
	return nil
}

func (g *Game) drawInspector(screen *ebiten.Image) {
	s := g.inspected()
	if s == nil {
		return
	}
	if g.inspector.buf == nil {
		g.inspector.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspector.buf
	buf.Clear()

	bw := float32(inspBufW)
	bh := float32(inspBufH)
	panelBorder := color.RGBA{R: 60, G: 70, B: 110, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 12, G: 14, B: 26, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	tuning := g.session.Tuning()
	lines := inspectLines(&g.view, s, &tuning, g.inspector.rawView)
	ly := inspPad
	for i, l := range lines {
		ebitenutil.DebugPrintAt(buf, l, inspPad, ly)
		ly += inspLineH
		if i == 0 {
			vector.StrokeLine(buf, inspPad, float32(ly+1), bw-inspPad, float32(ly+1), 1.0, panelBorder, false)
			ly += 4
		}
		if ly > inspBufH-inspLineH {
			break
		}
	}

	// opposite corner from the star so it never covers it
	px := g.offX + 8
	if s.X < galaxy.Width/2 {
		px = g.offX + galaxy.Width - inspBufW*inspScale - 8
	}
	py := g.offY + galaxy.Height - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}

// inspectLines renders a star's details. The first line is the title.
func inspectLines(v *galaxy.View, s *galaxy.Star, t *galaxy.Tuning, raw bool) []string {
	owner := s.Owner
	if p, ok := galaxy.PlayerByID(v.Players, s.Owner); ok {
		owner = p.Name
	}
	viewName := "CURATED"
	if raw {
		viewName = "RAW"
	}
	lines := []string{fmt.Sprintf("[ %s %s ] %s", s.Label(), s.Type, viewName)}

	if raw {
		lines = append(lines,
			fmt.Sprintf("owner=%s ships=%.2f", s.Owner, s.Ships),
			fmt.Sprintf("prod=%.2f route=%d siege=%dt", s.Prod, s.RouteTo, s.UnderAttackTicks),
			"nbrs="+joinInts(s.Neighbors),
			"damaged="+ledger(s.Damaged),
			"invaders="+ledger(s.Invaders),
			"eff="+ledger(s.InvadersEff),
		)
		return lines
	}

	ships := galaxy.DisplayShips(v.Stars, s)
	lines = append(lines,
		owner,
		s.Type.Traits().Name,
		fmt.Sprintf("ships %s  prod %.2f/t", galaxy.FormatCount(ships), s.ProdRate()),
	)
	if s.RouteTo != 0 {
		lines = append(lines, fmt.Sprintf("route -> S%02d", s.RouteTo))
	}
	if bs, ok := v.Battles[s.ID]; ok {
		odds := t.WinOdds(bs.AttackerEff, s.Ships, s.Type, s.UnderAttackTicks)
		lines = append(lines, fmt.Sprintf("siege %dt  odds %.2f", s.UnderAttackTicks, odds))
		lines = append(lines, fmt.Sprintf("def %s (eff %.0f)", galaxy.FormatCount(bs.DefenderShips), bs.DefenderEff))
		for _, a := range bs.Attackers {
			lines = append(lines, fmt.Sprintf(" %-4s %s (eff %.0f)", a.Owner, galaxy.FormatCount(a.Ships), a.Eff))
		}
	}
	return lines
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ",")
}

func ledger(m map[string]float64) string {
	var parts []string
	for _, k := range sortedOwners(m) {
		if m[k] != 0 {
			parts = append(parts, fmt.Sprintf("%s:%.1f", k, m[k]))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
