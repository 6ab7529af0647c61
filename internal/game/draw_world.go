package game

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
)

var (
	colLane       = color.RGBA{R: 70, G: 80, B: 110, A: 150}
	colMirrorLane = color.RGBA{R: 255, G: 255, B: 255, A: 210}
	colRoute      = color.RGBA{R: 230, G: 236, B: 255, A: 230}
	colSelect     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colHover      = color.RGBA{R: 200, G: 210, B: 255, A: 140}
	colBattle     = color.RGBA{R: 255, G: 80, B: 60, A: 220}
	colLabel      = color.RGBA{R: 240, G: 244, B: 255, A: 255}
	colLaneLabel  = color.RGBA{R: 180, G: 190, B: 220, A: 230}
)

// hexColor parses "#rrggbb"; anything malformed renders white.
func hexColor(hex string) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// withAlpha returns c with a new alpha, premultiplied.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	f := float64(a) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: a,
	}
}

// ownerColors maps every owner id in the view to its display color.
func ownerColors(v *galaxy.View) map[string]color.RGBA {
	out := map[string]color.RGBA{galaxy.Neutral: hexColor(galaxy.NeutralColor)}
	for _, p := range v.Players {
		out[p.ID] = hexColor(p.Color)
	}
	return out
}

// drawWorld renders the playfield: sky, lanes, routes, packets and stars.
func (g *Game) drawWorld(screen *ebiten.Image) {
	v := &g.view
	ox, oy := float32(g.offX), float32(g.offY)
	colors := ownerColors(v)

	vector.FillRect(screen, ox, oy, galaxy.Width, galaxy.Height, color.RGBA{R: 3, G: 4, B: 10, A: 255}, false)
	for _, sp := range v.Starfield {
		c := withAlpha(color.RGBA{R: 220, G: 228, B: 255, A: 255}, uint8(sp.Opacity*255))
		vector.FillCircle(screen, ox+float32(sp.X), oy+float32(sp.Y), float32(sp.R), c, true)
	}

	g.drawLanes(screen, v)
	g.drawRoutes(screen, v)
	g.drawPackets(screen, v, colors)
	g.drawStars(screen, v, colors)
	g.drawLaneLabels(screen, v)
}

func (g *Game) drawLanes(screen *ebiten.Image, v *galaxy.View) {
	ox, oy := float32(g.offX), float32(g.offY)
	for _, l := range v.Lanes {
		a, b := v.Star(l[0]), v.Star(l[1])
		if a == nil || b == nil {
			continue
		}
		c, w := colLane, float32(1)
		if v.MirrorFrom != 0 && (l == [2]int{v.MirrorFrom, v.MirrorTo} || l == [2]int{v.MirrorTo, v.MirrorFrom}) {
			c, w = colMirrorLane, 2.5
		}
		vector.StrokeLine(screen, ox+float32(a.X), oy+float32(a.Y), ox+float32(b.X), oy+float32(b.Y), w, c, true)
	}
}

// drawRoutes draws an arrow along every active route, in the owner's color.
func (g *Game) drawRoutes(screen *ebiten.Image, v *galaxy.View) {
	ox, oy := float64(g.offX), float64(g.offY)
	for _, s := range v.Stars {
		if s.RouteTo == 0 {
			continue
		}
		t := v.Star(s.RouteTo)
		if t == nil {
			continue
		}
		c := colRoute
		if s.Owner != galaxy.HumanID {
			c = withAlpha(hexColor(galaxy.OwnerColor(v.Players, s.Owner)), 200)
		}
		dx, dy := t.X-s.X, t.Y-s.Y
		d := math.Hypot(dx, dy)
		if d < 2*galaxy.Radius {
			continue
		}
		ux, uy := dx/d, dy/d
		x0, y0 := s.X+ux*galaxy.Radius, s.Y+uy*galaxy.Radius
		x1, y1 := t.X-ux*(galaxy.Radius+3), t.Y-uy*(galaxy.Radius+3)
		vector.StrokeLine(screen, float32(ox+x0), float32(oy+y0), float32(ox+x1), float32(oy+y1), 2, c, true)

		// arrow head
		const head = 7.0
		for _, ang := range []float64{2.6, -2.6} {
			hx := x1 + head*(ux*math.Cos(ang)-uy*math.Sin(ang))
			hy := y1 + head*(ux*math.Sin(ang)+uy*math.Cos(ang))
			vector.StrokeLine(screen, float32(ox+x1), float32(oy+y1), float32(ox+hx), float32(oy+hy), 2, c, true)
		}
	}
}

func (g *Game) drawPackets(screen *ebiten.Image, v *galaxy.View, colors map[string]color.RGBA) {
	ox, oy := float32(g.offX), float32(g.offY)
	for _, p := range v.Packets {
		a, b := v.Star(p.From), v.Star(p.To)
		if a == nil || b == nil {
			continue
		}
		pos := galaxy.Lerp(a, b, math.Min(p.T, 1))
		c, ok := colors[p.Owner]
		if !ok {
			c = hexColor(galaxy.NeutralColor)
		}
		r := float32(2 + math.Min(3, math.Log10(math.Max(1, p.Amount))))
		if p.Retreat {
			vector.StrokeCircle(screen, ox+float32(pos.X), oy+float32(pos.Y), r, 1, c, true)
			continue
		}
		vector.FillCircle(screen, ox+float32(pos.X), oy+float32(pos.Y), r, c, true)
	}
}

func (g *Game) drawStars(screen *ebiten.Image, v *galaxy.View, colors map[string]color.RGBA) {
	ox, oy := float32(g.offX), float32(g.offY)
	for _, s := range v.Stars {
		x, y := ox+float32(s.X), oy+float32(s.Y)
		owner, ok := colors[s.Owner]
		if !ok {
			owner = hexColor(galaxy.NeutralColor)
		}

		if _, contested := v.Battles[s.ID]; contested {
			pulse := float32(0.5 + 0.5*math.Sin(v.Elapsed*6))
			vector.StrokeCircle(screen, x, y, galaxy.Radius+6+2*pulse, 2, colBattle, true)
		}

		vector.FillCircle(screen, x, y, galaxy.Radius, hexColor(s.Type.Traits().Color), true)
		vector.StrokeCircle(screen, x, y, galaxy.Radius+2, 3, owner, true)

		switch s.ID {
		case v.Selected:
			vector.StrokeCircle(screen, x, y, galaxy.Radius+9, 2, colSelect, true)
		case g.hover:
			vector.StrokeCircle(screen, x, y, galaxy.Radius+8, 1, colHover, true)
		}

		ships := galaxy.DisplayShips(v.Stars, s)
		g.drawLabel(screen, galaxy.FormatCount(ships), float64(x), float64(y)-galaxy.Radius-12, galaxy.FontScale(ships), colLabel)
	}
}

// drawLaneLabels shows the total in flight on each lane direction, near the
// source end so both directions stay readable.
func (g *Game) drawLaneLabels(screen *ebiten.Image, v *galaxy.View) {
	ox, oy := float64(g.offX), float64(g.offY)
	for key, amt := range v.InFlightOn() {
		if amt < 1 {
			continue
		}
		a, b := v.Star(key[0]), v.Star(key[1])
		if a == nil || b == nil {
			continue
		}
		p := galaxy.Lerp(a, b, 0.35)
		dx, dy := b.X-a.X, b.Y-a.Y
		d := math.Max(1, math.Hypot(dx, dy))
		// nudge perpendicular so opposite directions don't overlap
		px, py := -dy/d*9, dx/d*9
		g.drawLabel(screen, galaxy.FormatCount(amt), ox+p.X+px, oy+p.Y+py, galaxy.FontScaleLane(amt), colLaneLabel)
	}
}

// drawLabel draws centred text at a point size by scaling the 13px face.
func (g *Game) drawLabel(screen *ebiten.Image, s string, x, y, size float64, c color.Color) {
	scale := size / 13
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}
