package game

import (
	"image/color"
	"log/slog"
	"math"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/ljorgens/pax-galaxia-remake/internal/galaxy"
)

// borderWidth is the pixel gap between the window edge and the playfield.
const borderWidth = 24

// hudBarHeight is the status strip above the playfield.
const hudBarHeight = 28

// panelWidth is the standings + event feed column on the right.
const panelWidth = 300

// pickRadius is how far from a star's centre a click still hits it.
const pickRadius = galaxy.Radius + 8

// menu rows
const (
	rowOpponents = iota
	rowStars
	rowPreset
	rowSpeed
	rowSeed
	rowCount
)

// Game is the ebiten front-end. It renders the session's read-only View and
// turns input into session commands; it never touches engine state directly.
type Game struct {
	session   *galaxy.Session
	logger    *slog.Logger
	feed      *EventFeed
	inspector Inspector
	face      *text.GoXFace

	width  int
	height int
	offX   int // pixel offset from window left to playfield left
	offY   int // pixel offset from window top to playfield top

	setup   galaxy.Setup // menu selection
	menuRow int
	view    galaxy.View // refreshed every Update
	hover   int         // star under the cursor, 0 for none
}

// New builds the front-end around a session.
func New(session *galaxy.Session, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		session: session,
		logger:  logger,
		feed:    NewEventFeed(),
		face:    text.NewGoXFace(basicfont.Face7x13),
		offX:    borderWidth,
		offY:    hudBarHeight + borderWidth,
		setup:   session.Setup,
	}
	g.width = borderWidth + galaxy.Width + borderWidth + panelWidth
	g.height = g.offY + galaxy.Height + borderWidth
	g.view = session.View()
	return g
}

// Size is the window size the game lays itself out at.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	g.handleInput()
	g.session.Update(1 / float64(ebiten.TPS()))
	g.feed.Follow(g.session.Log)
	g.view = g.session.View()

	mx, my := ebiten.CursorPosition()
	g.hover = starAt(&g.view, float64(mx-g.offX), float64(my-g.offY))
	return nil
}

// handleInput dispatches edge-triggered input by scene.
func (g *Game) handleInput() {
	switch g.session.Scene {
	case galaxy.SceneMenu:
		g.handleMenuInput()
	case galaxy.ScenePlaying:
		g.handlePlayInput()
	case galaxy.SceneVictory:
		g.handleVictoryInput()
	}
}

func (g *Game) handleMenuInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		g.menuRow = (g.menuRow + rowCount - 1) % rowCount
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.menuRow = (g.menuRow + 1) % rowCount
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.setup = adjustSetup(g.setup, g.menuRow, -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.setup = adjustSetup(g.setup, g.menuRow, 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.pasteSeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.setup.Seed = ""
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.start(func() error { return g.session.Start(g.setup) })
	}
}

func (g *Game) handlePlayInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.session.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.session.ClearRoute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.start(g.session.NewMap)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.toMenu()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.inspector.rawView = !g.inspector.rawView
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.copyDebugReport()
	}
	speedKeys := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}
	for i, k := range speedKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.session.SetWorldSpeed(galaxy.WorldSpeeds[i])
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if id := starAt(&g.view, float64(mx-g.offX), float64(my-g.offY)); id != 0 {
			g.session.Click(id)
		} else {
			g.session.Deselect()
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.session.Deselect()
	}
}

func (g *Game) handleVictoryInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.start(g.session.Rematch)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.start(g.session.NewMap)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.toMenu()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySeed()
	}
}

func (g *Game) start(fn func() error) {
	if err := fn(); err != nil {
		g.logger.Error("cannot start game", "error", err)
		g.feed.Add(0, "--", "--", err.Error())
	}
}

func (g *Game) toMenu() {
	g.setup = g.session.Setup
	g.session.BackToMenu()
}

func (g *Game) copySeed() {
	seed := g.session.Setup.Seed
	if err := clipboard.WriteAll(seed); err != nil {
		g.logger.Warn("clipboard write failed", "error", err)
		g.feed.Add(g.view.Tick, "--", "--", "clipboard unavailable")
		return
	}
	g.feed.Add(g.view.Tick, "--", "--", "seed "+seed+" copied")
}

// copyDebugReport puts the inspected star's report on the clipboard.
func (g *Game) copyDebugReport() {
	s := g.inspected()
	if s == nil {
		return
	}
	tuning := g.session.Tuning()
	report := starDebugReport(&g.view, g.session.Log, &tuning, s, 0)
	if err := clipboard.WriteAll(report); err != nil {
		g.logger.Warn("clipboard write failed", "error", err)
		return
	}
	g.feed.Add(g.view.Tick, s.Label(), "--", "debug report copied")
}

func (g *Game) pasteSeed() {
	s, err := clipboard.ReadAll()
	if err != nil {
		g.logger.Warn("clipboard read failed", "error", err)
		return
	}
	g.setup.Seed = cleanSeed(s)
}

// cleanSeed trims pasted text down to a single-line seed token.
func cleanSeed(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if len(s) > 32 {
		s = s[:32]
	}
	return s
}

// adjustSetup steps one menu row by delta and re-normalizes.
func adjustSetup(s galaxy.Setup, row, delta int) galaxy.Setup {
	switch row {
	case rowOpponents:
		s.AICount += delta
	case rowStars:
		s.Stars += 6 * delta
	case rowPreset:
		s.Preset = cycle(galaxy.Presets, s.Preset, delta)
	case rowSpeed:
		i := 0
		for k, ws := range galaxy.WorldSpeeds {
			if ws == s.WorldSpeed {
				i = k
			}
		}
		n := len(galaxy.WorldSpeeds)
		s.WorldSpeed = galaxy.WorldSpeeds[((i+delta)%n+n)%n]
	case rowSeed:
		if delta != 0 {
			s.Seed = galaxy.RandomSeed()
		}
	}
	s.Normalize()
	return s
}

func cycle(options []string, cur string, delta int) string {
	i := 0
	for k, o := range options {
		if o == cur {
			i = k
		}
	}
	n := len(options)
	return options[((i+delta)%n+n)%n]
}

// starAt hit-tests playfield coordinates against the view's stars.
func starAt(v *galaxy.View, x, y float64) int {
	best, bestD := 0, math.Inf(1)
	for _, s := range v.Stars {
		d := math.Hypot(s.X-x, s.Y-y)
		if d <= pickRadius && d < bestD {
			best, bestD = s.ID, d
		}
	}
	return best
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 6, G: 8, B: 16, A: 255})

	if g.session.Scene == galaxy.SceneMenu {
		g.drawMenu(screen)
		g.drawPanel(screen)
		return
	}

	g.drawWorld(screen)
	g.drawInspector(screen)
	g.drawHUD(screen)
	g.drawPanel(screen)

	switch g.session.Scene {
	case galaxy.SceneCountdown:
		g.drawCountdown(screen)
	case galaxy.SceneVictory:
		g.drawVictory(screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
