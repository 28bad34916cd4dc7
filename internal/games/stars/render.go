package stars

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starcatch/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar = '█'
	EnemyChar  = '▓'
	StarChar   = '★'
)

// viewport maps world units (origin bottom-left, y up) to screen cells
// (origin top-left, y down).
type viewport struct {
	scaleX, scaleY float64
	rows           int
}

func newViewport(b Bounds, cols, rows int) viewport {
	return viewport{
		scaleX: float64(cols) / b.Width,
		scaleY: float64(rows) / b.Height,
		rows:   rows,
	}
}

// cell returns the screen cell containing the world point.
func (v viewport) cell(p mgl64.Vec2) (int, int) {
	x := int(math.Floor(p[0] * v.scaleX))
	y := v.rows - 1 - int(math.Floor(p[1]*v.scaleY))
	return x, y
}

// footprint returns the sprite size in cells, at least 1x1.
func (v viewport) footprint(size float64) (int, int) {
	w := int(math.Round(size * v.scaleX))
	h := int(math.Round(size * v.scaleY))
	return core.Max(w, 1), core.Max(h, 1)
}

func drawSprite(dst *core.Screen, v viewport, pos mgl64.Vec2, size float64, r rune, c core.Color) {
	cx, cy := v.cell(pos)
	w, h := v.footprint(size)
	x0 := cx - w/2
	y0 := cy - h/2
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			dst.SetColored(x, y, r, c)
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil || dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	v := newViewport(g.world.Bounds(), dst.Width(), dst.Height())

	for _, s := range g.world.Stars() {
		x, y := v.cell(s.Pos)
		dst.SetColored(x, y, StarChar, core.ColorBrightYellow)
	}
	for _, e := range g.world.Enemies() {
		drawSprite(dst, v, e.Pos, g.cfg.Enemy.Size, EnemyChar, core.ColorBrightRed)
	}
	if p, ok := g.world.Player(); ok {
		drawSprite(dst, v, p.Pos, g.cfg.Player.Size, PlayerChar, core.ColorBrightBlue)
	}

	// Draw HUD
	hud := fmt.Sprintf(" Stars: %d  Enemies: %d ", g.world.StarCount(), g.world.EnemyCount())
	dst.DrawTextColored(1, 0, hud, core.ColorGray)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if _, alive := g.world.Player(); !alive {
		g.drawCenteredMessage(dst, "GAME OVER", "Press R for a new session  |  Q to quit")
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
