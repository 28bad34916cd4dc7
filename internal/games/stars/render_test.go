package stars

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
)

func TestRenderPlayerFlipsY(t *testing.T) {
	g := newTestGame(t, 3)
	screen := core.NewScreen(100, 30)
	g.Render(screen)

	// Center of an 800x480 window on a 100x30 grid
	if got := screen.GetCell(50, 14).Rune; got != PlayerChar {
		t.Errorf("cell (50, 14) = %q, expected the player", got)
	}
	if c := screen.GetCell(50, 14).Color; c != core.ColorBrightBlue {
		t.Errorf("player color = %v, expected bright blue", c)
	}
	if !strings.Contains(screen.Row(0), "Stars:") {
		t.Errorf("HUD missing from row 0: %q", screen.Row(0))
	}
}

func TestViewportOrigin(t *testing.T) {
	v := newViewport(Bounds{Width: 800, Height: 480}, 100, 30)

	x, y := v.cell(mgl64.Vec2{0, 0})
	if x != 0 || y != 29 {
		t.Errorf("world origin maps to (%d, %d), expected bottom-left (0, 29)", x, y)
	}
	x, y = v.cell(mgl64.Vec2{799, 479})
	if x != 99 || y != 0 {
		t.Errorf("top-right maps to (%d, %d), expected (99, 0)", x, y)
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t, 3)
	p, _ := g.world.Player()
	g.world.Despawn(p.ID)

	screen := core.NewScreen(100, 30)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected GAME OVER banner")
	}
}

func TestRenderUninitialized(t *testing.T) {
	g := NewWithConfig(config.DefaultStarsConfig())
	screen := core.NewScreen(10, 3)
	screen.Set(0, 0, 'x')
	g.Render(screen)
	if screen.GetCell(0, 0).Rune != ' ' {
		t.Error("Render should clear the screen even before Reset")
	}
}
