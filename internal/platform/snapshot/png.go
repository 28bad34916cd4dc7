// Package snapshot renders simulation snapshots to PNG images.
package snapshot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/starcatch/internal/games/stars"
)

// Palette colors
var (
	backgroundColor = color.RGBA{12, 12, 28, 255}
	gridColor       = color.RGBA{30, 30, 45, 255}
	playerColor     = color.RGBA{80, 140, 255, 255}
	enemyColor      = color.RGBA{230, 60, 60, 255}
	starColor       = color.RGBA{255, 215, 0, 255}
	textColor       = color.RGBA{200, 200, 200, 255}
)

// Options control the rendered image.
type Options struct {
	Scale      float64 // Pixels per world unit
	PlayerSize float64
	EnemySize  float64
	StarRadius float64
	Grid       float64 // Grid spacing in world units, 0 for none
}

// DefaultOptions returns options for the default entity sizes.
func DefaultOptions() Options {
	return Options{
		Scale:      1,
		PlayerSize: 64,
		EnemySize:  64,
		StarRadius: 12,
		Grid:       100,
	}
}

// Render draws the snapshot. World y grows upward, so it is flipped to image
// coordinates.
func Render(s stars.Snapshot, opts Options) (image.Image, error) {
	if !s.Bounds.Valid() {
		return nil, fmt.Errorf("snapshot: %w", stars.ErrNoWindow)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	w := int(s.Bounds.Width * opts.Scale)
	h := int(s.Bounds.Height * opts.Scale)
	dc := gg.NewContext(max(w, 1), max(h, 1))

	// Flip once so drawing uses world coordinates
	dc.Translate(0, float64(h))
	dc.Scale(opts.Scale, -opts.Scale)

	dc.SetColor(backgroundColor)
	dc.DrawRectangle(0, 0, s.Bounds.Width, s.Bounds.Height)
	dc.Fill()

	if opts.Grid > 0 {
		dc.SetColor(gridColor)
		dc.SetLineWidth(1)
		for x := 0.0; x < s.Bounds.Width; x += opts.Grid {
			dc.DrawLine(x, 0, x, s.Bounds.Height)
			dc.Stroke()
		}
		for y := 0.0; y < s.Bounds.Height; y += opts.Grid {
			dc.DrawLine(0, y, s.Bounds.Width, y)
			dc.Stroke()
		}
	}

	dc.SetColor(starColor)
	for _, st := range s.Stars {
		dc.DrawRegularPolygon(5, st.Pos[0], st.Pos[1], opts.StarRadius, 0)
		dc.Fill()
	}

	dc.SetColor(enemyColor)
	for _, e := range s.Enemies {
		dc.DrawCircle(e.Pos[0], e.Pos[1], opts.EnemySize/2)
		dc.Fill()
	}

	if s.HasPlayer {
		dc.SetColor(playerColor)
		dc.DrawCircle(s.Player.Pos[0], s.Player.Pos[1], opts.PlayerSize/2)
		dc.Fill()
	}

	// HUD in image space
	dc.Identity()
	dc.SetColor(textColor)
	hud := fmt.Sprintf("tick %d  stars %d  enemies %d", s.Tick, len(s.Stars), len(s.Enemies))
	if !s.HasPlayer {
		hud += "  GAME OVER"
	}
	dc.DrawString(hud, 8, 16)

	return dc.Image(), nil
}

// SavePNG renders the snapshot and writes it to path.
func SavePNG(path string, s stars.Snapshot, opts Options) error {
	img, err := Render(s, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	return nil
}
