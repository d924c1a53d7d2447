//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/sims/langton"
)

// Overlay draws the simulation status panel in the top-left corner: step
// count, ant state, grid size and the detector's verdict.
type Overlay struct {
	visible bool
	pixel   *ebiten.Image
}

// NewOverlay constructs a visible overlay.
func NewOverlay() *Overlay {
	o := &Overlay{visible: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the visibility toggle.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.visible = !o.visible
	}
}

// Draw renders the status lines for the provided snapshot.
func (o *Overlay) Draw(screen *ebiten.Image, snap langton.Snapshot, sps int, paused bool) {
	if !o.visible {
		return
	}
	status := snap.Status.String()
	if snap.Status == langton.StatusConfirmed {
		status = fmt.Sprintf("confirmed %s", snap.Heading)
		if snap.Ambiguous {
			status += " (ambiguous)"
		}
	}
	lines := []string{
		fmt.Sprintf("step %d", snap.Step),
		fmt.Sprintf("ant (%d, %d) facing %s", snap.AntX, snap.AntY, snap.Facing),
		fmt.Sprintf("grid %dx%d, %d expansions", snap.GridSize.W, snap.GridSize.H, snap.Expansions),
		fmt.Sprintf("highway: %s", status),
		fmt.Sprintf("%d steps/s", sps),
	}
	if paused {
		lines = append(lines, "paused")
	}

	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	panelH := lineHeight*len(lines) + 8

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(230, float64(panelH))
	op.ColorM.Scale(0, 0, 0, 0.6)
	screen.DrawImage(o.pixel, op)

	for i, line := range lines {
		text.Draw(screen, line, face, 6, 14+i*lineHeight, color.White)
	}
}
