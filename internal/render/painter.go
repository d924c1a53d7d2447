//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter updates a single RGBA image from a binary cell viewport and
// blits it scaled onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte

	marker *ebiten.Image
}

// NewGridPainter allocates a painter for a viewport of size w*h cells.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	gp.marker = ebiten.NewImage(1, 1)
	gp.marker.Fill(color.White)
	return gp
}

// Size returns the viewport dimensions in cells.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

// Blit uploads the provided cells into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, on, off color.Color, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, cells, on, off)
	gp.img.ReplacePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Marker draws a single highlighted cell at viewport position (x, y), used
// for the ant.
func (gp *GridPainter) Marker(dst *ebiten.Image, x, y, scale int, col color.RGBA) {
	if x < 0 || x >= gp.w || y < 0 || y >= gp.h {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(float64(x*scale), float64(y*scale))
	op.ColorM.Scale(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255, float64(col.A)/255)
	dst.DrawImage(gp.marker, op)
}
