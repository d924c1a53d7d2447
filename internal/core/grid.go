package core

import (
	"errors"
	"fmt"
)

// ErrGridTooLarge is returned when an expansion would exceed the cell cap.
// Allocation failure of this kind is fatal to a run and is never retried.
var ErrGridTooLarge = errors.New("core: grid expansion exceeds maximum cell count")

// DefaultMaxCells bounds the physical buffer so a runaway simulation fails
// with ErrGridTooLarge instead of exhausting memory.
const DefaultMaxCells = 1 << 26

// Grid stores an unbounded logical 2D binary surface in a finite row-major
// buffer. Logical coordinates keep their meaning across expansions: the
// offset (ox, oy) translates logical (x, y) to physical (x+ox, y+oy), and
// every expansion is a pure relocation that preserves all stored values.
type Grid struct {
	w, h     int
	ox, oy   int
	data     []uint8
	expands  int
	maxCells int
}

// NewGrid allocates a grid with the given physical dimensions. Logical (0,0)
// initially maps to physical (0,0).
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{w: w, h: h, data: make([]uint8, w*h), maxCells: DefaultMaxCells}
}

// SetMaxCells overrides the expansion cap. Values below the current buffer
// size are ignored.
func (g *Grid) SetMaxCells(n int) {
	if n >= g.w*g.h {
		g.maxCells = n
	}
}

// Size returns the current physical dimensions.
func (g *Grid) Size() Size { return Size{W: g.w, H: g.h} }

// Expansions returns how many times the buffer has been doubled.
func (g *Grid) Expansions() int { return g.expands }

// Bounds returns the logical coordinate range currently backed by the
// buffer: min inclusive, max exclusive.
func (g *Grid) Bounds() (minX, minY, maxX, maxY int) {
	return -g.ox, -g.oy, g.w - g.ox, g.h - g.oy
}

// InBounds reports whether logical (x, y) falls inside the physical buffer.
func (g *Grid) InBounds(x, y int) bool {
	px, py := x+g.ox, y+g.oy
	return px >= 0 && px < g.w && py >= 0 && py < g.h
}

// Get returns the cell at logical (x, y). Coordinates outside the physical
// buffer read as White: the logical surface is white by default.
func (g *Grid) Get(x, y int) Cell {
	px, py := x+g.ox, y+g.oy
	if px < 0 || px >= g.w || py < 0 || py >= g.h {
		return White
	}
	return g.data[py*g.w+px]
}

// Set stores a cell at logical (x, y). The engine must have grown the grid
// before the ant can reach an out-of-range coordinate, so writing outside the
// buffer is a programming error and panics.
func (g *Grid) Set(x, y int, c Cell) {
	px, py := x+g.ox, y+g.oy
	if px < 0 || px >= g.w || py < 0 || py >= g.h {
		panic(fmt.Sprintf("core: Set(%d, %d) outside physical bounds %dx%d", x, y, g.w, g.h))
	}
	g.data[py*g.w+px] = c
}

// GrowIfNearEdge doubles both dimensions while logical (x, y) lies within
// margin cells of any edge of the physical buffer. Existing cells keep their
// logical coordinates; the old content ends up centered in the new buffer.
// The doubling amortizes relocation cost to O(1) per step.
func (g *Grid) GrowIfNearEdge(x, y, margin int) error {
	for g.nearEdge(x, y, margin) {
		if err := g.grow(); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) nearEdge(x, y, margin int) bool {
	px, py := x+g.ox, y+g.oy
	return px < margin || px >= g.w-margin || py < margin || py >= g.h-margin
}

func (g *Grid) grow() error {
	nw, nh := g.w*2, g.h*2
	if nw*nh > g.maxCells || nw*nh < 0 {
		return fmt.Errorf("%w: %dx%d", ErrGridTooLarge, nw, nh)
	}
	next := make([]uint8, nw*nh)
	shiftX := (nw - g.w) / 2
	shiftY := (nh - g.h) / 2
	for py := 0; py < g.h; py++ {
		src := g.data[py*g.w : (py+1)*g.w]
		dstStart := (py+shiftY)*nw + shiftX
		copy(next[dstStart:dstStart+g.w], src)
	}
	g.data = next
	g.w, g.h = nw, nh
	g.ox += shiftX
	g.oy += shiftY
	g.expands++
	return nil
}

// Viewport copies a w*h window of logical cells starting at (x0, y0) into a
// fresh row-major slice. Cells outside the physical buffer read as White.
func (g *Grid) Viewport(x0, y0, w, h int) []Cell {
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]Cell, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = g.Get(x0+x, y0+y)
		}
	}
	return out
}
