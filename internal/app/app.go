//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/render"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/sims/langton"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/ui"
)

// Game adapts a simulation engine to the ebiten.Game interface. The view is
// a fixed-size window onto the logical grid that follows the ant as it
// wanders and as the grid grows underneath it.
type Game struct {
	cfg     *Config
	eng     *langton.Engine
	painter *render.GridPainter
	overlay *ui.Overlay
	pacer   *core.FixedStep

	onColor  color.Color
	offColor color.Color
	antColor color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	viewX, viewY int
	viewW, viewH int
}

// New constructs a Game for the provided viewer configuration.
func New(cfg *Config) (*Game, error) {
	eng, err := langton.New(cfg.Build(cfg.Seed))
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		eng:      eng,
		painter:  render.NewGridPainter(cfg.Size, cfg.Size),
		overlay:  ui.NewOverlay(),
		pacer:    core.NewFixedStep(cfg.SPS),
		onColor:  color.Black,
		offColor: color.White,
		antColor: color.RGBA{R: 255, A: 255},
		scale:    cfg.Scale,
		seed:     cfg.Seed,
		viewW:    cfg.Size,
		viewH:    cfg.Size,
	}
	g.centerView()
	return g, nil
}

// Reset rebuilds the engine from the configuration with the provided seed.
func (g *Game) Reset(seed int64) error {
	eng, err := langton.New(g.cfg.Build(seed))
	if err != nil {
		return err
	}
	g.seed = seed
	g.eng = eng
	g.tickOnce = false
	g.centerView()
	return nil
}

// Update handles per-frame input and advances the simulation at the paced
// rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.pacer.SetTPS(min(g.pacer.TPS()*2, 1<<16))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.pacer.SetTPS(max(g.pacer.TPS()/2, 1))
	}

	g.overlay.Update()

	switch {
	case g.tickOnce:
		g.tickOnce = false
		if err := g.eng.Step(); err != nil {
			return err
		}
	case !g.paused:
		due := g.pacer.Pending()
		// Cap catch-up work so a stalled frame cannot freeze the loop.
		if limit := g.pacer.TPS(); due > limit {
			due = limit
		}
		for i := 0; i < due && g.eng.Steps() < g.eng.Config().MaxSteps; i++ {
			if err := g.eng.Step(); err != nil {
				return err
			}
		}
	}

	g.followAnt()
	return nil
}

// Draw renders the current viewport, the ant, and the status overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	cells := g.eng.Viewport(g.viewX, g.viewY, g.viewW, g.viewH)
	g.painter.Blit(screen, cells, g.onColor, g.offColor, g.scale)

	ant := g.eng.Ant()
	g.painter.Marker(screen, ant.X-g.viewX, ant.Y-g.viewY, g.scale, g.antColor)

	g.overlay.Draw(screen, g.eng.Snapshot(), g.pacer.TPS(), g.paused)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewW * g.scale, g.viewH * g.scale
}

func (g *Game) centerView() {
	ant := g.eng.Ant()
	g.viewX = ant.X - g.viewW/2
	g.viewY = ant.Y - g.viewH/2
	g.clampView()
}

// followAnt recenters the viewport once the ant gets close to its edge.
func (g *Game) followAnt() {
	margin := min(g.viewW/4, g.viewH/4, 20)
	ant := g.eng.Ant()
	relX := ant.X - g.viewX
	relY := ant.Y - g.viewY
	if relX < margin || relX >= g.viewW-margin || relY < margin || relY >= g.viewH-margin {
		g.centerView()
	}
}

func (g *Game) clampView() {
	minX, minY, maxX, maxY := g.eng.Bounds()
	if g.viewX > maxX-g.viewW {
		g.viewX = maxX - g.viewW
	}
	if g.viewX < minX {
		g.viewX = minX
	}
	if g.viewY > maxY-g.viewH {
		g.viewY = maxY - g.viewH
	}
	if g.viewY < minY {
		g.viewY = minY
	}
}
