package langton

import (
	"log/slog"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
)

// Engine owns the grid, the ant and the detector for a single run. A run is
// strictly sequential; concurrent runs each get their own Engine and share
// nothing.
type Engine struct {
	cfg  Config
	grid *core.Grid
	ant  Ant
	det  *Detector

	steps int
}

// Result is the outcome of a completed run. Timeout is an ordinary outcome,
// not an error: Detected is false and StepsToHighway is meaningless.
type Result struct {
	Detected       bool
	Heading        Heading
	Ambiguous      bool
	StepsToHighway int
	Expansions     int
	FinalSize      core.Size
}

// Snapshot is a read-only view of the engine for observers such as the
// viewer. Querying it never mutates engine state.
type Snapshot struct {
	Step       int
	AntX, AntY int
	Facing     core.Direction
	GridSize   core.Size
	Expansions int
	Status     Status
	Heading    Heading
	Ambiguous  bool
}

// New validates the configuration and builds an engine. Invalid
// configurations fail with a *ConfigError before any stepping happens.
func New(cfg Config) (*Engine, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	grid := core.NewGrid(cfg.GridSize, cfg.GridSize)
	if cfg.MaxCells > 0 {
		grid.SetMaxCells(cfg.MaxCells)
	}
	for y, row := range cfg.Pattern {
		for x, c := range row {
			if c != core.White {
				grid.Set(x, y, core.Black)
			}
		}
	}

	return &Engine{
		cfg:  cfg,
		grid: grid,
		ant:  Ant{X: cfg.StartX, Y: cfg.StartY, Facing: cfg.StartDirection},
		det:  NewDetector(cfg.Period, cfg.Confirm),
	}, nil
}

// Config returns the effective configuration after defaulting.
func (e *Engine) Config() Config { return e.cfg }

// Steps returns the number of steps taken so far.
func (e *Engine) Steps() int { return e.steps }

// Ant returns the agent's current state.
func (e *Engine) Ant() Ant { return e.ant }

// Step advances the automaton by one step: read the cell under the ant,
// turn and flip per the rule, then move one cell along the new facing. The
// grid grows before the position update so Get/Set never see an out-of-range
// coordinate. The only error is ErrGridTooLarge from a failed expansion.
func (e *Engine) Step() error {
	cell := e.grid.Get(e.ant.X, e.ant.Y)
	facing, next, dx, dy := applyRule(cell, e.ant.Facing)
	e.grid.Set(e.ant.X, e.ant.Y, next)
	e.ant.Facing = facing

	nx, ny := e.ant.X+dx, e.ant.Y+dy
	if err := e.grid.GrowIfNearEdge(nx, ny, e.cfg.Margin); err != nil {
		return err
	}
	e.ant.X, e.ant.Y = nx, ny
	e.steps++

	e.det.Observe(core.StepRecord{Facing: facing, DX: dx, DY: dy})
	return nil
}

// RunUntilHighway steps until the detector confirms a highway or MaxSteps is
// reached. The returned error is non-nil only for resource exhaustion.
func (e *Engine) RunUntilHighway() (Result, error) {
	for e.steps < e.cfg.MaxSteps {
		if err := e.Step(); err != nil {
			return Result{}, err
		}
		if e.det.Status() == StatusConfirmed {
			if e.det.Ambiguous() {
				slog.Warn("ambiguous highway classification",
					"step", e.steps,
					"period", e.cfg.Period)
			}
			return Result{
				Detected:       true,
				Heading:        e.det.Heading(),
				Ambiguous:      e.det.Ambiguous(),
				StepsToHighway: e.steps,
				Expansions:     e.grid.Expansions(),
				FinalSize:      e.grid.Size(),
			}, nil
		}
	}
	return Result{
		Expansions: e.grid.Expansions(),
		FinalSize:  e.grid.Size(),
	}, nil
}

// Snapshot captures the current observable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Step:       e.steps,
		AntX:       e.ant.X,
		AntY:       e.ant.Y,
		Facing:     e.ant.Facing,
		GridSize:   e.grid.Size(),
		Expansions: e.grid.Expansions(),
		Status:     e.det.Status(),
		Heading:    e.det.Heading(),
		Ambiguous:  e.det.Ambiguous(),
	}
}

// Viewport copies a window of logical cells for rendering.
func (e *Engine) Viewport(x0, y0, w, h int) []core.Cell {
	return e.grid.Viewport(x0, y0, w, h)
}

// Bounds returns the logical coordinate range currently backed by the grid.
func (e *Engine) Bounds() (minX, minY, maxX, maxY int) {
	return e.grid.Bounds()
}

// Cell reads a single logical cell.
func (e *Engine) Cell(x, y int) core.Cell {
	return e.grid.Get(x, y)
}
