package app

import (
	"flag"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/sims/langton"
	pkgcore "github.com/rodgzilla/langton-ant-machine-learning/pkg/core"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Size     int
	Scale    int
	SPS      int
	Seed     int64
	Pattern  bool
	Density  float64
	X, Y     int
	Dir      int
	MaxSteps int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Size: 100, Scale: 6, SPS: 120, Seed: 42, Density: 0.1, X: -1, Y: -1}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "initial grid size")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.SPS, "sps", c.SPS, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random initial pattern")
	fs.BoolVar(&c.Pattern, "pattern", c.Pattern, "seed the grid with a random pattern")
	fs.Float64Var(&c.Density, "density", c.Density, "black cell density of the random pattern")
	fs.IntVar(&c.X, "x", c.X, "ant start x (negative for center)")
	fs.IntVar(&c.Y, "y", c.Y, "ant start y (negative for center)")
	fs.IntVar(&c.Dir, "dir", c.Dir, "ant start direction (0=N 1=E 2=S 3=W)")
	fs.IntVar(&c.MaxSteps, "max-steps", c.MaxSteps, "step budget (0 for default)")
}

// Build assembles an engine configuration, generating the random initial
// pattern from the given seed when one was requested.
func (c *Config) Build(seed int64) langton.Config {
	cfg := langton.DefaultConfig()
	cfg.GridSize = c.Size
	cfg.StartX = c.X
	cfg.StartY = c.Y
	cfg.StartDirection = core.Direction(c.Dir)
	if c.MaxSteps > 0 {
		cfg.MaxSteps = c.MaxSteps
	}
	if c.Pattern {
		rng := pkgcore.NewRNG(seed)
		pattern := make([][]core.Cell, c.Size)
		for y := range pattern {
			row := make([]core.Cell, c.Size)
			rng.FillBernoulli(row, c.Density)
			pattern[y] = row
		}
		cfg.Pattern = pattern
	}
	return cfg
}
