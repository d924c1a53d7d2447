package langton

import (
	"fmt"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
)

// Defaults for the canonical rule. The highway period of 104 steps is the
// documented cycle length for the two-state ant; confirmation waits for two
// full periods of consecutive matches so transient repeats during the chaotic
// phase are rejected.
const (
	DefaultGridSize = 100
	DefaultMaxSteps = 100000
	DefaultMargin   = 10
	DefaultPeriod   = 104
)

// Config describes a single simulation run. The zero value of an optional
// field selects its default; StartX/StartY below zero place the ant at the
// grid center.
type Config struct {
	GridSize       int
	StartX         int
	StartY         int
	StartDirection core.Direction

	// Pattern optionally seeds the initial grid. When present its
	// dimensions must be exactly GridSize x GridSize.
	Pattern [][]core.Cell

	MaxSteps int
	Margin   int

	// Period and Confirm tune the highway detector. Tests use small
	// synthetic periods; production runs use the defaults.
	Period  int
	Confirm int

	// MaxCells caps grid growth; zero keeps core.DefaultMaxCells.
	MaxCells int
}

// DefaultConfig returns the canonical configuration: empty 100x100 grid, ant
// at the center facing north.
func DefaultConfig() Config {
	return Config{
		GridSize: DefaultGridSize,
		StartX:   -1,
		StartY:   -1,
		MaxSteps: DefaultMaxSteps,
		Margin:   DefaultMargin,
		Period:   DefaultPeriod,
	}
}

// ConfigError reports an invalid configuration field. Construction fails
// immediately; the simulation never starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("langton: invalid config field %s: %s", e.Field, e.Reason)
}

func (c *Config) applyDefaults() {
	if c.GridSize <= 0 {
		c.GridSize = DefaultGridSize
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	if c.Margin <= 0 {
		c.Margin = DefaultMargin
	}
	if c.Period <= 0 {
		c.Period = DefaultPeriod
	}
	if c.Confirm <= 0 {
		c.Confirm = 2 * c.Period
	}
	if c.StartX < 0 {
		c.StartX = c.GridSize / 2
	}
	if c.StartY < 0 {
		c.StartY = c.GridSize / 2
	}
}

func (c *Config) validate() error {
	if !c.StartDirection.Valid() {
		return &ConfigError{Field: "StartDirection", Reason: fmt.Sprintf("direction code %d not in 0..3", c.StartDirection)}
	}
	if c.StartX >= c.GridSize || c.StartY >= c.GridSize {
		return &ConfigError{
			Field:  "StartX/StartY",
			Reason: fmt.Sprintf("position (%d, %d) outside initial %dx%d grid", c.StartX, c.StartY, c.GridSize, c.GridSize),
		}
	}
	if c.Pattern != nil {
		if len(c.Pattern) != c.GridSize {
			return &ConfigError{
				Field:  "Pattern",
				Reason: fmt.Sprintf("pattern has %d rows, grid size is %d", len(c.Pattern), c.GridSize),
			}
		}
		for i, row := range c.Pattern {
			if len(row) != c.GridSize {
				return &ConfigError{
					Field:  "Pattern",
					Reason: fmt.Sprintf("pattern row %d has %d cells, grid size is %d", i, len(row), c.GridSize),
				}
			}
		}
	}
	return nil
}
