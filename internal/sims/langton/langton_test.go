package langton

import (
	"errors"
	"testing"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.GridSize = 11
	cfg.StartX = 5
	cfg.StartY = 5
	cfg.Margin = 2
	return cfg
}

func TestTurnRightOnWhite(t *testing.T) {
	eng, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := eng.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	ant := eng.Ant()
	if ant.Facing != core.East {
		t.Fatalf("facing = %s, want E after right turn from N", ant.Facing)
	}
	if got := eng.Cell(5, 5); got != core.Black {
		t.Fatalf("departed cell = %d, want black", got)
	}
	if ant.X != 6 || ant.Y != 5 {
		t.Fatalf("ant at (%d, %d), want (6, 5)", ant.X, ant.Y)
	}
	if eng.Steps() != 1 {
		t.Fatalf("steps = %d, want 1", eng.Steps())
	}
}

func TestTurnLeftOnBlack(t *testing.T) {
	cfg := smallConfig()
	cfg.Pattern = make([][]core.Cell, cfg.GridSize)
	for y := range cfg.Pattern {
		cfg.Pattern[y] = make([]core.Cell, cfg.GridSize)
	}
	cfg.Pattern[5][5] = core.Black

	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := eng.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}

	ant := eng.Ant()
	if ant.Facing != core.West {
		t.Fatalf("facing = %s, want W after left turn from N", ant.Facing)
	}
	if got := eng.Cell(5, 5); got != core.White {
		t.Fatalf("departed cell = %d, want white", got)
	}
	if ant.X != 4 || ant.Y != 5 {
		t.Fatalf("ant at (%d, %d), want (4, 5)", ant.X, ant.Y)
	}
}

func TestStepMovesExactlyOneCell(t *testing.T) {
	eng, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 50; i++ {
		before := eng.Ant()
		if err := eng.Step(); err != nil {
			t.Fatalf("Step %d: %v", i, err)
		}
		after := eng.Ant()
		dx, dy := after.Facing.Vector()
		if after.X-before.X != dx || after.Y-before.Y != dy {
			t.Fatalf("step %d: moved (%d, %d), facing %s expects (%d, %d)",
				i, after.X-before.X, after.Y-before.Y, after.Facing, dx, dy)
		}
	}
}

func TestConfigValidation(t *testing.T) {
	badPattern := make([][]core.Cell, 5)
	for y := range badPattern {
		badPattern[y] = make([]core.Cell, 5)
	}
	raggedPattern := make([][]core.Cell, 10)
	for y := range raggedPattern {
		raggedPattern[y] = make([]core.Cell, 10)
	}
	raggedPattern[3] = make([]core.Cell, 7)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"direction code out of range", func(c *Config) { c.StartDirection = 4 }},
		{"start position outside grid", func(c *Config) { c.StartX = 20 }},
		{"pattern row count mismatch", func(c *Config) { c.Pattern = badPattern }},
		{"pattern row width mismatch", func(c *Config) { c.Pattern = raggedPattern }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.GridSize = 10
			tc.mutate(&cfg)
			_, err := New(cfg)
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
		})
	}
}

func TestDeterministicTrajectories(t *testing.T) {
	build := func() *Engine {
		eng, err := New(DefaultConfig())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return eng
	}
	a, b := build(), build()
	for i := 0; i < 3000; i++ {
		if err := a.Step(); err != nil {
			t.Fatalf("a.Step: %v", err)
		}
		if err := b.Step(); err != nil {
			t.Fatalf("b.Step: %v", err)
		}
		if a.Snapshot() != b.Snapshot() {
			t.Fatalf("trajectories diverge at step %d:\n  a: %+v\n  b: %+v", i+1, a.Snapshot(), b.Snapshot())
		}
	}
}

func TestDeterministicResults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 2000
	run := func() Result {
		eng, err := New(cfg)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		res, err := eng.RunUntilHighway()
		if err != nil {
			t.Fatalf("RunUntilHighway: %v", err)
		}
		return res
	}
	if a, b := run(), run(); a != b {
		t.Fatalf("identical configurations produced different results:\n  a: %+v\n  b: %+v", a, b)
	}
}

func TestNoConfirmationDuringChaos(t *testing.T) {
	eng, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 1000; i++ {
		if err := eng.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		if snap := eng.Snapshot(); snap.Status == StatusConfirmed {
			t.Fatalf("detector confirmed at step %d, chaotic phase lasts far longer", i+1)
		}
	}
}

func TestCanonicalHighwayRegression(t *testing.T) {
	eng, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.RunUntilHighway()
	if err != nil {
		t.Fatalf("RunUntilHighway: %v", err)
	}
	if !res.Detected {
		t.Fatal("canonical configuration must reach a confirmed highway")
	}
	if res.Heading == HeadingNone || res.Ambiguous {
		t.Fatalf("heading = %s (ambiguous=%v), want a definite diagonal", res.Heading, res.Ambiguous)
	}
	if res.StepsToHighway < 10000 || res.StepsToHighway > 12000 {
		t.Fatalf("confirmed at step %d, documented range is [10000, 12000]", res.StepsToHighway)
	}
}

func TestTimeoutIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSteps = 500
	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.RunUntilHighway()
	if err != nil {
		t.Fatalf("RunUntilHighway: %v", err)
	}
	if res.Detected {
		t.Fatal("500 steps cannot reach the highway")
	}
	if res.Heading != HeadingNone {
		t.Fatalf("heading = %s, want none on timeout", res.Heading)
	}
	if res.FinalSize.W == 0 || res.FinalSize.H == 0 {
		t.Fatal("timeout result must still report the final grid size")
	}
}

func TestSnapshotDoesNotMutate(t *testing.T) {
	eng, err := New(smallConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := eng.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	first := eng.Snapshot()
	second := eng.Snapshot()
	if first != second {
		t.Fatalf("repeated snapshots differ: %+v vs %+v", first, second)
	}
	if eng.Steps() != 10 {
		t.Fatalf("snapshot advanced the engine to step %d", eng.Steps())
	}
}

func TestGrowthKeepsStepping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 20
	cfg.Margin = 5
	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 2000; i++ {
		if err := eng.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if snap := eng.Snapshot(); snap.Expansions == 0 {
		t.Fatal("a 20x20 grid must expand within 2000 steps")
	}
}

func TestGridCapAbortsRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridSize = 20
	cfg.Margin = 5
	cfg.MaxCells = 20 * 20
	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = eng.RunUntilHighway()
	if !errors.Is(err, core.ErrGridTooLarge) {
		t.Fatalf("err = %v, want ErrGridTooLarge", err)
	}
}
