package dataset

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/observability"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/sims/langton"
	pkgcore "github.com/rodgzilla/langton-ant-machine-learning/pkg/core"
)

// GeneratorConfig controls a batch generation run.
type GeneratorConfig struct {
	Count          int
	OutputDir      string
	GridSize       int
	MaxSteps       int
	AllowPatterns  bool
	PatternDensity float64
	Prefix         string
	Workers        int
	Seed           int64
}

// DefaultGeneratorConfig returns the standard batch settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir:      "dataset",
		GridSize:       100,
		MaxSteps:       100000,
		AllowPatterns:  true,
		PatternDensity: 0.1,
		Prefix:         "sim",
		Workers:        runtime.NumCPU(),
		Seed:           1,
	}
}

// Generator produces datasets of independent simulation runs. Runs share no
// state, so they fan out across a worker pool; all randomness derives from
// the master seed so a batch replays identically regardless of worker count.
type Generator struct {
	cfg     GeneratorConfig
	log     *slog.Logger
	metrics *observability.RunCollector
}

// NewGenerator builds a generator. Logger and metrics may be nil.
func NewGenerator(cfg GeneratorConfig, log *slog.Logger, metrics *observability.RunCollector) *Generator {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "sim"
	}
	return &Generator{cfg: cfg, log: log, metrics: metrics}
}

// RandomConfig draws one simulation configuration: start position uniform
// inside the center half of the grid, uniform start direction, and an
// optional Bernoulli pattern at the configured density.
func (g *Generator) RandomConfig(rng *pkgcore.RNG) langton.Config {
	cfg := langton.DefaultConfig()
	cfg.GridSize = g.cfg.GridSize
	cfg.MaxSteps = g.cfg.MaxSteps

	edge := g.cfg.GridSize / 4
	cfg.StartX = rng.IntRange(edge, g.cfg.GridSize-edge)
	cfg.StartY = rng.IntRange(edge, g.cfg.GridSize-edge)
	cfg.StartDirection = core.Direction(rng.IntN(4))

	if g.cfg.AllowPatterns {
		pattern := make([][]core.Cell, g.cfg.GridSize)
		for y := range pattern {
			row := make([]core.Cell, g.cfg.GridSize)
			rng.FillBernoulli(row, g.cfg.PatternDensity)
			pattern[y] = row
		}
		cfg.Pattern = pattern
	}
	return cfg
}

// RunOne executes a single configuration and converts it to a record.
func RunOne(cfg langton.Config) (Record, error) {
	eng, err := langton.New(cfg)
	if err != nil {
		return Record{}, err
	}
	res, err := eng.RunUntilHighway()
	if err != nil {
		return Record{}, err
	}
	return NewRecord(eng.Config(), res), nil
}

// Run generates the whole batch, saving each record as it completes, and
// returns the records in generation order.
func (g *Generator) Run() ([]Record, error) {
	// Configurations are drawn sequentially from the master RNG so the
	// batch is deterministic; only the runs themselves fan out.
	rng := pkgcore.NewRNG(g.cfg.Seed)
	configs := make([]langton.Config, g.cfg.Count)
	for i := range configs {
		configs[i] = g.RandomConfig(rng)
	}

	type job struct {
		index int
		cfg   langton.Config
	}
	type outcome struct {
		index  int
		record Record
		err    error
	}

	jobs := make(chan job)
	results := make(chan outcome)
	var wg sync.WaitGroup

	for i := 0; i < g.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				rec, err := RunOne(j.cfg)
				results <- outcome{index: j.index, record: rec, err: err}
			}
		}()
	}

	go func() {
		for i, cfg := range configs {
			jobs <- job{index: i, cfg: cfg}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	records := make([]Record, g.cfg.Count)
	var firstErr error
	done := 0
	for out := range results {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
			}
			g.log.Error("simulation failed", "index", out.index, "err", out.err)
			continue
		}
		name := fmt.Sprintf("%s_%06d", g.cfg.Prefix, out.index)
		if err := out.record.Save(g.cfg.OutputDir, name); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			g.log.Error("save failed", "index", out.index, "err", err)
			continue
		}
		if g.metrics != nil {
			g.metrics.ObserveResult(resultFromRecord(out.record))
		}
		records[out.index] = out.record
		done++
		if done%10 == 0 || done == g.cfg.Count {
			g.log.Info("progress", "completed", done, "total", g.cfg.Count)
		}
	}
	if firstErr != nil {
		return records, firstErr
	}
	return records, nil
}

// resultFromRecord reconstructs the result fields the collector needs.
func resultFromRecord(rec Record) langton.Result {
	res := langton.Result{
		Heading:    langton.ParseHeading(rec.HighwayDirection),
		Ambiguous:  rec.Ambiguous,
		Expansions: rec.GridExpansions,
	}
	if rec.StepsToHighway != nil {
		res.Detected = true
		res.StepsToHighway = *rec.StepsToHighway
	}
	return res
}
