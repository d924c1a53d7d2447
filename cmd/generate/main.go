package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/dataset"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/observability"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/sims/langton"
)

func main() {
	cfg := dataset.DefaultGeneratorConfig()
	flag.IntVar(&cfg.Count, "count", 0, "number of simulations to generate")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "output directory for the dataset")
	flag.IntVar(&cfg.GridSize, "grid-size", cfg.GridSize, "initial grid size for each run")
	flag.IntVar(&cfg.MaxSteps, "max-steps", cfg.MaxSteps, "maximum steps per simulation")
	noPatterns := flag.Bool("no-patterns", false, "start every run from an empty grid")
	flag.Float64Var(&cfg.PatternDensity, "pattern-density", cfg.PatternDensity, "black cell density of random initial patterns")
	flag.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "prefix for output filenames")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of worker goroutines")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "master seed for configuration sampling")
	metricsAddr := flag.String("metrics-addr", "", "expose Prometheus metrics on this address while generating")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if cfg.Count <= 0 {
		logger.Error("count must be positive")
		os.Exit(1)
	}
	cfg.AllowPatterns = !*noPatterns

	collector, err := observability.NewRunCollector(prometheus.NewRegistry())
	if err != nil {
		logger.Error("metrics setup failed", "err", err)
		os.Exit(1)
	}
	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics server stopped", "err", err)
			}
		}()
		logger.Info("serving metrics", "addr", *metricsAddr)
	}

	gen := dataset.NewGenerator(cfg, logger, collector)
	logger.Info("generating dataset",
		"count", cfg.Count,
		"grid_size", cfg.GridSize,
		"max_steps", cfg.MaxSteps,
		"workers", cfg.Workers,
		"output", cfg.OutputDir)

	records, err := gen.Run()
	if err != nil {
		logger.Error("generation failed", "err", err)
		os.Exit(1)
	}

	tally := map[string]int{}
	for _, rec := range records {
		tally[rec.HighwayDirection]++
	}
	logger.Info("done",
		"total", len(records),
		"ne", tally[langton.HeadingNE.String()],
		"nw", tally[langton.HeadingNW.String()],
		"se", tally[langton.HeadingSE.String()],
		"sw", tally[langton.HeadingSW.String()],
		"none", tally[langton.HeadingNone.String()])
}
