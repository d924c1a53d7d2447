package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/dataset"
)

func main() {
	dir := flag.String("dataset", "dataset", "dataset directory to analyze")
	prefix := flag.String("prefix", "sim", "record filename prefix")
	out := flag.String("out", "", "write a steps-to-highway histogram PNG to this path")
	buckets := flag.Int("buckets", 20, "number of histogram buckets")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	records, err := dataset.Load(*dir, *prefix)
	if err != nil {
		logger.Error("load failed", "err", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Error("no records found", "dir", *dir, "prefix", *prefix)
		os.Exit(1)
	}

	tally := map[string]int{}
	var steps []int
	ambiguous := 0
	for _, rec := range records {
		tally[rec.HighwayDirection]++
		if rec.StepsToHighway != nil {
			steps = append(steps, *rec.StepsToHighway)
		}
		if rec.Ambiguous {
			ambiguous++
		}
	}

	fmt.Printf("records: %d\n", len(records))
	for _, dirName := range []string{"NE", "NW", "SE", "SW", "none"} {
		fmt.Printf("  %-5s %d\n", dirName, tally[dirName])
	}
	fmt.Printf("  ambiguous %d\n", ambiguous)
	if len(steps) > 0 {
		minS, maxS, sum := steps[0], steps[0], 0
		for _, s := range steps {
			if s < minS {
				minS = s
			}
			if s > maxS {
				maxS = s
			}
			sum += s
		}
		fmt.Printf("steps to highway: min %d, max %d, mean %.1f\n", minS, maxS, float64(sum)/float64(len(steps)))
	}

	if *out == "" {
		return
	}
	if len(steps) == 0 {
		logger.Error("no detected runs to plot")
		os.Exit(1)
	}
	if err := renderHistogram(*out, steps, *buckets); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
	logger.Info("wrote histogram", "path", *out)
}

func renderHistogram(path string, steps []int, buckets int) error {
	if buckets <= 0 {
		buckets = 20
	}
	minS, maxS := steps[0], steps[0]
	for _, s := range steps {
		if s < minS {
			minS = s
		}
		if s > maxS {
			maxS = s
		}
	}
	width := (maxS - minS + buckets) / buckets
	if width <= 0 {
		width = 1
	}
	counts := make([]int, buckets)
	for _, s := range steps {
		idx := (s - minS) / width
		if idx >= buckets {
			idx = buckets - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, buckets)
	for i, c := range counts {
		bars[i] = chart.Value{
			Value: float64(c),
			Label: fmt.Sprintf("%d", minS+i*width),
		}
	}

	graph := chart.BarChart{
		Title:    "Steps to highway",
		Width:    1024,
		Height:   512,
		BarWidth: 900 / buckets,
		Bars:     bars,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
