package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/sims/langton"
)

// RunCollector bundles Prometheus metrics for batch simulation runs and
// provides an HTTP handler to expose them during long generations.
type RunCollector struct {
	gatherer prometheus.Gatherer

	Simulations    *prometheus.CounterVec
	StepsToHighway prometheus.Histogram
	GridExpansions prometheus.Counter
	Ambiguous      prometheus.Counter
}

// NewRunCollector registers run metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewRunCollector(reg prometheus.Registerer) (*RunCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	simulations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "langton_simulations_total",
		Help: "Completed simulation runs, labeled by detected highway direction (none on timeout).",
	}, []string{"direction"})
	if err := reg.Register(simulations); err != nil {
		return nil, err
	}

	steps := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "langton_steps_to_highway",
		Help:    "Steps until the highway was confirmed, for runs that detected one.",
		Buckets: prometheus.ExponentialBuckets(1000, 2, 10),
	})
	if err := reg.Register(steps); err != nil {
		return nil, err
	}

	expansions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "langton_grid_expansions_total",
		Help: "Grid doubling expansions across all runs.",
	})
	if err := reg.Register(expansions); err != nil {
		return nil, err
	}

	ambiguous := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "langton_ambiguous_detections_total",
		Help: "Confirmed detections whose net displacement was not strictly diagonal.",
	})
	if err := reg.Register(ambiguous); err != nil {
		return nil, err
	}

	return &RunCollector{
		gatherer:       gatherer,
		Simulations:    simulations,
		StepsToHighway: steps,
		GridExpansions: expansions,
		Ambiguous:      ambiguous,
	}, nil
}

// ObserveResult records a completed run.
func (c *RunCollector) ObserveResult(res langton.Result) {
	if c == nil {
		return
	}
	if res.Detected {
		c.Simulations.WithLabelValues(res.Heading.String()).Inc()
		c.StepsToHighway.Observe(float64(res.StepsToHighway))
	} else {
		c.Simulations.WithLabelValues(langton.HeadingNone.String()).Inc()
	}
	if res.Ambiguous {
		c.Ambiguous.Inc()
	}
	c.GridExpansions.Add(float64(res.Expansions))
}

// Handler returns an HTTP handler serving the collector's metrics.
func (c *RunCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
