package tracking

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/genopt/genetic"
)

// Prometheus exports the latest snapshot metrics as gauges labelled by problem
type Prometheus struct {
	generation prometheus.Gauge
	best       prometheus.Gauge
	worst      prometheus.Gauge
	mean       prometheus.Gauge
	diversity  prometheus.Gauge
	snapshots  prometheus.Counter
}

// NewPrometheus registers the GA gauges on reg
func NewPrometheus(reg prometheus.Registerer, problem string) (*Prometheus, error) {
	labels := prometheus.Labels{"problem": problem}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "genopt",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	p := &Prometheus{
		generation: gauge("generation", "Generation of the latest snapshot."),
		best:       gauge("best_fitness", "Best fitness in the latest snapshot."),
		worst:      gauge("worst_fitness", "Worst fitness in the latest snapshot."),
		mean:       gauge("mean_fitness", "Mean fitness in the latest snapshot."),
		diversity:  gauge("diversity", "Fraction of distinct genomes in the latest snapshot."),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "genopt",
			Name:        "snapshots_total",
			Help:        "Population snapshots observed.",
			ConstLabels: labels,
		}),
	}

	for _, c := range []prometheus.Collector{p.generation, p.best, p.worst, p.mean, p.diversity, p.snapshots} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "register genopt metrics")
		}
	}
	return p, nil
}

// Record sets the gauges from a metric bundle
func (p *Prometheus) Record(b MetricBundle) {
	p.generation.Set(b.Get(MetricGeneration, 0))
	p.best.Set(b.Get(MetricBest, 0))
	p.worst.Set(b.Get(MetricWorst, 0))
	p.mean.Set(b.Get(MetricMean, 0))
	p.diversity.Set(b.Get(MetricDiversity, 0))
	p.snapshots.Inc()
}

// PrometheusObserver adapts the exporter into an engine observer
func PrometheusObserver[S genetic.Solution, F genetic.Numeric](p *Prometheus) genetic.Observer[S, F] {
	return func(pool *genetic.Pool[S, F]) {
		p.Record(FromPool(pool))
	}
}
