package tracking

import (
	"github.com/lixenwraith/genopt/genetic"
)

// Collector accumulates metrics over a run, one bundle per generation
type Collector interface {
	// Collect records metrics for a single generation
	Collect(metrics MetricBundle)

	// Finalize returns accumulated metrics
	Finalize() MetricBundle
}

// StandardCollector implements Collector with per-key aggregates
type StandardCollector struct {
	generations int
	sums        map[string]float64
	counts      map[string]int
	mins        map[string]float64
	maxs        map[string]float64
	firsts      map[string]float64
	lasts       map[string]float64
	series      []MetricBundle
}

// NewStandardCollector creates an empty collector
func NewStandardCollector() *StandardCollector {
	return &StandardCollector{
		sums:   make(map[string]float64),
		counts: make(map[string]int),
		mins:   make(map[string]float64),
		maxs:   make(map[string]float64),
		firsts: make(map[string]float64),
		lasts:  make(map[string]float64),
	}
}

func (c *StandardCollector) Collect(metrics MetricBundle) {
	c.generations++
	c.series = append(c.series, metrics.Clone())

	for key, value := range metrics {
		if _, seen := c.firsts[key]; !seen {
			c.firsts[key] = value
			c.mins[key] = value
			c.maxs[key] = value
		}
		c.sums[key] += value
		c.counts[key]++
		c.lasts[key] = value

		if value < c.mins[key] {
			c.mins[key] = value
		}
		if value > c.maxs[key] {
			c.maxs[key] = value
		}
	}
}

// Finalize reports avg_, min_, max_, first_ and last_ aggregates per key, plus the snapshot count
func (c *StandardCollector) Finalize() MetricBundle {
	result := MetricBundle{"snapshots": float64(c.generations)}

	for key, sum := range c.sums {
		if count := c.counts[key]; count > 0 {
			result["avg_"+key] = sum / float64(count)
		}
	}
	for key, val := range c.mins {
		result["min_"+key] = val
	}
	for key, val := range c.maxs {
		result["max_"+key] = val
	}
	for key, val := range c.firsts {
		result["first_"+key] = val
	}
	for key, val := range c.lasts {
		result["last_"+key] = val
	}

	return result
}

// Series returns every collected bundle in order
func (c *StandardCollector) Series() []MetricBundle {
	return c.series
}

// Observe adapts a collector into an engine observer
func Observe[S genetic.Solution, F genetic.Numeric](c Collector) genetic.Observer[S, F] {
	return func(pool *genetic.Pool[S, F]) {
		c.Collect(FromPool(pool))
	}
}
