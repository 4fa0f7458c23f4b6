package tracking

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/genopt/genetic"
)

// MetricBundle is a generic container for named metrics
// Keys are metric names, values are float64 measurements
type MetricBundle map[string]float64

// Standard metric keys (conventions)
const (
	MetricGeneration = "generation"
	MetricBest       = "best"
	MetricWorst      = "worst"
	MetricMean       = "mean"
	MetricMedian     = "median"
	MetricStdDev     = "stddev"
	MetricDiversity  = "diversity"
	MetricPoolSize   = "pool_size"
)

// Get returns metric value or default if not present
func (b MetricBundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}

// Merge combines two bundles, other values override existing
func (b MetricBundle) Merge(other MetricBundle) MetricBundle {
	result := b.Clone()
	for k, v := range other {
		result[k] = v
	}
	return result
}

// Clone creates a deep copy
func (b MetricBundle) Clone() MetricBundle {
	result := make(MetricBundle, len(b))
	for k, v := range b {
		result[k] = v
	}
	return result
}

// FromPool extracts the standard metrics of one population snapshot
func FromPool[S genetic.Solution, F genetic.Numeric](pool *genetic.Pool[S, F]) MetricBundle {
	b := MetricBundle{
		MetricGeneration: float64(pool.Generation),
		MetricBest:       float64(pool.Stats.BestScore),
		MetricWorst:      float64(pool.Stats.WorstScore),
		MetricMean:       pool.Stats.AverageScore,
		MetricStdDev:     pool.Stats.StdDev,
		MetricDiversity:  pool.Stats.Diversity,
		MetricPoolSize:   float64(len(pool.Members)),
	}

	if len(pool.Members) > 0 {
		scores := make([]float64, len(pool.Members))
		for i, m := range pool.Members {
			scores[i] = float64(m.Score)
		}
		slices.Sort(scores)
		b[MetricMedian] = stat.Quantile(0.5, stat.Empirical, scores, nil)
	}

	return b
}
