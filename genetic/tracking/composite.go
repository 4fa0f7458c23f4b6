package tracking

import "github.com/lixenwraith/genopt/genetic"

// Fanout calls every non-nil observer in order with the same snapshot
func Fanout[S genetic.Solution, F genetic.Numeric](observers ...genetic.Observer[S, F]) genetic.Observer[S, F] {
	active := make([]genetic.Observer[S, F], 0, len(observers))
	for _, o := range observers {
		if o != nil {
			active = append(active, o)
		}
	}

	return func(pool *genetic.Pool[S, F]) {
		for _, o := range active {
			o(pool)
		}
	}
}

// Every forwards snapshots whose generation is a multiple of n; n <= 1 forwards all
func Every[S genetic.Solution, F genetic.Numeric](n int, observer genetic.Observer[S, F]) genetic.Observer[S, F] {
	if n <= 1 {
		return observer
	}
	return EveryFrom(0, n, observer)
}

// EveryFrom forwards generations first, first+n, first+2n and so on; n <= 1 forwards every generation from first
func EveryFrom[S genetic.Solution, F genetic.Numeric](first, n int, observer genetic.Observer[S, F]) genetic.Observer[S, F] {
	n = max(n, 1)
	return func(pool *genetic.Pool[S, F]) {
		if pool.Generation >= first && (pool.Generation-first)%n == 0 {
			observer(pool)
		}
	}
}
