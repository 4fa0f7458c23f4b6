package genetic

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// --- Algorithm Engine ---

// Engine is the generational genetic algorithm driver.
// It owns the configuration, the random stream and the current population.
type Engine[S Solution, F Numeric] struct {
	// Core operators
	encoding Encoding[S, F]
	selector Selector[S, F]
	observer Observer[S, F]

	// Configuration
	config EngineConfig
	seed   uint64
	runID  uuid.UUID

	// State
	rng        *rand.Rand
	population []S
	generation int
	current    *Pool[S, F]
	history    []PoolStats[F]
}

// NewEngine validates the configuration and creates an engine in the initialized state
func NewEngine[S Solution, F Numeric](
	encoding Encoding[S, F],
	selector Selector[S, F],
	config EngineConfig,
) (*Engine[S, F], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if encoding.Length() != config.GenomeLength {
		return nil, errors.Wrapf(ErrInvalidConfig, "encoding length %d does not match genome length %d",
			encoding.Length(), config.GenomeLength)
	}
	if selector == nil {
		selector = NewTruncationSelector(encoding)
	}

	// Initialize random number generator
	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Engine[S, F]{
		encoding: encoding,
		selector: selector,
		config:   config,
		seed:     seed,
		runID:    uuid.New(),
		rng:      rand.New(rand.NewPCG(seed, seed)),
	}, nil
}

// SetObserver sets the per-generation snapshot callback
func (e *Engine[S, F]) SetObserver(observer Observer[S, F]) {
	e.observer = observer
}

// Seed returns the effective seed, including one drawn for Seed == 0
func (e *Engine[S, F]) Seed() uint64 {
	return e.seed
}

// RunID returns the identifier stamped on every snapshot of this engine
func (e *Engine[S, F]) RunID() uuid.UUID {
	return e.runID
}

// Config returns a copy of the engine configuration
func (e *Engine[S, F]) Config() EngineConfig {
	return e.config
}

// Run initializes the population and evolves it for the configured number of generations
func (e *Engine[S, F]) Run() *Pool[S, F] {
	e.initializePopulation()
	if e.config.ObserveInitial {
		e.emit()
	}

	for e.generation < e.config.Generations {
		e.Step()
	}

	return e.current
}

// Step evolves exactly one generation; initializes the population first if needed
func (e *Engine[S, F]) Step() *Pool[S, F] {
	if e.population == nil {
		e.initializePopulation()
	}

	e.population = e.evolveGeneration()
	e.generation++
	e.emit()
	e.history = append(e.history, e.current.Stats)

	return e.current
}

// initializePopulation creates PoolSize uniformly random individuals
func (e *Engine[S, F]) initializePopulation() {
	population := make([]S, e.config.PoolSize)
	for i := range population {
		population[i] = e.encoding.Random(e.rng)
	}

	e.population = population
	e.generation = 0
	e.current = e.snapshot()
	e.history = make([]PoolStats[F], 0, e.config.Generations)
}

// evolveGeneration selects survivors then refills to PoolSize with mutated offspring
func (e *Engine[S, F]) evolveGeneration() []S {
	keep := SurvivorCount(e.config.PoolSize, e.config.SelectionRate)
	selected := e.selector.Select(e.population, keep, e.rng)

	nextGen := make([]S, 0, e.config.PoolSize)
	nextGen = append(nextGen, selected...)

	// Parents are drawn with replacement from survivors only, never from new offspring
	for len(nextGen) < e.config.PoolSize {
		parentA := selected[e.rng.IntN(len(selected))]
		parentB := selected[e.rng.IntN(len(selected))]

		child := e.encoding.Combine(parentA, parentB, e.rng)
		child = e.encoding.Perturb(child, e.config.PerturbationRate, e.rng)

		nextGen = append(nextGen, child)
	}

	return nextGen
}

// emit refreshes the current snapshot and hands it to the observer
func (e *Engine[S, F]) emit() {
	e.current = e.snapshot()
	if e.observer != nil {
		e.observer(e.current)
	}
}

// snapshot scores the population in its current order; genomes are cloned so observers cannot reach live state
func (e *Engine[S, F]) snapshot() *Pool[S, F] {
	members := make([]Candidate[S, F], len(e.population))
	for i, ind := range e.population {
		members[i] = Candidate[S, F]{Data: e.encoding.Clone(ind), Score: e.encoding.Evaluate(ind)}
	}

	return &Pool[S, F]{
		Members:    members,
		Generation: e.generation,
		RunID:      e.runID,
		Stats:      calculateStats(members),
	}
}

// calculateStats computes statistical measures for a candidate pool
func calculateStats[S Solution, F Numeric](candidates []Candidate[S, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	stats := PoolStats[F]{
		BestScore:  candidates[0].Score,
		WorstScore: candidates[0].Score,
	}

	scores := make([]float64, len(candidates))
	distinct := make(map[string]struct{}, len(candidates))
	for i, c := range candidates {
		if c.Score > stats.BestScore {
			stats.BestScore = c.Score
		}
		if c.Score < stats.WorstScore {
			stats.WorstScore = c.Score
		}
		scores[i] = float64(c.Score)
		distinct[fmt.Sprint(c.Data)] = struct{}{}
	}

	stats.AverageScore, stats.StdDev = stat.PopMeanStdDev(scores, nil)
	stats.Diversity = float64(len(distinct)) / float64(len(candidates))

	return stats
}

// Population returns a deep copy of the current population in order; nil before the first run
func (e *Engine[S, F]) Population() []S {
	if e.population == nil {
		return nil
	}
	out := make([]S, len(e.population))
	for i, ind := range e.population {
		out[i] = e.encoding.Clone(ind)
	}
	return out
}

// Generation returns the number of completed generations
func (e *Engine[S, F]) Generation() int {
	return e.generation
}

// GetHistory returns a copy of the per-generation statistics, excluding generation 0
func (e *Engine[S, F]) GetHistory() []PoolStats[F] {
	return slices.Clone(e.history)
}

// GetBest returns the best candidate of the current population
func (e *Engine[S, F]) GetBest() (Candidate[S, F], error) {
	if e.current == nil || len(e.current.Members) == 0 {
		return Candidate[S, F]{}, errors.New("no candidates available")
	}

	best := e.current.Members[0]
	for _, c := range e.current.Members[1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	return best, nil
}
