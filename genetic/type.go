package genetic

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a genome encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Core Data Structures ---

// Candidate is an individual paired with the score it had when the snapshot was taken
type Candidate[S Solution, F Numeric] struct {
	// Data holds the genome; snapshot copies are owned by the receiver
	Data S
	// Score is the fitness of Data (higher = better)
	Score F
}

// Pool is an ordered population snapshot emitted once per generation
type Pool[S Solution, F Numeric] struct {
	// Members in population order (survivors first, then offspring)
	Members []Candidate[S, F]
	// Generation is 0 for the initial population
	Generation int
	// RunID identifies the engine run that produced this pool
	RunID uuid.UUID
	// Stats holds statistical information about this pool
	Stats PoolStats[F]
}

// PoolStats contains statistical information about a population
type PoolStats[F Numeric] struct {
	BestScore    F
	WorstScore   F
	AverageScore float64
	StdDev       float64
	Diversity    float64 // fraction of distinct genomes (0-1]
}

// --- Function Types ---

// EvaluatorFunc calculates the fitness of a genome
type EvaluatorFunc[S Solution, F Numeric] func(solution S) F

// Observer receives every emitted population snapshot.
// Called synchronously on the engine goroutine; the pool is a private copy the observer may keep or modify.
type Observer[S Solution, F Numeric] func(pool *Pool[S, F])

// --- Core Operators as Interfaces ---

// Initializer creates uniformly random individuals
type Initializer[S Solution] interface {
	Random(rng *rand.Rand) S
}

// Combiner recombines two parents into a single child.
// Implementations must not modify either parent.
type Combiner[S Solution] interface {
	Combine(parent1, parent2 S, rng *rand.Rand) S
}

// Perturbator mutates an individual, returning a fresh copy.
// The rate parameter is a probability in [0,1]; its unit (per gene or per individual) is encoding specific
type Perturbator[S Solution] interface {
	Perturb(solution S, rate float64, rng *rand.Rand) S
}

// Cloner deep-copies a genome so the copy shares no memory with the source
type Cloner[S Solution] interface {
	Clone(solution S) S
}

// Encoding bundles every genome-specific rule: creation, fitness, recombination and mutation
type Encoding[S Solution, F Numeric] interface {
	Initializer[S]
	Combiner[S]
	Perturbator[S]
	Cloner[S]
	// Evaluate returns the fitness of a genome (higher = better)
	Evaluate(solution S) F
	// Length is the fixed genome length for this run
	Length() int
}

// Selector reduces a population to the individuals kept for reproduction
type Selector[S Solution, F Numeric] interface {
	// Select returns at most size individuals, best first
	Select(members []S, size int, rng *rand.Rand) []S
}
