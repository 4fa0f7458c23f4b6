package genetic

// Package genetic provides a small generational genetic algorithm engine
// 1. Genome-specific rules live behind the Encoding interface
// 2. All entropy flows through one engine-owned, seedable *rand.Rand
// 3. Observers receive a population snapshot after every generation
// 4. Runs are single-threaded and always complete the configured generation count

import (
	"math"
	"math/rand/v2"
	"sort"
)

// --- Ranking and Selection ---

// Rank evaluates every member and orders them best first.
// Scores are recomputed on each call; ties keep their population order.
func Rank[S Solution, F Numeric](members []S, evaluate EvaluatorFunc[S, F]) []Candidate[S, F] {
	ranked := make([]Candidate[S, F], len(members))
	for i, m := range members {
		ranked[i] = Candidate[S, F]{Data: m, Score: evaluate(m)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// SurvivorCount is floor(populationSize * selectionRate)
func SurvivorCount(populationSize int, selectionRate float64) int {
	return int(math.Floor(float64(populationSize) * selectionRate))
}

// TruncationSelector keeps the fittest fraction of a population
type TruncationSelector[S Solution, F Numeric] struct {
	// Evaluate scores individuals for ranking
	Evaluate EvaluatorFunc[S, F]
}

// NewTruncationSelector creates a selector ranking by the encoding's fitness
func NewTruncationSelector[S Solution, F Numeric](encoding Encoding[S, F]) *TruncationSelector[S, F] {
	return &TruncationSelector[S, F]{Evaluate: encoding.Evaluate}
}

// Select implements the Selector interface using truncation; rng is unused
func (ts *TruncationSelector[S, F]) Select(members []S, size int, _ *rand.Rand) []S {
	ranked := Rank(members, ts.Evaluate)

	size = min(max(size, 0), len(ranked))
	selected := make([]S, size)
	for i := 0; i < size; i++ {
		selected[i] = ranked[i].Data
	}

	return selected
}
