// Package tsp implements the permutation genome for cyclic tours over 2-D points
package tsp

import (
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a city coordinate
type Point = r2.Vec

// Tour is a visiting order: a permutation of 0..n-1, closed back to its first city
type Tour []int

// Validate reports whether tour is a permutation of 0..n-1
func Validate(tour Tour, n int) error {
	if len(tour) != n {
		return errors.Errorf("tour has %d cities, expected %d", len(tour), n)
	}
	seen := make([]bool, n)
	for i, city := range tour {
		if city < 0 || city >= n {
			return errors.Errorf("position %d: city %d out of range [0,%d)", i, city, n)
		}
		if seen[city] {
			return errors.Errorf("position %d: city %d repeated", i, city)
		}
		seen[city] = true
	}
	return nil
}

// Distance is the total cyclic length of tour, including the leg from the last city back to the first
func Distance(points []Point, tour Tour) float64 {
	n := len(tour)
	total := 0.0
	for i := 0; i < n; i++ {
		total += r2.Norm(r2.Sub(points[tour[i]], points[tour[(i+1)%n]]))
	}
	return total
}

// RandomPoints draws n cities uniformly in the unit square
func RandomPoints(n int, rng *rand.Rand) []Point {
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}
	return points
}

// Encoding is the permutation genome encoding over a fixed problem instance
type Encoding struct {
	points []Point
}

// New creates an encoding over a private copy of points
func New(points []Point) *Encoding {
	p := make([]Point, len(points))
	copy(p, points)
	return &Encoding{points: p}
}

// Length returns the city count
func (e *Encoding) Length() int { return len(e.points) }

// Points returns a copy of the problem instance
func (e *Encoding) Points() []Point {
	p := make([]Point, len(e.points))
	copy(p, e.points)
	return p
}

// Clone returns an independent copy of tour
func (e *Encoding) Clone(tour Tour) Tour {
	return slices.Clone(tour)
}

// Random creates a uniformly random permutation
func (e *Encoding) Random(rng *rand.Rand) Tour {
	tour := make(Tour, len(e.points))
	for i := range tour {
		tour[i] = i
	}
	rng.Shuffle(len(tour), func(i, j int) { tour[i], tour[j] = tour[j], tour[i] })
	return tour
}

// Evaluate returns the negated tour length so that shorter tours rank higher
func (e *Encoding) Evaluate(tour Tour) float64 {
	return -Distance(e.points, tour)
}

// Combine performs order crossover (OX).
// The child takes parent2's genes at [start, end) in place; the remaining positions,
// in index order, receive parent1's unused cities in parent1's order.
func (e *Encoding) Combine(parent1, parent2 Tour, rng *rand.Rand) Tour {
	n := len(parent1)
	start := rng.IntN(n)
	end := start + 1 + rng.IntN(n-start)

	child := orderCrossover(parent1, parent2, start, end)
	assertPermutation(child, n)
	return child
}

// orderCrossover builds the OX child for the cut segment [start, end)
func orderCrossover(parent1, parent2 Tour, start, end int) Tour {
	n := len(parent1)
	child := make(Tour, n)
	for i := range child {
		child[i] = -1
	}
	used := make([]bool, n)

	for i := start; i < end; i++ {
		city := parent2[i]
		child[i] = city
		used[city] = true
	}

	// Cursor into parent1; used only grows so earlier cities never become available again
	next := 0
	fill := func(i int) {
		for next < n && used[parent1[next]] {
			next++
		}
		if next < n {
			child[i] = parent1[next]
			used[parent1[next]] = true
			next++
		}
	}
	for i := 0; i < start; i++ {
		fill(i)
	}
	for i := end; i < n; i++ {
		fill(i)
	}

	// Safety net for slots left empty; unreachable while both parents are valid
	for i := range child {
		if child[i] != -1 {
			continue
		}
		for _, city := range parent1 {
			if !used[city] {
				child[i] = city
				used[city] = true
				break
			}
		}
	}

	return child
}

// Perturb reverses a random inclusive segment with probability rate; one draw per tour, not per gene
func (e *Encoding) Perturb(tour Tour, rate float64, rng *rand.Rand) Tour {
	mutated := make(Tour, len(tour))
	copy(mutated, tour)

	if rng.Float64() < rate {
		p1 := rng.IntN(len(tour))
		p2 := rng.IntN(len(tour))
		if p1 > p2 {
			p1, p2 = p2, p1
		}
		for i, j := p1, p2; i < j; i, j = i+1, j-1 {
			mutated[i], mutated[j] = mutated[j], mutated[i]
		}
	}

	assertPermutation(mutated, len(tour))
	return mutated
}
