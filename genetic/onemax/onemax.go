// Package onemax implements the fixed-length binary genome whose fitness is its count of set bits
package onemax

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Bits is a binary genome; every gene is 0 or 1
type Bits []uint8

// String renders the genome as a compact bit string
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, g := range b {
		sb.WriteByte('0' + g)
	}
	return sb.String()
}

// CrossoverMode selects what Combine copies into the child's crossover segment
type CrossoverMode uint8

const (
	// CopySelf copies the first parent's segment onto itself, so the child equals the first parent.
	// Kept as the default for compatibility with existing runs.
	CopySelf CrossoverMode = iota
	// TwoParent copies the segment from the second parent
	TwoParent
)

var crossoverModeNames = map[CrossoverMode]string{
	CopySelf:  "copy-self",
	TwoParent: "two-parent",
}

func (m CrossoverMode) String() string {
	if name, ok := crossoverModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CrossoverMode(%d)", m)
}

// ParseCrossoverMode resolves a mode name; empty selects CopySelf
func ParseCrossoverMode(s string) (CrossoverMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "copy-self", "self":
		return CopySelf, nil
	case "two-parent", "two":
		return TwoParent, nil
	}
	return CopySelf, errors.Errorf("unknown crossover mode %q", s)
}

// Encoding is the OneMax genome encoding
type Encoding struct {
	length int
	mode   CrossoverMode
}

// New creates an encoding for genomes of the given length
func New(length int, mode CrossoverMode) *Encoding {
	return &Encoding{length: length, mode: mode}
}

// Length returns the genome length
func (e *Encoding) Length() int { return e.length }

// Mode returns the crossover mode
func (e *Encoding) Mode() CrossoverMode { return e.mode }

// Clone returns an independent copy of bits
func (e *Encoding) Clone(bits Bits) Bits {
	return slices.Clone(bits)
}

// Random creates a genome with independently uniform bits
func (e *Encoding) Random(rng *rand.Rand) Bits {
	bits := make(Bits, e.length)
	for i := range bits {
		bits[i] = uint8(rng.IntN(2))
	}
	return bits
}

// Evaluate returns the number of set bits
func (e *Encoding) Evaluate(bits Bits) int {
	sum := 0
	for _, g := range bits {
		sum += int(g)
	}
	return sum
}

// Combine copies parent1 and overwrites a random segment [r1, r2).
// r1 is uniform in [0, length-1] and r2 in [r1+1, length].
func (e *Encoding) Combine(parent1, parent2 Bits, rng *rand.Rand) Bits {
	n := len(parent1)
	r1 := rng.IntN(n)
	r2 := r1 + 1 + rng.IntN(n-r1)

	child := make(Bits, n)
	copy(child, parent1)

	// CopySelf still draws both cut points so the random stream is mode independent
	source := child
	if e.mode == TwoParent {
		source = parent2
	}
	copy(child[r1:r2], source[r1:r2])

	return child
}

// Perturb replaces each gene with a fresh random bit with probability rate
func (e *Encoding) Perturb(bits Bits, rate float64, rng *rand.Rand) Bits {
	mutated := make(Bits, len(bits))
	copy(mutated, bits)

	for i := range mutated {
		if rng.Float64() < rate {
			mutated[i] = uint8(rng.IntN(2))
		}
	}
	return mutated
}
