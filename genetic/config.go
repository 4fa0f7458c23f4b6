package genetic

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/genopt/parameter"
)

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid engine config")

// EngineConfig holds run-wide parameters; fixed once the engine is constructed
type EngineConfig struct {
	// PoolSize is the number of individuals at every generation boundary
	PoolSize int
	// GenomeLength is the gene count (city count for tours)
	GenomeLength int
	// Generations is the number of select/reproduce cycles to run
	Generations int
	// PerturbationRate is the mutation probability (0.0-1.0)
	PerturbationRate float64
	// SelectionRate is the fraction of the population kept each generation (0.0-1.0]
	SelectionRate float64
	// Seed for random number generation (0 for random seed)
	Seed uint64
	// ObserveInitial emits the generation 0 population before evolving
	ObserveInitial bool
}

// DefaultConfig returns the OneMax defaults
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:         parameter.GAPoolSize,
		GenomeLength:     parameter.GAGenomeLength,
		Generations:      parameter.GAGenerations,
		PerturbationRate: parameter.GAPerturbationRate,
		SelectionRate:    parameter.GASelectionRate,
	}
}

// Validate reports the first parameter outside its allowed range
func (c EngineConfig) Validate() error {
	switch {
	case c.PoolSize < 2:
		return errors.Wrapf(ErrInvalidConfig, "population size %d < 2", c.PoolSize)
	case c.GenomeLength < 2:
		return errors.Wrapf(ErrInvalidConfig, "genome length %d < 2", c.GenomeLength)
	case c.Generations < 0:
		return errors.Wrapf(ErrInvalidConfig, "generation count %d < 0", c.Generations)
	case !(c.PerturbationRate >= 0 && c.PerturbationRate <= 1):
		return errors.Wrapf(ErrInvalidConfig, "mutation rate %v outside [0,1]", c.PerturbationRate)
	case !(c.SelectionRate > 0 && c.SelectionRate <= 1):
		return errors.Wrapf(ErrInvalidConfig, "selection rate %v outside (0,1]", c.SelectionRate)
	case SurvivorCount(c.PoolSize, c.SelectionRate) < 1:
		return errors.Wrapf(ErrInvalidConfig, "selection rate %v keeps no survivors of %d", c.SelectionRate, c.PoolSize)
	}
	return nil
}
