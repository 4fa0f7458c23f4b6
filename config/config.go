// Package config loads run configuration from TOML files and command-line overrides
package config

import (
	"flag"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/genopt/genetic"
	"github.com/lixenwraith/genopt/genetic/tsp"
	"github.com/lixenwraith/genopt/parameter"
)

// Problem names a genome encoding
type Problem string

const (
	ProblemOneMax Problem = "onemax"
	ProblemTSP    Problem = "tsp"
)

// City is a TOML-friendly coordinate
type City struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// Run is the complete configuration of one run
type Run struct {
	Problem     Problem `toml:"problem"`
	Population  int     `toml:"population"`
	Length      int     `toml:"length"` // genome length or city count
	Generations int     `toml:"generations"`
	Mutation    float64 `toml:"mutation"`
	Selection   float64 `toml:"selection"`
	Seed        uint64  `toml:"seed"`
	Every       int     `toml:"every"`

	// OneMax only
	Crossover string `toml:"crossover"`

	// TSP only; empty draws Length random cities from the run seed
	Cities []City `toml:"cities"`
}

// Defaults returns the default parameters for a problem
func Defaults(problem Problem) Run {
	if problem == ProblemTSP {
		return Run{
			Problem:     ProblemTSP,
			Population:  parameter.TSPPoolSize,
			Length:      parameter.TSPCityCount,
			Generations: parameter.TSPGenerations,
			Mutation:    parameter.TSPPerturbationRate,
			Selection:   parameter.TSPSelectionRate,
			Every:       parameter.TSPReportEvery,
		}
	}
	return Run{
		Problem:     ProblemOneMax,
		Population:  parameter.GAPoolSize,
		Length:      parameter.GAGenomeLength,
		Generations: parameter.GAGenerations,
		Mutation:    parameter.GAPerturbationRate,
		Selection:   parameter.GASelectionRate,
		Every:       parameter.GAReportEvery,
		Crossover:   "copy-self",
	}
}

// Load decodes a TOML file over the problem defaults; unknown keys are rejected
func Load(path string, problem Problem) (Run, error) {
	run := Defaults(problem)

	data, err := os.ReadFile(path)
	if err != nil {
		return run, errors.Wrap(err, "read config")
	}

	md, err := toml.Decode(string(data), &run)
	if err != nil {
		return run, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return run, errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if run.Problem != problem {
		return run, errors.Errorf("config %s is for problem %q, expected %q", path, run.Problem, problem)
	}

	// A city list fixes the city count
	if len(run.Cities) > 0 && !md.IsDefined("length") {
		run.Length = len(run.Cities)
	}

	return run, nil
}

// RegisterFlags binds the shared run flags onto fs, defaulting to the current values of r
func (r *Run) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&r.Population, "population", r.Population, "population size")
	fs.IntVar(&r.Generations, "generations", r.Generations, "number of generations")
	fs.Float64Var(&r.Mutation, "mutation", r.Mutation, "mutation rate [0,1]")
	fs.Float64Var(&r.Selection, "selection", r.Selection, "selection rate (0,1]")
	fs.Uint64Var(&r.Seed, "seed", r.Seed, "random seed (0 = random)")
	fs.IntVar(&r.Every, "every", r.Every, "report every N generations")
}

// EngineConfig converts the run into a validated engine configuration
func (r Run) EngineConfig() (genetic.EngineConfig, error) {
	cfg := genetic.EngineConfig{
		PoolSize:         r.Population,
		GenomeLength:     r.Length,
		Generations:      r.Generations,
		PerturbationRate: r.Mutation,
		SelectionRate:    r.Selection,
		Seed:             r.Seed,
		ObserveInitial:   true,
	}
	if r.Problem == ProblemTSP && len(r.Cities) > 0 && len(r.Cities) != r.Length {
		return cfg, errors.Wrapf(genetic.ErrInvalidConfig, "%d cities configured for city count %d", len(r.Cities), r.Length)
	}
	return cfg, cfg.Validate()
}

// Points returns the configured cities, or nil when they should be generated
func (r Run) Points() []tsp.Point {
	if len(r.Cities) == 0 {
		return nil
	}
	points := make([]tsp.Point, len(r.Cities))
	for i, c := range r.Cities {
		points[i] = tsp.Point{X: c.X, Y: c.Y}
	}
	return points
}
