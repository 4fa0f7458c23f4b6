package config

import (
	"flag"

	"github.com/lixenwraith/genopt/parameter"
)

// Options is a parsed command line: the run plus presentation switches
type Options struct {
	Run        Run
	ConfigPath string
	Debug      bool

	// TSP presentation
	View        bool
	PlotDir     string
	MetricsAddr string
}

// ParseArgs resolves defaults, then the -config file, then explicit flags, in increasing precedence
func ParseArgs(problem Problem, args []string) (Options, error) {
	opts, err := parse(problem, Defaults(problem), args)
	if err != nil || opts.ConfigPath == "" {
		return opts, err
	}

	base, err := Load(opts.ConfigPath, problem)
	if err != nil {
		return opts, err
	}
	return parse(problem, base, args)
}

func parse(problem Problem, base Run, args []string) (Options, error) {
	opts := Options{Run: base}

	fs := flag.NewFlagSet(string(problem), flag.ContinueOnError)
	fs.StringVar(&opts.ConfigPath, "config", "", "TOML run file")
	fs.BoolVar(&opts.Debug, "debug", false, "write logs under "+parameter.LogDir)
	opts.Run.RegisterFlags(fs)

	switch problem {
	case ProblemOneMax:
		fs.IntVar(&opts.Run.Length, "length", opts.Run.Length, "genome length")
		fs.StringVar(&opts.Run.Crossover, "crossover", opts.Run.Crossover, "crossover mode: copy-self or two-parent")
	case ProblemTSP:
		fs.IntVar(&opts.Run.Length, "cities", opts.Run.Length, "city count")
		fs.BoolVar(&opts.View, "view", false, "draw tours in the terminal")
		fs.StringVar(&opts.PlotDir, "plot-dir", "", "write best-tour PNGs to this directory")
		fs.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	}

	err := fs.Parse(args)
	return opts, err
}
