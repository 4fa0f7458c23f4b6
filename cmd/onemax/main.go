package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lixenwraith/genopt/config"
	"github.com/lixenwraith/genopt/genetic"
	"github.com/lixenwraith/genopt/genetic/onemax"
	"github.com/lixenwraith/genopt/genetic/tracking"
	"github.com/lixenwraith/genopt/logging"
)

const logFileName = "onemax.log"

func main() {
	opts, err := config.ParseArgs(config.ProblemOneMax, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "onemax: %v\n", err)
		os.Exit(2)
	}

	if logFile := logging.Setup(opts.Debug, logFileName); logFile != nil {
		defer logFile.Close()
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "onemax: %v\n", err)
		os.Exit(1)
	}
}

func run(opts config.Options, out io.Writer) error {
	mode, err := onemax.ParseCrossoverMode(opts.Run.Crossover)
	if err != nil {
		return err
	}
	cfg, err := opts.Run.EngineConfig()
	if err != nil {
		return err
	}

	enc := onemax.New(cfg.GenomeLength, mode)
	eng, err := genetic.NewEngine[onemax.Bits, int](enc, nil, cfg)
	if err != nil {
		return err
	}

	collector := tracking.NewStandardCollector()
	eng.SetObserver(tracking.Fanout(
		tracking.Observe[onemax.Bits, int](collector),
		tracking.Every(opts.Run.Every, printPopulation(out)),
	))

	log.Printf("run %s: seed=%d length=%d population=%d generations=%d crossover=%s",
		eng.RunID(), eng.Seed(), cfg.GenomeLength, cfg.PoolSize, cfg.Generations, enc.Mode())

	final := eng.Run()

	best, err := eng.GetBest()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "best %s fitness %d/%d (seed %d)\n", best.Data, best.Score, cfg.GenomeLength, eng.Seed())

	if opts.Debug {
		for _, b := range collector.Series() {
			log.Printf("run %s: generation=%.0f best=%.0f mean=%.3f median=%.1f diversity=%.2f",
				eng.RunID(), b[tracking.MetricGeneration], b[tracking.MetricBest], b[tracking.MetricMean],
				b[tracking.MetricMedian], b[tracking.MetricDiversity])
		}
	}

	// Aggregates over the run, plus the final snapshot's own metrics
	summary := collector.Finalize().Merge(tracking.FromPool(final))
	log.Printf("run %s: snapshots=%.0f first_best=%.0f best=%.0f mean=%.3f diversity=%.2f",
		eng.RunID(), summary["snapshots"], summary["first_"+tracking.MetricBest], summary[tracking.MetricBest],
		summary[tracking.MetricMean], summary[tracking.MetricDiversity])

	return nil
}

// printPopulation lists every individual of a snapshot, one per line
func printPopulation(out io.Writer) genetic.Observer[onemax.Bits, int] {
	return func(pool *genetic.Pool[onemax.Bits, int]) {
		fmt.Fprintf(out, "generation %d (best %d, mean %.2f)\n", pool.Generation, pool.Stats.BestScore, pool.Stats.AverageScore)
		for _, m := range pool.Members {
			fmt.Fprintf(out, "  %s %d\n", m.Data, m.Score)
		}
	}
}
