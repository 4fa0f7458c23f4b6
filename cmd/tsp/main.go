package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/genopt/config"
	"github.com/lixenwraith/genopt/genetic"
	"github.com/lixenwraith/genopt/genetic/tracking"
	"github.com/lixenwraith/genopt/genetic/tsp"
	"github.com/lixenwraith/genopt/logging"
	"github.com/lixenwraith/genopt/parameter"
	"github.com/lixenwraith/genopt/render"
)

const logFileName = "tsp.log"

func main() {
	opts, err := config.ParseArgs(config.ProblemTSP, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tsp: %v\n", err)
		os.Exit(2)
	}

	if logFile := logging.Setup(opts.Debug, logFileName); logFile != nil {
		defer logFile.Close()
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "tsp: %v\n", err)
		os.Exit(1)
	}
}

// resolvePoints returns the configured cities or draws random ones from a stream derived from seed
func resolvePoints(r config.Run, seed uint64) []tsp.Point {
	if points := r.Points(); points != nil {
		return points
	}
	return tsp.RandomPoints(r.Length, rand.New(rand.NewPCG(seed, ^seed)))
}

func run(opts config.Options, out io.Writer) error {
	// Fix the seed up front so generated cities and the engine share it
	if opts.Run.Seed == 0 {
		opts.Run.Seed = rand.Uint64()
	}

	cfg, err := opts.Run.EngineConfig()
	if err != nil {
		return err
	}
	points := resolvePoints(opts.Run, cfg.Seed)

	eng, err := genetic.NewEngine[tsp.Tour, float64](tsp.New(points), nil, cfg)
	if err != nil {
		return err
	}

	observers := []genetic.Observer[tsp.Tour, float64]{}

	var view *render.TerminalView
	if opts.View {
		if view, err = render.NewTerminalView(points); err != nil {
			return err
		}
		defer view.Close()
		observers = append(observers, drawCadence(opts.Run.Every, view.Observer()))
	} else {
		observers = append(observers, tracking.Every(opts.Run.Every, printProgress(out)))
	}

	if opts.PlotDir != "" {
		pw, err := render.NewPlotWriter(opts.PlotDir, points)
		if err != nil {
			return err
		}
		observers = append(observers, drawCadence(opts.Run.Every, pw.Observer()))
	}

	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		prom, err := tracking.NewPrometheus(reg, string(config.ProblemTSP))
		if err != nil {
			return err
		}
		observers = append(observers, tracking.PrometheusObserver[tsp.Tour, float64](prom))
		go serveMetrics(opts.MetricsAddr, reg)
	}

	eng.SetObserver(tracking.Fanout(observers...))

	log.Printf("run %s: seed=%d cities=%d population=%d generations=%d",
		eng.RunID(), eng.Seed(), cfg.GenomeLength, cfg.PoolSize, cfg.Generations)

	final := eng.Run()
	log.Printf("run %s: finished after %d generations", eng.RunID(), eng.Generation())

	best, err := eng.GetBest()
	if err != nil {
		return err
	}
	log.Printf("run %s: best length %.6f tour %v", eng.RunID(), -best.Score, best.Data)

	if view != nil {
		// Leave the final frame up until the user quits
		view.Draw(final)
		<-view.Done()
		return nil
	}

	fmt.Fprintf(out, "best length %.4f after %d generations (seed %d)\n", -best.Score, final.Generation, eng.Seed())
	fmt.Fprintf(out, "tour %v\n", best.Data)
	return nil
}

// drawCadence draws after the first evolved generation and every n generations after it
func drawCadence(n int, observer genetic.Observer[tsp.Tour, float64]) genetic.Observer[tsp.Tour, float64] {
	return tracking.EveryFrom(parameter.TSPFirstFrame, n, observer)
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics server %s: %v", addr, err)
	}
}

// printProgress writes one line per snapshot
func printProgress(out io.Writer) genetic.Observer[tsp.Tour, float64] {
	return func(pool *genetic.Pool[tsp.Tour, float64]) {
		fmt.Fprintf(out, "generation %d: best %.4f mean %.4f worst %.4f diversity %.2f\n",
			pool.Generation, -pool.Stats.BestScore, -pool.Stats.AverageScore, -pool.Stats.WorstScore, pool.Stats.Diversity)
	}
}
