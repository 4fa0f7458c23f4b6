package genetic_test

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/lixenwraith/genopt/genetic"
	"github.com/lixenwraith/genopt/genetic/onemax"
	"github.com/lixenwraith/genopt/genetic/tsp"
)

func oneMaxConfig() genetic.EngineConfig {
	return genetic.EngineConfig{
		PoolSize:         10,
		GenomeLength:     10,
		Generations:      25,
		PerturbationRate: 0.1,
		SelectionRate:    0.5,
		Seed:             42,
	}
}

func TestNewEngine_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*genetic.EngineConfig)
	}{
		{"population too small", func(c *genetic.EngineConfig) { c.PoolSize = 1 }},
		{"genome too short", func(c *genetic.EngineConfig) { c.GenomeLength = 1 }},
		{"negative generations", func(c *genetic.EngineConfig) { c.Generations = -1 }},
		{"mutation below zero", func(c *genetic.EngineConfig) { c.PerturbationRate = -0.1 }},
		{"mutation above one", func(c *genetic.EngineConfig) { c.PerturbationRate = 1.5 }},
		{"selection zero", func(c *genetic.EngineConfig) { c.SelectionRate = 0 }},
		{"selection above one", func(c *genetic.EngineConfig) { c.SelectionRate = 1.01 }},
		{"selection keeps nobody", func(c *genetic.EngineConfig) { c.SelectionRate = 0.05 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := oneMaxConfig()
			tt.modify(&cfg)
			enc := onemax.New(cfg.GenomeLength, onemax.CopySelf)

			_, err := genetic.NewEngine[onemax.Bits, int](enc, nil, cfg)
			if !errors.Is(err, genetic.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewEngine_CoordinateCountMismatch(t *testing.T) {
	cfg := oneMaxConfig()
	cfg.GenomeLength = 5
	enc := tsp.New([]tsp.Point{{0, 0}, {1, 0}, {1, 1}})

	_, err := genetic.NewEngine[tsp.Tour, float64](enc, nil, cfg)
	if !errors.Is(err, genetic.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRun_PopulationSizeInvariant(t *testing.T) {
	cfg := oneMaxConfig()
	cfg.PoolSize = 7
	cfg.SelectionRate = 0.3
	cfg.ObserveInitial = true

	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.TwoParent), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var generations []int
	eng.SetObserver(func(p *genetic.Pool[onemax.Bits, int]) {
		if len(p.Members) != cfg.PoolSize {
			t.Errorf("generation %d: %d members, expected %d", p.Generation, len(p.Members), cfg.PoolSize)
		}
		generations = append(generations, p.Generation)
	})

	final := eng.Run()

	if final.Generation != cfg.Generations {
		t.Errorf("expected final generation %d, got %d", cfg.Generations, final.Generation)
	}
	if len(generations) != cfg.Generations+1 {
		t.Fatalf("expected %d snapshots, got %d", cfg.Generations+1, len(generations))
	}
	for i, g := range generations {
		if g != i {
			t.Errorf("snapshot %d has generation %d", i, g)
		}
	}
	if len(eng.GetHistory()) != cfg.Generations {
		t.Errorf("expected %d history entries, got %d", cfg.Generations, len(eng.GetHistory()))
	}
}

func TestRun_ZeroGenerations(t *testing.T) {
	cfg := oneMaxConfig()
	cfg.Generations = 0

	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.CopySelf), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	calls := 0
	eng.SetObserver(func(*genetic.Pool[onemax.Bits, int]) { calls++ })

	final := eng.Run()
	if calls != 0 {
		t.Errorf("expected no snapshots without ObserveInitial, got %d", calls)
	}
	if final.Generation != 0 || len(final.Members) != cfg.PoolSize {
		t.Errorf("unexpected initial pool: generation %d, %d members", final.Generation, len(final.Members))
	}
}

func TestRun_OneMaxEndToEnd(t *testing.T) {
	cfg := genetic.EngineConfig{
		PoolSize:         4,
		GenomeLength:     4,
		Generations:      1,
		PerturbationRate: 0,
		SelectionRate:    0.5,
		Seed:             2019,
		ObserveInitial:   true,
	}
	enc := onemax.New(cfg.GenomeLength, onemax.CopySelf)

	eng, err := genetic.NewEngine[onemax.Bits, int](enc, nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var snapshots []*genetic.Pool[onemax.Bits, int]
	eng.SetObserver(func(p *genetic.Pool[onemax.Bits, int]) {
		snapshots = append(snapshots, p)
	})
	eng.Run()

	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}

	initial := make([]onemax.Bits, len(snapshots[0].Members))
	for i, m := range snapshots[0].Members {
		initial[i] = m.Data
	}
	top := genetic.Rank(initial, enc.Evaluate)[:2]

	after := snapshots[1].Members
	for i := 0; i < 2; i++ {
		if after[i].Data.String() != top[i].Data.String() {
			t.Errorf("survivor %d = %v, expected %v", i, after[i].Data, top[i].Data)
		}
	}

	// Without mutation, copy-self offspring are clones of a survivor
	for i := 2; i < len(after); i++ {
		child := after[i].Data.String()
		if child != top[0].Data.String() && child != top[1].Data.String() {
			t.Errorf("offspring %d = %s is not a survivor copy", i, child)
		}
	}
}

func TestRun_OneMaxImproves(t *testing.T) {
	cfg := oneMaxConfig()
	cfg.Generations = 60
	cfg.GenomeLength = 16
	cfg.PoolSize = 20

	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.TwoParent), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	final := eng.Run()
	history := eng.GetHistory()

	// Truncation keeps the best, so the best score never regresses
	for i := 1; i < len(history); i++ {
		if history[i].BestScore < history[i-1].BestScore {
			t.Fatalf("best score regressed at generation %d: %d -> %d",
				i+1, history[i-1].BestScore, history[i].BestScore)
		}
	}
	if final.Stats.BestScore < 13 {
		t.Errorf("expected near-optimal best after 60 generations, got %d", final.Stats.BestScore)
	}
}

func TestRun_TourValidityAndSize(t *testing.T) {
	cfg := genetic.EngineConfig{
		PoolSize:         12,
		GenomeLength:     15,
		Generations:      40,
		PerturbationRate: 0.3,
		SelectionRate:    0.5,
		Seed:             7,
	}
	enc := tsp.New(tsp.RandomPoints(cfg.GenomeLength, newRNG(99)))

	eng, err := genetic.NewEngine[tsp.Tour, float64](enc, nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	eng.SetObserver(func(p *genetic.Pool[tsp.Tour, float64]) {
		if len(p.Members) != cfg.PoolSize {
			t.Errorf("generation %d: %d members", p.Generation, len(p.Members))
		}
		for i, m := range p.Members {
			if err := tsp.Validate(m.Data, cfg.GenomeLength); err != nil {
				t.Fatalf("generation %d member %d: %v", p.Generation, i, err)
			}
		}
	})
	eng.Run()

	history := eng.GetHistory()
	if history[len(history)-1].BestScore < history[0].BestScore {
		t.Error("best tour got longer over the run")
	}
}

func TestRun_SeededReproducibility(t *testing.T) {
	t.Run("onemax", func(t *testing.T) {
		a := collectOneMax(t, 1234)
		b := collectOneMax(t, 1234)
		if a != b {
			t.Error("identical seeds produced different snapshots")
		}
		if c := collectOneMax(t, 4321); c == a {
			t.Error("different seeds produced identical runs")
		}
	})

	t.Run("tsp", func(t *testing.T) {
		a := collectTour(t, 1234)
		b := collectTour(t, 1234)
		if !reflect.DeepEqual(a, b) {
			t.Error("identical seeds produced different snapshots")
		}
	})
}

func collectOneMax(t *testing.T, seed uint64) string {
	t.Helper()
	cfg := oneMaxConfig()
	cfg.Seed = seed
	cfg.ObserveInitial = true

	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.CopySelf), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var out string
	eng.SetObserver(func(p *genetic.Pool[onemax.Bits, int]) {
		for _, m := range p.Members {
			out += fmt.Sprintf("%d:%s:%d\n", p.Generation, m.Data, m.Score)
		}
	})
	eng.Run()
	return out
}

func collectTour(t *testing.T, seed uint64) [][]genetic.Candidate[tsp.Tour, float64] {
	t.Helper()
	cfg := genetic.EngineConfig{
		PoolSize:         10,
		GenomeLength:     8,
		Generations:      30,
		PerturbationRate: 0.3,
		SelectionRate:    0.5,
		Seed:             seed,
		ObserveInitial:   true,
	}
	enc := tsp.New(tsp.RandomPoints(cfg.GenomeLength, newRNG(seed)))

	eng, err := genetic.NewEngine[tsp.Tour, float64](enc, nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	var out [][]genetic.Candidate[tsp.Tour, float64]
	eng.SetObserver(func(p *genetic.Pool[tsp.Tour, float64]) {
		out = append(out, p.Members)
	})
	eng.Run()
	return out
}

func TestEngine_SeedZeroDrawsSeed(t *testing.T) {
	cfg := oneMaxConfig()
	cfg.Seed = 0

	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.CopySelf), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if eng.Seed() == 0 {
		t.Error("expected a drawn non-zero seed")
	}
}

func TestEngine_GetBest(t *testing.T) {
	cfg := oneMaxConfig()
	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.CopySelf), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if _, err := eng.GetBest(); err == nil {
		t.Error("expected error before run")
	}

	final := eng.Run()
	best, err := eng.GetBest()
	if err != nil {
		t.Fatalf("get best: %v", err)
	}
	if best.Score != final.Stats.BestScore {
		t.Errorf("best score %d != stats best %d", best.Score, final.Stats.BestScore)
	}
	if final.RunID != eng.RunID() {
		t.Error("snapshot run id does not match engine")
	}
}

func TestRun_ObserverCannotCorruptPopulation(t *testing.T) {
	t.Run("onemax", func(t *testing.T) {
		cfg := oneMaxConfig()
		cfg.Generations = 3
		cfg.ObserveInitial = true

		eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.TwoParent), nil, cfg)
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}

		eng.SetObserver(func(p *genetic.Pool[onemax.Bits, int]) {
			for _, m := range p.Members {
				for i := range m.Data {
					m.Data[i] = 7
				}
			}
		})
		eng.Run()

		for i, ind := range eng.Population() {
			for j, g := range ind {
				if g > 1 {
					t.Fatalf("member %d gene %d = %d after observer overwrite", i, j, g)
				}
			}
		}
	})

	t.Run("tsp", func(t *testing.T) {
		cfg := genetic.EngineConfig{
			PoolSize:         8,
			GenomeLength:     9,
			Generations:      5,
			PerturbationRate: 0.3,
			SelectionRate:    0.5,
			Seed:             11,
			ObserveInitial:   true,
		}
		enc := tsp.New(tsp.RandomPoints(cfg.GenomeLength, newRNG(11)))

		eng, err := genetic.NewEngine[tsp.Tour, float64](enc, nil, cfg)
		if err != nil {
			t.Fatalf("new engine: %v", err)
		}

		eng.SetObserver(func(p *genetic.Pool[tsp.Tour, float64]) {
			for _, m := range p.Members {
				for i := range m.Data {
					m.Data[i] = 0
				}
			}
		})
		eng.Run()

		for i, tour := range eng.Population() {
			if err := tsp.Validate(tour, cfg.GenomeLength); err != nil {
				t.Fatalf("member %d: %v", i, err)
			}
		}
	})
}

func TestEngine_PopulationIsCopy(t *testing.T) {
	cfg := oneMaxConfig()
	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.CopySelf), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if eng.Population() != nil {
		t.Error("expected nil population before run")
	}

	eng.Run()
	first := eng.Population()
	want := first[0].String()
	for i := range first[0] {
		first[0][i] = 9
	}

	if got := eng.Population()[0].String(); got != want {
		t.Errorf("population changed through returned copy: %s, expected %s", got, want)
	}
}

func TestEngine_HistorySurvivesRerun(t *testing.T) {
	cfg := oneMaxConfig()
	cfg.Generations = 5
	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.TwoParent), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	eng.Run()
	first := eng.GetHistory()
	saved := slices.Clone(first)

	eng.Run()
	if !reflect.DeepEqual(first, saved) {
		t.Error("second run rewrote history returned by the first")
	}
	if len(eng.GetHistory()) != cfg.Generations {
		t.Errorf("expected %d history entries after rerun, got %d", cfg.Generations, len(eng.GetHistory()))
	}
}

func TestEngine_StepAndAccessors(t *testing.T) {
	cfg := oneMaxConfig()
	eng, err := genetic.NewEngine[onemax.Bits, int](onemax.New(cfg.GenomeLength, onemax.CopySelf), nil, cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	if got := eng.Config(); got != cfg {
		t.Errorf("Config() = %+v, expected %+v", got, cfg)
	}
	if eng.Generation() != 0 {
		t.Errorf("expected generation 0 before stepping, got %d", eng.Generation())
	}

	for i := 1; i <= 3; i++ {
		p := eng.Step()
		if p.Generation != i || eng.Generation() != i {
			t.Errorf("step %d: pool generation %d, engine generation %d", i, p.Generation, eng.Generation())
		}
		if len(eng.Population()) != cfg.PoolSize {
			t.Errorf("step %d: %d members", i, len(eng.Population()))
		}
	}
	if len(eng.GetHistory()) != 3 {
		t.Errorf("expected 3 history entries, got %d", len(eng.GetHistory()))
	}
}
