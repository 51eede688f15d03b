// Command optimize searches streak shape parameters with CMA-ES so warp
// streaks live for a target number of seconds at a steady reset rate.
//
// Usage: go run ./cmd/optimize -output runs/tune [-lifetime 2.5]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/starfield/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	steps := flag.Uint64("steps", 3600, "Executed steps per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	lifetime := flag.Float64("lifetime", 2.5, "Target mean streak lifetime in seconds")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *lifetime <= 0 {
		log.Fatal("--lifetime must be positive")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	params := NewParamVector(baseCfg)
	evaluator := NewFitnessEvaluator(params, *steps, evalSeeds(*seeds), baseCfg, *lifetime)

	prog, err := newProgress(filepath.Join(*outputDir, "optimize_log.csv"), params, *maxEvals)
	if err != nil {
		log.Fatalf("failed to create log: %v", err)
	}
	defer prog.Close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			prog.Record(raw, fitness, evaluator.LastLifetime())
			return fitness
		},
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*params.Dim()/2
	}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}
	settings := &optimize.Settings{FuncEvaluations: *maxEvals}

	fmt.Printf("tuning %d streak parameters for a %.2fs lifetime: population=%d evals=%d seeds=%d steps=%d\n",
		params.Dim(), *lifetime, popSize, *maxEvals, *seeds, *steps)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := prog.Best()
	if best == nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	fmt.Printf("\n%d evaluations in %s, best fitness %.4f\n",
		prog.Evals(), time.Since(prog.start).Round(time.Second), prog.BestFitness())
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, best[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, best)

	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		log.Fatalf("failed to write best config: %v", err)
	}
	fmt.Printf("best config saved to %s\n", out)
}

// evalSeeds returns n fixed seeds so runs are comparable across evaluations.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, max(n, 1))
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}
