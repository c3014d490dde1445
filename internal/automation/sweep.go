package automation

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/raindrops/internal/config"
	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/metrics"
	"github.com/san-kum/raindrops/internal/sim"
)

// ParameterSweep runs the base configuration once per value of one
// parameter, evenly spaced between Min and Max.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	FramesRun  int
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", dynamo.ErrParameterBounds)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := sweep.Base.Clone()
		if err := cfg.Params.SetParam(sweep.Param, paramVal); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", sweep.Param, paramVal, err)
		}

		result, err := Run(ctx, cfg)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    result.Metrics,
			FramesRun:  result.FramesRun,
		})

		log.Debug("sweep step", "step", i+1, "of", sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}

// Best returns the sweep entry with the lowest value of metric, or the
// highest when maximize is set.
func Best(results []SweepResult, metric string, maximize bool) (SweepResult, bool) {
	best := math.Inf(1)
	if maximize {
		best = math.Inf(-1)
	}
	idx := -1
	for i, r := range results {
		v, ok := r.Metrics[metric]
		if !ok {
			continue
		}
		if (maximize && v > best) || (!maximize && v < best) {
			best, idx = v, i
		}
	}
	if idx < 0 {
		return SweepResult{}, false
	}
	return results[idx], true
}

// MonteCarloConfig runs Trials copies of Base with consecutive seeds.
type MonteCarloConfig struct {
	Base   *config.Config
	Trials int
}

type MonteCarloResult struct {
	Seed       int64
	Cleared    bool
	ExitFrames float64
	PeakCount  float64
	Metrics    map[string]float64
}

// RunMonteCarlo executes the trials concurrently through a sim.Ensemble. A
// trial has cleared when its particles fully left the canvas after an exit.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.Trials < 1 {
		return nil, fmt.Errorf("%w: monte carlo needs at least one trial", dynamo.ErrParameterBounds)
	}
	base := cfg.Base

	inputs := func(seed int64) dynamo.InputAdapter {
		c := base.Clone()
		c.Seed = seed
		return NewInput(c)
	}
	ms := func() []dynamo.Metric { return metrics.Defaults(base.Params) }

	ens := sim.NewEnsemble(base.Params, base.Size(), base.SimConfig(), cfg.Trials, inputs, ms)
	runs, err := ens.Run(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		results[i] = MonteCarloResult{
			Seed:       base.Seed + int64(i),
			ExitFrames: r.Metrics["exit_frames"],
			PeakCount:  r.Metrics["peak_count"],
			Metrics:    r.Metrics,
			Cleared:    cleared(r.Frames),
		}
	}
	return results, nil
}

// MonteCarloStats counts cleared and unfinished trials.
func MonteCarloStats(results []MonteCarloResult) (cleared int, pending int) {
	for _, r := range results {
		if r.Cleared {
			cleared++
		} else {
			pending++
		}
	}
	return
}

func cleared(frames []sim.FrameStat) bool {
	exiting := false
	for _, f := range frames {
		if f.Exiting > 0 {
			exiting = true
		}
		if exiting && f.Count == 0 {
			return true
		}
	}
	return false
}
