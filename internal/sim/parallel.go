package sim

import (
	"context"
	"sync"

	"github.com/san-kum/raindrops/internal/dynamo"
)

// InputFactory builds a fresh input adapter for one ensemble member.
type InputFactory func(seed int64) dynamo.InputAdapter

// MetricFactory builds fresh metric instances for one ensemble member.
// Metrics carry state, so members never share them.
type MetricFactory func() []dynamo.Metric

// Ensemble runs independent headless simulations with consecutive seeds,
// one goroutine per member.
type Ensemble struct {
	params  dynamo.Params
	canvas  dynamo.Size
	cfg     Config
	numRuns int
	inputs  InputFactory
	metrics MetricFactory
}

func NewEnsemble(params dynamo.Params, canvas dynamo.Size, cfg Config, numRuns int, inputs InputFactory, metrics MetricFactory) *Ensemble {
	return &Ensemble{
		params:  params,
		canvas:  canvas,
		cfg:     cfg,
		numRuns: numRuns,
		inputs:  inputs,
		metrics: metrics,
	}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.cfg.Seed + int64(idx)

			s, err := NewHeadless(e.params, e.canvas, cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, e.inputs(cfgCopy.Seed), cfgCopy.Frames)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
