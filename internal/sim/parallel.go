package sim

import (
	"context"
	"sync"
)

// Factory builds an independent controller for one seed.
type Factory func(seed int64) (Controller, error)

// MetricFactory builds fresh metric instances for one run.
type MetricFactory func() []Metric

// Ensemble runs several independently seeded controllers in parallel.
type Ensemble struct {
	factory   Factory
	metrics   MetricFactory
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory Factory, metrics MetricFactory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, metrics: metrics, numRuns: numRuns, seedStart: seedStart}
}

// Run returns one result per seed, ordered by seed. The first error aborts.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			ctrl, err := e.factory(cfgCopy.Seed)
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(ctrl)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
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
