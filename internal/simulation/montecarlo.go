package simulation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincity/investing-engine/internal/domain"
	"github.com/fincity/investing-engine/pkg/concurrency"
)

// RunMonteCarlo fans one parameter set out over runs independent paths.
// Run i uses seed base+i, so the ensemble is reproducible from the base seed
// and any single run can be replayed on its own with Simulate. A nil target
// leaves SuccessProb nil.
func (e *Engine) RunMonteCarlo(ctx context.Context, params domain.SimulationParams, runs int, target *decimal.Decimal) (*domain.MonteCarloResult, error) {
	if runs < 1 {
		return nil, &domain.InvalidParamsError{Field: "runs", Reason: fmt.Sprintf("must be at least 1, got %d", runs)}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debugf("monte carlo: runs=%d profile=%s months=%d base_seed=%d",
		runs, params.ProfileLabel(), params.Months(), params.Seed)

	results := make([]*domain.SimulationResult, runs)
	errs := make([]error, runs)

	pool := concurrency.NewWorkerPool(concurrency.PoolConfig{
		Name:        "montecarlo",
		MaxWorkers:  e.workers,
		MaxCapacity: runs,
		OnPanic: func(p any) {
			e.logger.Errorf("monte carlo worker panic: %v", p)
		},
	})
	for i := 0; i < runs; i++ {
		i := i
		runParams := params
		runParams.Seed = params.Seed + int64(i)
		pool.Submit(func() {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = e.simulatePath(runParams)
		})
	}
	pool.StopAndWait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("monte carlo run %d: %w", i, err)
		}
	}

	months := params.Months()
	bands := make([]domain.MonteCarloBand, months)
	column := make([]decimal.Decimal, runs)
	for m := 0; m < months; m++ {
		for i, res := range results {
			column[i] = res.Path[m].Total
		}
		bands[m] = domain.MonteCarloBand{
			Month: m + 1,
			P10:   percentile(column, 10),
			P25:   percentile(column, 25),
			P50:   percentile(column, 50),
			P75:   percentile(column, 75),
			P90:   percentile(column, 90),
		}
	}

	endValues := make([]decimal.Decimal, runs)
	for i, res := range results {
		endValues[i] = res.Stats.EndValue
	}

	out := &domain.MonteCarloResult{
		Bands:     bands,
		Runs:      runs,
		EndValues: endValues,
		Profile:   results[0].Profile,
		Mix:       results[0].Mix,
		Seed:      params.Seed,
	}
	if target != nil {
		hits := 0
		for _, v := range endValues {
			if v.GreaterThanOrEqual(*target) {
				hits++
			}
		}
		prob := decimal.NewFromInt(int64(hits)).Div(decimal.NewFromInt(int64(runs)))
		out.SuccessProb = &prob
	}
	return out, nil
}
