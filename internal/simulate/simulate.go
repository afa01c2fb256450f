package simulate

import (
	"context"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/fishwatch/obscov/pkg/constants"
	"github.com/fishwatch/obscov/pkg/distribution"
	"github.com/fishwatch/obscov/pkg/validation"
)

// Run executes the finite-population simulation: for every coverage
// level it draws Request.Replicates independent samples of per-unit
// counts at the level's observed-unit count and derives the sampling
// statistics for each. Coverage levels run in parallel, each on its own
// random stream keyed off the run seed, so replicate draws are
// independent within and across levels.
func Run(ctx context.Context, logger *zap.Logger, req Request, progress ProgressFunc) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Percentile == 0 {
		req.Percentile = constants.DefaultPercentile
	}
	if req.Seed == 0 {
		req.Seed = uint64(time.Now().UnixNano())
	}

	grid, err := CoverageGrid(req.TotalEffort, constants.MinUnitsForVariance)
	if err != nil {
		return nil, err
	}

	logger.Debug("starting simulation",
		zap.String("op", "simulate.Run"),
		zap.Int("totalEffort", req.TotalEffort),
		zap.Float64("rate", req.Rate),
		zap.Float64("dispersion", req.Dispersion),
		zap.Int("replicates", req.Replicates),
		zap.Int("coverageLevels", len(grid)),
	)

	totalRows := len(grid) * req.Replicates
	perLevel := make([][]ReplicateResult, len(grid))
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for i, proportion := range grid {
		g.Go(func() error {
			// One PCG stream per level keyed off the run seed keeps the
			// parallel streams independent and non-overlapping.
			src := rand.NewPCG(req.Seed, uint64(i))
			sampler, err := distribution.NewSampler(req.Rate, req.Dispersion, src)
			if err != nil {
				return err
			}

			units := UnitsFor(proportion, req.TotalEffort)
			rows := make([]ReplicateResult, 0, req.Replicates)
			for r := 0; r < req.Replicates; r++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				rows = append(rows, simulateReplicate(sampler, proportion, units, req.TotalEffort))
				if n := done.Add(1); progress != nil && n%constants.ProgressInterval == 0 {
					progress(int(n), totalRows)
				}
			}
			perLevel[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Request: req}
	result.Replicates = make([]ReplicateResult, 0, totalRows)
	for _, rows := range perLevel {
		result.Replicates = append(result.Replicates, rows...)
	}
	result.Summary = Summarize(result.Replicates, req.Percentile)

	logger.Debug("simulation complete",
		zap.String("op", "simulate.Run"),
		zap.Int("replicateRows", len(result.Replicates)),
		zap.Int("summaryRows", len(result.Summary)),
	)
	return result, nil
}

// simulateReplicate draws one sample and derives its statistics.
func simulateReplicate(sampler *distribution.Sampler, proportion float64, units, totalEffort int) ReplicateResult {
	counts := sampler.Sample(units)
	xs := make([]float64, len(counts))
	total := 0
	for i, c := range counts {
		total += c
		xs[i] = float64(c)
	}

	variance := stat.Variance(xs, nil)
	fpc := 1 - float64(units)/float64(totalEffort)
	se := math.Sqrt(fpc * variance / float64(units))
	meanRate := float64(total) / float64(units)

	// A zero-event sample has no defined CV. The NaN sentinel is
	// excluded downstream, never coerced to zero.
	cv := math.NaN()
	if total > 0 {
		cv = se / meanRate
	}

	return ReplicateResult{
		Coverage: proportion,
		Units:    units,
		Total:    total,
		Variance: variance,
		MeanRate: meanRate,
		StdErr:   se,
		CV:       cv,
	}
}

func validateRequest(req Request) error {
	if err := validation.CheckTotalEffort(req.TotalEffort, constants.MinTotalEffortCV); err != nil {
		return err
	}
	if err := validation.CheckRate(req.Rate); err != nil {
		return err
	}
	if err := validation.CheckDispersion(req.Dispersion); err != nil {
		return err
	}
	if err := validation.CheckReplicates(req.Replicates); err != nil {
		return err
	}
	if req.Percentile != 0 {
		if err := validation.CheckPercentile(req.Percentile); err != nil {
			return err
		}
	}
	return nil
}
