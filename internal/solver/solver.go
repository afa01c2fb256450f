// Package solver finds the minimum observer coverage meeting a target
// precision (CV) or detection-probability criterion.
package solver

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/fishwatch/obscov/internal/simulate"
	"github.com/fishwatch/obscov/pkg/constants"
	"github.com/fishwatch/obscov/pkg/distribution"
	"github.com/fishwatch/obscov/pkg/statutil"
	"github.com/fishwatch/obscov/pkg/validation"
)

// ErrTargetUnattainable reports that no coverage level up to 100%
// satisfies the target.
var ErrTargetUnattainable = fmt.Errorf("target not attainable at any coverage up to 100%%")

// Result is the solved minimum coverage. Units is the observed-unit
// count consistent with the proportion, rounded up so the target is
// never undershot.
type Result struct {
	Coverage float64
	Units    int
}

// MinCoverageForCV returns the smallest coverage proportion whose CV
// quantile (at the percentile the summary was built with) is at or
// below targetCV. The (coverage, quantile-CV) relationship is solved by
// linear interpolation between the bracketing grid points, which makes
// the answer a deterministic function of the summary table. Levels with
// no contributing replicates are skipped.
func MinCoverageForCV(logger *zap.Logger, res *simulate.Result, targetCV float64) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validation.CheckCVTarget(targetCV); err != nil {
		return Result{}, err
	}
	if res == nil || len(res.Summary) == 0 {
		return Result{}, fmt.Errorf("no summary rows to solve over")
	}

	var prev *simulate.SummaryRow
	for i := range res.Summary {
		row := &res.Summary[i]
		if row.Contributing == 0 || math.IsNaN(row.QuantileCV) {
			continue
		}
		if row.QuantileCV > targetCV {
			prev = row
			continue
		}

		proportion := row.Coverage
		if prev != nil {
			proportion = statutil.InterpolateX(
				prev.Coverage, prev.QuantileCV,
				row.Coverage, row.QuantileCV,
				targetCV,
			)
		}
		solved := unitsResult(proportion, res.Request.TotalEffort)
		logger.Debug("solved CV target",
			zap.String("op", "solver.MinCoverageForCV"),
			zap.Float64("targetCV", targetCV),
			zap.Float64("percentile", res.Request.Percentile),
			zap.Float64("coverage", solved.Coverage),
			zap.Int("units", solved.Units),
		)
		return solved, nil
	}
	return Result{}, ErrTargetUnattainable
}

// MinCoverageForDetection solves analytically for the smallest coverage
// proportion at which the probability of observing at least one event,
// conditional on at least one event occurring in total effort, meets
// targetPct (in percent). No simulation is involved: the zero-observation
// probability is monotonic in sample size, so the crossing point follows
// from logarithms.
func MinCoverageForDetection(logger *zap.Logger, totalEffort int, rate, dispersion, targetPct float64) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validation.CheckTotalEffort(totalEffort, constants.MinTotalEffort); err != nil {
		return Result{}, err
	}
	if err := validation.CheckDetectionTarget(targetPct); err != nil {
		return Result{}, err
	}

	probZero, err := distribution.ProbZero([]int{1, totalEffort}, rate, dispersion)
	if err != nil {
		return Result{}, err
	}
	p0, pTotal := probZero[0], probZero[1]

	// Solve 1 - p0^n = t * (1 - pTotal) for the sample size n, then
	// convert to a proportion of total effort. The residual zero
	// probability is computed as (1-t) + t*pTotal so it stays accurate
	// when pTotal underflows toward zero.
	t := targetPct / constants.PercentageMultiplier
	residual := (1 - t) + t*pTotal
	n := math.Log(residual) / math.Log(p0)
	proportion := n / float64(totalEffort)
	if proportion > 1+constants.ProbabilityTolerance {
		return Result{}, ErrTargetUnattainable
	}
	if proportion > 1 {
		proportion = 1
	}

	solved := unitsResult(proportion, totalEffort)
	logger.Debug("solved detection-probability target",
		zap.String("op", "solver.MinCoverageForDetection"),
		zap.Float64("targetPct", targetPct),
		zap.Float64("coverage", solved.Coverage),
		zap.Int("units", solved.Units),
	)
	return solved, nil
}

// unitsResult rounds the observed-unit count up: under-covering would
// miss the target. The tolerance strips floating-point crumbs from the
// interpolated proportion so a level that lands on a whole unit count
// is not bumped to the next one.
func unitsResult(proportion float64, totalEffort int) Result {
	units := int(math.Ceil(proportion*float64(totalEffort) - constants.ProbabilityTolerance))
	if units > totalEffort {
		units = totalEffort
	}
	return Result{Coverage: proportion, Units: units}
}
