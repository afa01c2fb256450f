package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/fishwatch/obscov/pkg/constants"
	"github.com/fishwatch/obscov/pkg/validation"
)

// ProbZero returns, for each observed-unit count in units, the
// probability that a sample of that many units observes zero events.
// Pure and stateless: element i is pmf(0)^units[i] for the configured
// count family.
func ProbZero(units []int, rate, dispersion float64) ([]float64, error) {
	if err := validation.CheckUnits(units); err != nil {
		return nil, err
	}
	p0, err := pmfZero(rate, dispersion)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(units))
	for i, n := range units {
		out[i] = math.Pow(p0, float64(n))
	}
	return out, nil
}

// pmfZero is the single-unit probability of observing zero events.
func pmfZero(rate, dispersion float64) (float64, error) {
	if err := validation.CheckRate(rate); err != nil {
		return 0, err
	}
	if err := validation.CheckDispersion(dispersion); err != nil {
		return 0, err
	}
	if dispersion == 1 {
		return distuv.Poisson{Lambda: rate}.Prob(0), nil
	}
	// Negative binomial pmf at zero: prob^size with size =
	// rate/(dispersion-1) and prob = 1/dispersion.
	return math.Exp(-rate / (dispersion - 1) * math.Log(dispersion)), nil
}

// DetectionProbability returns the percent probability that a sample
// covering n units (continuous, so interpolated coverage levels can be
// evaluated) observes at least one event, conditional on at least one
// event occurring in the full total effort.
func DetectionProbability(n float64, totalEffort int, rate, dispersion float64) (float64, error) {
	if err := validation.CheckTotalEffort(totalEffort, constants.MinTotalEffort); err != nil {
		return 0, err
	}
	if n <= 0 || n > float64(totalEffort) {
		return 0, validation.NewDomainError("observed-unit count", "in (0, total effort]")
	}
	p0, err := pmfZero(rate, dispersion)
	if err != nil {
		return 0, err
	}
	anyInTotal := 1 - math.Pow(p0, float64(totalEffort))
	anyInSample := 1 - math.Pow(p0, n)
	return constants.PercentageMultiplier * anyInSample / anyInTotal, nil
}

// UpperConfLimitZero returns the one-tailed upper confidence limit for
// the event rate when a sample of n units observes zero events, at the
// given confidence level in percent. Closed form: the rate at which the
// probability of an all-zero sample equals 1-confidence.
func UpperConfLimitZero(n int, dispersion, confidence float64) (float64, error) {
	if err := validation.CheckUnits([]int{n}); err != nil {
		return 0, err
	}
	if err := validation.CheckDispersion(dispersion); err != nil {
		return 0, err
	}
	if err := validation.CheckConfidence(confidence); err != nil {
		return 0, err
	}
	alpha := 1 - confidence/constants.PercentageMultiplier
	if dispersion == 1 {
		return -math.Log(alpha) / float64(n), nil
	}
	return -(dispersion - 1) * math.Log(alpha) / (float64(n) * math.Log(dispersion)), nil
}
