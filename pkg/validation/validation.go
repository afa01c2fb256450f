// Package validation enforces the input contract shared by every public
// entry point of the simulation engine.
package validation

import (
	"fmt"

	"github.com/fishwatch/obscov/pkg/constants"
)

// DomainError reports an input parameter that violates its constraint.
// These are programming or parameter errors: they abort the call and
// are never retried.
type DomainError struct {
	Param      string
	Constraint string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s must be %s", e.Param, e.Constraint)
}

// NewDomainError constructs a DomainError for the named parameter.
func NewDomainError(param, constraint string) *DomainError {
	return &DomainError{Param: param, Constraint: constraint}
}

// CheckTotalEffort validates total effort against the given minimum
// (constants.MinTotalEffort for analytic use, constants.MinTotalEffortCV
// for the variance-based CV simulation).
func CheckTotalEffort(totalEffort, minimum int) error {
	if totalEffort < minimum {
		return NewDomainError("total effort", fmt.Sprintf("an integer >= %d", minimum))
	}
	return nil
}

// CheckRate validates the bycatch (event) rate.
func CheckRate(rate float64) error {
	if !(rate > 0) {
		return NewDomainError("bycatch rate", "> 0")
	}
	return nil
}

// CheckDispersion validates the dispersion index. A value of 1 selects
// the Poisson special case; values above 1 select the negative binomial.
func CheckDispersion(dispersion float64) error {
	if !(dispersion >= 1) {
		return NewDomainError("dispersion index", ">= 1")
	}
	return nil
}

// CheckReplicates validates the replicate count.
func CheckReplicates(replicates int) error {
	if replicates < 1 {
		return NewDomainError("replicate count", "a positive integer")
	}
	return nil
}

// CheckCVTarget validates a target coefficient of variation.
func CheckCVTarget(target float64) error {
	if target < 0 || target >= 1 {
		return NewDomainError("target CV", "in [0, 1)")
	}
	return nil
}

// CheckPercentile validates a CV quantile expressed in percent.
func CheckPercentile(percentile float64) error {
	if !(percentile > 0 && percentile < constants.PercentageMultiplier) {
		return NewDomainError("percentile", "in (0, 100)")
	}
	return nil
}

// CheckDetectionTarget validates a target detection probability
// expressed in percent.
func CheckDetectionTarget(target float64) error {
	if !(target > 0 && target <= constants.PercentageMultiplier) {
		return NewDomainError("target detection probability", "in (0, 100]")
	}
	return nil
}

// CheckConfidence validates a confidence level expressed in percent,
// used by the upper-confidence-limit diagnostic.
func CheckConfidence(confidence float64) error {
	if !(confidence > 0 && confidence < constants.PercentageMultiplier) {
		return NewDomainError("confidence level", "in (0, 100)")
	}
	return nil
}

// CheckUnits validates a vector of observed-unit counts for the
// zero-probability analytic.
func CheckUnits(units []int) error {
	if len(units) == 0 {
		return NewDomainError("observed-unit counts", "a non-empty vector")
	}
	for _, n := range units {
		if n < 1 {
			return NewDomainError("observed-unit count", "a positive integer")
		}
	}
	return nil
}
