package simulate

import (
	"math"

	"github.com/fishwatch/obscov/pkg/constants"
	"github.com/fishwatch/obscov/pkg/validation"
)

// CoverageGrid returns the ordered, strictly increasing coverage
// proportions to evaluate for the given total effort. Small efforts
// (below constants.SmallEffortThreshold) enumerate every achievable
// unit count so no level is skipped; larger efforts use a fixed
// multi-resolution grid, finest below 1% where CV changes steeply.
// Levels whose rounded unit count falls below minUnits are dropped.
func CoverageGrid(totalEffort, minUnits int) ([]float64, error) {
	if err := validation.CheckTotalEffort(totalEffort, constants.MinTotalEffort); err != nil {
		return nil, err
	}

	var proportions []float64
	if totalEffort < constants.SmallEffortThreshold {
		for n := 1; n <= totalEffort; n++ {
			proportions = append(proportions, float64(n)/float64(totalEffort))
		}
	} else {
		proportions = appendSteps(proportions, constants.FineGridMin, constants.FineGridMax, constants.FineGridStep)
		proportions = appendSteps(proportions, constants.MidGridMin, constants.MidGridMax, constants.MidGridStep)
		proportions = appendSteps(proportions, constants.CoarseGridMin, constants.CoarseGridMax, constants.CoarseGridStep)
	}

	usable := proportions[:0]
	for _, p := range proportions {
		if UnitsFor(p, totalEffort) >= minUnits {
			usable = append(usable, p)
		}
	}
	return usable, nil
}

// UnitsFor maps a coverage proportion to its observed-unit count.
func UnitsFor(proportion float64, totalEffort int) int {
	return int(math.Round(proportion * float64(totalEffort)))
}

func appendSteps(grid []float64, min, max, step float64) []float64 {
	// Step counts are tiny integers; indexing avoids accumulated
	// floating-point drift across the grid.
	n := int(math.Round((max - min) / step))
	for i := 0; i <= n; i++ {
		grid = append(grid, min+float64(i)*step)
	}
	return grid
}
