// Package output provides utilities for formatting and displaying
// simulation results and coverage recommendations.
package output

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fishwatch/obscov/internal/simulate"
	"github.com/fishwatch/obscov/internal/solver"
	"github.com/fishwatch/obscov/pkg/constants"
)

// InsufficientData marks a coverage level where no replicate observed
// any event, so CV quantiles are undefined.
const InsufficientData = "insufficient data"

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(res *simulate.Result) {
	p := message.NewPrinter(language.English)
	_, _ = p.Printf("--- Projected precision for total effort %d, rate %g, dispersion %g (%d replicates) ---\n",
		res.Request.TotalEffort, res.Request.Rate, res.Request.Dispersion, res.Request.Replicates)
	_, _ = p.Printf("Coverage | Units   | Contributing | Mean events | Median CV | CV (p%.0f) | CV (p95)\n", res.Request.Percentile)
	_, _ = p.Printf("________ | _____   | ____________ | ___________ | _________ | ________  | ________\n")
	for _, row := range res.Summary {
		if row.Contributing == 0 {
			_, _ = p.Printf("%7.2f%% | %7d | %12d | %s\n",
				row.Coverage*constants.PercentageMultiplier, row.Units, row.Contributing, InsufficientData)
			continue
		}
		_, _ = p.Printf("%7.2f%% | %7d | %12d | %11.1f | %9.3f | %8.3f | %8.3f\n",
			row.Coverage*constants.PercentageMultiplier, row.Units, row.Contributing,
			row.MeanTotal, row.MedianCV, row.QuantileCV, row.CV95)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(res *simulate.Result) {
	fmt.Printf(`"coverage","units","contributing","mean_events","median_cv","quantile_cv","cv95"`)
	fmt.Printf("\n")
	for _, row := range res.Summary {
		fmt.Printf(`"%.4f","%d","%d",%s,%s,%s,%s`,
			row.Coverage, row.Units, row.Contributing,
			csvCell(row.MeanTotal), csvCell(row.MedianCV), csvCell(row.QuantileCV), csvCell(row.CV95))
		fmt.Printf("\n")
	}
}

func csvCell(v float64) string {
	if math.IsNaN(v) {
		return `""`
	}
	return fmt.Sprintf(`"%.4f"`, v)
}

// CVRecommendation renders the advisory minimum-coverage string for a
// solved CV target.
func CVRecommendation(target solver.Result, targetCV, percentile float64) string {
	return fmt.Sprintf("Minimum observer coverage to achieve CV <= %.2f at the %.0fth percentile is %.1f%% (%d units).",
		targetCV, percentile, target.Coverage*constants.PercentageMultiplier, target.Units)
}

// DetectionRecommendation renders the advisory minimum-coverage string
// for a solved detection-probability target.
func DetectionRecommendation(target solver.Result, targetPct float64) string {
	return fmt.Sprintf("Minimum observer coverage for a %.0f%% probability of observing at least one event (given any occur) is %.1f%% (%d units).",
		targetPct, target.Coverage*constants.PercentageMultiplier, target.Units)
}

// UCLNotice renders the none-observed diagnostic: the upper confidence
// limit on the event rate implied by an all-zero sample of the given
// size.
func UCLNotice(units int, confidence, ucl float64) string {
	return fmt.Sprintf("If no events were observed in %d units, the %.0f%% upper confidence limit on the event rate would be %.4f per unit effort.",
		units, confidence, ucl)
}

// Caveat is the advisory notice accompanying every recommendation.
func Caveat() string {
	return "Note: recommendations assume the event rate and dispersion are known without error and that " +
		"sampling is uniformly random across total effort; treat them as a lower bound on required coverage."
}
