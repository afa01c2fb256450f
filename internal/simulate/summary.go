package simulate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/fishwatch/obscov/pkg/constants"
	"github.com/fishwatch/obscov/pkg/statutil"
)

// Summarize aggregates replicate results into one row per coverage
// level, ordered by increasing coverage. Replicates with zero observed
// events (NaN CV) are excluded from every statistic; a level where none
// contribute keeps NaN quantiles so renderers can report insufficient
// data instead of a misleading zero.
func Summarize(replicates []ReplicateResult, percentile float64) []SummaryRow {
	groups := make(map[float64][]ReplicateResult)
	for _, rep := range replicates {
		groups[rep.Coverage] = append(groups[rep.Coverage], rep)
	}

	coverages := make([]float64, 0, len(groups))
	for coverage := range groups {
		coverages = append(coverages, coverage)
	}
	sort.Float64s(coverages)

	rows := make([]SummaryRow, 0, len(coverages))
	for _, coverage := range coverages {
		group := groups[coverage]
		row := SummaryRow{Coverage: coverage, Units: group[0].Units}

		var cvs, totals, units []float64
		for _, rep := range group {
			if rep.Total == 0 {
				continue
			}
			cvs = append(cvs, rep.CV)
			totals = append(totals, float64(rep.Total))
			units = append(units, float64(rep.Units))
		}

		row.Contributing = len(cvs)
		if row.Contributing == 0 {
			row.MeanTotal = math.NaN()
			row.MeanUnits = math.NaN()
			row.QuantileCV = math.NaN()
			row.MedianCV = math.NaN()
			row.CV80 = math.NaN()
			row.CV95 = math.NaN()
		} else {
			row.MeanTotal = stat.Mean(totals, nil)
			row.MeanUnits = stat.Mean(units, nil)
			row.QuantileCV = statutil.Quantile(cvs, percentile/constants.PercentageMultiplier)
			row.MedianCV = statutil.Quantile(cvs, constants.MedianQuantile)
			row.CV80 = statutil.Quantile(cvs, constants.UpperQuantile)
			row.CV95 = statutil.Quantile(cvs, constants.TailQuantile)
		}
		rows = append(rows, row)
	}
	return rows
}
