// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"

	"github.com/fishwatch/obscov/internal/simulate"
)

// FindSummaryRow finds the summary row for a coverage proportion in the
// results. Returns a pointer to the row if found, nil otherwise.
func FindSummaryRow(res *simulate.Result, coverage float64) *simulate.SummaryRow {
	for i := range res.Summary {
		if res.Summary[i].Coverage == coverage {
			return &res.Summary[i]
		}
	}
	return nil
}

// WithinTolerance checks if two values are within a specified tolerance.
func WithinTolerance(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
