// Package simulate implements the Monte Carlo engine that projects
// sampling precision (CV of the estimated event rate) as a function of
// observer coverage.
package simulate

// Request holds the input parameters for one simulation run. All fields
// are value semantics; the engine never mutates a Request after
// validation.
type Request struct {
	// TotalEffort is the size of the finite population of sampling
	// units (e.g. trips or sets in a fishing year).
	TotalEffort int

	// Rate is the mean event (bycatch) count per unit effort.
	Rate float64

	// Dispersion is the variance-to-mean ratio of per-unit counts:
	// 1 selects Poisson, >1 negative binomial with variance
	// Rate*Dispersion.
	Dispersion float64

	// Replicates is the number of independent replicate simulations per
	// coverage level.
	Replicates int

	// Percentile is the requested CV quantile in percent (e.g. 80 for
	// the 80th percentile reported alongside the fixed diagnostics).
	Percentile float64

	// Seed fixes the random streams for reproducibility. Zero seeds
	// from the wall clock.
	Seed uint64
}

// ReplicateResult is one simulated sample: a single (coverage level,
// replicate) pair. Immutable once computed.
type ReplicateResult struct {
	Coverage float64 // coverage proportion in (0, 1]
	Units    int     // observed-unit count at this level
	Total    int     // realized event total in the sample
	Variance float64 // sample variance of per-unit counts
	MeanRate float64 // Total / Units
	StdErr   float64 // finite-population-corrected standard error
	CV       float64 // StdErr / MeanRate; NaN when Total == 0
}

// SummaryRow aggregates the replicates of one coverage level.
// Replicates with zero observed events are excluded from every
// statistic; when none contribute the quantile fields are NaN and
// renderers present the row as insufficient data.
type SummaryRow struct {
	Coverage     float64
	Units        int
	Contributing int     // replicates with at least one observed event
	MeanTotal    float64 // mean event total over contributing replicates
	MeanUnits    float64 // mean observed-unit count over contributing replicates
	QuantileCV   float64 // CV quantile at Request.Percentile
	MedianCV     float64
	CV80         float64
	CV95         float64
}

// Result is the bundle handed to summarizing, solving, and rendering
// collaborators: the replicate-level table, the per-level summary, and
// the echoed request. Renderers depend on nothing else.
type Result struct {
	Request    Request
	Replicates []ReplicateResult
	Summary    []SummaryRow
}

// ProgressFunc observes simulation progress. It is advisory only:
// invocations happen at a coarse fixed interval and removing the
// callback changes no computed value.
type ProgressFunc func(done, total int)
