// Package constants provides shared constants for the obscov application.
package constants

// Effort and sampling constraints
const (
	// MinTotalEffort is the smallest legal total effort for analytic
	// calculations such as the zero-observation probability.
	MinTotalEffort = 2

	// MinTotalEffortCV is the smallest legal total effort for the
	// variance-based CV simulation, which needs at least two observed
	// units below full coverage.
	MinTotalEffortCV = 3

	// MinUnitsForVariance is the minimum observed-unit count at which a
	// sample variance is defined.
	MinUnitsForVariance = 2

	// SmallEffortThreshold is the total effort below which the coverage
	// grid enumerates every achievable unit count instead of using the
	// fixed multi-resolution grid.
	SmallEffortThreshold = 20
)

// Coverage grid resolution. CV changes steeply at low coverage, so the
// grid is finest there and coarsens above 10%.
const (
	FineGridMin  = 0.001
	FineGridMax  = 0.005
	FineGridStep = 0.001

	MidGridMin  = 0.01
	MidGridMax  = 0.05
	MidGridStep = 0.01

	CoarseGridMin  = 0.10
	CoarseGridMax  = 1.00
	CoarseGridStep = 0.05
)

// Simulation defaults
const (
	// DefaultReplicates is the default number of replicate simulations
	// per coverage level.
	DefaultReplicates = 1000

	// DefaultPercentile is the default CV quantile (in percent) used for
	// projections and target solving.
	DefaultPercentile = 80.0

	// ProgressInterval is the number of replicate rows between progress
	// callback invocations.
	ProgressInterval = 500
)

// Fixed diagnostic quantile probabilities reported for every coverage
// level in addition to the requested percentile.
const (
	MedianQuantile = 0.50
	UpperQuantile  = 0.80
	TailQuantile   = 0.95
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Numeric conversions and tolerances
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// ProbabilityTolerance is the tolerance for probability comparisons
	ProbabilityTolerance = 1e-9
)
