package distribution

import (
	"errors"
	"math"
	"testing"

	"github.com/fishwatch/obscov/pkg/validation"
)

func TestProbZeroPoisson(t *testing.T) {
	units := []int{10, 100, 1000}
	got, err := ProbZero(units, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(units) {
		t.Fatalf("got %d values, expected %d", len(got), len(units))
	}
	for i, n := range units {
		want := math.Pow(math.Exp(-0.1), float64(n))
		if math.Abs(got[i]-want) > 1e-12 {
			t.Errorf("ProbZero at n=%d: got %v, expected %v", n, got[i], want)
		}
	}
	if !(got[0] > got[1] && got[1] > got[2]) {
		t.Errorf("values %v are not strictly decreasing", got)
	}
}

func TestProbZeroNegativeBinomial(t *testing.T) {
	const (
		rate       = 0.5
		dispersion = 2.0
	)
	got, err := ProbZero([]int{1, 50}, rate, dispersion)
	if err != nil {
		t.Fatal(err)
	}
	// pmf(0) = prob^size with size = rate/(dispersion-1), prob = 1/dispersion.
	pmf0 := math.Pow(1/dispersion, rate/(dispersion-1))
	if math.Abs(got[0]-pmf0) > 1e-12 {
		t.Errorf("single-unit zero probability %v, expected %v", got[0], pmf0)
	}
	if math.Abs(got[1]-math.Pow(pmf0, 50)) > 1e-12 {
		t.Errorf("50-unit zero probability %v, expected %v", got[1], math.Pow(pmf0, 50))
	}
}

func TestProbZeroMonotoneInUnits(t *testing.T) {
	units := []int{1, 2, 5, 10, 20, 50, 100, 500}
	for _, dispersion := range []float64{1, 1.5, 4} {
		got, err := ProbZero(units, 0.3, dispersion)
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(got); i++ {
			if got[i] > got[i-1] {
				t.Errorf("dispersion %v: probability increased from n=%d to n=%d (%v > %v)",
					dispersion, units[i-1], units[i], got[i], got[i-1])
			}
		}
	}
}

func TestProbZeroRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		units      []int
		rate       float64
		dispersion float64
	}{
		{"Empty units", nil, 0.1, 1},
		{"Non-positive unit", []int{10, 0}, 0.1, 1},
		{"Zero rate", []int{10}, 0, 1},
		{"Dispersion below one", []int{10}, 0.1, 0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProbZero(tt.units, tt.rate, tt.dispersion)
			if err == nil {
				t.Fatal("expected an error")
			}
			var domainErr *validation.DomainError
			if !errors.As(err, &domainErr) {
				t.Errorf("error %v is not a DomainError", err)
			}
		})
	}
}

func TestDetectionProbability(t *testing.T) {
	// Full coverage detects every event that occurs: the conditional
	// probability is exactly 100%.
	got, err := DetectionProbability(1000, 1000, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-100) > 1e-9 {
		t.Errorf("detection probability at full coverage = %v, expected 100", got)
	}

	// Monotone in sample size.
	lo, err := DetectionProbability(10, 1000, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := DetectionProbability(100, 1000, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !(lo > 0 && lo < hi && hi < 100) {
		t.Errorf("expected 0 < %v < %v < 100", lo, hi)
	}

	if _, err := DetectionProbability(0, 1000, 0.1, 1); err == nil {
		t.Error("expected an error for a non-positive sample size")
	}
	if _, err := DetectionProbability(1001, 1000, 0.1, 1); err == nil {
		t.Error("expected an error for a sample exceeding total effort")
	}
}

func TestUpperConfLimitZero(t *testing.T) {
	// Poisson: -ln(1-conf)/n.
	got, err := UpperConfLimitZero(10, 1, 95)
	if err != nil {
		t.Fatal(err)
	}
	want := -math.Log(0.05) / 10
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Poisson UCL = %v, expected %v", got, want)
	}

	// Overdispersion widens the limit.
	nb, err := UpperConfLimitZero(10, 3, 95)
	if err != nil {
		t.Fatal(err)
	}
	wantNB := -(3.0 - 1) * math.Log(0.05) / (10 * math.Log(3))
	if math.Abs(nb-wantNB) > 1e-12 {
		t.Errorf("negative binomial UCL = %v, expected %v", nb, wantNB)
	}
	if nb <= got {
		t.Errorf("overdispersed UCL %v should exceed Poisson UCL %v", nb, got)
	}

	// The configured rate at which an all-zero sample has probability
	// 1-conf must invert back through ProbZero.
	probs, err := ProbZero([]int{10}, nb, 3)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(probs[0]-0.05) > 1e-9 {
		t.Errorf("ProbZero at the UCL rate = %v, expected 0.05", probs[0])
	}

	if _, err := UpperConfLimitZero(0, 1, 95); err == nil {
		t.Error("expected an error for non-positive n")
	}
	if _, err := UpperConfLimitZero(10, 1, 100); err == nil {
		t.Error("expected an error for confidence of 100")
	}
}
