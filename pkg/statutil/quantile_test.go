package statutil

import (
	"math"
	"testing"
)

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		p        float64
		expected float64
	}{
		{
			name:     "Lower quartile lands on order statistic",
			xs:       []float64{1, 2, 3, 4, 5},
			p:        0.25,
			expected: 2,
		},
		{
			name:     "Interpolated low quantile",
			xs:       []float64{1, 2, 3, 4, 5},
			p:        0.1,
			expected: 1.4,
		},
		{
			name:     "Median of even-length sample",
			xs:       []float64{1, 2, 3, 4},
			p:        0.5,
			expected: 2.5,
		},
		{
			name:     "80th percentile interpolates",
			xs:       []float64{0.1, 0.2, 0.3, 0.4},
			p:        0.8,
			expected: 0.34,
		},
		{
			name:     "Zero probability returns minimum",
			xs:       []float64{3, 1, 2},
			p:        0,
			expected: 1,
		},
		{
			name:     "Unit probability returns maximum",
			xs:       []float64{3, 1, 2},
			p:        1,
			expected: 3,
		},
		{
			name:     "Single element",
			xs:       []float64{7},
			p:        0.95,
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Quantile(tt.xs, tt.p)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("Quantile(%v, %v) = %v, expected %v", tt.xs, tt.p, result, tt.expected)
			}
		})
	}
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	_ = Quantile(xs, 0.5)
	if xs[0] != 3 || xs[1] != 1 || xs[2] != 2 {
		t.Errorf("Quantile mutated its input: %v", xs)
	}
}

func TestQuantileEmptyAndInvalid(t *testing.T) {
	if !math.IsNaN(Quantile(nil, 0.5)) {
		t.Error("Quantile(nil, 0.5) should be NaN")
	}
	if !math.IsNaN(Quantile([]float64{1, 2}, -0.1)) {
		t.Error("Quantile with p < 0 should be NaN")
	}
	if !math.IsNaN(Quantile([]float64{1, 2}, 1.1)) {
		t.Error("Quantile with p > 1 should be NaN")
	}
}

func TestInterpolateX(t *testing.T) {
	tests := []struct {
		name               string
		x1, y1, x2, y2, y  float64
		expected           float64
	}{
		{
			name: "Midpoint",
			x1:   0.1, y1: 0.5, x2: 0.2, y2: 0.3, y: 0.4,
			expected: 0.15,
		},
		{
			name: "At left endpoint",
			x1:   0.1, y1: 0.5, x2: 0.2, y2: 0.3, y: 0.5,
			expected: 0.1,
		},
		{
			name: "At right endpoint",
			x1:   0.1, y1: 0.5, x2: 0.2, y2: 0.3, y: 0.3,
			expected: 0.2,
		},
		{
			name: "Degenerate segment returns left x",
			x1:   0.1, y1: 0.5, x2: 0.2, y2: 0.5, y: 0.5,
			expected: 0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InterpolateX(tt.x1, tt.y1, tt.x2, tt.y2, tt.y)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("InterpolateX() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
