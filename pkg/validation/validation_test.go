package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/fishwatch/obscov/pkg/constants"
)

func TestChecks(t *testing.T) {
	tests := []struct {
		name    string
		check   func() error
		wantErr bool
	}{
		{"Total effort at analytic minimum", func() error { return CheckTotalEffort(2, constants.MinTotalEffort) }, false},
		{"Total effort below analytic minimum", func() error { return CheckTotalEffort(1, constants.MinTotalEffort) }, true},
		{"Total effort at CV minimum", func() error { return CheckTotalEffort(3, constants.MinTotalEffortCV) }, false},
		{"Total effort below CV minimum", func() error { return CheckTotalEffort(2, constants.MinTotalEffortCV) }, true},
		{"Positive rate", func() error { return CheckRate(0.1) }, false},
		{"Zero rate", func() error { return CheckRate(0) }, true},
		{"Negative rate", func() error { return CheckRate(-1) }, true},
		{"Poisson dispersion", func() error { return CheckDispersion(1) }, false},
		{"Overdispersed", func() error { return CheckDispersion(2.5) }, false},
		{"Underdispersed", func() error { return CheckDispersion(0.9) }, true},
		{"Positive replicates", func() error { return CheckReplicates(1) }, false},
		{"Zero replicates", func() error { return CheckReplicates(0) }, true},
		{"CV target zero", func() error { return CheckCVTarget(0) }, false},
		{"CV target interior", func() error { return CheckCVTarget(0.3) }, false},
		{"CV target one", func() error { return CheckCVTarget(1) }, true},
		{"CV target negative", func() error { return CheckCVTarget(-0.1) }, true},
		{"Percentile interior", func() error { return CheckPercentile(80) }, false},
		{"Percentile zero", func() error { return CheckPercentile(0) }, true},
		{"Percentile hundred", func() error { return CheckPercentile(100) }, true},
		{"Detection target hundred", func() error { return CheckDetectionTarget(100) }, false},
		{"Detection target zero", func() error { return CheckDetectionTarget(0) }, true},
		{"Detection target above hundred", func() error { return CheckDetectionTarget(100.5) }, true},
		{"Confidence interior", func() error { return CheckConfidence(95) }, false},
		{"Confidence hundred", func() error { return CheckConfidence(100) }, true},
		{"Units positive vector", func() error { return CheckUnits([]int{1, 10, 100}) }, false},
		{"Units empty vector", func() error { return CheckUnits(nil) }, true},
		{"Units with zero", func() error { return CheckUnits([]int{10, 0}) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if (err != nil) != tt.wantErr {
				t.Errorf("got error %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var domainErr *DomainError
				if !errors.As(err, &domainErr) {
					t.Errorf("error %v is not a DomainError", err)
				}
			}
		})
	}
}

func TestDomainErrorMessage(t *testing.T) {
	err := CheckRate(-0.5)
	if err == nil {
		t.Fatal("expected an error for a negative rate")
	}
	if !strings.Contains(err.Error(), "bycatch rate") {
		t.Errorf("error %q does not name the offending parameter", err.Error())
	}
	if !strings.Contains(err.Error(), "> 0") {
		t.Errorf("error %q does not name the violated constraint", err.Error())
	}
}
