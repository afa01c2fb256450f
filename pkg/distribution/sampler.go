// Package distribution draws per-unit event counts from the Poisson /
// negative binomial count family and provides the closed-form
// zero-observation probabilities derived from it.
package distribution

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/fishwatch/obscov/pkg/validation"
)

// family selects the count distribution. The dispersion index picks the
// family: 1 is the Poisson limit of the negative binomial, so the two
// parametrizations agree exactly at the boundary.
type family int

const (
	familyPoisson family = iota
	familyNegBinomial
)

// Sampler draws non-negative integer event counts with mean rate and
// variance rate*dispersion. A Sampler is bound to one random source and
// is not safe for concurrent use; parallel workers each construct their
// own with an independent stream.
type Sampler struct {
	rate       float64
	dispersion float64
	fam        family
	poisson    distuv.Poisson
	gamma      distuv.Gamma
	src        rand.Source
}

// NewSampler constructs a Sampler for the given rate and dispersion
// index. A nil src seeds a fresh PCG stream from the wall clock.
func NewSampler(rate, dispersion float64, src rand.Source) (*Sampler, error) {
	if err := validation.CheckRate(rate); err != nil {
		return nil, err
	}
	if err := validation.CheckDispersion(dispersion); err != nil {
		return nil, err
	}
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>32)
	}

	s := &Sampler{rate: rate, dispersion: dispersion, src: src}
	if dispersion == 1 {
		s.fam = familyPoisson
		s.poisson = distuv.Poisson{Lambda: rate, Src: src}
		return s, nil
	}
	// Negative binomial with size r = rate/(dispersion-1) and success
	// probability 1/dispersion, realized as the exact Gamma-Poisson
	// mixture: lambda ~ Gamma(shape=r, scale=dispersion-1), then
	// Poisson(lambda). Mean = rate, variance = rate*dispersion.
	s.fam = familyNegBinomial
	s.gamma = distuv.Gamma{
		Alpha: rate / (dispersion - 1),
		Beta:  1 / (dispersion - 1),
		Src:   src,
	}
	return s, nil
}

// Rate returns the configured mean event rate.
func (s *Sampler) Rate() float64 { return s.rate }

// Dispersion returns the configured dispersion index.
func (s *Sampler) Dispersion() float64 { return s.dispersion }

// Sample draws n independent event counts.
func (s *Sampler) Sample(n int) []int {
	counts := make([]int, n)
	for i := range counts {
		counts[i] = s.draw()
	}
	return counts
}

func (s *Sampler) draw() int {
	switch s.fam {
	case familyPoisson:
		return int(s.poisson.Rand())
	default:
		mixed := distuv.Poisson{Lambda: s.gamma.Rand(), Src: s.src}
		return int(mixed.Rand())
	}
}
