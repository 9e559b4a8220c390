package distribution

import (
	"fmt"
	"math"
)

var geometricSpec = Spec{
	Kind:    KindGeometric,
	Name:    "Geometric Distribution",
	Summary: "Number of trials needed to get the first success.",
	Formula: "P(X=k) = (1-p)^(k-1) * p",
	Moments: "Mean: 1/p, Variance: (1-p)/p²",
	Support: Discrete,
	Parameters: []Parameter{
		{Name: "p", Symbol: "p", Label: "probability of success", Kind: Real, Default: 0.5,
			Valid: Interval{Min: 0, Max: 1, MinOpen: true}, Slider: Slider{Min: 0.01, Max: 1, Step: 0.01}},
	},
	YMax:  1,
	Color: "#0000ff",
}

// Geometric counts trials up to and including the first success, k ≥ 1.
type Geometric struct{}

func (Geometric) Spec() *Spec { return &geometricSpec }

// Density is the closed form (1-p)^(k-1) p; no log space needed since the
// terms only shrink.
func (Geometric) Density(x float64, p Params) float64 {
	k, ok := count(x)
	if !ok || k < 1 {
		return 0
	}
	prob := p["p"]
	return math.Pow(1-prob, float64(k-1)) * prob
}

func (Geometric) Mean(p Params) Statistic { return Finite(1 / p["p"]) }

func (Geometric) Variance(p Params) Statistic {
	prob := p["p"]
	return Finite((1 - prob) / (prob * prob))
}

func (Geometric) Domain(Params) Range { return integerRange(1, 19) }

func (Geometric) Caption(p Params, mean, variance Statistic) string {
	return fmt.Sprintf("Geometric Distribution (p = %.2f), Mean: %s, Variance: %s", p["p"], mean, variance)
}
