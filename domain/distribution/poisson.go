package distribution

import (
	"fmt"
	"math"

	"distviz/domain/numeric"
)

var poissonSpec = Spec{
	Kind:    KindPoisson,
	Name:    "Poisson Distribution",
	Summary: "Models the small probability of rare events.",
	Formula: "P(X=k) = (λ^k * e^(-λ)) / k!",
	Moments: "Mean and Variance: λ",
	Support: Discrete,
	Parameters: []Parameter{
		{Name: "lambda", Symbol: "λ", Label: "rate", Kind: Real, Default: 1, Valid: PositiveAtMost(MaxRate), Slider: Slider{Min: 0.01, Max: 20, Step: 0.01}},
	},
	YMax:  1,
	Color: "#ff0000",
}

// Poisson is Pois(λ).
type Poisson struct{}

func (Poisson) Spec() *Spec { return &poissonSpec }

// Density is e^-λ λ^k / k!, with k! accumulated as a log sum.
func (Poisson) Density(x float64, p Params) float64 {
	k, ok := count(x)
	if !ok {
		return 0
	}
	lambda := p["lambda"]
	return numeric.ExpProb(-lambda + numeric.XLogY(float64(k), lambda) - numeric.LogFactorial(k))
}

func (Poisson) Mean(p Params) Statistic { return Finite(p["lambda"]) }

func (Poisson) Variance(p Params) Statistic { return Finite(p["lambda"]) }

// Domain shows at least 0..19 and widens to cover λ + 4√λ.
func (Poisson) Domain(p Params) Range {
	lambda := p["lambda"]
	hi := int(math.Ceil(lambda + 4*math.Sqrt(lambda)))
	if hi < 19 {
		hi = 19
	}
	return integerRange(0, hi)
}

func (Poisson) Caption(_ Params, mean, _ Statistic) string {
	return fmt.Sprintf("Mean and Variance: %s", mean)
}
