package distribution

import (
	"math"

	"distviz/domain/numeric"
)

var weibullSpec = Spec{
	Kind:    KindWeibull,
	Name:    "Weibull Distribution",
	Summary: "Lifetimes whose failure rate grows (k > 1), shrinks (k < 1) or stays constant (k = 1) over time.",
	Formula: "f(x; k, λ) = (k/λ) * (x/λ)^(k-1) * e^(-(x/λ)^k)",
	Moments: "Mean: λΓ(1 + 1/k), Variance: λ²[Γ(1 + 2/k) - Γ(1 + 1/k)²]",
	Support: Continuous,
	Parameters: []Parameter{
		{Name: "k", Symbol: "k", Label: "shape", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 0.01, Max: 10, Step: 0.01}},
		{Name: "lambda", Symbol: "λ", Label: "scale", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 0.01, Max: 10, Step: 0.01}},
	},
	YMax:       1,
	Resolution: 500,
	Color:      "#ff0000",
}

// Weibull is W(k, λ) with shape k and scale λ.
type Weibull struct{}

func (Weibull) Spec() *Spec { return &weibullSpec }

func (Weibull) Density(x float64, p Params) float64 {
	if x < 0 {
		return 0
	}
	k, lambda := p["k"], p["lambda"]
	z := x / lambda
	return (k / lambda) * math.Pow(z, k-1) * math.Exp(-math.Pow(z, k))
}

func (Weibull) Mean(p Params) Statistic {
	return Finite(p["lambda"] * numeric.Gamma(1+1/p["k"]))
}

// Variance overflows float64 for very small shapes; Γ(1+2/k) = +Inf is
// reported as ∞ rather than the NaN that Inf - Inf would give.
func (Weibull) Variance(p Params) Statistic {
	k, lambda := p["k"], p["lambda"]
	g1 := numeric.Gamma(1 + 1/k)
	g2 := numeric.Gamma(1 + 2/k)
	if math.IsInf(g2, 1) {
		return Infinite()
	}
	return Finite(lambda * lambda * (g2 - g1*g1))
}

func (Weibull) Domain(Params) Range { return Range{Min: 0, Max: 5} }
