package distribution

import (
	"math"
)

var exponentialSpec = Spec{
	Kind:    KindExponential,
	Name:    "Exponential Distribution",
	Summary: "Time between events in a Poisson process. Its hazard function h(x) = λ is constant.",
	Formula: "f(x) = λ * e^(-λx)",
	Moments: "Mean: 1/λ, Variance: 1/λ²",
	Support: Continuous,
	Parameters: []Parameter{
		{Name: "lambda", Symbol: "λ", Label: "rate", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 0.01, Max: 20, Step: 0.01}},
	},
	YMax:       1,
	Resolution: 500,
	Color:      "#ff0000",
}

// Exponential is Exp(λ).
type Exponential struct{}

func (Exponential) Spec() *Spec { return &exponentialSpec }

func (Exponential) Density(x float64, p Params) float64 {
	if x < 0 {
		return 0
	}
	lambda := p["lambda"]
	return lambda * math.Exp(-lambda*x)
}

// Hazard is f(x) / (1 - F(x)), which is the constant λ on the support.
func (Exponential) Hazard(x float64, p Params) float64 {
	if x < 0 {
		return 0
	}
	return p["lambda"]
}

func (Exponential) Mean(p Params) Statistic { return Finite(1 / p["lambda"]) }

func (Exponential) Variance(p Params) Statistic {
	lambda := p["lambda"]
	return Finite(1 / (lambda * lambda))
}

func (Exponential) Domain(Params) Range { return Range{Min: 0, Max: 5} }
