package distribution

import (
	"math"
)

var logNormalSpec = Spec{
	Kind:    KindLogNormal,
	Name:    "Log-Normal Distribution",
	Summary: "A variable whose logarithm is normally distributed.",
	Formula: "f(x; μ, σ) = (1 / (xσ√(2π))) * exp(-(ln(x) - μ)² / (2σ²))",
	Moments: "Mean: exp(μ + σ²/2), Variance: (exp(σ²) - 1) * exp(2μ + σ²)",
	Support: Continuous,
	Parameters: []Parameter{
		{Name: "mu", Symbol: "μ", Label: "mean of ln X", Kind: Real, Default: 0, Valid: AnyReal(), Slider: Slider{Min: -3, Max: 3, Step: 0.01}},
		{Name: "sigma", Symbol: "σ", Label: "standard deviation of ln X", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 0.1, Max: 3, Step: 0.01}},
	},
	YMax:       2,
	Resolution: 1000,
	Color:      "#0000ff",
}

// LogNormal is Lognormal(μ, σ).
type LogNormal struct{}

func (LogNormal) Spec() *Spec { return &logNormalSpec }

func (LogNormal) Density(x float64, p Params) float64 {
	if x <= 0 {
		return 0
	}
	mu, sigma := p["mu"], p["sigma"]
	z := (math.Log(x) - mu) / sigma
	return math.Exp(-0.5*z*z) / (x * sigma * math.Sqrt(2*math.Pi))
}

func (LogNormal) Mean(p Params) Statistic {
	sigma := p["sigma"]
	return Finite(math.Exp(p["mu"] + sigma*sigma/2))
}

func (LogNormal) Variance(p Params) Statistic {
	s2 := p["sigma"] * p["sigma"]
	return Finite(math.Expm1(s2) * math.Exp(2*p["mu"]+s2))
}

func (LogNormal) Domain(Params) Range { return Range{Min: 0, Max: 5} }
