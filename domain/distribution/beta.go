package distribution

import (
	"math"

	"distviz/domain/numeric"
)

var betaSpec = Spec{
	Kind:    KindBeta,
	Name:    "Beta Distribution",
	Summary: "Random variables limited to an interval of finite length, such as proportions.",
	Formula: "f(x; α, β) = x^(α-1) * (1-x)^(β-1) / B(α, β)",
	Moments: "Mean: α / (α + β), Variance: αβ / ((α + β)²(α + β + 1))",
	Support: Continuous,
	Parameters: []Parameter{
		{Name: "alpha", Symbol: "α", Label: "alpha", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 0.01, Max: 10, Step: 0.01}},
		{Name: "beta", Symbol: "β", Label: "beta", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 0.01, Max: 10, Step: 0.01}},
	},
	YMax:       2,
	Resolution: 1000,
	Color:      "#0000ff",
}

// Beta is Beta(α, β) on [0, 1).
type Beta struct{}

func (Beta) Spec() *Spec { return &betaSpec }

func (Beta) Density(x float64, p Params) float64 {
	if x < 0 || x >= 1 {
		return 0
	}
	alpha, beta := p["alpha"], p["beta"]
	if x == 0 && alpha < 1 {
		return math.Inf(1)
	}
	logP := numeric.XLogY(alpha-1, x) + numeric.XLog1pY(beta-1, -x) - numeric.LogBeta(alpha, beta)
	return numeric.ExpProb(logP)
}

func (Beta) Mean(p Params) Statistic {
	alpha, beta := p["alpha"], p["beta"]
	return Finite(alpha / (alpha + beta))
}

func (Beta) Variance(p Params) Statistic {
	alpha, beta := p["alpha"], p["beta"]
	s := alpha + beta
	return Finite(alpha * beta / (s * s * (s + 1)))
}

func (Beta) Domain(Params) Range { return Range{Min: 0, Max: 1} }
